package retrieval

import (
	"context"
	"fmt"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"

	errx "github.com/P-AlaKara/rag-study-assistant/internal/core/error"
	logx "github.com/P-AlaKara/rag-study-assistant/pkg/logger"
)

const (
	docKeyPrefix = "paper:doc:"
	tagKeyPrefix = "paper:tagidx:"
	allDocsKey   = "paper:docs"
	tagKeysKey   = "paper:tagkeys"

	tagFieldPrefix = "tag:"
	textField      = "text"

	searchCacheSize = 128
)

// RedisIndex stores document chunks as Redis hashes with set-based tag
// membership indexes. Search intersects the tag sets for the requested
// filters; results are cached in an LRU keyed by the canonical filter string
// and purged on every write.
type RedisIndex struct {
	rdb   redis.Cmdable
	cache *lru.Cache[string, []Document]
}

// NewRedisIndex creates a document index over the given Redis client.
func NewRedisIndex(rdb redis.Cmdable) (*RedisIndex, error) {
	cache, err := lru.New[string, []Document](searchCacheSize)
	if err != nil {
		return nil, err
	}
	return &RedisIndex{rdb: rdb, cache: cache}, nil
}

func docKey(id string) string {
	return docKeyPrefix + id
}

func tagKey(name, value string) string {
	return fmt.Sprintf("%s%s:%s", tagKeyPrefix, name, value)
}

// Add stores one document chunk and registers it in the tag indexes.
func (x *RedisIndex) Add(ctx context.Context, id string, doc Document) error {
	fields := map[string]any{textField: doc.Text}
	for name, value := range doc.Tags {
		fields[tagFieldPrefix+name] = value
	}

	if err := x.rdb.HSet(ctx, docKey(id), fields).Err(); err != nil {
		logx.Error().Err(err).Str("doc_id", id).Msg("failed to store document hash")
		return errx.WrapRedis(err)
	}
	if err := x.rdb.SAdd(ctx, allDocsKey, id).Err(); err != nil {
		return errx.WrapRedis(err)
	}
	for name, value := range doc.Tags {
		key := tagKey(name, value)
		if err := x.rdb.SAdd(ctx, key, id).Err(); err != nil {
			logx.Error().Err(err).Str("key", key).Msg("failed to index document tag")
			return errx.WrapRedis(err)
		}
		if err := x.rdb.SAdd(ctx, tagKeysKey, key).Err(); err != nil {
			return errx.WrapRedis(err)
		}
	}

	x.cache.Purge()
	return nil
}

// Search returns up to limit documents whose tags satisfy every filter.
// Matching is pure tag intersection; the free-text query does not narrow
// results here, so repeated lookups with equal filters hit the LRU.
func (x *RedisIndex) Search(ctx context.Context, query string, filters map[string]string, limit int) ([]Document, error) {
	key := cacheKey(filters, limit)
	if docs, ok := x.cache.Get(key); ok {
		logx.Debug().Str("filters", key).Msg("retrieval cache hit")
		return docs, nil
	}

	ids, err := x.matchIDs(ctx, filters)
	if err != nil {
		return nil, err
	}

	// deterministic ordering across calls
	sort.Strings(ids)
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	docs := make([]Document, 0, len(ids))
	for _, id := range ids {
		fields, err := x.rdb.HGetAll(ctx, docKey(id)).Result()
		if err != nil {
			logx.Error().Err(err).Str("doc_id", id).Msg("failed to load document hash")
			return nil, errx.WrapRedis(err)
		}
		if len(fields) == 0 {
			continue
		}
		doc := Document{Text: fields[textField], Tags: map[string]string{}}
		for field, value := range fields {
			if strings.HasPrefix(field, tagFieldPrefix) {
				doc.Tags[strings.TrimPrefix(field, tagFieldPrefix)] = value
			}
		}
		docs = append(docs, doc)
	}

	x.cache.Add(key, docs)
	logx.Debug().Str("filters", key).Int("documents", len(docs)).Msg("retrieval search")
	return docs, nil
}

// matchIDs resolves the filter set to document ids via set intersection.
func (x *RedisIndex) matchIDs(ctx context.Context, filters map[string]string) ([]string, error) {
	if len(filters) == 0 {
		ids, err := x.rdb.SMembers(ctx, allDocsKey).Result()
		if err != nil {
			return nil, errx.WrapRedis(err)
		}
		return ids, nil
	}

	keys := make([]string, 0, len(filters))
	for name, value := range filters {
		keys = append(keys, tagKey(name, value))
	}
	ids, err := x.rdb.SInter(ctx, keys...).Result()
	if err != nil {
		return nil, errx.WrapRedis(err)
	}
	return ids, nil
}

// Clear drops every indexed document and tag index.
func (x *RedisIndex) Clear(ctx context.Context) error {
	ids, err := x.rdb.SMembers(ctx, allDocsKey).Result()
	if err != nil {
		return errx.WrapRedis(err)
	}
	for _, id := range ids {
		if err := x.rdb.Del(ctx, docKey(id)).Err(); err != nil {
			return errx.WrapRedis(err)
		}
	}

	tagKeys, err := x.rdb.SMembers(ctx, tagKeysKey).Result()
	if err != nil {
		return errx.WrapRedis(err)
	}
	for _, key := range tagKeys {
		if err := x.rdb.Del(ctx, key).Err(); err != nil {
			return errx.WrapRedis(err)
		}
	}

	if err := x.rdb.Del(ctx, allDocsKey, tagKeysKey).Err(); err != nil {
		return errx.WrapRedis(err)
	}

	x.cache.Purge()
	return nil
}

// Count reports how many document chunks are indexed.
func (x *RedisIndex) Count(ctx context.Context) (int, error) {
	n, err := x.rdb.SCard(ctx, allDocsKey).Result()
	if err != nil {
		return 0, errx.WrapRedis(err)
	}
	return int(n), nil
}

// cacheKey canonicalises a filter set so equal lookups share a cache entry.
func cacheKey(filters map[string]string, limit int) string {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(filters[name])
		b.WriteByte('&')
	}
	fmt.Fprintf(&b, "limit=%d", limit)
	return b.String()
}

var _ Searcher = (*RedisIndex)(nil)
