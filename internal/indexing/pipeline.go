package indexing

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/P-AlaKara/rag-study-assistant/internal/retrieval"
	logx "github.com/P-AlaKara/rag-study-assistant/pkg/logger"
)

// Config holds indexing settings sourced from environment variables.
type Config struct {
	DataDir      string `envconfig:"INDEX_DATA_DIR" default:"./data"`
	ChunkSize    int    `envconfig:"INDEX_CHUNK_SIZE" default:"1000"`
	ChunkOverlap int    `envconfig:"INDEX_CHUNK_OVERLAP" default:"150"`
}

// Stats summarises one pipeline run.
type Stats struct {
	Files   int
	Skipped int
	Chunks  int
}

func (s Stats) String() string {
	return fmt.Sprintf("%d files indexed (%d skipped), %d chunks", s.Files, s.Skipped, s.Chunks)
}

// Pipeline walks a data directory of extracted document text, derives tags
// from the filename convention, chunks each file and stores the chunks in
// the Redis document index.
type Pipeline struct {
	index *retrieval.RedisIndex
	chunk ChunkConfig
}

// NewPipeline builds an indexing pipeline over the given index.
func NewPipeline(index *retrieval.RedisIndex, cfg Config) *Pipeline {
	return &Pipeline{
		index: index,
		chunk: ChunkConfig{Size: cfg.ChunkSize, Overlap: cfg.ChunkOverlap},
	}
}

// Run indexes every supported file under dataDir. Files that do not follow
// the naming convention are skipped with a warning, not fatal.
func (p *Pipeline) Run(ctx context.Context, dataDir string) (Stats, error) {
	var stats Stats

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !supportedFile(path) {
			return nil
		}

		meta, merr := MetadataFromFilename(path)
		if merr != nil {
			logx.Warn().Err(merr).Str("file", path).Msg("skipping file with unparseable name")
			stats.Skipped++
			return nil
		}

		data, rerr := os.ReadFile(path)
		if rerr != nil {
			logx.Warn().Err(rerr).Str("file", path).Msg("skipping unreadable file")
			stats.Skipped++
			return nil
		}

		chunks := ChunkText(string(data), p.chunk)
		for i, chunk := range chunks {
			id := fmt.Sprintf("%s:%d", meta[retrieval.TagUniqueCode], i)
			if aerr := p.index.Add(ctx, id, retrieval.Document{Text: chunk, Tags: meta}); aerr != nil {
				return fmt.Errorf("index chunk %s: %w", id, aerr)
			}
		}

		stats.Files++
		stats.Chunks += len(chunks)
		logx.Debug().Str("file", path).Int("chunks", len(chunks)).Msg("indexed document")
		return nil
	})
	if err != nil {
		return stats, err
	}

	return stats, nil
}

// supportedFile reports whether the path holds extracted text we can index.
func supportedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return true
	default:
		return false
	}
}
