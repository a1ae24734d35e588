package retrieval

import "testing"

func TestCacheKeyCanonical(t *testing.T) {
	a := cacheKey(map[string]string{
		"unit_code":   "SIT182",
		"source_type": "PastPaper",
	}, 20)
	b := cacheKey(map[string]string{
		"source_type": "PastPaper",
		"unit_code":   "SIT182",
	}, 20)
	if a != b {
		t.Fatalf("insertion order changed the key: %q vs %q", a, b)
	}
	if a != "source_type=PastPaper&unit_code=SIT182&limit=20" {
		t.Fatalf("unexpected key: %q", a)
	}
}

func TestCacheKeyDistinguishes(t *testing.T) {
	base := cacheKey(map[string]string{"source_type": "PastPaper"}, 20)
	if got := cacheKey(map[string]string{"source_type": "PastPaper"}, 4); got == base {
		t.Fatalf("limit ignored: %q", got)
	}
	if got := cacheKey(map[string]string{"source_type": "Notes"}, 20); got == base {
		t.Fatalf("filter value ignored: %q", got)
	}
	if got := cacheKey(nil, 20); got != "limit=20" {
		t.Fatalf("empty filters: %q", got)
	}
}

func TestTagKey(t *testing.T) {
	if got := tagKey("unit_code", "SIT182"); got != "paper:tagidx:unit_code:SIT182" {
		t.Fatalf("got %q", got)
	}
	if got := docKey("a1b2:0"); got != "paper:doc:a1b2:0" {
		t.Fatalf("got %q", got)
	}
}
