package indexing

import "strings"

// ChunkConfig controls the sliding-window chunker.
type ChunkConfig struct {
	Size    int
	Overlap int
}

// separators in priority order: paragraph, line, sentence, word. A window is
// cut at the last occurrence of the highest-priority separator it contains.
var separators = []string{"\n\n", "\n", ". ", " "}

// ChunkText splits text into overlapping chunks of roughly cfg.Size
// characters, preferring to break on natural boundaries. Deterministic and
// I/O free.
func ChunkText(text string, cfg ChunkConfig) []string {
	size := cfg.Size
	if size <= 0 {
		size = 1000
	}
	overlap := cfg.Overlap
	if overlap < 0 || overlap >= size {
		overlap = 150
	}

	var chunks []string
	start := 0
	for start < len(text) {
		if start+size >= len(text) {
			if tail := strings.TrimSpace(text[start:]); tail != "" {
				chunks = append(chunks, tail)
			}
			break
		}

		cut := start + size
		for _, sep := range separators {
			if i := strings.LastIndex(text[start:start+size], sep); i > 0 {
				cut = start + i + len(sep)
				break
			}
		}

		if chunk := strings.TrimSpace(text[start:cut]); chunk != "" {
			chunks = append(chunks, chunk)
		}

		next := cut - overlap
		if next <= start {
			// window contained no usable boundary; move on without overlap
			next = cut
		}
		start = next
	}
	return chunks
}
