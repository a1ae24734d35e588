package retrieval

import "context"

// Document is one indexed text block with its metadata tags.
type Document struct {
	Text string
	Tags map[string]string
}

// Tag names used across the index, following the source filename convention
// Category_Unit_Topic_Year_Code.
const (
	TagSourceType = "source_type"
	TagUnitCode   = "unit_code"
	TagTopic      = "topic"
	TagYear       = "year"
	TagUniqueCode = "unique_code"
	TagFile       = "original_file"
)

// SourceTypePastPaper is the document-type tag value the dialogue router
// always filters on.
const SourceTypePastPaper = "PastPaper"

// Searcher is the retrieval capability consumed by the dialogue router.
// Filters are equality constraints, logically ANDed.
type Searcher interface {
	Search(ctx context.Context, query string, filters map[string]string, limit int) ([]Document, error)
}
