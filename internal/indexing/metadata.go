package indexing

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/P-AlaKara/rag-study-assistant/internal/retrieval"
)

// MetadataFromFilename parses a file path following the naming convention
// Category_Unit_Topic_Year_Code.ext into document tags, e.g.
// "PastPaper_CSC231_Security_2024_a1b2.txt".
func MetadataFromFilename(path string) (map[string]string, error) {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	parts := strings.Split(name, "_")
	if len(parts) < 5 {
		return nil, fmt.Errorf("filename does not match convention: %s", name)
	}

	return map[string]string{
		retrieval.TagSourceType: parts[0],
		retrieval.TagUnitCode:   parts[1],
		retrieval.TagTopic:      parts[2],
		retrieval.TagYear:       parts[3],
		retrieval.TagUniqueCode: parts[4],
		retrieval.TagFile:       base,
	}, nil
}
