package paper

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Question is one individually addressable question extracted from raw exam
// text. Ordinal is the 1-based rank after sorting candidates by their parsed
// marker value; Text is rendered with a "Question <ordinal>: " prefix.
type Question struct {
	Ordinal int
	Text    string
}

// Body returns the question text without the "Question <n>: " prefix.
func (q Question) Body() string {
	return strings.TrimSpace(prefixPattern.ReplaceAllString(q.Text, ""))
}

// Bodies shorter than this are treated as parsing noise (e.g. a stray
// numeral picked up as a marker) and discarded.
const minBodyLen = 3

var (
	// Convention 1: explicit "Question 3:" / "Q3:" markers.
	explicitMarker = regexp.MustCompile(`(?mi)^[ \t]*Q(?:uestion)?\s*(\d+):\s+`)

	// Convention 2: bare numeric markers "3.", "3)" or "(3)" at the start of
	// a line. Lettered sub-parts ("a.", "b)") never match because the marker
	// must be numeric.
	numericMarker = regexp.MustCompile(`(?m)^[ \t]*(?:\((\d+)\)|(\d+)[.)])\s+`)

	blankLines    = regexp.MustCompile(`\n[ \t]*\n+`)
	prefixPattern = regexp.MustCompile(`^\s*Question\s+\d+:\s*`)
)

// Segment splits raw concatenated document text into an ordered sequence of
// questions. Numbering conventions are tried in priority order: explicit
// "Question n:" markers first, then bare numeric line markers, then a
// blank-line paragraph fallback. The first convention yielding at least one
// usable question wins. Pure function: no I/O, deterministic for a given
// input.
func Segment(raw string) []Question {
	if qs := scanMarkers(raw, explicitMarker); len(qs) > 0 {
		return qs
	}
	if qs := scanMarkers(raw, numericMarker); len(qs) > 0 {
		return qs
	}
	return splitParagraphs(raw)
}

type candidate struct {
	num  int
	body string
}

// scanMarkers performs a two-pass scan: first locate every marker position
// and its numeric value, then slice the text between consecutive marker
// positions. A question body runs from the end of its marker up to the next
// marker of the same convention anywhere in the remaining text, or end of
// input. Candidates are sorted by parsed number, not text position, to
// tolerate out-of-order OCR artifacts.
func scanMarkers(raw string, re *regexp.Regexp) []Question {
	locs := re.FindAllStringSubmatchIndex(raw, -1)
	if len(locs) == 0 {
		return nil
	}

	cands := make([]candidate, 0, len(locs))
	for i, m := range locs {
		num, ok := markerNumber(raw, m)
		if !ok {
			continue
		}
		end := len(raw)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		body := strings.TrimSpace(raw[m[1]:end])
		if len(body) <= minBodyLen {
			continue
		}
		cands = append(cands, candidate{num: num, body: body})
	}
	if len(cands) == 0 {
		return nil
	}

	sort.SliceStable(cands, func(i, j int) bool { return cands[i].num < cands[j].num })

	qs := make([]Question, len(cands))
	for i, c := range cands {
		qs[i] = Question{Ordinal: i + 1, Text: fmt.Sprintf("Question %d: %s", i+1, c.body)}
	}
	return qs
}

// markerNumber extracts the numeric value from whichever capture group of
// the marker pattern matched.
func markerNumber(raw string, m []int) (int, bool) {
	for g := 1; g*2 < len(m); g++ {
		s, e := m[g*2], m[g*2+1]
		if s < 0 {
			continue
		}
		n, err := strconv.Atoi(raw[s:e])
		if err != nil || n <= 0 {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// splitParagraphs is the fallback for unmarked text: every blank-line
// separated block longer than 20 characters becomes one question, numbered
// by position.
func splitParagraphs(raw string) []Question {
	var qs []Question
	for _, section := range blankLines.Split(raw, -1) {
		section = strings.TrimSpace(section)
		if len(section) <= 20 {
			continue
		}
		n := len(qs) + 1
		qs = append(qs, Question{Ordinal: n, Text: fmt.Sprintf("Question %d: %s", n, section)})
	}
	return qs
}
