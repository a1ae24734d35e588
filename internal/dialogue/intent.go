package dialogue

import (
	"regexp"
	"strconv"
	"strings"
)

// IntentKind enumerates the closed set of navigation intents an utterance
// can classify into.
type IntentKind int

const (
	IntentUnknown IntentKind = iota
	IntentStartNew
	IntentNextBatch
	IntentClarify
	IntentAnswer
	IntentStop
)

// Intent is the transient classification result for one utterance. Only the
// fields relevant to the kind are set: Ordinal for Clarify and Answer (zero
// when absent), Answer text for Answer (empty when unextractable).
type Intent struct {
	Kind    IntentKind
	Ordinal int
	Answer  string
}

var (
	newPaperPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(start|begin|go through|work through|practice).*(past paper|exam|test)`),
		regexp.MustCompile(`(?i)[A-Z]{3}\d{3}.*\d{4}`),
		regexp.MustCompile(`(?i)\d{4}.*(past paper|exam)`),
	}

	stopTokens    = regexp.MustCompile(`(?i)\b(stop|quit|exit|done|finish)\b`)
	nextTokens    = regexp.MustCompile(`(?i)\b(next|continue|more|yes|proceed)\b`)
	clarifyTokens = regexp.MustCompile(`(?i)\b(clarify|explain|help|confused|understand)\b`)
	answerTokens  = regexp.MustCompile(`(?i)\b(answer|my answer|i think|solution)\b`)

	questionNumber = regexp.MustCompile(`(?i)question\s*(\d+)`)

	// Ordered: the question-qualified form first so "my answer for question 3
	// is X" extracts "X", not the tail starting at "for question 3".
	answerTextPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)answer\s+for\s+question\s*\d+\s+is\s+(.+)`),
		regexp.MustCompile(`(?i)(?:my answer is|answer is|i think it'?s|solution:|my answer)\s*(.+)`),
	}

	unitCodePattern = regexp.MustCompile(`\b([A-Z]{3}\d{3})\b`)
	yearPattern     = regexp.MustCompile(`\b(20[0-3]\d)\b`)
)

// Classify maps an utterance onto an intent, first match wins. The only
// session-state dependency is the first rule: an inactive session always
// starts a new paper. An Unknown result is resolved by the router, which
// treats it as a next-batch request while a session is active.
func Classify(utterance string, active bool) Intent {
	if !active || isNewPaperRequest(utterance) {
		return Intent{Kind: IntentStartNew}
	}
	if stopTokens.MatchString(utterance) {
		return Intent{Kind: IntentStop}
	}
	if nextTokens.MatchString(utterance) {
		return Intent{Kind: IntentNextBatch}
	}
	if clarifyTokens.MatchString(utterance) {
		return Intent{Kind: IntentClarify, Ordinal: extractOrdinal(utterance)}
	}
	if answerTokens.MatchString(utterance) {
		return Intent{
			Kind:    IntentAnswer,
			Ordinal: extractOrdinal(utterance),
			Answer:  extractAnswerText(utterance),
		}
	}
	return Intent{Kind: IntentUnknown}
}

// isNewPaperRequest reports whether the utterance asks to start a paper:
// start/practice phrasing combined with past paper/exam, a unit-code-plus-year
// pattern, or a bare year next to past paper/exam.
func isNewPaperRequest(utterance string) bool {
	for _, p := range newPaperPatterns {
		if p.MatchString(utterance) {
			return true
		}
	}
	return false
}

// extractOrdinal pulls the number from a "question <n>" pattern, zero when
// absent.
func extractOrdinal(utterance string) int {
	m := questionNumber.FindStringSubmatch(utterance)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// extractAnswerText pulls the submitted answer from the trailing-text
// patterns, empty when none matches.
func extractAnswerText(utterance string) string {
	for _, p := range answerTextPatterns {
		if m := p.FindStringSubmatch(utterance); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// ExtractPaperDetails parses an optional unit code (three letters + three
// digits) and an optional four-digit year (2000-2039) from the utterance.
func ExtractPaperDetails(utterance string) (unitCode, year string) {
	if m := unitCodePattern.FindStringSubmatch(strings.ToUpper(utterance)); m != nil {
		unitCode = m[1]
	}
	if m := yearPattern.FindStringSubmatch(utterance); m != nil {
		year = m[1]
	}
	return unitCode, year
}
