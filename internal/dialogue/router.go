package dialogue

import (
	"context"
	"fmt"
	"strings"

	"github.com/P-AlaKara/rag-study-assistant/internal/generation"
	"github.com/P-AlaKara/rag-study-assistant/internal/paper"
	"github.com/P-AlaKara/rag-study-assistant/internal/retrieval"
	"github.com/P-AlaKara/rag-study-assistant/internal/session"
	logx "github.com/P-AlaKara/rag-study-assistant/pkg/logger"
)

// searchLimit is how many chunks one past-paper retrieval requests.
const searchLimit = 20

// Router classifies incoming utterances and dispatches them to the session
// store, invoking the retrieval and generation capabilities where a flow
// needs them. Every path returns a response string; no error here is fatal.
type Router struct {
	store     *session.Store
	retriever retrieval.Searcher
	generator generation.Generator
}

// NewRouter wires the router to its collaborators.
func NewRouter(store *session.Store, retriever retrieval.Searcher, generator generation.Generator) *Router {
	return &Router{
		store:     store,
		retriever: retriever,
		generator: generator,
	}
}

// Handle processes one utterance for the given conversation and returns the
// formatted response.
func (r *Router) Handle(ctx context.Context, utterance, sessionID string) string {
	intent := Classify(utterance, r.store.Active(sessionID))

	switch intent.Kind {
	case IntentStartNew:
		return r.startNewPaper(ctx, utterance, sessionID)
	case IntentStop:
		r.store.Reset(sessionID)
		return stopMessage
	case IntentNextBatch:
		return r.showNextBatch(sessionID)
	case IntentClarify:
		return r.provideClarification(ctx, sessionID, intent)
	case IntentAnswer:
		return r.processAnswer(ctx, sessionID, intent)
	default:
		// Unrecognised input while a session runs means "keep going";
		// showNextBatch answers with guidance when nothing is active.
		return r.showNextBatch(sessionID)
	}
}

// Active reports whether the conversation has a running walkthrough.
func (r *Router) Active(sessionID string) bool {
	return r.store.Active(sessionID)
}

// Reset administratively returns the conversation's session to empty.
func (r *Router) Reset(sessionID string) {
	r.store.Reset(sessionID)
}

// startNewPaper retrieves the requested paper, segments it and delivers the
// first batch. When the strict filter finds nothing and a unit code was
// given, one retry drops the unit-code constraint to tolerate catalog
// metadata inconsistencies.
func (r *Router) startNewPaper(ctx context.Context, utterance, sessionID string) string {
	unitCode, year := ExtractPaperDetails(utterance)

	filters := map[string]string{retrieval.TagSourceType: retrieval.SourceTypePastPaper}
	if unitCode != "" {
		filters[retrieval.TagUnitCode] = unitCode
	}
	if year != "" {
		filters[retrieval.TagYear] = year
	}

	docs, err := r.retriever.Search(ctx, utterance, filters, searchLimit)
	if err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("past paper retrieval failed")
		return retrievalErrorMessage
	}
	if len(docs) == 0 && unitCode != "" {
		relaxed := map[string]string{retrieval.TagSourceType: retrieval.SourceTypePastPaper}
		if year != "" {
			relaxed[retrieval.TagYear] = year
		}
		docs, err = r.retriever.Search(ctx, utterance, relaxed, searchLimit)
		if err != nil {
			logx.Error().Err(err).Str("session_id", sessionID).Msg("relaxed past paper retrieval failed")
			return retrievalErrorMessage
		}
	}
	if len(docs) == 0 {
		return fmt.Sprintf(notFoundMessage, orAny(unitCode), orAny(year))
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Text
	}
	questions := paper.Segment(strings.Join(texts, "\n"))
	if len(questions) == 0 {
		return segmentationEmptyMessage
	}

	label := session.Label{UnitCode: orUnknown(unitCode), Year: orUnknown(year)}
	if err := r.store.StartPaper(sessionID, label, questions); err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to start paper session")
		return segmentationEmptyMessage
	}

	logx.Debug().
		Str("session_id", sessionID).
		Str("unit_code", label.UnitCode).
		Str("year", label.Year).
		Int("questions", len(questions)).
		Msg("past paper session started")

	batch, hasMore := r.store.NextBatch(sessionID)

	var b strings.Builder
	fmt.Fprintf(&b, "**Starting %s (%s) Past Paper**\n", label.UnitCode, label.Year)
	fmt.Fprintf(&b, "Total questions: %d\n", len(questions))
	b.WriteString(divider + "\n")
	b.WriteString(formatBatch(batch))
	b.WriteString("\n" + divider + "\n")
	if hasMore {
		b.WriteString(actionsPrompt(r.store.BatchSize()))
	} else {
		b.WriteString(allShownMessage)
	}
	return b.String()
}

// showNextBatch delivers the next slice of questions, or winds the session
// down when nothing is left.
func (r *Router) showNextBatch(sessionID string) string {
	if !r.store.Active(sessionID) {
		return noSessionMessage
	}

	batch, hasMore := r.store.NextBatch(sessionID)
	if len(batch) == 0 {
		// Store has already reset the session to empty.
		return completedMessage
	}

	label := r.store.Label(sessionID)

	var b strings.Builder
	fmt.Fprintf(&b, "**Continuing %s (%s) - %s**\n", label.UnitCode, label.Year, r.store.Progress(sessionID))
	b.WriteString(divider + "\n")
	b.WriteString(formatBatch(batch))
	b.WriteString("\n" + divider + "\n")
	if hasMore {
		b.WriteString(readyForMoreMessage)
	} else {
		b.WriteString(finalQuestionsMessage)
	}
	return b.String()
}

// provideClarification returns the cached explanation for a question, or
// generates and caches one. A failed generation substitutes a placeholder
// and leaves the cache untouched so a later attempt can still succeed.
func (r *Router) provideClarification(ctx context.Context, sessionID string, intent Intent) string {
	if intent.Ordinal == 0 {
		return invalidOrdinalMessage
	}

	text, cached, err := r.store.Clarification(sessionID, intent.Ordinal)
	if err != nil {
		return invalidOrdinalMessage
	}
	if !cached {
		question, qerr := r.store.Question(sessionID, intent.Ordinal)
		if qerr != nil {
			return invalidOrdinalMessage
		}
		text, err = r.generator.Generate(ctx, generation.TemplateClarify, map[string]any{
			"question": question.Text,
		})
		if err != nil {
			logx.Warn().Err(err).Int("ordinal", intent.Ordinal).Msg("clarification generation failed")
			text = generationPlaceholder
		} else if cerr := r.store.CacheClarification(sessionID, intent.Ordinal, text); cerr != nil {
			return invalidOrdinalMessage
		}
	}

	return fmt.Sprintf(clarificationMessage, intent.Ordinal, text)
}

// processAnswer records the submitted answer verbatim and returns grading
// feedback alongside it.
func (r *Router) processAnswer(ctx context.Context, sessionID string, intent Intent) string {
	if intent.Ordinal == 0 || intent.Answer == "" {
		return malformedAnswerMessage
	}

	if err := r.store.RecordAnswer(sessionID, intent.Ordinal, intent.Answer); err != nil {
		return fmt.Sprintf(answerOrdinalMessage, r.store.Total(sessionID))
	}

	question, err := r.store.Question(sessionID, intent.Ordinal)
	if err != nil {
		return fmt.Sprintf(answerOrdinalMessage, r.store.Total(sessionID))
	}

	feedback, err := r.generator.Generate(ctx, generation.TemplateFeedback, map[string]any{
		"question": question.Text,
		"answer":   intent.Answer,
	})
	if err != nil {
		logx.Warn().Err(err).Int("ordinal", intent.Ordinal).Msg("feedback generation failed")
		feedback = generationPlaceholder
	}

	return fmt.Sprintf(answerRecordedMessage, intent.Ordinal, intent.Answer, feedback)
}

func orAny(s string) string {
	if s == "" {
		return "Any"
	}
	return s
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
