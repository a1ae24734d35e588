package generation

import "context"

// Template identifies one of the fixed prompt templates the assistant can
// render. Templates live under template/ and are embedded at build time.
type Template string

const (
	// TemplateClarify asks for a tutoring explanation and worked solution.
	TemplateClarify Template = "clarify"
	// TemplateFeedback grades a student's submitted answer.
	TemplateFeedback Template = "feedback"
	// TemplateQA answers a study question over retrieved notes.
	TemplateQA Template = "qa"
	// TemplateQAFallback answers from general knowledge when retrieval is empty.
	TemplateQAFallback Template = "qa_fallback"
	// TemplateQuiz generates a five-question MCQ quiz over retrieved notes.
	TemplateQuiz Template = "quiz"
	// TemplateQuizFallback generates a quiz from general knowledge.
	TemplateQuizFallback Template = "quiz_fallback"
	// TemplateRoute classifies a request into PASTPAPER / QUIZ / QA.
	TemplateRoute Template = "route"
)

// Generator is the single synchronous "generate text for prompt" capability
// consumed by the dialogue router and the CLI flows. Implementations decide
// their own retry policy; no retries are assumed here.
type Generator interface {
	Generate(ctx context.Context, tpl Template, vars map[string]any) (string, error)
}
