package dialogue

import (
	"fmt"
	"strings"

	"github.com/P-AlaKara/rag-study-assistant/internal/paper"
)

const divider = "--------------------------------------------------"

const (
	stopMessage = "Ending past paper session. Good luck with your studies! " +
		"Feel free to ask any questions or start another paper."

	noSessionMessage = "No active past paper session. Would you like to start one? " +
		"Just tell me which paper you'd like to go through."

	retrievalErrorMessage = "I ran into a problem searching the paper catalog. Please try again in a moment."

	notFoundMessage = "I couldn't find a past paper matching your criteria (Unit: %s, Year: %s). " +
		"Please check the unit code and year, or try being more specific."

	segmentationEmptyMessage = "I found the past paper but couldn't extract the questions properly. " +
		"The document might be in an unexpected format."

	completedMessage = "You've completed all questions in this past paper! Great job! 🎉\n" +
		"Would you like to review any answers or start another paper?"

	allShownMessage = "\n✅ **That's all the questions!**\n" +
		"Feel free to attempt any question or ask for help to answer a question."

	readyForMoreMessage = "\n📝 Ready for more? Type 'next' to continue, or work on these questions first."

	finalQuestionsMessage = "\n✅ **These are the final questions!**"

	invalidOrdinalMessage = "Please specify a valid question number for clarification."

	malformedAnswerMessage = "Please provide both the question number and your answer."

	answerOrdinalMessage = "Please give a question number between 1 and %d for your answer."

	clarificationMessage = "**Clarification and Solution for Question %d:**\n\n%s\n\n" +
		"💡 Would you like to attempt this question now?"

	answerRecordedMessage = "**Your answer for Question %d:**\n%s\n\n**Feedback:**\n%s\n\n" +
		"✅ Answer recorded. Would you like to continue with more questions?"

	generationPlaceholder = "(Unable to generate an answer at this time.)"
)

// formatBatch renders one block per question, headed by its ordinal and
// separated by a fixed-width divider.
func formatBatch(batch []paper.Question) string {
	blocks := make([]string, len(batch))
	for i, q := range batch {
		blocks[i] = fmt.Sprintf("**Question %d:**\n%s\n", q.Ordinal, q.Body())
	}
	return strings.Join(blocks, "\n"+divider+"\n")
}

// actionsPrompt lists the next available actions when more questions remain.
func actionsPrompt(batchSize int) string {
	var b strings.Builder
	b.WriteString("\n📝 **What would you like to do?**\n")
	fmt.Fprintf(&b, "• Type 'next' or 'continue' to see the next %d questions\n", batchSize)
	b.WriteString("• Answer a question (e.g., 'My answer for question 1 is...')\n")
	b.WriteString("• Ask for clarification (e.g., 'Can you explain question 3?')\n")
	b.WriteString("• Type 'stop' to end the session")
	return b.String()
}
