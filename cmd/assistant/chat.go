package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/P-AlaKara/rag-study-assistant/internal/dialogue"
	"github.com/P-AlaKara/rag-study-assistant/internal/generation"
	"github.com/P-AlaKara/rag-study-assistant/internal/retrieval"
	"github.com/P-AlaKara/rag-study-assistant/internal/session"
	logx "github.com/P-AlaKara/rag-study-assistant/pkg/logger"
)

// cliSessionID keys the interactive loop's single conversation.
const cliSessionID = "cli"

// qaRetrievalLimit is how many note chunks ground a Q&A or quiz prompt.
const qaRetrievalLimit = 4

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Interactive study assistant session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			rdb, err := cfg.Redis.New(ctx)
			if err != nil {
				return fmt.Errorf("initialise redis client: %w", err)
			}
			defer rdb.Close()

			index, err := retrieval.NewRedisIndex(rdb)
			if err != nil {
				return fmt.Errorf("initialise document index: %w", err)
			}

			generator, err := generation.NewGeminiGenerator(ctx, cfg.Gemini)
			if err != nil {
				return fmt.Errorf("initialise generator: %w", err)
			}

			store := session.NewStore(cfg.Session)
			router := dialogue.NewRouter(store, index, generator)

			return runChat(ctx, router, index, generator)
		},
	}
}

// runChat drives the interactive loop. While a past paper session is active
// every utterance goes straight to the dialogue router; otherwise a route
// classification decides between the paper walkthrough, quiz and Q&A flows.
func runChat(ctx context.Context, router *dialogue.Router, searcher retrieval.Searcher, generator generation.Generator) error {
	fmt.Println("\n=== Study Assistant Ready ===")
	fmt.Println("You can:")
	fmt.Println("- Ask questions about your study material")
	fmt.Println("- Request a quiz on any topic")
	fmt.Println("- Go through past papers (e.g., 'Let me go through CSC231 2024 past paper')")
	fmt.Println("Type 'quit' to exit")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("\nYou: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		switch strings.ToLower(input) {
		case "quit", "exit", "q":
			fmt.Println("Goodbye! Good luck with your studies!")
			return nil
		}

		var response string
		if router.Active(cliSessionID) {
			response = router.Handle(ctx, input, cliSessionID)
		} else {
			switch routeRequest(ctx, generator, input) {
			case "PASTPAPER":
				response = router.Handle(ctx, input, cliSessionID)
			case "QUIZ":
				response = quizResponse(ctx, searcher, generator, input)
			default:
				response = qaResponse(ctx, searcher, generator, input)
			}
		}

		fmt.Printf("\nAssistant: %s\n", response)
	}
	return scanner.Err()
}

// routeRequest classifies a request into PASTPAPER / QUIZ / QA via the route
// prompt. Any failure degrades to QA, never blocks the turn.
func routeRequest(ctx context.Context, generator generation.Generator, input string) string {
	route, err := generator.Generate(ctx, generation.TemplateRoute, map[string]any{
		"question": input,
	})
	if err != nil {
		logx.Warn().Err(err).Msg("route classification failed, defaulting to QA")
		return "QA"
	}

	route = strings.ToUpper(route)
	switch {
	case strings.Contains(route, "PASTPAPER"):
		return "PASTPAPER"
	case strings.Contains(route, "QUIZ"):
		return "QUIZ"
	default:
		return "QA"
	}
}

// qaResponse answers a study question grounded in retrieved notes, falling
// back to general knowledge when retrieval returns nothing.
func qaResponse(ctx context.Context, searcher retrieval.Searcher, generator generation.Generator, input string) string {
	docs, err := searcher.Search(ctx, input, nil, qaRetrievalLimit)
	if err != nil {
		logx.Warn().Err(err).Msg("QA retrieval failed, answering without context")
	}

	tpl := generation.TemplateQA
	vars := map[string]any{"question": input}
	if len(docs) == 0 {
		tpl = generation.TemplateQAFallback
	} else {
		vars["context"] = formatDocs(docs)
	}

	answer, err := generator.Generate(ctx, tpl, vars)
	if err != nil {
		logx.Error().Err(err).Msg("QA generation failed")
		return "Sorry, I couldn't generate an answer right now. Please try rephrasing your question."
	}
	return answer
}

// quizResponse generates a five-question quiz on the requested topic.
func quizResponse(ctx context.Context, searcher retrieval.Searcher, generator generation.Generator, input string) string {
	docs, err := searcher.Search(ctx, input, nil, qaRetrievalLimit)
	if err != nil {
		logx.Warn().Err(err).Msg("quiz retrieval failed, generating without context")
	}

	tpl := generation.TemplateQuiz
	vars := map[string]any{"question": input}
	if len(docs) == 0 {
		tpl = generation.TemplateQuizFallback
	} else {
		vars["context"] = formatDocs(docs)
	}

	quiz, err := generator.Generate(ctx, tpl, vars)
	if err != nil {
		logx.Error().Err(err).Msg("quiz generation failed")
		return "Sorry, I couldn't generate a quiz right now. Please try another topic."
	}
	return quiz
}

// formatDocs renders retrieved chunks with their provenance for the prompt
// context block.
func formatDocs(docs []retrieval.Document) string {
	blocks := make([]string, len(docs))
	for i, doc := range docs {
		blocks[i] = fmt.Sprintf("Document Source: %s_%s\nContent: %s",
			doc.Tags[retrieval.TagSourceType], doc.Tags[retrieval.TagUnitCode], doc.Text)
	}
	return strings.Join(blocks, "\n\n")
}
