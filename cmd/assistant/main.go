package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "assistant",
		Short:   "RAG study assistant - Q&A, quizzes and past paper walkthroughs over indexed notes",
		Version: version,
	}

	rootCmd.AddCommand(chatCmd())
	rootCmd.AddCommand(indexCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
