package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/P-AlaKara/rag-study-assistant/internal/indexing"
	"github.com/P-AlaKara/rag-study-assistant/internal/retrieval"
)

func indexCmd() *cobra.Command {
	var dataDir string
	var reset bool

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build the knowledge base from a directory of extracted document text",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if dataDir == "" {
				dataDir = cfg.Index.DataDir
			}
			if _, err := os.Stat(dataDir); err != nil {
				return fmt.Errorf("data directory %q not found: %w", dataDir, err)
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

			if reset {
				fmt.Fprintln(os.Stderr, "Clearing existing index...")
				if err := index.Clear(ctx); err != nil {
					return fmt.Errorf("clear index: %w", err)
				}
			}

			fmt.Fprintf(os.Stderr, "Indexing documents from %s...\n", dataDir)
			stats, err := indexing.NewPipeline(index, cfg.Index).Run(ctx, dataDir)
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Done. %s\n", stats)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", "", "data directory to index (default from INDEX_DATA_DIR)")
	cmd.Flags().BoolVar(&reset, "reset", false, "drop the existing index before indexing")
	return cmd
}
