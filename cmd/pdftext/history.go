// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdftext/internal/catalog"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded extraction runs",
	Long: `History lists runs recorded in the extraction catalog, newest first.
The catalog only exists when extractions were run with --catalog or a
catalog path is configured.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := cfg.Catalog.Path
	if path == "" {
		path = defaultCatalogPath
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no catalog at %s: run extractions with --catalog first", path)
	}

	store, err := catalog.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	failedOnly, _ := cmd.Flags().GetBool("failed")

	runs, err := store.List(context.Background(), catalog.ListOptions{
		Limit:      limit,
		FailedOnly: failedOnly,
	})
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-6s  %-40s  %-6s  %-8s  %s\n",
		"ID", "Status", "PDF", "Pages", "Chars", "When")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))

	for _, r := range runs {
		pdf := r.PDFPath
		if len(pdf) > 40 {
			pdf = "..." + pdf[len(pdf)-37:]
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-6s  %-40s  %-6d  %-8d  %s\n",
			r.ID, r.Status, pdf, r.Pages, r.TextLength,
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().Bool("failed", false, "list only failed runs")
	historyCmd.Flags().Bool("json", false, "output runs as JSON")

	rootCmd.AddCommand(historyCmd)
}
