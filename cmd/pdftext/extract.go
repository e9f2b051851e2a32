// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdftext/internal/catalog"
	"github.com/pdiddy/pdftext/internal/extract"
	"github.com/pdiddy/pdftext/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract <pdf> [output]",
	Short: "Extract text from one PDF into a text file",
	Long: `Extract converts a single PDF to plain text. Pages are processed in
order and non-empty pages are joined with "=== Page N ===" markers.

With two arguments the second is the exact output path and the result is
printed as one line of JSON on stdout (progress goes to stderr). With one
argument the output lands in --output-dir as <base>.txt and status is
printed in human-readable form.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	pdfPath := args[0]

	machine := len(args) == 2
	if force, _ := cmd.Flags().GetBool("json"); force {
		machine = true
	}

	var outputPath string
	if len(args) == 2 {
		outputPath = args[1]
	} else {
		outputPath = extract.OutputFor(pdfPath, outputDir(cmd))
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	progress := io.Writer(os.Stdout)
	if machine {
		progress = os.Stderr
	}
	if quiet {
		progress = io.Discard
	}

	var res types.Result
	if err := extract.ValidateInput(pdfPath); err != nil {
		res = extract.FailureFrom(err)
	} else if src, err := newSource(cmd); err != nil {
		res = extract.FailureFrom(err)
	} else {
		res = extract.Run(src, types.Request{PDFPath: pdfPath, OutputPath: outputPath}, progress)
	}

	recordRun(cmd, pdfPath, res)

	if machine {
		line, err := json.Marshal(res)
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		fmt.Println(string(line))
	} else if res.Success {
		fmt.Printf("PDF parsed successfully. Output saved to: %s\n", res.OutputPath)
	}

	if !res.Success {
		// Cobra prints the error on stderr and main exits non-zero.
		return errors.New(res.Error)
	}
	return nil
}

// outputDir resolves the output directory: flag, then config, then the
// flag default.
func outputDir(cmd *cobra.Command) string {
	dir, _ := cmd.Flags().GetString("output-dir")
	if !cmd.Flags().Changed("output-dir") && cfg.Extraction.OutputDir != "" {
		dir = cfg.Extraction.OutputDir
	}
	return dir
}

// newSource builds the extraction backend selected by flag or config.
func newSource(cmd *cobra.Command) (extract.Source, error) {
	backend, _ := cmd.Flags().GetString("backend")
	if backend == "" {
		backend = string(cfg.Extraction.Backend)
	}
	switch types.ExtractionBackend(backend) {
	case "", types.BackendNative:
		return extract.NativeSource{}, nil
	case types.BackendPdftotext:
		return extract.NewPdftotextSource()
	default:
		return nil, fmt.Errorf("unsupported backend %q: use native or pdftotext", backend)
	}
}

const defaultCatalogPath = "pdftext.db"

// recordRun appends the result to the run catalog when enabled by flag
// or config. Catalog problems warn but never fail the extraction.
func recordRun(cmd *cobra.Command, pdfPath string, res types.Result) {
	enabled, _ := cmd.Flags().GetBool("catalog")
	path := cfg.Catalog.Path
	if !enabled && path == "" {
		return
	}
	if path == "" {
		path = defaultCatalogPath
	}

	store, err := catalog.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: catalog unavailable: %v\n", err)
		return
	}
	defer store.Close()

	if err := store.Record(context.Background(), pdfPath, res); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
}

func init() {
	extractCmd.Flags().String("output-dir", "parsed_output", "output directory when no explicit output path is given")
	extractCmd.Flags().String("backend", "", "extraction backend: native or pdftotext (default native)")
	extractCmd.Flags().Bool("json", false, "print the result as machine-readable JSON")
	extractCmd.Flags().Bool("quiet", false, "suppress progress output")
	extractCmd.Flags().Bool("catalog", false, "record the run in the extraction catalog")

	rootCmd.AddCommand(extractCmd)
}
