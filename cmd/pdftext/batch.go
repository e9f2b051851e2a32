// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdftext/internal/extract"
)

var batchCmd = &cobra.Command{
	Use:   "batch [pdfs...]",
	Short: "Extract text from many PDFs in one run",
	Long: `Batch runs the extraction pipeline over a list of PDFs, given as
arguments or through a YAML manifest, writing one .txt per input into
--output-dir. Files whose output already exists are skipped unless
--force is set. Files are processed sequentially in the order given.`,
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := outputDir(cmd)

	jobs := extract.JobsFor(args, dir)

	manifestPath, _ := cmd.Flags().GetString("manifest")
	if manifestPath != "" {
		m, err := extract.ReadManifest(manifestPath)
		if err != nil {
			return err
		}
		jobs = append(jobs, m.Jobs(dir)...)
	}

	if len(jobs) == 0 {
		return fmt.Errorf("no PDFs to process: pass paths or --manifest")
	}

	src, err := newSource(cmd)
	if err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool("force")
	result := extract.RunBatch(src, jobs, force, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed extraction", result.Failed)
	}
	return nil
}

func init() {
	batchCmd.Flags().String("output-dir", "parsed_output", "output directory for extracted text files")
	batchCmd.Flags().String("manifest", "", "YAML manifest listing PDFs to process")
	batchCmd.Flags().String("backend", "", "extraction backend: native or pdftotext (default native)")
	batchCmd.Flags().Bool("force", false, "re-extract even when the output file already exists")

	rootCmd.AddCommand(batchCmd)
}
