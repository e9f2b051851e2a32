// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdftext/pkg/types"
)

// Job names one input PDF and its output text file in a batch run.
type Job struct {
	PDFPath    string
	OutputPath string
}

// BatchResult holds the outcome of a batch extraction run.
type BatchResult struct {
	Extracted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Extracted + r.Skipped + r.Failed
}

// HasFailures reports whether any files failed extraction.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// JobsFor builds Jobs from raw PDF paths, deriving each output name
// from the PDF base name inside outputDir.
func JobsFor(pdfPaths []string, outputDir string) []Job {
	jobs := make([]Job, len(pdfPaths))
	for i, p := range pdfPaths {
		jobs[i] = Job{PDFPath: p, OutputPath: OutputFor(p, outputDir)}
	}
	return jobs
}

// RunBatch processes jobs sequentially through src, printing per-file
// status to w and a closing summary. Existing output files are skipped
// unless force is set; each remaining job is validated and extracted
// with per-page progress suppressed. Files are processed one at a time,
// start to finish, in the order given.
func RunBatch(src Source, jobs []Job, force bool, w io.Writer) BatchResult {
	var result BatchResult
	for _, j := range jobs {
		base := strings.TrimSuffix(filepath.Base(j.PDFPath), filepath.Ext(j.PDFPath))

		if !force {
			if _, err := os.Stat(j.OutputPath); err == nil {
				fmt.Fprintf(w, "skipped:   %s (already exists)\n", base)
				result.Skipped++
				continue
			}
		}

		if err := ValidateInput(j.PDFPath); err != nil {
			fmt.Fprintf(w, "failed:    %s (%v)\n", base, err)
			result.Failed++
			continue
		}

		res := Run(src, types.Request{PDFPath: j.PDFPath, OutputPath: j.OutputPath}, io.Discard)
		if !res.Success {
			fmt.Fprintf(w, "failed:    %s (%s)\n", base, res.Error)
			result.Failed++
			continue
		}

		fmt.Fprintf(w, "extracted: %s (%d pages, %d chars)\n", base, res.Pages, res.TextLength)
		result.Extracted++
	}

	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d skipped, %d failed (total: %d)\n",
		result.Extracted, result.Skipped, result.Failed, result.Total())
	return result
}
