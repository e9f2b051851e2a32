// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract converts PDF files to plain text: pages are read in
// physical order, non-empty pages are joined with page-boundary
// markers, and the combined text is written to a single output file.
package extract

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/pdftext/pkg/types"
)

// Document is the decoded form a Source produces: per-page text in
// physical order plus the document Info dictionary, keys verbatim.
// Pages whose text layer is empty appear as empty strings so that page
// numbering stays aligned with the physical page order.
type Document struct {
	Pages    []string
	Metadata map[string]string
}

// Source decodes a PDF into a Document. Different backends (native,
// pdftotext) implement this interface.
type Source interface {
	// Extract reads the PDF at pdfPath and returns its text content.
	Extract(pdfPath string) (Document, error)
}

// InputError is a pre-flight validation failure, produced before any
// document is opened.
type InputError struct {
	Kind types.ErrorKind
	Msg  string
}

func (e *InputError) Error() string { return e.Msg }

// DecodeError reports a failure inside a PDF parser. Stack is set when
// the parser panicked.
type DecodeError struct {
	Reason string
	Stack  string
}

func (e *DecodeError) Error() string { return e.Reason }

// ValidateInput rejects paths that do not exist or lack a .pdf
// extension (case-insensitive). It runs before any document is opened.
func ValidateInput(path string) error {
	if _, err := os.Stat(path); err != nil {
		return &InputError{
			Kind: types.ErrInputNotFound,
			Msg:  fmt.Sprintf("PDF file not found: %s", path),
		}
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return &InputError{
			Kind: types.ErrInvalidInputType,
			Msg:  fmt.Sprintf("input file must be a PDF: %s", path),
		}
	}
	return nil
}

// FailureFrom converts an error into a failure Result, classifying it
// by the error's concrete type.
func FailureFrom(err error) types.Result {
	res := types.Result{Error: err.Error(), Kind: types.ErrDecodeFailure}
	var ie *InputError
	var de *DecodeError
	switch {
	case errors.As(err, &ie):
		res.Kind = ie.Kind
	case errors.As(err, &de):
		res.Traceback = de.Stack
	}
	return res
}

// OutputFor returns the derived output path for a PDF: the base name
// with a .txt extension, inside dir.
func OutputFor(pdfPath, dir string) string {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	return filepath.Join(dir, base+".txt")
}

// Run extracts req.PDFPath through src and writes the combined text to
// req.OutputPath, creating parent directories as needed. Progress lines
// go to w; pass io.Discard to silence them. The write is all-or-nothing
// at the line of the combined string: a failure before it leaves no
// output file behind.
//
// Run assumes the caller has already validated the input path.
func Run(src Source, req types.Request, w io.Writer) types.Result {
	fmt.Fprintf(w, "Processing PDF: %s\n", filepath.Base(req.PDFPath))

	doc, err := src.Extract(req.PDFPath)
	if err != nil {
		return FailureFrom(err)
	}

	fmt.Fprintf(w, "Pages: %d\n", len(doc.Pages))

	combined := Combine(doc.Pages)

	if dir := filepath.Dir(req.OutputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return types.Result{
				Kind:  types.ErrIOFailure,
				Error: fmt.Sprintf("creating output directory: %v", err),
			}
		}
	}
	if err := os.WriteFile(req.OutputPath, []byte(combined), 0o644); err != nil {
		return types.Result{
			Kind:  types.ErrIOFailure,
			Error: fmt.Sprintf("writing output file: %v", err),
		}
	}

	return types.Result{
		Success:    true,
		Pages:      len(doc.Pages),
		TextLength: utf8.RuneCountInString(combined),
		OutputPath: req.OutputPath,
		Metadata:   doc.Metadata,
	}
}

// Combine joins page texts in order, inserting a "=== Page N ===" marker
// (1-based) before each page whose trimmed text is non-empty. Empty
// pages contribute neither marker nor content.
func Combine(pages []string) string {
	var b strings.Builder
	for i, text := range pages {
		if strings.TrimSpace(text) == "" {
			continue
		}
		fmt.Fprintf(&b, "\n=== Page %d ===\n\n", i+1)
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String()
}
