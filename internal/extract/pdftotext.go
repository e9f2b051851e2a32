// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const binPdftotext = "pdftotext"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) Run(name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// PdftotextSource extracts text by running poppler's pdftotext binary.
// pdftotext writes a form feed between pages, which Extract uses to
// recover page boundaries. The text-mode output carries no Info
// dictionary, so Metadata is always empty for this backend.
type PdftotextSource struct {
	exec executor
}

// NewPdftotextSource verifies the pdftotext binary is on PATH and
// returns a source that runs it.
func NewPdftotextSource() (*PdftotextSource, error) {
	return newPdftotextSource(osExecutor{})
}

func newPdftotextSource(ex executor) (*PdftotextSource, error) {
	if _, err := ex.LookPath(binPdftotext); err != nil {
		return nil, fmt.Errorf("pdftotext not found on PATH: %w", err)
	}
	return &PdftotextSource{exec: ex}, nil
}

// Extract runs pdftotext with stdout capture and splits the result on
// form feeds. pdftotext emits a trailing form feed after the last page,
// which is stripped before splitting so page counts stay accurate.
func (s *PdftotextSource) Extract(pdfPath string) (Document, error) {
	var out, errBuf bytes.Buffer
	if err := s.exec.Run(binPdftotext, []string{pdfPath, "-"}, &out, &errBuf); err != nil {
		reason := fmt.Sprintf("pdftotext on %s: %v", pdfPath, err)
		if msg := strings.TrimSpace(errBuf.String()); msg != "" {
			reason = fmt.Sprintf("pdftotext on %s: %s", pdfPath, msg)
		}
		return Document{}, &DecodeError{Reason: reason}
	}

	pages := strings.Split(strings.TrimSuffix(out.String(), "\f"), "\f")
	return Document{Pages: pages, Metadata: map[string]string{}}, nil
}
