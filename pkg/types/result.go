// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the result and configuration types shared between
// the extraction pipeline, the run catalog, and the CLI.
package types

import "encoding/json"

// ErrorKind classifies an extraction failure.
type ErrorKind string

const (
	// ErrInputNotFound means the supplied PDF path does not exist.
	ErrInputNotFound ErrorKind = "input_not_found"

	// ErrInvalidInputType means the supplied path lacks a .pdf extension.
	ErrInvalidInputType ErrorKind = "invalid_input_type"

	// ErrDecodeFailure means the PDF could not be opened or parsed
	// (corrupt, encrypted, unsupported format).
	ErrDecodeFailure ErrorKind = "decode_failure"

	// ErrIOFailure means the output directory or file could not be written.
	ErrIOFailure ErrorKind = "io_failure"
)

// Request names the input PDF and the destination text file for one
// extraction call. The caller validates PDFPath before invoking the
// pipeline; the pipeline creates OutputPath's parent directories.
type Request struct {
	PDFPath    string `json:"pdf_path" yaml:"pdf_path"`
	OutputPath string `json:"output_path" yaml:"output_path"`
}

// Result is the structured outcome of one extraction call. Its JSON
// form is the machine-mode CLI contract: success runs carry pages,
// text_length, output_path, and metadata; failed runs carry error and,
// when the decode layer panicked, traceback.
type Result struct {
	// Success discriminates the two halves of the result.
	Success bool `json:"success"`

	// Pages is the document's page count, including pages whose
	// extracted text was empty.
	Pages int `json:"pages"`

	// TextLength is the combined output length in characters (runes),
	// markers included.
	TextLength int `json:"text_length"`

	// OutputPath is where the combined text was written.
	OutputPath string `json:"output_path"`

	// Metadata is the document Info dictionary, keys preserved verbatim.
	// The key set is producer-defined (Title, Author, Producer, ...).
	Metadata map[string]string `json:"metadata"`

	// Error is a human-readable description of the failure.
	Error string `json:"error,omitempty"`

	// Traceback is a stack capture from a parser panic, empty otherwise.
	Traceback string `json:"traceback,omitempty"`

	// Kind classifies the failure for exit and reporting logic.
	Kind ErrorKind `json:"kind,omitempty"`
}

// MarshalJSON emits the two halves of the contract explicitly: success
// results always carry success, pages, text_length, output_path, and
// metadata (an empty object when the document has no Info dictionary);
// failure results carry success and error, plus traceback and kind when
// set. Zero-valued contract keys are never dropped.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Success {
		meta := r.Metadata
		if meta == nil {
			meta = map[string]string{}
		}
		return json.Marshal(struct {
			Success    bool              `json:"success"`
			Pages      int               `json:"pages"`
			TextLength int               `json:"text_length"`
			OutputPath string            `json:"output_path"`
			Metadata   map[string]string `json:"metadata"`
		}{true, r.Pages, r.TextLength, r.OutputPath, meta})
	}
	return json.Marshal(struct {
		Success   bool      `json:"success"`
		Error     string    `json:"error"`
		Traceback string    `json:"traceback,omitempty"`
		Kind      ErrorKind `json:"kind,omitempty"`
	}{false, r.Error, r.Traceback, r.Kind})
}
