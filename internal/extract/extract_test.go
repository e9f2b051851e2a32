// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/pdftext/pkg/types"
)

// fakeSource implements Source for testing. It returns a canned
// Document or an error, depending on configuration.
type fakeSource struct {
	doc Document
	err error
}

func (f *fakeSource) Extract(pdfPath string) (Document, error) {
	if f.err != nil {
		return Document{}, f.err
	}
	return f.doc, nil
}

func TestCombine(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  string
	}{
		{
			name:  "all pages non-empty",
			pages: []string{"first", "second"},
			want:  "\n=== Page 1 ===\n\nfirst\n\n=== Page 2 ===\n\nsecond\n",
		},
		{
			name:  "empty middle page contributes no marker",
			pages: []string{"first", "   \n\t", "third"},
			want:  "\n=== Page 1 ===\n\nfirst\n\n=== Page 3 ===\n\nthird\n",
		},
		{
			name:  "all pages empty",
			pages: []string{"", "  "},
			want:  "",
		},
		{
			name:  "no pages",
			pages: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Combine(tt.pages); got != tt.want {
				t.Errorf("Combine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCombine_MarkersInIncreasingOrder(t *testing.T) {
	out := Combine([]string{"a", "", "c", "d"})

	var positions []int
	for _, marker := range []string{"=== Page 1 ===", "=== Page 3 ===", "=== Page 4 ==="} {
		idx := strings.Index(out, marker)
		if idx < 0 {
			t.Fatalf("marker %q missing from output %q", marker, out)
		}
		positions = append(positions, idx)
	}
	for i := 1; i < len(positions); i++ {
		if positions[i] <= positions[i-1] {
			t.Errorf("markers out of order: %v", positions)
		}
	}
	if strings.Contains(out, "=== Page 2 ===") {
		t.Error("empty page 2 should not produce a marker")
	}
}

func TestRun(t *testing.T) {
	src := &fakeSource{doc: Document{
		Pages:    []string{"héllo", "", "wörld"},
		Metadata: map[string]string{"Title": "Sample", "Author": "A. Writer"},
	}}

	outPath := filepath.Join(t.TempDir(), "out.txt")
	var progress bytes.Buffer

	res := Run(src, types.Request{PDFPath: "sample.pdf", OutputPath: outPath}, &progress)

	if !res.Success {
		t.Fatalf("Run failed: %s", res.Error)
	}
	if res.Pages != 3 {
		t.Errorf("Pages = %d, want 3 (empty pages still count)", res.Pages)
	}
	if res.OutputPath != outPath {
		t.Errorf("OutputPath = %q, want %q", res.OutputPath, outPath)
	}
	if res.Metadata["Title"] != "Sample" {
		t.Errorf("Metadata[Title] = %q, want %q", res.Metadata["Title"], "Sample")
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	want := "\n=== Page 1 ===\n\nhéllo\n\n=== Page 3 ===\n\nwörld\n"
	if string(data) != want {
		t.Errorf("output = %q, want %q", string(data), want)
	}

	// TextLength counts runes, not bytes.
	wantLen := len([]rune(want))
	if res.TextLength != wantLen {
		t.Errorf("TextLength = %d, want %d", res.TextLength, wantLen)
	}

	out := progress.String()
	if !strings.Contains(out, "Processing PDF: sample.pdf") {
		t.Errorf("progress output %q missing processing line", out)
	}
	if !strings.Contains(out, "Pages: 3") {
		t.Errorf("progress output %q missing page count", out)
	}
}

// recordingSource captures the progress buffer's contents at the moment
// extraction starts.
type recordingSource struct {
	progress      *bytes.Buffer
	seenAtExtract string
}

func (s *recordingSource) Extract(pdfPath string) (Document, error) {
	s.seenAtExtract = s.progress.String()
	return Document{Pages: []string{"text"}}, nil
}

func TestRun_ReportsBeforeExtraction(t *testing.T) {
	var progress bytes.Buffer
	src := &recordingSource{progress: &progress}
	outPath := filepath.Join(t.TempDir(), "out.txt")

	res := Run(src, types.Request{PDFPath: "slow.pdf", OutputPath: outPath}, &progress)
	if !res.Success {
		t.Fatalf("Run failed: %s", res.Error)
	}

	if !strings.Contains(src.seenAtExtract, "Processing PDF: slow.pdf") {
		t.Errorf("processing line should be written before extraction starts, saw %q", src.seenAtExtract)
	}
	if strings.Contains(src.seenAtExtract, "Pages:") {
		t.Errorf("page count is unknown before extraction, saw %q", src.seenAtExtract)
	}
}

func TestRun_CreatesParentDirectories(t *testing.T) {
	src := &fakeSource{doc: Document{Pages: []string{"text"}}}
	outPath := filepath.Join(t.TempDir(), "a", "b", "c", "out.txt")

	res := Run(src, types.Request{PDFPath: "x.pdf", OutputPath: outPath}, io.Discard)

	if !res.Success {
		t.Fatalf("Run failed: %s", res.Error)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("expected output file at %s: %v", outPath, err)
	}
}

func TestRun_Idempotent(t *testing.T) {
	src := &fakeSource{doc: Document{Pages: []string{"stable", "", "content"}}}
	outPath := filepath.Join(t.TempDir(), "out.txt")
	req := types.Request{PDFPath: "x.pdf", OutputPath: outPath}

	if res := Run(src, req, io.Discard); !res.Success {
		t.Fatalf("first run failed: %s", res.Error)
	}
	first, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}

	if res := Run(src, req, io.Discard); !res.Success {
		t.Fatalf("second run failed: %s", res.Error)
	}
	second, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Error("repeated runs should produce byte-identical output")
	}
}

func TestRun_DecodeFailureWritesNothing(t *testing.T) {
	src := &fakeSource{err: &DecodeError{Reason: "bad xref table", Stack: "goroutine 1 [running]:"}}
	outPath := filepath.Join(t.TempDir(), "nested", "out.txt")

	res := Run(src, types.Request{PDFPath: "bad.pdf", OutputPath: outPath}, io.Discard)

	if res.Success {
		t.Fatal("Run should fail when the source fails")
	}
	if res.Kind != types.ErrDecodeFailure {
		t.Errorf("Kind = %q, want %q", res.Kind, types.ErrDecodeFailure)
	}
	if res.Error != "bad xref table" {
		t.Errorf("Error = %q", res.Error)
	}
	if res.Traceback == "" {
		t.Error("Traceback should carry the parser stack")
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Error("failed extraction must not leave an output file")
	}
	if _, err := os.Stat(filepath.Dir(outPath)); !os.IsNotExist(err) {
		t.Error("failed extraction must not create the output directory")
	}
}

func TestRun_UnwritableOutput(t *testing.T) {
	src := &fakeSource{doc: Document{Pages: []string{"text"}}}

	// A directory where the output file should go forces the write to fail.
	tmp := t.TempDir()
	outPath := filepath.Join(tmp, "taken")
	if err := os.Mkdir(outPath, 0o755); err != nil {
		t.Fatal(err)
	}

	res := Run(src, types.Request{PDFPath: "x.pdf", OutputPath: outPath}, io.Discard)

	if res.Success {
		t.Fatal("Run should fail when the output cannot be written")
	}
	if res.Kind != types.ErrIOFailure {
		t.Errorf("Kind = %q, want %q", res.Kind, types.ErrIOFailure)
	}
}

func TestValidateInput(t *testing.T) {
	tmp := t.TempDir()
	pdfPath := filepath.Join(tmp, "doc.pdf")
	upperPath := filepath.Join(tmp, "DOC.PDF")
	txtPath := filepath.Join(tmp, "doc.txt")
	for _, p := range []string{pdfPath, upperPath, txtPath} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name     string
		path     string
		wantKind types.ErrorKind
	}{
		{name: "existing pdf", path: pdfPath},
		{name: "uppercase extension", path: upperPath},
		{name: "missing file", path: filepath.Join(tmp, "nope.pdf"), wantKind: types.ErrInputNotFound},
		{name: "wrong extension", path: txtPath, wantKind: types.ErrInvalidInputType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInput(tt.path)
			if tt.wantKind == "" {
				if err != nil {
					t.Errorf("ValidateInput(%q) = %v, want nil", tt.path, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateInput(%q) should fail", tt.path)
			}
			if got := FailureFrom(err).Kind; got != tt.wantKind {
				t.Errorf("kind = %q, want %q", got, tt.wantKind)
			}
		})
	}
}

func TestOutputFor(t *testing.T) {
	got := OutputFor(filepath.Join("some", "dir", "report.pdf"), "out")
	want := filepath.Join("out", "report.txt")
	if got != want {
		t.Errorf("OutputFor = %q, want %q", got, want)
	}
}

func TestResultJSONShape(t *testing.T) {
	success := types.Result{
		Success:    true,
		Pages:      3,
		TextLength: 42,
		OutputPath: "out.txt",
		Metadata:   map[string]string{"Title": "T"},
	}
	data, err := json.Marshal(success)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"success":true`, `"pages":3`, `"text_length":42`, `"output_path":"out.txt"`, `"metadata"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("success JSON %s missing %s", data, key)
		}
	}
	if strings.Contains(string(data), `"error"`) {
		t.Errorf("success JSON should omit error: %s", data)
	}

	failure := FailureFrom(&DecodeError{Reason: "corrupt"})
	data, err = json.Marshal(failure)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"success":false`) || !strings.Contains(string(data), `"error":"corrupt"`) {
		t.Errorf("failure JSON = %s", data)
	}
	if strings.Contains(string(data), `"output_path"`) {
		t.Errorf("failure JSON should omit output_path: %s", data)
	}
}

func TestResultJSONShape_DegenerateSuccess(t *testing.T) {
	// A PDF with no Info dictionary and an all-empty text layer still
	// reports every success key: zero values are part of the contract.
	res := types.Result{Success: true, OutputPath: "out.txt", Metadata: map[string]string{}}

	data, err := json.Marshal(res)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"success":true`, `"pages":0`, `"text_length":0`, `"output_path":"out.txt"`, `"metadata":{}`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("success JSON %s missing %s", data, key)
		}
	}

	// A nil metadata map serializes as an empty object, not null.
	res.Metadata = nil
	data, err = json.Marshal(res)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"metadata":{}`) {
		t.Errorf("nil metadata should serialize as {}: %s", data)
	}
}
