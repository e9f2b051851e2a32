// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Manifest is the on-disk list of PDFs for a batch run. A manifest lets
// a caller queue a conversion set once and re-run it later without
// reassembling the command line.
type Manifest struct {
	Entries []ManifestEntry `yaml:"entries"`
}

// ManifestEntry names one PDF and, optionally, an explicit output path.
// When Output is empty the output name is derived from the PDF base
// name inside the batch output directory.
type ManifestEntry struct {
	PDF    string `yaml:"pdf"`
	Output string `yaml:"output,omitempty"`
}

// ReadManifest loads a batch manifest from a YAML file. Every entry
// must name a PDF path.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	for i, e := range m.Entries {
		if e.PDF == "" {
			return nil, fmt.Errorf("manifest %s: entry %d has no pdf path", path, i+1)
		}
	}
	return &m, nil
}

// Jobs converts manifest entries into batch jobs, deriving output paths
// inside outputDir for entries without an explicit output.
func (m *Manifest) Jobs(outputDir string) []Job {
	jobs := make([]Job, len(m.Entries))
	for i, e := range m.Entries {
		out := e.Output
		if out == "" {
			out = OutputFor(e.PDF, outputDir)
		}
		jobs[i] = Job{PDFPath: e.PDF, OutputPath: out}
	}
	return jobs
}
