package types

// ExtractionBackend identifies the text-extraction implementation.
type ExtractionBackend string

const (
	// BackendNative is the in-process pure-Go text-layer reader.
	BackendNative ExtractionBackend = "native"

	// BackendPdftotext shells out to poppler's pdftotext binary.
	BackendPdftotext ExtractionBackend = "pdftotext"
)

// ExtractionConfig holds settings for the extraction stage.
type ExtractionConfig struct {
	// OutputDir is where derived .txt files land when no explicit
	// output path is given (default "parsed_output").
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// Backend selects the extraction implementation: native or pdftotext.
	Backend ExtractionBackend `json:"backend" yaml:"backend" mapstructure:"backend"`
}

// CatalogConfig holds settings for the optional run catalog.
type CatalogConfig struct {
	// Path is the SQLite database file. Empty disables the catalog
	// unless the CLI asks for it explicitly.
	Path string `json:"path,omitempty" yaml:"path,omitempty" mapstructure:"path"`
}

// Config groups all stage configurations.
type Config struct {
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction" mapstructure:"extraction"`
	Catalog    CatalogConfig    `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
}
