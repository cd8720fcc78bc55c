// Package export writes a search page to disk or a stream as JSON or YAML.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/idlab-discover/dcat-explorer-cli/internal/dcat"
	"github.com/idlab-discover/dcat-explorer-cli/internal/explorer"
	"github.com/idlab-discover/dcat-explorer-cli/internal/stats"
)

// Document is the serialized form of a page.
type Document struct {
	Kind     string      `json:"kind" yaml:"kind"`
	Request  string      `json:"request" yaml:"request"`
	Stats    stats.Stats `json:"stats" yaml:"stats"`
	Datasets []Dataset   `json:"datasets" yaml:"datasets"`
}

// Dataset is a record plus the values derived for display.
type Dataset struct {
	dcat.Record `yaml:",inline"`

	DatasetID     string   `json:"datasetId" yaml:"datasetId"`
	IssuedDisplay string   `json:"issuedDisplay,omitempty" yaml:"issuedDisplay,omitempty"`
	Downloads     []string `json:"downloads,omitempty" yaml:"downloads,omitempty"`
}

// NewDocument converts a page into its serialized form.
func NewDocument(p explorer.Page) Document {
	doc := Document{
		Kind:     string(p.Kind),
		Request:  p.Request.String(),
		Stats:    p.Stats,
		Datasets: make([]Dataset, 0, len(p.Records)),
	}
	for i, r := range p.Records {
		doc.Datasets = append(doc.Datasets, Dataset{
			Record:        r,
			DatasetID:     r.DatasetID(),
			IssuedDisplay: r.IssuedDisplay(),
			Downloads:     p.Downloads(i),
		})
	}
	return doc
}

// ResolveFormat maps "json", "yaml" or "auto" to a concrete format. With
// "auto" (or empty) the output path extension decides; JSON is the fallback.
func ResolveFormat(format, path string) (string, error) {
	actual := strings.ToLower(strings.TrimSpace(format))
	switch actual {
	case "", "auto":
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			return "yaml", nil
		default:
			return "json", nil
		}
	case "json", "yaml":
		return actual, nil
	case "yml":
		return "yaml", nil
	default:
		return "", fmt.Errorf("unsupported output format: %q", format)
	}
}

// Encode writes the page to w in the given concrete format.
func Encode(w io.Writer, p explorer.Page, format string) error {
	doc := NewDocument(p)
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format: %q", format)
	}
}

// WritePage writes the page to outputPath. "-" writes to stdout.
// An explicit format must agree with a .json/.yaml/.yml extension.
func WritePage(p explorer.Page, outputPath, format string) error {
	actual, err := ResolveFormat(format, outputPath)
	if err != nil {
		return err
	}

	if outputPath == "-" {
		return Encode(os.Stdout, p, actual)
	}

	ext := strings.ToLower(filepath.Ext(outputPath))
	switch {
	case actual == "json" && (ext == ".yaml" || ext == ".yml"),
		actual == "yaml" && ext == ".json":
		return fmt.Errorf("output path extension %q does not match format %q", ext, actual)
	}

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return Encode(f, p, actual)
}
