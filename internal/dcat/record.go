// Package dcat holds the canonical dataset record and the normalizer that
// builds it from loosely-typed catalog JSON.
package dcat

import (
	"strings"
	"time"
)

// DefaultLabel is shown in place of an empty title or description.
const DefaultLabel = "Untitled"

// Text is one language-tagged value.
type Text struct {
	Value string `json:"value" yaml:"value"`
	Lang  string `json:"lang,omitempty" yaml:"lang,omitempty"`
}

// LocalizedText is an ordered sequence of language-tagged values. It may be empty.
type LocalizedText []Text

// Display returns the first value, or DefaultLabel when there is none.
func (t LocalizedText) Display() string {
	if len(t) == 0 {
		return DefaultLabel
	}
	return t[0].Value
}

// Preferred returns the first value tagged with lang, falling back to Display.
func (t LocalizedText) Preferred(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang != "" {
		for _, e := range t {
			if strings.EqualFold(e.Lang, lang) {
				return e.Value
			}
		}
	}
	return t.Display()
}

// IsEmpty reports whether there is no value at all.
func (t LocalizedText) IsEmpty() bool { return len(t) == 0 }

// Record is the canonical, immutable view of one catalog item.
type Record struct {
	Identifier          string        `json:"identifier" yaml:"identifier"`
	Title               LocalizedText `json:"title" yaml:"title"`
	Description         LocalizedText `json:"description,omitempty" yaml:"description,omitempty"`
	Publisher           string        `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	HasPublisher        bool          `json:"-" yaml:"-"`
	Issued              string        `json:"issued,omitempty" yaml:"issued,omitempty"`
	IssuedAt            time.Time     `json:"issuedAt,omitzero" yaml:"issuedAt,omitempty"`
	IssuedOK            bool          `json:"-" yaml:"-"`
	Keywords            []Text        `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	DistributionFormats []string      `json:"distributionFormats,omitempty" yaml:"distributionFormats,omitempty"`
}

// DatasetID is the final path segment of the identifier, used for secondary
// lookups against the distribution endpoint.
func (r Record) DatasetID() string {
	id := strings.TrimRight(strings.TrimSpace(r.Identifier), "/")
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}

// IssuedDisplay is the issued date as DD/MM/YYYY HH:MM, or the raw value when
// it could not be parsed. Records built by hand or decoded from an export
// carry no IssuedOK flag, so the raw value is parsed again.
func (r Record) IssuedDisplay() string {
	if r.IssuedOK {
		return r.IssuedAt.Format(DisplayLayout)
	}
	return FormatIssued(r.Issued)
}

// KeywordValues returns the keyword display values in order.
func (r Record) KeywordValues() []string {
	out := make([]string, 0, len(r.Keywords))
	for _, k := range r.Keywords {
		out = append(out, k.Value)
	}
	return out
}
