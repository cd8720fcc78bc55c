package dcat

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("decode %q: %v", s, err)
	}
	return v
}

func TestNormalize_FullItem(t *testing.T) {
	raw := decode(t, `{
		"_about": "https://datos.gob.es/catalogo/e05068001-mapas",
		"identifier": "https://datos.gob.es/catalogo/e05068001-mapas",
		"title": [{"_value": "Mapas", "_lang": "es"}, {"_value": "Maps", "_lang": "en"}],
		"description": [{"_value": "Cartografía", "_lang": "es"}],
		"publisher": "http://datos.gob.es/recurso/sector-publico/org/Organismo/E05068001",
		"issued": "Mon, 01 Jan 2024 10:00:00 GMT+0000",
		"keyword": [{"_value": "mapas", "_lang": "es"}, "stray", {"_lang": "es"}],
		"distribution": [
			{"accessURL": "https://a/1.csv", "format": {"_about": "x", "value": "text/csv"}},
			{"accessURL": "https://a/2.csv", "format": "text/csv"},
			{"accessURL": "https://a/3.json", "format": "application/json"},
			"not-an-object"
		]
	}`)

	r := Normalize(raw)

	if r.DatasetID() != "e05068001-mapas" {
		t.Fatalf("DatasetID() = %q", r.DatasetID())
	}
	if r.Title.Display() != "Mapas" || r.Title.Preferred("en") != "Maps" {
		t.Fatalf("unexpected title %v", r.Title)
	}
	if r.Description.Display() != "Cartografía" {
		t.Fatalf("unexpected description %v", r.Description)
	}
	if !r.HasPublisher || !strings.HasSuffix(r.Publisher, "E05068001") {
		t.Fatalf("unexpected publisher %q (%v)", r.Publisher, r.HasPublisher)
	}
	if !r.IssuedOK || r.IssuedDisplay() != "01/01/2024 10:00" {
		t.Fatalf("unexpected issued %q ok=%v", r.IssuedDisplay(), r.IssuedOK)
	}
	if got := r.KeywordValues(); !reflect.DeepEqual(got, []string{"mapas"}) {
		t.Fatalf("keywords = %v", got)
	}
	if want := []string{"text/csv", "application/json"}; !reflect.DeepEqual(r.DistributionFormats, want) {
		t.Fatalf("formats = %v, want %v", r.DistributionFormats, want)
	}
}

func TestNormalize_EmptyTitleYieldsDefaultLabel(t *testing.T) {
	inputs := []string{`{"title": []}`, `{}`, `{"title": null}`, `{"title": [{"_lang": "es"}]}`, `{"title": ""}`}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			r := Normalize(decode(t, in))
			if !r.Title.IsEmpty() {
				t.Fatalf("expected empty title, got %v", r.Title)
			}
			if r.Title.Display() != DefaultLabel || r.Description.Display() != DefaultLabel {
				t.Fatalf("Display() = %q / %q", r.Title.Display(), r.Description.Display())
			}
			if r.Title.Preferred("es") != DefaultLabel {
				t.Fatalf("Preferred() = %q", r.Title.Preferred("es"))
			}
		})
	}
}

func TestNormalize_TitleShapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want LocalizedText
	}{
		{"plain string", `{"title": "Paro registrado"}`, LocalizedText{{Value: "Paro registrado"}}},
		{"number", `{"title": 42.5}`, LocalizedText{{Value: "42.5"}}},
		{"single object", `{"title": {"_value": "Paro", "_lang": "es"}}`, LocalizedText{{Value: "Paro", Lang: "es"}}},
		{
			"mixed list",
			`{"title": ["Paro", {"_value": "Unemployment", "_lang": "en"}, 7, [1]]}`,
			LocalizedText{{Value: "Paro"}, {Value: "Unemployment", Lang: "en"}, {Value: "7"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(decode(t, tt.in)).Title
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("title = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestNormalize_DistributionShapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"absent", `{}`, nil},
		{"null", `{"distribution": null}`, nil},
		{"empty list", `{"distribution": []}`, nil},
		{"string", `{"distribution": "CSV"}`, []string{"CSV"}},
		{"empty string", `{"distribution": ""}`, nil},
		{"single object", `{"distribution": {"format": "XML"}}`, []string{"XML"}},
		{"objects without format", `{"distribution": [{"accessURL": "x"}]}`, nil},
		{"duplicates collapse", `{"distribution": [{"format": "CSV"}, {"format": "CSV"}, {"format": "PDF"}]}`, []string{"CSV", "PDF"}},
		{"number", `{"distribution": 3}`, []string{"3"}},
		{"boolean list entries skipped", `{"distribution": [true, {"format": "ZIP"}]}`, []string{"ZIP"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(decode(t, tt.in)).DistributionFormats
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("formats = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestNormalize_KeywordShapes(t *testing.T) {
	r := Normalize(decode(t, `{"keyword": [{"_value": "a"}, "b", 3, null, {"_value": "c", "_lang": "en"}]}`))
	if got := r.KeywordValues(); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("keywords = %v", got)
	}
	if r.Keywords[1].Lang != "en" {
		t.Fatalf("lang = %q", r.Keywords[1].Lang)
	}

	r = Normalize(decode(t, `{"keyword": "just-a-string"}`))
	if len(r.Keywords) != 0 {
		t.Fatalf("scalar keyword should be skipped, got %v", r.Keywords)
	}

	r = Normalize(decode(t, `{"keyword": {"_value": "solo"}}`))
	if got := r.KeywordValues(); !reflect.DeepEqual(got, []string{"solo"}) {
		t.Fatalf("keywords = %v", got)
	}
}

func TestNormalize_Publisher(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		present bool
	}{
		{`{}`, "", false},
		{`{"publisher": "L01280796"}`, "L01280796", true},
		{`{"publisher": {"_about": "http://x/org/A1"}}`, "http://x/org/A1", true},
		{`{"publisher": ["a", "b"]}`, "", false},
		{`{"publisher": ""}`, "", true},
		{`{"publisher": 42}`, "42", true},
	}
	for _, tt := range tests {
		r := Normalize(decode(t, tt.in))
		if r.Publisher != tt.want || r.HasPublisher != tt.present {
			t.Fatalf("%s: publisher = %q/%v, want %q/%v", tt.in, r.Publisher, r.HasPublisher, tt.want, tt.present)
		}
	}
}

func TestNormalize_UnparsableIssuedPassesThrough(t *testing.T) {
	r := Normalize(decode(t, `{"issued": "not-a-date"}`))
	if r.IssuedOK {
		t.Fatalf("expected parse failure")
	}
	if r.Issued != "not-a-date" || r.IssuedDisplay() != "not-a-date" {
		t.Fatalf("issued = %q / %q", r.Issued, r.IssuedDisplay())
	}

	r = Normalize(decode(t, `{"issued": {"_value": "x"}}`))
	if r.Issued != "" || r.IssuedOK {
		t.Fatalf("object issued should be ignored, got %q", r.Issued)
	}
}

func TestNormalize_IdentifierFallback(t *testing.T) {
	r := Normalize(decode(t, `{"_about": "https://datos.gob.es/catalogo/l01-x/"}`))
	if r.Identifier != "https://datos.gob.es/catalogo/l01-x/" || r.DatasetID() != "l01-x" {
		t.Fatalf("identifier = %q id = %q", r.Identifier, r.DatasetID())
	}
	if got := (Record{Identifier: "plain"}).DatasetID(); got != "plain" {
		t.Fatalf("DatasetID() = %q", got)
	}
}

func TestNormalize_NonObjectItem(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(&buf)
	defer SetLogger(nil)

	r := Normalize("oops")
	if !reflect.DeepEqual(r, Record{}) {
		t.Fatalf("expected zero record, got %#v", r)
	}
	if !strings.Contains(buf.String(), "not an object") {
		t.Fatalf("expected anomaly log, got %q", buf.String())
	}
}

func TestNormalizeAll_PreservesOrder(t *testing.T) {
	items := decode(t, `[{"identifier": "u/1"}, 5, {"identifier": "u/2"}]`).([]any)
	recs := NormalizeAll(items)
	if len(recs) != 3 {
		t.Fatalf("len = %d", len(recs))
	}
	if recs[0].DatasetID() != "1" || recs[1].Identifier != "" || recs[2].DatasetID() != "2" {
		t.Fatalf("unexpected records %#v", recs)
	}
}
