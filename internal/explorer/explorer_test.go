package explorer

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/idlab-discover/dcat-explorer-cli/internal/catalog"
	"github.com/idlab-discover/dcat-explorer-cli/internal/query"
)

const pageBody = `{"result": {"items": [
	{
		"_about": "https://datos.gob.es/catalogo/e05068001-paro",
		"identifier": "https://datos.gob.es/catalogo/e05068001-paro",
		"title": [{"_value": "Paro registrado", "_lang": "es"}],
		"publisher": "http://datos.gob.es/recurso/sector-publico/org/Organismo/E05068001",
		"issued": "Tue, 2 Jan 2024 10:00:00 GMT+0000",
		"keyword": [{"_value": "empleo", "_lang": "es"}],
		"distribution": [{"format": {"value": "text/csv"}}]
	},
	{
		"identifier": "https://datos.gob.es/catalogo/l01280796-gastos",
		"title": "Gastos",
		"publisher": {"_about": "http://datos.gob.es/recurso/sector-publico/org/Organismo/L01280796"},
		"issued": "Mon, 1 Jan 2024 10:00:00 GMT+0000",
		"keyword": [{"_value": "empleo", "_lang": "es"}, {"_value": "hacienda", "_lang": "es"}],
		"distribution": "application/json"
	}
]}}`

func newServer(t *testing.T, datasets http.HandlerFunc) (*httptest.Server, *int32) {
	t.Helper()
	var distCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/catalog/dataset/", datasets)
	mux.HandleFunc("/catalog/dataset", datasets)
	mux.HandleFunc("/catalog/distribution/dataset/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&distCalls, 1)
		id := strings.TrimPrefix(r.URL.Path, "/catalog/distribution/dataset/")
		_, _ = io.WriteString(w, `{"result": {"items": [{"accessURL": "https://files.example/`+id+`.dat"}]}}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &distCalls
}

func newExplorer(t *testing.T, srv *httptest.Server) *Explorer {
	t.Helper()
	c, err := catalog.New(catalog.Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return New(c)
}

func TestSearch_BuildsPage(t *testing.T) {
	srv, distCalls := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/catalog/dataset/keyword/empleo" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("_sort") != "-issued" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		_, _ = io.WriteString(w, pageBody)
	})

	page, err := newExplorer(t, srv).Search(context.Background(),
		query.ByKeyword{Keyword: "empleo", Paging: query.DefaultPaging()}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Kind != query.KindKeyword || len(page.Records) != 2 {
		t.Fatalf("unexpected page %+v", page)
	}
	if page.Records[0].Title.Display() != "Paro registrado" || page.Records[1].Title.Display() != "Gastos" {
		t.Fatalf("records out of order: %+v", page.Records)
	}

	s := page.Stats
	if s.TotalDatasets != 2 || s.UniqueFormats != 2 || s.UniquePublishers != 2 {
		t.Fatalf("unexpected stats %+v", s)
	}
	if len(s.TopKeywords) != 2 || s.TopKeywords[0].Keyword != "empleo" || s.TopKeywords[0].Count != 2 {
		t.Fatalf("unexpected keywords %+v", s.TopKeywords)
	}
	if s.DateRange.String() != "01/01/2024 10:00 - 02/01/2024 10:00" {
		t.Fatalf("date range = %q", s.DateRange.String())
	}
	if page.Distributions != nil || atomic.LoadInt32(distCalls) != 0 {
		t.Fatalf("distributions should not be resolved unless requested")
	}
}

func TestSearch_WithDistributions(t *testing.T) {
	for _, conc := range []int{1, 4} {
		srv, distCalls := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, pageBody)
		})

		page, err := newExplorer(t, srv).Search(context.Background(), query.All{Paging: query.DefaultPaging()},
			Options{WithDistributions: true, Concurrency: conc})
		if err != nil {
			t.Fatalf("concurrency %d: unexpected error: %v", conc, err)
		}
		want := [][]string{
			{"https://files.example/e05068001-paro.dat"},
			{"https://files.example/l01280796-gastos.dat"},
		}
		if !reflect.DeepEqual(page.Distributions, want) {
			t.Fatalf("concurrency %d: Distributions = %v", conc, page.Distributions)
		}
		if got := atomic.LoadInt32(distCalls); got != 2 {
			t.Fatalf("concurrency %d: distribution calls = %d", conc, got)
		}
		if page.Downloads(1)[0] != want[1][0] || page.Downloads(5) != nil {
			t.Fatalf("Downloads mismatch")
		}
	}
}

func TestSearch_NetworkFailureYieldsEmptyPage(t *testing.T) {
	srv, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	page, err := newExplorer(t, srv).Search(context.Background(), query.ByTheme{Theme: "salud", Paging: query.DefaultPaging()}, Options{WithDistributions: true})
	if !catalog.IsNetwork(err) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if !page.Empty() || page.Stats.TotalDatasets != 0 || page.Stats.DateRange.String() != "N/A - N/A" {
		t.Fatalf("unexpected page on failure %+v", page)
	}
	if page.Request.Path != "/catalog/dataset/theme/salud" {
		t.Fatalf("request should still be reported, got %q", page.Request.Path)
	}
}

func TestSearch_DecodeFailureYieldsEmptyPage(t *testing.T) {
	srv, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html></html>")
	})

	page, err := newExplorer(t, srv).Search(context.Background(), nil, Options{})
	if !catalog.IsDecode(err) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if page.Kind != query.KindAll || !page.Empty() {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestSearch_MissingItemsIsEmptyResult(t *testing.T) {
	srv, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"result": {}}`)
	})

	page, err := newExplorer(t, srv).Search(context.Background(), query.ByID{ID: "missing"}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !page.Empty() || page.Stats.TotalDatasets != 0 {
		t.Fatalf("expected empty page, got %+v", page)
	}
}

func TestSearch_Logs(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(&buf)
	defer SetLogger(nil)

	srv, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, pageBody)
	})
	if _, err := newExplorer(t, srv).Search(context.Background(), query.ByID{ID: "abc"}, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "request=/catalog/dataset/abc") || !strings.Contains(out, "normalized 2 record(s)") {
		t.Fatalf("unexpected log output:\n%s", out)
	}
}
