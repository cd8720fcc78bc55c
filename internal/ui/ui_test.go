package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/idlab-discover/dcat-explorer-cli/internal/query"
)

func TestColorAppliesANSICodes(t *testing.T) {
	got := Color("hello", FgGreen)
	want := FgGreen + "hello" + Reset
	if got != want {
		t.Fatalf("Color() = %q, want %q", got, want)
	}
}

func TestColorWithEmptyString(t *testing.T) {
	got := Color("", FgRed)
	want := FgRed + "" + Reset
	if got != want {
		t.Fatalf("Color(\"\") = %q, want %q", got, want)
	}
}

func sampleCard() DatasetCard {
	return DatasetCard{
		Title:       "Paro registrado",
		Publisher:   "E05068001",
		Link:        "https://datos.gob.es/catalogo/e05068001-paro",
		Issued:      "02/01/2024 10:00",
		Description: "Paro registrado por municipio",
		Tags:        []string{"empleo", "paro"},
		Formats:     []string{"text/csv"},
		Downloads:   []string{"https://files.example/paro.csv"},
	}
}

func TestResultsUI_PrintStats(t *testing.T) {
	tests := []struct {
		name    string
		summary StatsSummary
		quiet   bool
		want    []string
	}{
		{
			name: "populated page",
			summary: StatsSummary{
				TotalDatasets:    10,
				UniqueFormats:    3,
				UniquePublishers: 2,
				TopKeywords:      []KeywordCount{{"empleo", 4}, {"paro", 2}},
				DateRange:        "01/01/2024 10:00 - 02/01/2024 10:00",
			},
			want: []string{"Page Statistics", "Total datasets:", "10", "Unique formats:", "Unique publishers:", "empleo", "(4)", "01/01/2024 10:00 - 02/01/2024 10:00"},
		},
		{
			name:    "empty page",
			summary: StatsSummary{DateRange: "N/A - N/A"},
			want:    []string{"Top keywords", "none", "N/A - N/A"},
		},
		{
			name:    "quiet mode produces no output",
			summary: StatsSummary{TotalDatasets: 1},
			quiet:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewResultsUI(&buf, tt.quiet).PrintStats(tt.summary)
			output := buf.String()

			if tt.quiet {
				if output != "" {
					t.Errorf("Expected no output in quiet mode, got: %q", output)
				}
				return
			}
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing expected string %q.\nGot:\n%s", want, output)
				}
			}
		})
	}
}

func TestRenderCard(t *testing.T) {
	out := RenderCard(3, sampleCard())
	for _, want := range []string{
		"3. Paro registrado",
		"Publisher",
		"View in catalog",
		"https://datos.gob.es/catalogo/e05068001-paro",
		"02/01/2024 10:00",
		"https://files.example/paro.csv",
		"Paro registrado por municipio",
		"empleo, paro",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("card missing %q.\nGot:\n%s", want, out)
		}
	}

	c := sampleCard()
	c.Downloads = []string{}
	if out := RenderCard(0, c); !strings.Contains(out, "none available") || strings.Contains(out, "0. ") {
		t.Errorf("unexpected card:\n%s", out)
	}

	c.Downloads = nil
	if out := RenderCard(0, c); strings.Contains(out, "Downloads") {
		t.Errorf("downloads should be hidden when not resolved:\n%s", out)
	}
}

func TestResultsUI_PrintNoResultsAndError(t *testing.T) {
	var buf bytes.Buffer
	r := NewResultsUI(&buf, false)
	r.PrintNoResults()
	r.PrintError("Search failed")
	out := buf.String()
	if !strings.Contains(out, "No datasets found") || !strings.Contains(out, "Search failed") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	buf.Reset()
	q := NewResultsUI(&buf, true)
	q.PrintNoResults()
	q.PrintError("Search failed")
	if !strings.Contains(buf.String(), "Search failed") || strings.Contains(buf.String(), "No datasets") {
		t.Fatalf("quiet mode should only print errors, got:\n%s", buf.String())
	}
}

func TestSearchFormValues_Intent(t *testing.T) {
	v := DefaultSearchFormValues()
	v.Kind = "spatial"
	v.Arg1, v.Arg2 = "Autonomia", "Madrid"
	v.PageSize = "25"
	v.Sort = "title"

	in, err := v.Intent()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req := query.Build(in)
	if req.Path != "/catalog/dataset/spatial/Autonomia/Madrid" || req.Params.Get(query.ParamPageSize) != "25" || req.Params.Get(query.ParamSort) != "title" {
		t.Fatalf("unexpected request %v", req)
	}

	v = DefaultSearchFormValues()
	v.Kind = "id"
	v.Arg1 = "abc"
	v.PageSize = "not used"
	if in, err := v.Intent(); err != nil || query.Build(in).Path != "/catalog/dataset/abc" {
		t.Fatalf("id search should ignore paging, got %v %v", in, err)
	}
}

func TestSearchFormValues_IntentErrors(t *testing.T) {
	tests := []struct {
		name string
		edit func(v *SearchFormValues)
	}{
		{"bad kind", func(v *SearchFormValues) { v.Kind = "nope" }},
		{"missing arg", func(v *SearchFormValues) { v.Kind = "title" }},
		{"page size text", func(v *SearchFormValues) { v.PageSize = "ten" }},
		{"page size too big", func(v *SearchFormValues) { v.PageSize = "51" }},
		{"page too big", func(v *SearchFormValues) { v.Page = "101" }},
		{"bad date", func(v *SearchFormValues) { v.Kind, v.Arg1, v.Arg2 = "modified", "yesterday", "2024-01-01" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := DefaultSearchFormValues()
			tt.edit(&v)
			if _, err := v.Intent(); err == nil {
				t.Fatalf("expected error for %+v", v)
			}
		})
	}
}

func TestFormValidators(t *testing.T) {
	if err := intRange("page size", 1, 50)("0"); err == nil {
		t.Fatalf("expected range error")
	}
	if err := intRange("page size", 1, 50)(" 50 "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := required("Keyword")("  "); err == nil || !strings.Contains(err.Error(), "keyword is required") {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, k := range query.Kinds() {
		if got := len(argPrompts(k)); got != k.Arity() {
			t.Fatalf("%s: %d prompts, arity %d", k, got, k.Arity())
		}
	}
}

func TestBrowser_DetailNavigation(t *testing.T) {
	other := sampleCard()
	other.Title = "Gastos municipales"
	m := NewBrowser("By keyword", StatsSummary{TotalDatasets: 2, DateRange: "N/A - N/A"}, []DatasetCard{sampleCard(), other})

	if out := m.render(); !strings.Contains(out, "By keyword") || !strings.Contains(out, "2 datasets") {
		t.Fatalf("unexpected list view:\n%s", out)
	}

	if handled, _ := m.handleKey("enter"); !handled || !m.detail {
		t.Fatalf("enter should open the detail view")
	}
	if out := m.render(); !strings.Contains(out, "View in catalog") || !strings.Contains(out, "Paro registrado") {
		t.Fatalf("unexpected detail view:\n%s", out)
	}

	if handled, _ := m.handleKey("esc"); !handled || m.detail {
		t.Fatalf("esc should close the detail view")
	}
	if m.quitting {
		t.Fatalf("esc in detail view must not quit")
	}

	if handled, cmd := m.handleKey("q"); !handled || cmd == nil || !m.quitting {
		t.Fatalf("q should quit the browser")
	}
	if m.render() != "" {
		t.Fatalf("quitting browser should render nothing")
	}
}

func TestBrowser_EmptyPage(t *testing.T) {
	m := NewBrowser("Full listing", StatsSummary{DateRange: "N/A - N/A"}, nil)
	if out := m.render(); !strings.Contains(out, "No datasets found") {
		t.Fatalf("expected empty warning:\n%s", out)
	}
	m.handleKey("enter")
	if m.detail {
		t.Fatalf("no detail view without a selection")
	}
}

func TestWorkflow_FinalRender(t *testing.T) {
	var buf bytes.Buffer
	wf := NewWorkflow(&buf, "Searching catalog", false)
	q := wf.AddTask("Query catalog")
	n := wf.AddTask("Resolve downloads")
	x := wf.AddTask("Export")

	wf.Start()
	wf.StartTask(q, "GET /catalog/dataset")
	wf.CompleteTask(q, "10 datasets")
	wf.SkipTask(n, "not requested")
	wf.FailTask(x, "permission denied")
	wf.Stop()
	wf.Stop()

	out := buf.String()
	for _, want := range []string{"Searching catalog", "Query catalog", "→ 10 datasets", "→ not requested", "→ permission denied"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	tasks := wf.Tasks()
	if tasks[q].Status != TaskDone || tasks[n].Status != TaskSkipped || tasks[x].Status != TaskFailed {
		t.Fatalf("unexpected statuses %+v", tasks)
	}
}

func TestWorkflow_NilWriter(t *testing.T) {
	wf := NewWorkflow(nil, "quiet", true)
	i := wf.AddTask("step")
	wf.Start()
	wf.CompleteTask(i, "ok")
	wf.Stop()
	if wf.Tasks()[0].Status != TaskDone {
		t.Fatalf("state should be tracked without output")
	}
}
