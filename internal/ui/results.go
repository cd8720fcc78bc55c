package ui

import (
	"fmt"
	"io"
	"strings"
)

// StatsSummary mirrors the page statistics from internal/stats
// to avoid circular imports
type StatsSummary struct {
	TotalDatasets    int
	UniqueFormats    int
	UniquePublishers int
	TopKeywords      []KeywordCount
	DateRange        string
}

// KeywordCount is one entry of the top keywords list
type KeywordCount struct {
	Keyword string
	Count   int
}

// DatasetCard is the display form of one dataset record
type DatasetCard struct {
	Title       string
	Publisher   string
	Link        string // catalog page (the record identifier)
	Issued      string
	Description string
	Tags        []string
	Formats     []string

	// Downloads holds resolved access URLs; nil when they were not requested.
	Downloads []string
}

// ResultsUI renders search results for the search command
type ResultsUI struct {
	writer io.Writer
	quiet  bool
}

// NewResultsUI creates a new UI handler for search results
func NewResultsUI(w io.Writer, quiet bool) *ResultsUI {
	return &ResultsUI{writer: w, quiet: quiet}
}

// PrintHeader shows which search ran and against which request.
func (r *ResultsUI) PrintHeader(label, request string) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.writer, "%s %s\n", Title.Render(label), Dim.Render(request))
}

// PrintStats renders the statistics panel
func (r *ResultsUI) PrintStats(s StatsSummary) {
	if r.quiet {
		return
	}

	var sb strings.Builder
	sb.WriteString(Success.Bold(true).Render("Page Statistics"))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s",
		Dim.Render("Total datasets:"), Metric.Render(fmt.Sprint(s.TotalDatasets)),
		Dim.Render("Unique formats:"), Metric.Render(fmt.Sprint(s.UniqueFormats)),
		Dim.Render("Unique publishers:"), Metric.Render(fmt.Sprint(s.UniquePublishers)),
	))
	sb.WriteString("\n\n")

	sb.WriteString(SectionHeader.Render("Top keywords"))
	sb.WriteString("\n")
	if len(s.TopKeywords) == 0 {
		sb.WriteString(Muted.Render("  none"))
		sb.WriteString("\n")
	}
	for _, k := range s.TopKeywords {
		sb.WriteString(fmt.Sprintf("  %s %s %s\n", GetBullet(), k.Keyword, Dim.Render(fmt.Sprintf("(%d)", k.Count))))
	}
	sb.WriteString("\n")
	sb.WriteString(FormatKeyValue("Date range", s.DateRange))

	fmt.Fprintln(r.writer, SuccessBox.Render(sb.String()))
}

// PrintCards renders every dataset as a card
func (r *ResultsUI) PrintCards(cards []DatasetCard) {
	if r.quiet {
		return
	}
	for i, c := range cards {
		fmt.Fprintln(r.writer, Box.Render(RenderCard(i+1, c)))
	}
}

// PrintNoResults shows the generic empty-page warning.
func (r *ResultsUI) PrintNoResults() {
	if r.quiet {
		return
	}
	fmt.Fprintln(r.writer, FormatStatus("warning", Warning.Render("No datasets found for this search.")))
}

// PrintError shows a generic failure notice. Details go to the logs.
func (r *ResultsUI) PrintError(msg string) {
	fmt.Fprintln(r.writer, ErrorBox.Render(FormatStatus("error", Error.Render(msg))))
}

// PrintSaved confirms an export.
func (r *ResultsUI) PrintSaved(path string) {
	if r.quiet {
		return
	}
	fmt.Fprintln(r.writer, FormatStatus("success", "Results written to "+Highlight.Render(path)))
}

// RenderCard renders one dataset; n > 0 prefixes the title with its position.
func RenderCard(n int, c DatasetCard) string {
	var sb strings.Builder

	title := c.Title
	if n > 0 {
		title = fmt.Sprintf("%d. %s", n, title)
	}
	sb.WriteString(CardTitle.Render(title))
	sb.WriteString("\n")

	if c.Publisher != "" {
		sb.WriteString(FormatKeyValue("Publisher", c.Publisher))
		sb.WriteString("\n")
	}
	if c.Issued != "" {
		sb.WriteString(FormatKeyValue("Issued", c.Issued))
		sb.WriteString("\n")
	}
	if c.Link != "" {
		sb.WriteString(FormatKeyValue("View in catalog", Link.Render(c.Link)))
		sb.WriteString("\n")
	}
	if len(c.Formats) > 0 {
		sb.WriteString(FormatKeyValue("Formats", strings.Join(c.Formats, ", ")))
		sb.WriteString("\n")
	}

	if c.Downloads != nil {
		if len(c.Downloads) == 0 {
			sb.WriteString(FormatKeyValue("Downloads", Muted.Render("none available")))
			sb.WriteString("\n")
		} else {
			sb.WriteString(Dim.Render("Downloads:"))
			sb.WriteString("\n")
			for _, u := range c.Downloads {
				sb.WriteString(fmt.Sprintf("  %s %s\n", GetBullet(), Link.Render(u)))
			}
		}
	}

	if c.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(c.Description)
		sb.WriteString("\n")
	}

	if len(c.Tags) > 0 {
		sb.WriteString("\n")
		sb.WriteString(Dim.Render("Tags: "))
		sb.WriteString(strings.Join(c.Tags, ", "))
	}

	return strings.TrimRight(sb.String(), "\n")
}
