// Package stats summarizes one page of normalized dataset records.
package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/idlab-discover/dcat-explorer-cli/internal/dcat"
)

// TopKeywordsLimit is the number of keywords kept in Stats.TopKeywords.
const TopKeywordsLimit = 5

// NotAvailable marks a missing date range bound.
const NotAvailable = "N/A"

// Stats is the summary of a single result page. Counts cover the page only,
// not the catalog-wide result set.
type Stats struct {
	TotalDatasets    int            `json:"totalDatasets" yaml:"totalDatasets"`
	UniqueFormats    int            `json:"uniqueFormats" yaml:"uniqueFormats"`
	UniquePublishers int            `json:"uniquePublishers" yaml:"uniquePublishers"`
	TopKeywords      []KeywordCount `json:"topKeywords" yaml:"topKeywords"`
	DateRange        DateRange      `json:"dateRange" yaml:"dateRange"`
}

// KeywordCount is one entry of the top keywords ranking.
type KeywordCount struct {
	Keyword string `json:"keyword" yaml:"keyword"`
	Count   int    `json:"count" yaml:"count"`
}

// DateRange holds the display strings of the earliest and latest issued
// dates on the page.
type DateRange struct {
	Min string `json:"min" yaml:"min"`
	Max string `json:"max" yaml:"max"`
}

func (d DateRange) String() string {
	lo, hi := d.Min, d.Max
	if lo == "" {
		lo = NotAvailable
	}
	if hi == "" {
		hi = NotAvailable
	}
	return fmt.Sprintf("%s - %s", lo, hi)
}

// Aggregate computes the page statistics. Only records whose issued date
// parsed take part in the date range, compared as instants.
func Aggregate(records []dcat.Record) Stats {
	s := Stats{
		TotalDatasets: len(records),
		TopKeywords:   []KeywordCount{},
		DateRange:     DateRange{Min: NotAvailable, Max: NotAvailable},
	}

	formats := map[string]struct{}{}
	publishers := map[string]struct{}{}
	counts := map[string]int{}
	var order []string
	var lo, hi *dcat.Record

	for i := range records {
		r := &records[i]

		for _, f := range r.DistributionFormats {
			formats[f] = struct{}{}
		}
		if r.HasPublisher {
			publishers[r.Publisher] = struct{}{}
		}
		for _, k := range r.Keywords {
			if _, seen := counts[k.Value]; !seen {
				order = append(order, k.Value)
			}
			counts[k.Value]++
		}

		if !r.IssuedOK {
			continue
		}
		if lo == nil || r.IssuedAt.Before(lo.IssuedAt) {
			lo = r
		}
		if hi == nil || r.IssuedAt.After(hi.IssuedAt) {
			hi = r
		}
	}

	s.UniqueFormats = len(formats)
	s.UniquePublishers = len(publishers)
	s.TopKeywords = topKeywords(order, counts, TopKeywordsLimit)
	if lo != nil {
		s.DateRange = DateRange{Min: display(lo.IssuedAt), Max: display(hi.IssuedAt)}
	}
	return s
}

func display(t time.Time) string { return t.Format(dcat.DisplayLayout) }

// topKeywords orders keywords by count, ties broken by first appearance.
func topKeywords(order []string, counts map[string]int, limit int) []KeywordCount {
	out := make([]KeywordCount, 0, len(order))
	for _, k := range order {
		out = append(out, KeywordCount{Keyword: k, Count: counts[k]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
