package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"

	"github.com/idlab-discover/dcat-explorer-cli/internal/apperr"
	"github.com/idlab-discover/dcat-explorer-cli/internal/catalog"
	"github.com/idlab-discover/dcat-explorer-cli/internal/dcat"
	"github.com/idlab-discover/dcat-explorer-cli/internal/explorer"
	"github.com/idlab-discover/dcat-explorer-cli/internal/query"
	"github.com/idlab-discover/dcat-explorer-cli/internal/stats"
	"github.com/idlab-discover/dcat-explorer-cli/internal/ui"
)

// resolveLogLevel reads search.log-level and wires package logging for debug.
func resolveLogLevel(logOut io.Writer) (string, error) {
	level := strings.ToLower(strings.TrimSpace(viper.GetString("search.log-level")))
	if level == "" {
		level = "standard"
	}
	switch level {
	case "quiet", "standard", "debug":
		// ok
	default:
		return "", apperr.Userf("invalid --log-level %q (expected quiet|standard|debug)", level)
	}

	var w io.Writer
	if level == "debug" {
		w = logOut
	}
	catalog.SetLogger(w)
	dcat.SetLogger(w)
	explorer.SetLogger(w)
	return level, nil
}

// newExplorer builds the catalog client from the effective configuration.
func newExplorer() (*explorer.Explorer, error) {
	client, err := catalog.New(catalog.Config{
		BaseURL:   viper.GetString("catalog.base-url"),
		Timeout:   viper.GetDuration("catalog.timeout"),
		UserAgent: "dcat-explorer-cli/" + version,
	})
	if err != nil {
		return nil, apperr.User(err.Error())
	}
	return explorer.New(client), nil
}

// pagingFromConfig reads and validates the paging options.
func pagingFromConfig() (query.Paging, error) {
	sort, err := query.ParseSort(viper.GetString("search.sort"))
	if err != nil {
		return query.Paging{}, apperr.User(err.Error())
	}
	p := query.Paging{
		PageSize: viper.GetInt("search.page-size"),
		Page:     viper.GetInt("search.page"),
		Sort:     sort,
	}
	if err := p.Validate(); err != nil {
		return query.Paging{}, apperr.User(err.Error())
	}
	return p, nil
}

// searchOptions reads the distribution lookup options.
func searchOptions() (explorer.Options, error) {
	conc := viper.GetInt("search.concurrency")
	if conc < 1 {
		return explorer.Options{}, apperr.Userf("invalid --concurrency %d (must be >= 1)", conc)
	}
	return explorer.Options{
		WithDistributions: viper.GetBool("search.distributions"),
		Concurrency:       conc,
	}, nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// describeFailure turns a catalog error into the notice shown to users.
func describeFailure(err error) string {
	switch {
	case catalog.IsNotFound(err):
		return "The catalog has no such resource."
	case catalog.IsNetwork(err):
		return "Could not retrieve data from the catalog."
	case catalog.IsDecode(err):
		return "The catalog returned a response that could not be read."
	default:
		return "Search failed."
	}
}

func toSummary(s stats.Stats) ui.StatsSummary {
	out := ui.StatsSummary{
		TotalDatasets:    s.TotalDatasets,
		UniqueFormats:    s.UniqueFormats,
		UniquePublishers: s.UniquePublishers,
		DateRange:        s.DateRange.String(),
	}
	for _, k := range s.TopKeywords {
		out.TopKeywords = append(out.TopKeywords, ui.KeywordCount{Keyword: k.Keyword, Count: k.Count})
	}
	return out
}

func toCards(page explorer.Page, lang string) []ui.DatasetCard {
	cards := make([]ui.DatasetCard, 0, len(page.Records))
	for i, r := range page.Records {
		c := ui.DatasetCard{
			Title:     r.Title.Preferred(lang),
			Publisher: r.Publisher,
			Link:      r.Identifier,
			Issued:    r.IssuedDisplay(),
			Tags:      r.KeywordValues(),
			Formats:   r.DistributionFormats,
			Downloads: page.Downloads(i),
		}
		if !r.Description.IsEmpty() {
			c.Description = r.Description.Preferred(lang)
		}
		cards = append(cards, c)
	}
	return cards
}

func pageHeader(page explorer.Page) string {
	return fmt.Sprintf("%s · %d result(s)", page.Kind.Label(), len(page.Records))
}
