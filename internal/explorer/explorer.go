// Package explorer runs one search end to end: build the request, fetch the
// page, normalize the items, aggregate statistics and optionally resolve
// download links for each dataset.
package explorer

import (
	"context"

	"github.com/idlab-discover/dcat-explorer-cli/internal/catalog"
	"github.com/idlab-discover/dcat-explorer-cli/internal/dcat"
	"github.com/idlab-discover/dcat-explorer-cli/internal/query"
	"github.com/idlab-discover/dcat-explorer-cli/internal/stats"
)

// Options tune a single search.
type Options struct {
	// WithDistributions resolves access URLs for every record on the page.
	WithDistributions bool
	// Concurrency bounds parallel distribution lookups; <= 1 is sequential.
	Concurrency int
}

// Page is the materialized result of one search.
type Page struct {
	Kind    query.Kind
	Request query.Request
	Records []dcat.Record
	Stats   stats.Stats

	// Distributions is aligned with Records. It is nil unless requested.
	Distributions [][]string
}

// Empty reports whether the page holds no records.
func (p Page) Empty() bool { return len(p.Records) == 0 }

// Downloads returns the access URLs of record i, if they were resolved.
func (p Page) Downloads(i int) []string {
	if i < 0 || i >= len(p.Distributions) {
		return nil
	}
	return p.Distributions[i]
}

// Explorer runs searches against the catalog and assembles result pages.
type Explorer struct {
	getter   catalog.Getter
	resolver *catalog.Resolver
}

// New builds an Explorer on top of a catalog getter (usually *catalog.Client).
func New(getter catalog.Getter) *Explorer {
	return &Explorer{getter: getter, resolver: catalog.NewResolver(getter)}
}

// Resolver exposes the distribution resolver sharing this explorer's getter.
func (e *Explorer) Resolver() *catalog.Resolver { return e.resolver }

// Search fetches one page for intent. When the catalog call fails the
// returned page has no records and empty statistics, alongside the error.
func (e *Explorer) Search(ctx context.Context, intent query.Intent, opts Options) (Page, error) {
	req := query.Build(intent)
	page := Page{Request: req, Kind: query.KindAll}
	if intent != nil {
		page.Kind = intent.Kind()
	}

	logf(req.String(), "search kind=%s", page.Kind)
	body, err := e.getter.Get(ctx, req.Path, req.Params)
	if err != nil {
		logf(req.String(), "search failed (%v)", err)
		page.Records = []dcat.Record{}
		page.Stats = stats.Aggregate(nil)
		return page, err
	}

	page.Records = dcat.NormalizeAll(catalog.Items(body))
	page.Stats = stats.Aggregate(page.Records)
	logf(req.String(), "normalized %d record(s)", len(page.Records))

	if opts.WithDistributions {
		page.Distributions = e.Distributions(ctx, page.Records, opts.Concurrency)
	}
	return page, nil
}

// Distributions resolves the access URLs of every record, aligned with records.
func (e *Explorer) Distributions(ctx context.Context, records []dcat.Record, concurrency int) [][]string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.DatasetID()
	}
	logf("", "resolving distributions for %d dataset(s) concurrency=%d", len(ids), max(concurrency, 1))
	return e.resolver.ResolveAll(ctx, ids, concurrency)
}
