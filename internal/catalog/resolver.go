package catalog

import (
	"context"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/idlab-discover/dcat-explorer-cli/internal/dcat"
)

const distributionPath = "/catalog/distribution/dataset/"

// Getter is the single call the resolver needs from a catalog client.
type Getter interface {
	Get(ctx context.Context, path string, params url.Values) (any, error)
}

// Distribution is one downloadable representation of a dataset.
type Distribution struct {
	AccessURL string `json:"accessURL" yaml:"accessURL"`
	Format    string `json:"format,omitempty" yaml:"format,omitempty"`
}

// Resolver looks up the distributions of individual datasets. Distribution
// links are supplementary: every failure degrades to an empty result.
type Resolver struct {
	getter Getter
}

// NewResolver creates a Resolver backed by getter (usually a *Client).
func NewResolver(getter Getter) *Resolver {
	return &Resolver{getter: getter}
}

// DistributionPath is the endpoint listing the distributions of datasetID.
func DistributionPath(datasetID string) string {
	return distributionPath + datasetID
}

// ResolveDistributions fetches the distributions of one dataset. Network,
// decode and shape failures all yield an empty, non-nil slice.
func (r *Resolver) ResolveDistributions(ctx context.Context, datasetID string) []Distribution {
	out := []Distribution{}
	datasetID = strings.TrimSpace(datasetID)
	if r == nil || r.getter == nil || datasetID == "" {
		return out
	}

	body, err := r.getter.Get(ctx, DistributionPath(datasetID), nil)
	if err != nil {
		logf(DistributionPath(datasetID), "distributions unavailable (%v)", err)
		return out
	}

	for _, it := range Items(body) {
		obj, ok := it.(map[string]any)
		if !ok {
			continue
		}
		format := dcat.FormatValue(obj["format"])
		for _, u := range dcat.Strings(obj["accessURL"]) {
			out = append(out, Distribution{AccessURL: u, Format: format})
		}
	}
	return out
}

// Resolve returns the access URLs of one dataset, in catalog order.
func (r *Resolver) Resolve(ctx context.Context, datasetID string) []string {
	dists := r.ResolveDistributions(ctx, datasetID)
	urls := make([]string, 0, len(dists))
	for _, d := range dists {
		urls = append(urls, d.AccessURL)
	}
	return urls
}

// ResolveAll resolves every id and returns the URLs aligned with ids. With
// concurrency <= 1 lookups run one after another in order; otherwise at most
// concurrency lookups are in flight. The result is complete when returned.
func (r *Resolver) ResolveAll(ctx context.Context, ids []string, concurrency int) [][]string {
	out := make([][]string, len(ids))
	if concurrency <= 1 {
		for i, id := range ids {
			out[i] = r.Resolve(ctx, id)
		}
		return out
	}

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, id := range ids {
		g.Go(func() error {
			out[i] = r.Resolve(ctx, id)
			return nil
		})
	}
	_ = g.Wait()
	return out
}
