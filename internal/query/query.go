// Package query maps a search intent onto a catalog request descriptor.
//
// Build is pure: it never touches the network and never fails. Free-text
// fields are passed through verbatim; the catalog is the validator of last
// resort. Range checks on paging live in Paging.Validate so that callers
// (the CLI, the interactive form) can reject bad input before building.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Sort is the catalog's ordering parameter.
type Sort string

const (
	SortIssuedDesc Sort = "-issued"
	SortTitle      Sort = "title"
	SortTitleDesc  Sort = "-title"
)

// Sorts lists the supported sort values in the order they are offered to users.
func Sorts() []Sort { return []Sort{SortIssuedDesc, SortTitle, SortTitleDesc} }

// ParseSort maps a user supplied string to a Sort.
func ParseSort(s string) (Sort, error) {
	s = strings.TrimSpace(s)
	for _, v := range Sorts() {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid sort %q (expected -issued|title|-title)", s)
}

// Paging bounds accepted by the catalog.
const (
	MinPageSize = 1
	MaxPageSize = 50
	MinPage     = 0
	MaxPage     = 100

	DefaultPageSize = 10
)

// Query parameter names.
const (
	ParamPageSize = "_pageSize"
	ParamPage     = "_page"
	ParamSort     = "_sort"
)

// Paging holds the options shared by every listing intent.
type Paging struct {
	PageSize int
	Page     int
	Sort     Sort
}

// DefaultPaging returns the first page of ten results, newest first.
func DefaultPaging() Paging {
	return Paging{PageSize: DefaultPageSize, Page: MinPage, Sort: SortIssuedDesc}
}

// Validate reports whether the paging options are within the catalog limits.
func (p Paging) Validate() error {
	if p.PageSize < MinPageSize || p.PageSize > MaxPageSize {
		return fmt.Errorf("page size %d out of range [%d, %d]", p.PageSize, MinPageSize, MaxPageSize)
	}
	if p.Page < MinPage || p.Page > MaxPage {
		return fmt.Errorf("page %d out of range [%d, %d]", p.Page, MinPage, MaxPage)
	}
	if _, err := ParseSort(string(p.Sort)); err != nil {
		return err
	}
	return nil
}

// withDefaults fills unset fields from DefaultPaging, so a zero Paging
// behaves like the default first page.
func (p Paging) withDefaults() Paging {
	d := DefaultPaging()
	if p.PageSize == 0 {
		p.PageSize = d.PageSize
	}
	if p.Sort == "" {
		p.Sort = d.Sort
	}
	return p
}

func (p Paging) values() url.Values {
	v := url.Values{}
	v.Set(ParamPageSize, strconv.Itoa(p.PageSize))
	v.Set(ParamPage, strconv.Itoa(p.Page))
	v.Set(ParamSort, string(p.Sort))
	return v
}

// Request is the descriptor handed to the catalog client.
type Request struct {
	Path   string
	Params url.Values
}

// String renders the request as a relative URL, mostly for logs.
func (r Request) String() string {
	u := url.URL{Path: r.Path}
	if len(r.Params) > 0 {
		u.RawQuery = r.Params.Encode()
	}
	return u.String()
}

// Build maps an intent to its endpoint path and query parameters.
// A nil intent is treated as a full listing with default paging, and unset
// paging fields take their default values.
func Build(intent Intent) Request {
	if intent == nil {
		intent = All{Paging: DefaultPaging()}
	}
	req := Request{Path: intent.path()}
	if p, ok := intent.paging(); ok {
		req.Params = p.withDefaults().values()
	}
	return req
}
