package query

import (
	"fmt"
	"strings"
	"time"
)

// Kind names one of the nine supported search intents.
type Kind string

const (
	KindAll       Kind = "all"
	KindID        Kind = "id"
	KindTitle     Kind = "title"
	KindPublisher Kind = "publisher"
	KindTheme     Kind = "theme"
	KindFormat    Kind = "format"
	KindKeyword   Kind = "keyword"
	KindSpatial   Kind = "spatial"
	KindModified  Kind = "modified"
)

// Kinds lists every intent in menu order.
func Kinds() []Kind {
	return []Kind{KindAll, KindID, KindTitle, KindPublisher, KindTheme, KindFormat, KindKeyword, KindSpatial, KindModified}
}

// ParseKind maps a user supplied string to a Kind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown search intent %q", s)
}

// Label is the human readable name of the intent.
func (k Kind) Label() string {
	switch k {
	case KindAll:
		return "Full listing"
	case KindID:
		return "By ID"
	case KindTitle:
		return "By title"
	case KindPublisher:
		return "By publisher"
	case KindTheme:
		return "By theme"
	case KindFormat:
		return "By format"
	case KindKeyword:
		return "By keyword"
	case KindSpatial:
		return "By spatial coverage"
	case KindModified:
		return "By modification date"
	default:
		return string(k)
	}
}

// Arity is the number of positional arguments the intent needs.
func (k Kind) Arity() int {
	switch k {
	case KindAll:
		return 0
	case KindSpatial, KindModified:
		return 2
	default:
		return 1
	}
}

const datasetPath = "/catalog/dataset"

// DateLayout is the calendar date format accepted for modification ranges.
const DateLayout = "2006-01-02"

// Intent is a closed set of search intents. Each variant carries only the
// parameters it needs.
type Intent interface {
	Kind() Kind
	path() string
	paging() (Paging, bool)
}

// All lists every dataset.
type All struct{ Paging Paging }

// ByID fetches a single dataset. It takes no paging options.
type ByID struct{ ID string }

// ByTitle searches dataset titles.
type ByTitle struct {
	Title  string
	Paging Paging
}

// ByPublisher lists datasets of a publisher id.
type ByPublisher struct {
	PublisherID string
	Paging      Paging
}

// ByTheme lists datasets classified under a theme.
type ByTheme struct {
	Theme  string
	Paging Paging
}

// ByFormat lists datasets with a distribution in the given format.
type ByFormat struct {
	Format string
	Paging Paging
}

// ByKeyword lists datasets tagged with a keyword.
type ByKeyword struct {
	Keyword string
	Paging  Paging
}

// BySpatial lists datasets by a two-word spatial coverage, e.g. Autonomia/Madrid.
type BySpatial struct {
	Word1, Word2 string
	Paging       Paging
}

// ByModifiedRange lists datasets modified between two calendar days, inclusive.
type ByModifiedRange struct {
	Begin, End time.Time
	Paging     Paging
}

func (All) Kind() Kind             { return KindAll }
func (ByID) Kind() Kind            { return KindID }
func (ByTitle) Kind() Kind         { return KindTitle }
func (ByPublisher) Kind() Kind     { return KindPublisher }
func (ByTheme) Kind() Kind         { return KindTheme }
func (ByFormat) Kind() Kind        { return KindFormat }
func (ByKeyword) Kind() Kind       { return KindKeyword }
func (BySpatial) Kind() Kind       { return KindSpatial }
func (ByModifiedRange) Kind() Kind { return KindModified }

func (All) path() string               { return datasetPath }
func (i ByID) path() string            { return datasetPath + "/" + i.ID }
func (i ByTitle) path() string         { return datasetPath + "/title/" + i.Title }
func (i ByPublisher) path() string     { return datasetPath + "/publisher/" + i.PublisherID }
func (i ByTheme) path() string         { return datasetPath + "/theme/" + i.Theme }
func (i ByFormat) path() string        { return datasetPath + "/format/" + i.Format }
func (i ByKeyword) path() string       { return datasetPath + "/keyword/" + i.Keyword }
func (i BySpatial) path() string       { return datasetPath + "/spatial/" + i.Word1 + "/" + i.Word2 }
func (i ByModifiedRange) path() string {
	return datasetPath + "/modified/begin/" + RangeBegin(i.Begin) + "/end/" + RangeEnd(i.End)
}

func (ByID) paging() (Paging, bool)              { return Paging{}, false }
func (i All) paging() (Paging, bool)             { return i.Paging, true }
func (i ByTitle) paging() (Paging, bool)         { return i.Paging, true }
func (i ByPublisher) paging() (Paging, bool)     { return i.Paging, true }
func (i ByTheme) paging() (Paging, bool)         { return i.Paging, true }
func (i ByFormat) paging() (Paging, bool)        { return i.Paging, true }
func (i ByKeyword) paging() (Paging, bool)       { return i.Paging, true }
func (i BySpatial) paging() (Paging, bool)       { return i.Paging, true }
func (i ByModifiedRange) paging() (Paging, bool) { return i.Paging, true }

// RangeBegin formats the lower bound of a modification range (start of day).
func RangeBegin(t time.Time) string { return t.Format(DateLayout) + "T00:00Z" }

// RangeEnd formats the upper bound of a modification range (last minute of day).
func RangeEnd(t time.Time) string { return t.Format(DateLayout) + "T23:59Z" }

// FromArgs builds an intent from its kind and positional arguments, as typed
// on the command line or entered in the interactive form. Dates for
// KindModified use DateLayout.
func FromArgs(kind Kind, args []string, p Paging) (Intent, error) {
	if len(args) != kind.Arity() {
		return nil, fmt.Errorf("%s search expects %d argument(s), got %d", kind, kind.Arity(), len(args))
	}
	for i, a := range args {
		if strings.TrimSpace(a) == "" {
			return nil, fmt.Errorf("%s search: argument %d is empty", kind, i+1)
		}
	}

	switch kind {
	case KindAll:
		return All{Paging: p}, nil
	case KindID:
		return ByID{ID: args[0]}, nil
	case KindTitle:
		return ByTitle{Title: args[0], Paging: p}, nil
	case KindPublisher:
		return ByPublisher{PublisherID: args[0], Paging: p}, nil
	case KindTheme:
		return ByTheme{Theme: args[0], Paging: p}, nil
	case KindFormat:
		return ByFormat{Format: args[0], Paging: p}, nil
	case KindKeyword:
		return ByKeyword{Keyword: args[0], Paging: p}, nil
	case KindSpatial:
		return BySpatial{Word1: args[0], Word2: args[1], Paging: p}, nil
	case KindModified:
		begin, err := time.Parse(DateLayout, strings.TrimSpace(args[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid begin date %q (expected YYYY-MM-DD)", args[0])
		}
		end, err := time.Parse(DateLayout, strings.TrimSpace(args[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid end date %q (expected YYYY-MM-DD)", args[1])
		}
		return ByModifiedRange{Begin: begin, End: end, Paging: p}, nil
	default:
		return nil, fmt.Errorf("unknown search intent %q", kind)
	}
}
