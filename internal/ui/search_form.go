package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/idlab-discover/dcat-explorer-cli/internal/apperr"
	"github.com/idlab-discover/dcat-explorer-cli/internal/query"
)

// SearchFormValues holds what the interactive search form collects.
// Numbers stay strings so the inputs can validate them in place.
type SearchFormValues struct {
	Kind              string
	Arg1              string
	Arg2              string
	PageSize          string
	Page              string
	Sort              string
	WithDistributions bool
}

// DefaultSearchFormValues pre-fills the form with the default paging.
func DefaultSearchFormValues() SearchFormValues {
	p := query.DefaultPaging()
	return SearchFormValues{
		Kind:     string(query.KindAll),
		PageSize: strconv.Itoa(p.PageSize),
		Page:     strconv.Itoa(p.Page),
		Sort:     string(p.Sort),
	}
}

// Paging converts the paging inputs and checks them against the catalog limits.
func (v SearchFormValues) Paging() (query.Paging, error) {
	size, err := strconv.Atoi(strings.TrimSpace(v.PageSize))
	if err != nil {
		return query.Paging{}, fmt.Errorf("page size must be a number")
	}
	page, err := strconv.Atoi(strings.TrimSpace(v.Page))
	if err != nil {
		return query.Paging{}, fmt.Errorf("page must be a number")
	}
	p := query.Paging{PageSize: size, Page: page, Sort: query.Sort(v.Sort)}
	if err := p.Validate(); err != nil {
		return query.Paging{}, err
	}
	return p, nil
}

// Intent builds the search intent described by the form.
func (v SearchFormValues) Intent() (query.Intent, error) {
	kind, err := query.ParseKind(v.Kind)
	if err != nil {
		return nil, err
	}
	p := query.DefaultPaging()
	if kind != query.KindID {
		if p, err = v.Paging(); err != nil {
			return nil, err
		}
	}
	args := []string{v.Arg1, v.Arg2}[:kind.Arity()]
	return query.FromArgs(kind, args, p)
}

// argPrompts returns the title and placeholder of each positional argument.
func argPrompts(kind query.Kind) [][2]string {
	switch kind {
	case query.KindID:
		return [][2]string{{"Dataset ID", "e05068001-mapas-de-cultivos"}}
	case query.KindTitle:
		return [][2]string{{"Title", "calidad del aire"}}
	case query.KindPublisher:
		return [][2]string{{"Publisher ID", "L01280796"}}
	case query.KindTheme:
		return [][2]string{{"Theme", "hacienda"}}
	case query.KindFormat:
		return [][2]string{{"Format", "csv"}}
	case query.KindKeyword:
		return [][2]string{{"Keyword", "gastos"}}
	case query.KindSpatial:
		return [][2]string{{"Spatial word 1", "Autonomia"}, {"Spatial word 2", "Madrid"}}
	case query.KindModified:
		return [][2]string{{"Begin date (YYYY-MM-DD)", "2024-01-01"}, {"End date (YYYY-MM-DD)", "2024-01-31"}}
	default:
		return nil
	}
}

func required(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", strings.ToLower(label))
		}
		return nil
	}
}

func intRange(label string, lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < lo || n > hi {
			return fmt.Errorf("%s must be between %d and %d", label, lo, hi)
		}
		return nil
	}
}

func kindForm(v *SearchFormValues) *huh.Form {
	options := make([]huh.Option[string], 0, len(query.Kinds()))
	for _, k := range query.Kinds() {
		options = append(options, huh.NewOption(k.Label(), string(k)))
	}
	return huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Search type").
			Description("How should the catalog be searched?").
			Options(options...).
			Value(&v.Kind),
	))
}

func parametersForm(v *SearchFormValues, kind query.Kind) *huh.Form {
	var fields []huh.Field
	targets := []*string{&v.Arg1, &v.Arg2}
	for i, prompt := range argPrompts(kind) {
		fields = append(fields, huh.NewInput().
			Title(prompt[0]).
			Placeholder(prompt[1]).
			Value(targets[i]).
			Validate(required(prompt[0])))
	}

	if kind != query.KindID {
		sorts := make([]huh.Option[string], 0, len(query.Sorts()))
		for _, s := range query.Sorts() {
			sorts = append(sorts, huh.NewOption(string(s), string(s)))
		}
		fields = append(fields,
			huh.NewInput().
				Title("Results per page").
				Value(&v.PageSize).
				Validate(intRange("page size", query.MinPageSize, query.MaxPageSize)),
			huh.NewInput().
				Title("Page").
				Value(&v.Page).
				Validate(intRange("page", query.MinPage, query.MaxPage)),
			huh.NewSelect[string]().
				Title("Sort by").
				Options(sorts...).
				Value(&v.Sort),
		)
	}

	fields = append(fields, huh.NewConfirm().
		Title("Resolve download links?").
		Description("One extra request per dataset.").
		Value(&v.WithDistributions).
		Affirmative("Yes").
		Negative("No"))

	return huh.NewForm(huh.NewGroup(fields...).Title(kind.Label()))
}

// RunSearchForm asks for the search type, then for its parameters.
// Aborting either step returns apperr.ErrCancelled.
func RunSearchForm(initial SearchFormValues) (SearchFormValues, error) {
	v := initial
	if err := runForm(kindForm(&v)); err != nil {
		return v, err
	}
	kind, err := query.ParseKind(v.Kind)
	if err != nil {
		return v, err
	}
	if err := runForm(parametersForm(&v, kind)); err != nil {
		return v, err
	}
	return v, nil
}

func runForm(f *huh.Form) error {
	if err := f.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return apperr.ErrCancelled
		}
		return err
	}
	return nil
}
