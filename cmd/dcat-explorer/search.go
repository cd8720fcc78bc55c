package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/dcat-explorer-cli/internal/apperr"
	"github.com/idlab-discover/dcat-explorer-cli/internal/explorer"
	"github.com/idlab-discover/dcat-explorer-cli/internal/export"
	"github.com/idlab-discover/dcat-explorer-cli/internal/query"
	"github.com/idlab-discover/dcat-explorer-cli/internal/ui"
)

var (
	searchPageSize      int
	searchPage          int
	searchSort          string
	searchDistributions bool
	searchConcurrency   int
	searchOutput        string
	searchFormat        string
	searchLang          string
	searchLogLevel      string

	modifiedBegin string
	modifiedEnd   string
)

// searchCmd groups one subcommand per search intent
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the catalog and show page statistics",
	Long:  "Search the catalog with one of the supported intents. Every search except 'id' is paged; use --page-size, --page and --sort to move through results.",
}

// kindUsage is the positional argument synopsis of each intent.
var kindUsage = map[query.Kind]string{
	query.KindAll:       "all",
	query.KindID:        "id <dataset-id>",
	query.KindTitle:     "title <title>",
	query.KindPublisher: "publisher <publisher-id>",
	query.KindTheme:     "theme <theme>",
	query.KindFormat:    "format <format>",
	query.KindKeyword:   "keyword <keyword>",
	query.KindSpatial:   "spatial <word1> <word2>",
	query.KindModified:  "modified --begin YYYY-MM-DD --end YYYY-MM-DD",
}

func newSearchSubcommand(kind query.Kind) *cobra.Command {
	c := &cobra.Command{
		Use:   kindUsage[kind],
		Short: kind.Label(),
		Args:  cobra.ExactArgs(kind.Arity()),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, kind, args)
		},
	}
	if kind == query.KindModified {
		c.Args = cobra.NoArgs
		c.Flags().StringVar(&modifiedBegin, "begin", "", "First modification day (YYYY-MM-DD)")
		c.Flags().StringVar(&modifiedEnd, "end", "", "Last modification day (YYYY-MM-DD)")
		_ = c.MarkFlagRequired("begin")
		_ = c.MarkFlagRequired("end")
	}
	return c
}

func runSearch(cmd *cobra.Command, kind query.Kind, args []string) error {
	level, err := resolveLogLevel(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	paging, err := pagingFromConfig()
	if err != nil {
		return err
	}
	opts, err := searchOptions()
	if err != nil {
		return err
	}

	if kind == query.KindModified {
		args = []string{modifiedBegin, modifiedEnd}
	}
	intent, err := query.FromArgs(kind, args, paging)
	if err != nil {
		return apperr.User(err.Error())
	}

	outputPath := strings.TrimSpace(viper.GetString("search.output"))
	outputFormat := viper.GetString("search.format")
	if outputPath != "" {
		if _, err := export.ResolveFormat(outputFormat, outputPath); err != nil {
			return apperr.User(err.Error())
		}
	}

	ex, err := newExplorer()
	if err != nil {
		return err
	}

	// stdout carries the export when writing to "-"
	quiet := level == "quiet" || outputPath == "-"
	out := cmd.OutOrStdout()
	var progressOut = cmd.ErrOrStderr()
	if quiet {
		progressOut = nil
	}

	wf := ui.NewWorkflow(progressOut, "", isTerminal(os.Stderr))
	fetchIdx := wf.AddTask("Query catalog")
	linksIdx := wf.AddTask("Resolve download links")
	exportIdx := -1
	if outputPath != "" {
		exportIdx = wf.AddTask("Export results")
	}
	wf.Start()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	wf.StartTask(fetchIdx, query.Build(intent).String())
	page, err := ex.Search(ctx, intent, explorer.Options{})
	if err != nil {
		wf.FailTask(fetchIdx, "request failed")
		wf.Stop()
		ui.NewResultsUI(cmd.ErrOrStderr(), quiet).PrintError(describeFailure(err))
		return fmt.Errorf("%s: %w", strings.TrimSuffix(describeFailure(err), "."), err)
	}
	wf.CompleteTask(fetchIdx, fmt.Sprintf("%d dataset(s)", len(page.Records)))

	switch {
	case !opts.WithDistributions:
		wf.SkipTask(linksIdx, "use --distributions")
	case page.Empty():
		wf.SkipTask(linksIdx, "no datasets")
	default:
		wf.StartTask(linksIdx, fmt.Sprintf("%d lookup(s)", len(page.Records)))
		page.Distributions = ex.Distributions(ctx, page.Records, opts.Concurrency)
		wf.CompleteTask(linksIdx, fmt.Sprintf("%d link(s)", countLinks(page.Distributions)))
	}

	if exportIdx >= 0 {
		wf.StartTask(exportIdx, outputPath)
		if err := export.WritePage(page, outputPath, outputFormat); err != nil {
			wf.FailTask(exportIdx, err.Error())
			wf.Stop()
			return fmt.Errorf("export results: %w", err)
		}
		wf.CompleteTask(exportIdx, outputPath)
	}
	wf.Stop()

	resultsUI := ui.NewResultsUI(out, quiet)
	if outputPath != "" && outputPath != "-" {
		resultsUI.PrintSaved(outputPath)
	}
	resultsUI.PrintHeader(pageHeader(page), page.Request.String())
	resultsUI.PrintStats(toSummary(page.Stats))
	if page.Empty() {
		resultsUI.PrintNoResults()
		return nil
	}
	resultsUI.PrintCards(toCards(page, viper.GetString("search.lang")))
	return nil
}

func countLinks(dists [][]string) int {
	n := 0
	for _, d := range dists {
		n += len(d)
	}
	return n
}

func init() {
	p := query.DefaultPaging()
	flags := searchCmd.PersistentFlags()
	flags.IntVar(&searchPageSize, "page-size", p.PageSize, fmt.Sprintf("Results per page (%d-%d)", query.MinPageSize, query.MaxPageSize))
	flags.IntVar(&searchPage, "page", p.Page, fmt.Sprintf("Page number (%d-%d)", query.MinPage, query.MaxPage))
	flags.StringVar(&searchSort, "sort", string(p.Sort), "Sort order: -issued|title|-title")
	flags.BoolVar(&searchDistributions, "distributions", false, "Resolve download links for every dataset (one request each)")
	flags.IntVar(&searchConcurrency, "concurrency", 1, "Parallel download link lookups")
	flags.StringVarP(&searchOutput, "output", "o", "", "Write results to a file (- for stdout)")
	flags.StringVarP(&searchFormat, "format", "f", "auto", "Output format: json|yaml|auto")
	flags.StringVar(&searchLang, "lang", "es", "Preferred language for titles and descriptions")
	flags.StringVar(&searchLogLevel, "log-level", "standard", "Log level: quiet|standard|debug")

	// Bind all flags to viper for config file support
	viper.BindPFlag("search.page-size", flags.Lookup("page-size"))
	viper.BindPFlag("search.page", flags.Lookup("page"))
	viper.BindPFlag("search.sort", flags.Lookup("sort"))
	viper.BindPFlag("search.distributions", flags.Lookup("distributions"))
	viper.BindPFlag("search.concurrency", flags.Lookup("concurrency"))
	viper.BindPFlag("search.output", flags.Lookup("output"))
	viper.BindPFlag("search.format", flags.Lookup("format"))
	viper.BindPFlag("search.lang", flags.Lookup("lang"))
	viper.BindPFlag("search.log-level", flags.Lookup("log-level"))

	for _, k := range query.Kinds() {
		searchCmd.AddCommand(newSearchSubcommand(k))
	}
}
