package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/dcat-explorer-cli/internal/apperr"
	"github.com/idlab-discover/dcat-explorer-cli/internal/explorer"
	"github.com/idlab-discover/dcat-explorer-cli/internal/query"
	"github.com/idlab-discover/dcat-explorer-cli/internal/ui"
)

// browseCmd is the interactive explorer: a form, then a dataset browser
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactively pick a search and browse the resulting datasets",
	RunE:  runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if _, err := resolveLogLevel(cmd.ErrOrStderr()); err != nil {
		return err
	}

	ex, err := newExplorer()
	if err != nil {
		return err
	}

	initial := ui.DefaultSearchFormValues()
	initial.PageSize = strconv.Itoa(viper.GetInt("search.page-size"))
	initial.Page = strconv.Itoa(viper.GetInt("search.page"))
	if s := strings.TrimSpace(viper.GetString("search.sort")); s != "" {
		initial.Sort = s
	}
	initial.WithDistributions = viper.GetBool("search.distributions")

	values, err := ui.RunSearchForm(initial)
	if err != nil {
		return err
	}
	intent, err := values.Intent()
	if err != nil {
		return apperr.User(err.Error())
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	spinner := ui.NewSimpleSpinner(cmd.ErrOrStderr(), "Querying "+query.Build(intent).String())
	spinner.Start()
	page, err := ex.Search(ctx, intent, explorer.Options{
		WithDistributions: values.WithDistributions,
		Concurrency:       max(viper.GetInt("search.concurrency"), 1),
	})
	if err != nil {
		spinner.Stop(false, "request failed")
		ui.NewResultsUI(cmd.ErrOrStderr(), false).PrintError(describeFailure(err))
		return fmt.Errorf("%s: %w", strings.TrimSuffix(describeFailure(err), "."), err)
	}
	spinner.Stop(true, fmt.Sprintf("%d dataset(s)", len(page.Records)))

	return ui.RunBrowser(pageHeader(page), toSummary(page.Stats), toCards(page, viper.GetString("search.lang")))
}
