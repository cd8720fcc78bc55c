package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idlab-discover/dcat-explorer-cli/internal/apperr"
	"github.com/idlab-discover/dcat-explorer-cli/internal/ui"
)

// distributionsCmd lists the download links of one dataset
var distributionsCmd = &cobra.Command{
	Use:   "distributions <dataset-id>",
	Short: "List the download links of a dataset",
	Long:  "List the access URLs and formats of one dataset. The dataset id is the last segment of its catalog identifier.",
	Args:  cobra.ExactArgs(1),
	RunE:  runDistributions,
}

func runDistributions(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	id := strings.TrimSpace(args[0])
	if id == "" {
		return apperr.User("dataset id is required")
	}

	ex, err := newExplorer()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	quiet := level == "quiet"
	var spinner *ui.SimpleSpinner
	if !quiet {
		spinner = ui.NewSimpleSpinner(cmd.ErrOrStderr(), "Resolving download links for "+ui.Highlight.Render(id))
		spinner.Start()
	}

	dists := ex.Resolver().ResolveDistributions(ctx, id)

	if spinner != nil {
		spinner.Stop(true, fmt.Sprintf("%d download link(s) for %s", len(dists), id))
	}

	out := cmd.OutOrStdout()
	if len(dists) == 0 {
		if !quiet {
			fmt.Fprintln(out, ui.FormatStatus("warning", ui.Warning.Render("No download links available.")))
		}
		return nil
	}
	for _, d := range dists {
		if quiet {
			fmt.Fprintln(out, d.AccessURL)
			continue
		}
		line := fmt.Sprintf("  %s %s", ui.GetBullet(), ui.Link.Render(d.AccessURL))
		if d.Format != "" {
			line += " " + ui.Dim.Render("("+d.Format+")")
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
