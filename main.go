package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	cmd "github.com/idlab-discover/dcat-explorer-cli/cmd/dcat-explorer"
	"github.com/idlab-discover/dcat-explorer-cli/internal/apperr"
	"github.com/idlab-discover/dcat-explorer-cli/internal/ui"
)

// Version is set at build time
var Version = "dev"

func main() {
	cmd.SetVersion(Version)
	if err := fang.Execute(
		context.Background(),
		cmd.GetRootCmd(),
		fang.WithColorSchemeFunc(ui.FangColorScheme),
	); err != nil {
		// A cancelled interactive flow exits 0.
		os.Exit(apperr.ExitCode(err))
	}
}
