package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/idlab-discover/dcat-explorer-cli/internal/catalog"
	"github.com/idlab-discover/dcat-explorer-cli/internal/query"
	"github.com/idlab-discover/dcat-explorer-cli/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dcat-explorer",
	Short: "Explore the datos.gob.es open-data catalog from the terminal",
	Long:  longDescription,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initUIAndBanner(cmd)
	},

	// When invoked without a subcommand, show help (with banner) instead of
	// printing a plain usage output.
	RunE: func(cmd *cobra.Command, args []string) error {
		initUIAndBanner(cmd)
		return cmd.Help()
	},
}

var (
	cfgFile string
	version = "dev"

	baseURL string
	timeout time.Duration
)

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// GetRootCmd returns the root command for use with fang
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.dcat-explorer.yaml or ./config/defaults.yaml)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", catalog.DefaultBaseURL, "Catalog API base URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "HTTP timeout per catalog request (0 disables)")

	viper.BindPFlag("catalog.base-url", rootCmd.PersistentFlags().Lookup("base-url"))
	viper.BindPFlag("catalog.timeout", rootCmd.PersistentFlags().Lookup("timeout"))

	setDefaults()

	// Ensure `--help` (and help subcommands) show the banner consistently.
	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		initUIAndBanner(cmd)
		defaultHelp(cmd, args)
	})

	rootCmd.AddCommand(searchCmd, distributionsCmd, browseCmd)
}

func setDefaults() {
	p := query.DefaultPaging()
	viper.SetDefault("catalog.base-url", catalog.DefaultBaseURL)
	viper.SetDefault("catalog.timeout", 30*time.Second)
	viper.SetDefault("search.page-size", p.PageSize)
	viper.SetDefault("search.page", p.Page)
	viper.SetDefault("search.sort", string(p.Sort))
	viper.SetDefault("search.concurrency", 1)
	viper.SetDefault("search.lang", "es")
	viper.SetDefault("search.format", "auto")
	viper.SetDefault("search.log-level", "standard")
}

func initConfig() {
	// Environment variables, e.g. DCATEXPLORER_CATALOG_BASE_URL for
	// catalog.base-url.
	viper.SetEnvPrefix("DCATEXPLORER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	var err error
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		err = viper.ReadInConfig()
	} else {
		home, herr := os.UserHomeDir()
		cobra.CheckErr(herr)

		viper.SetConfigType("yaml")
		viper.AddConfigPath(home)
		viper.AddConfigPath("./config")

		// Try .dcat-explorer first, then the shipped defaults
		viper.SetConfigName(".dcat-explorer")
		err = viper.ReadInConfig()

		notFound := &viper.ConfigFileNotFoundError{}
		if err != nil && errors.As(err, notFound) {
			viper.SetConfigName("defaults")
			err = viper.ReadInConfig()
		}
	}

	notFound := &viper.ConfigFileNotFoundError{}
	switch {
	case err != nil && !errors.As(err, notFound):
		cobra.CheckErr(err)
	case err != nil:
		// The config file is optional
	default:
		configMsg := ui.Dim.Render("Using config file: ") + ui.Secondary.Render(viper.ConfigFileUsed())
		fmt.Fprintln(os.Stderr, configMsg)
	}
}

const longDescription = "Search the datos.gob.es DCAT catalog by title, publisher, theme, format, keyword, spatial coverage or modification date, with page statistics and download links."

func initUIAndBanner(cmd *cobra.Command) {
	if cmd == nil {
		return
	}
	cmd.Root().Long = ui.RenderGradientBanner(ui.BannerASCII) + "\n" + longDescription
}
