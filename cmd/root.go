// Package cmd wires the Kong CLI to the resolver and pipeline.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/spf13/viper"

	"github.com/nizsak/wikiseries/internal/config"
	wikierrors "github.com/nizsak/wikiseries/internal/errors"
	"github.com/nizsak/wikiseries/internal/logging"
)

// Exit codes. Scripts key off these, so each failure class gets its own.
const (
	ExitOK                   = 0
	ExitFailure              = 1
	ExitNoResults            = 2
	ExitInvalidSelection     = 3
	ExitUnconfirmedSelection = 4
	ExitFetchParse           = 5
	ExitAborted              = 6
)

var osExit = os.Exit

// CLI represents the complete command structure for the wikiseries application
type CLI struct {
	// Global flags
	LogLevel     string `short:"L" help:"Log level" enum:"debug,info,warning,error,critical" default:"info"`
	LogConfig    string `short:"l" help:"Path to a JSON logging configuration file" type:"path"`
	Overwrite    bool   `help:"Overwrite existing markdown files when processing"`
	UpdateCovers bool   `help:"Re-download cover images even if they already exist"`

	// Cache flags
	CacheDBFile string `help:"Path to cache SQLite database file" default:"./cache.db"`
	CacheTTL    string `help:"Cache time-to-live duration (e.g., 168h for 7 days)" default:"168h"`

	Fetch FetchCmd `cmd:"" default:"withargs" help:"Fetch a TV series from Wikipedia and store its episodes"`
	Cache CacheCmd `cmd:"" help:"Manage the local article cache"`
}

// Execute runs the Kong-based CLI
func Execute() {
	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("wikiseries"),
		kong.Description("Fetch TV series season and episode data from Wikipedia."),
		kong.UsageOnError(),
	)

	// Logging must be up before anything else; a broken log config is a
	// hard configuration error
	if err := logging.Setup(cli.LogLevel, cli.LogConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		osExit(ExitFailure)
		return
	}

	initConfig()
	updateGlobalConfig(&cli)

	if err := ctx.Run(); err != nil {
		slog.Error("Command failed", "error", err)
		osExit(exitCodeFor(err))
	}
}

// exitCodeFor maps the typed resolution and pipeline errors to exit codes.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case wikierrors.IsNoResultsError(err):
		return ExitNoResults
	case wikierrors.IsNonIntegerSelectionError(err), wikierrors.IsInvalidSelectionError(err):
		return ExitInvalidSelection
	case wikierrors.IsUnconfirmedSelectionError(err):
		return ExitUnconfirmedSelection
	case wikierrors.IsFetchParseError(err):
		return ExitFetchParse
	case wikierrors.IsAbortedByUserError(err):
		return ExitAborted
	case errors.Is(err, logging.ErrInvalidLogConfig):
		return ExitFailure
	default:
		return ExitFailure
	}
}

func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Debug("No config file found, using defaults")
		} else {
			slog.Error("Fatal error reading config file", "error", err)
			osExit(ExitFailure)
			return
		}
	}

	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	config.SetOverwriteFiles(cli.Overwrite)
	config.SetUpdateCovers(cli.UpdateCovers)
	viper.Set("OverwriteFiles", cli.Overwrite)
	viper.Set("UpdateCovers", cli.UpdateCovers)

	viper.Set("cache.dbfile", cli.CacheDBFile)
	viper.Set("cache.ttl", cli.CacheTTL)
}
