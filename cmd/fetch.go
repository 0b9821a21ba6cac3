package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"

	"github.com/nizsak/wikiseries/internal/pipeline"
	"github.com/nizsak/wikiseries/internal/ratelimit"
	"github.com/nizsak/wikiseries/internal/resolve"
	"github.com/nizsak/wikiseries/internal/tui"
	"github.com/nizsak/wikiseries/internal/wikipedia"
)

// FetchCmd represents the fetch command
type FetchCmd struct {
	Name          string        `short:"n" required:"" help:"Name of the TV series to fetch"`
	Output        string        `short:"o" help:"Subdirectory under markdown output directory for series files"`
	JSON          bool          `help:"Write data to JSON format"`
	JSONOutput    string        `help:"Directory for JSON output (defaults to json/)"`
	NoInteractive bool          `help:"Use the plain numbered prompt instead of the interactive TUI"`
	PromptTimeout time.Duration `help:"Give up on the selection prompt after this long (0 = wait forever)" default:"0"`
	NoCover       bool          `help:"Skip downloading the cover image"`
}

// Run resolves the series name and runs the fetch/parse/persist pipeline.
func (f *FetchCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := newWikipediaClient()
	resolver := resolve.New(&cachedSearcher{client: client}, f.prompter(), slog.Default())

	match, err := resolver.Resolve(ctx, f.Name)
	if err != nil {
		return err
	}
	if match.URL == "" {
		match.URL = client.PageURL(match.Title)
	}
	slog.Info("Resolved series", "title", match.Title, "url", match.URL, "type", match.QueryType)

	opts := pipeline.OptionsFromConfig()
	if f.Output != "" {
		opts.MarkdownDir = filepath.Join(opts.MarkdownDir, f.Output)
	}
	opts.WriteJSON = f.JSON
	if f.JSONOutput != "" {
		opts.JSONDir = f.JSONOutput
	}
	if f.NoCover {
		opts.DownloadCover = false
	}

	result, err := pipeline.New(client, opts, slog.Default()).Run(ctx, match)
	if err != nil {
		return err
	}

	slog.Info("Series stored",
		"title", result.Series.Title,
		"seasons", len(result.Series.Seasons),
		"episodes", result.Series.EpisodeCount(),
		"markdown", result.MarkdownPath)
	return nil
}

// prompter picks the interactive TUI on a terminal, the plain numbered
// prompt otherwise (pipes, CI, --no-interactive).
func (f *FetchCmd) prompter() resolve.Prompter {
	if !f.NoInteractive && isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd()) {
		return tui.Prompter{}
	}
	return resolve.NewConsolePrompter(f.PromptTimeout)
}

func newWikipediaClient() *wikipedia.Client {
	return wikipedia.NewClient(
		wikipedia.WithBaseURL(viper.GetString("wikipedia.baseurl")),
		wikipedia.WithUserAgent(viper.GetString("wikipedia.useragent")),
		wikipedia.WithRateLimiter(ratelimit.New("wikipedia", viper.GetFloat64("wikipedia.ratelimit"))),
		wikipedia.WithSearchLimit(viper.GetInt("wikipedia.searchlimit")),
	)
}

// cachedSearcher adapts the caching search to the resolver's Searcher
// interface, dropping the cache-hit flag.
type cachedSearcher struct {
	client *wikipedia.Client
}

func (s *cachedSearcher) Search(ctx context.Context, name string) ([]wikipedia.SearchResult, error) {
	results, fromCache, err := s.client.CachedSearch(ctx, name)
	if err != nil {
		return nil, err
	}
	if fromCache {
		slog.Debug("Search served from cache", "name", name, "results", len(results))
	}
	return results, nil
}

func (s *cachedSearcher) FindAuthoritative(name string, results []wikipedia.SearchResult) *wikipedia.SearchResult {
	return s.client.FindAuthoritative(name, results)
}
