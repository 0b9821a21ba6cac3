// Package pipeline fetches a confirmed article, parses it into the series
// model and persists the result.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/nizsak/wikiseries/internal/datastore"
	wikierrors "github.com/nizsak/wikiseries/internal/errors"
	"github.com/nizsak/wikiseries/internal/fileutil"
	"github.com/nizsak/wikiseries/internal/series"
	"github.com/nizsak/wikiseries/internal/wikipedia"
)

// PageFetcher is the part of the wikipedia client the pipeline needs.
type PageFetcher interface {
	CachedFetchPage(ctx context.Context, pageURL string) ([]byte, bool, error)
}

// Options controls where and how a parsed series is persisted.
type Options struct {
	MarkdownDir   string
	JSONDir       string
	WriteJSON     bool
	Overwrite     bool
	DownloadCover bool
	UpdateCovers  bool
	CoverMaxWidth int
	UserAgent     string

	DatastoreEnabled bool
	DatastorePath    string
	DatasetteEnabled bool
	DatasetteURL     string
	DatasetteToken   string
}

// OptionsFromConfig builds Options from the viper configuration.
func OptionsFromConfig() Options {
	return Options{
		MarkdownDir:      viper.GetString("MarkdownOutputDir"),
		JSONDir:          viper.GetString("JSONOutputDir"),
		Overwrite:        viper.GetBool("OverwriteFiles"),
		DownloadCover:    viper.GetBool("covers.download"),
		UpdateCovers:     viper.GetBool("UpdateCovers"),
		CoverMaxWidth:    viper.GetInt("covers.maxwidth"),
		UserAgent:        viper.GetString("wikipedia.useragent"),
		DatastoreEnabled: viper.GetBool("datastore.enabled"),
		DatastorePath:    viper.GetString("datastore.dbfile"),
		DatasetteEnabled: viper.GetBool("datasette.enabled"),
		DatasetteURL:     viper.GetString("datasette.url"),
		DatasetteToken:   viper.GetString("datasette.token"),
	}
}

// Result reports what Run produced.
type Result struct {
	Series       *series.Series
	FromCache    bool
	MarkdownPath string
	JSONPath     string
	CoverPath    string
}

// Pipeline ties fetching, parsing and persistence together.
type Pipeline struct {
	fetcher PageFetcher
	opts    Options
	logger  *slog.Logger
}

// New creates a Pipeline. A nil logger falls back to slog.Default.
func New(fetcher PageFetcher, opts Options, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		fetcher: fetcher,
		opts:    opts,
		logger:  logger,
	}
}

// Run fetches and parses the confirmed match, then persists the series.
// Nothing is written when fetching or parsing fails.
func (p *Pipeline) Run(ctx context.Context, match *wikipedia.SearchResult) (*Result, error) {
	html, fromCache, err := p.fetcher.CachedFetchPage(ctx, match.URL)
	if err != nil {
		return nil, wikierrors.NewFetchParseError(wikierrors.StageFetch, err)
	}
	p.logger.Debug("Fetched article", "url", match.URL, "from_cache", fromCache, "bytes", len(html))

	miniseries := match.QueryType == wikipedia.QueryTypeMiniseries
	s, err := series.Parse(html, match, miniseries)
	if err != nil {
		return nil, wikierrors.NewFetchParseError(wikierrors.StageParse, err)
	}
	p.logger.Info("Parsed series", "title", s.Title, "seasons", len(s.Seasons), "episodes", s.EpisodeCount())

	result := &Result{Series: s, FromCache: fromCache}

	cover := p.fetchCover(s)
	if cover != nil {
		result.CoverPath = cover.LocalPath
	}

	if err := p.writeMarkdown(s, cover, result); err != nil {
		return nil, wikierrors.NewFetchParseError(wikierrors.StagePersist, err)
	}

	if p.opts.WriteJSON {
		path := fileutil.GetJSONFilePath(s.Title, p.opts.JSONDir)
		if _, err := fileutil.WriteJSONFile(s, path, p.opts.Overwrite); err != nil {
			return nil, wikierrors.NewFetchParseError(wikierrors.StagePersist, err)
		}
		result.JSONPath = path
	}

	if err := p.saveToDatastore(s); err != nil {
		return nil, wikierrors.NewFetchParseError(wikierrors.StagePersist, err)
	}

	return result, nil
}

// fetchCover downloads the cover image when enabled. Cover failures are
// logged but never fail the import; the note is still useful without one.
func (p *Pipeline) fetchCover(s *series.Series) *fileutil.CoverDownloadResult {
	if !p.opts.DownloadCover || s.CoverURL == "" {
		return nil
	}

	cover, err := fileutil.DownloadCover(fileutil.CoverDownloadOptions{
		URL:          s.CoverURL,
		OutputDir:    p.opts.MarkdownDir,
		Filename:     fileutil.BuildCoverFilename(s.Title),
		UserAgent:    p.opts.UserAgent,
		MaxWidth:     p.opts.CoverMaxWidth,
		UpdateCovers: p.opts.UpdateCovers,
	})
	if err != nil {
		p.logger.Warn("Cover download failed", "url", s.CoverURL, "error", err)
		return nil
	}
	return cover
}

func (p *Pipeline) saveToDatastore(s *series.Series) error {
	if p.opts.DatastoreEnabled {
		store := datastore.NewSQLiteStore(p.opts.DatastorePath)
		if err := store.Connect(); err != nil {
			return fmt.Errorf("datastore connect: %w", err)
		}
		defer func() { _ = store.Close() }()
		if err := datastore.SaveSeries(store, s); err != nil {
			return err
		}
		p.logger.Debug("Stored series in datastore", "dbfile", p.opts.DatastorePath)
	}

	if p.opts.DatasetteEnabled && p.opts.DatasetteURL != "" {
		client := datastore.NewDatasetteClient(p.opts.DatasetteURL, p.opts.DatasetteToken)
		if err := client.Connect(); err != nil {
			return fmt.Errorf("datasette connect: %w", err)
		}
		if err := datastore.SaveSeries(client, s); err != nil {
			return err
		}
		p.logger.Debug("Pushed series to datasette", "url", p.opts.DatasetteURL)
	}

	return nil
}
