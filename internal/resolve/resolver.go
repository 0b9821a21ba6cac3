// Package resolve turns a free-text series name into exactly one confirmed
// search result, involving the operator only when automatic resolution is
// impossible.
package resolve

import (
	"context"
	"fmt"
	"log/slog"

	wikierrors "github.com/nizsak/wikiseries/internal/errors"
	"github.com/nizsak/wikiseries/internal/wikipedia"
)

// Searcher is the search backend consumed by the resolver.
type Searcher interface {
	Search(ctx context.Context, name string) ([]wikipedia.SearchResult, error)
	FindAuthoritative(name string, results []wikipedia.SearchResult) *wikipedia.SearchResult
}

// Prompter presents an ordered candidate list to the operator and returns
// the chosen index. It is the only point where the resolver blocks on an
// external actor, so implementations must honor ctx cancellation.
type Prompter interface {
	Choose(ctx context.Context, name string, results []wikipedia.SearchResult) (int, error)
}

// Resolver orchestrates search, match checking and manual disambiguation.
type Resolver struct {
	searcher Searcher
	prompter Prompter
	logger   *slog.Logger
}

// New creates a Resolver. A nil logger falls back to slog.Default.
func New(searcher Searcher, prompter Prompter, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		searcher: searcher,
		prompter: prompter,
		logger:   logger,
	}
}

// Resolve produces exactly one confirmed match for name or fails with a
// typed error; it never proceeds silently with zero or multiple matches.
// The same authoritativeness predicate decides both the automatic path and
// the re-check after a manual selection, so "confirmed" means one thing.
func (r *Resolver) Resolve(ctx context.Context, name string) (*wikipedia.SearchResult, error) {
	r.logger.Info("Searching for series", "name", name)

	results, err := r.searcher.Search(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("search for %q: %w", name, err)
	}

	if match := r.searcher.FindAuthoritative(name, results); match != nil {
		r.logger.Debug("Authoritative match found", "title", match.Title, "type", match.QueryType)
		return match, nil
	}

	if len(results) == 0 {
		return nil, wikierrors.NewNoResultsError(name)
	}

	choice, err := r.prompter.Choose(ctx, name, results)
	if err != nil {
		return nil, err
	}
	if choice < 0 || choice >= len(results) {
		return nil, wikierrors.NewInvalidSelectionError(choice, len(results))
	}

	selected := results[choice]
	r.logger.Debug("Operator selected candidate", "index", choice, "title", selected.Title)

	match := r.searcher.FindAuthoritative(name, results[choice:choice+1])
	if match == nil {
		return nil, wikierrors.NewUnconfirmedSelectionError(selected.Title)
	}

	return match, nil
}
