package tui

import (
	"context"

	wikierrors "github.com/nizsak/wikiseries/internal/errors"
	"github.com/nizsak/wikiseries/internal/wikipedia"
)

// Prompter adapts the interactive list UI to the resolver's prompt
// contract: a quit or stop in the UI surfaces as an aborted resolution.
type Prompter struct{}

// Choose runs the selection UI and returns the chosen candidate index.
func (Prompter) Choose(ctx context.Context, name string, results []wikipedia.SearchResult) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, wikierrors.NewAbortedByUserError("resolution interrupted")
	}

	selection, err := Select(name, results)
	if err != nil {
		return 0, err
	}

	switch selection.Action {
	case ActionSelected:
		return selection.Index, nil
	default:
		return 0, wikierrors.NewAbortedByUserError("selection cancelled")
	}
}
