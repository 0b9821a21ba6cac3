package resolve

import (
	"context"
	"fmt"
	"strings"
	"testing"

	wikierrors "github.com/nizsak/wikiseries/internal/errors"
	"github.com/nizsak/wikiseries/internal/wikipedia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSearcher serves canned results and applies the same predicate as the
// real client: exactly one series/miniseries result whose base title equals
// the query.
type fakeSearcher struct {
	results   []wikipedia.SearchResult
	searchErr error
}

func (f *fakeSearcher) Search(_ context.Context, name string) ([]wikipedia.SearchResult, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.results, nil
}

func (f *fakeSearcher) FindAuthoritative(name string, results []wikipedia.SearchResult) *wikipedia.SearchResult {
	want := strings.ToLower(strings.TrimSpace(name))
	var match *wikipedia.SearchResult
	count := 0
	for i := range results {
		r := &results[i]
		if !r.QueryType.IsSeries() {
			continue
		}
		if strings.ToLower(r.BaseTitle()) != want {
			continue
		}
		match = r
		count++
		if count > 1 {
			return nil
		}
	}
	return match
}

// scriptedPrompter returns a fixed choice (or error) and records whether and
// what it was asked.
type scriptedPrompter struct {
	choice  int
	err     error
	calls   int
	shown   []wikipedia.SearchResult
}

func (s *scriptedPrompter) Choose(_ context.Context, name string, results []wikipedia.SearchResult) (int, error) {
	s.calls++
	s.shown = results
	if s.err != nil {
		return 0, s.err
	}
	return s.choice, nil
}

var darkResults = []wikipedia.SearchResult{
	{Title: "Dark", QueryType: wikipedia.QueryTypeSeries},
	{Title: "Dark (2017 TV series)", QueryType: wikipedia.QueryTypeSeries},
	{Title: "Dark (film)", QueryType: wikipedia.QueryTypeFilm},
}

func TestResolveAutomaticSingleHit(t *testing.T) {
	prompter := &scriptedPrompter{}
	r := New(&fakeSearcher{results: []wikipedia.SearchResult{
		{Title: "Chernobyl (miniseries)", QueryType: wikipedia.QueryTypeMiniseries},
	}}, prompter, nil)

	match, err := r.Resolve(context.Background(), "Chernobyl")
	require.NoError(t, err)
	assert.Equal(t, "Chernobyl (miniseries)", match.Title)
	assert.Equal(t, 0, prompter.calls, "automatic path must not prompt")
}

func TestResolveEmptyResults(t *testing.T) {
	prompter := &scriptedPrompter{}
	r := New(&fakeSearcher{}, prompter, nil)

	_, err := r.Resolve(context.Background(), "Nonexistent Show")
	assert.True(t, wikierrors.IsNoResultsError(err))
	assert.Equal(t, 0, prompter.calls, "no prompt when there is nothing to choose")
}

func TestResolveManualSelection(t *testing.T) {
	// Two series share the base title "Dark", so the set is ambiguous and
	// manual disambiguation is required.
	prompter := &scriptedPrompter{choice: 1}
	r := New(&fakeSearcher{results: darkResults}, prompter, nil)

	match, err := r.Resolve(context.Background(), "Dark")
	require.NoError(t, err)
	assert.Equal(t, "Dark (2017 TV series)", match.Title)
	assert.Equal(t, 1, prompter.calls, "exactly one prompt")
	require.Len(t, prompter.shown, 3)
	assert.Equal(t, "Dark", prompter.shown[0].Title, "candidate order preserved")
	assert.Equal(t, "Dark (film)", prompter.shown[2].Title)
}

func TestResolveEveryValidSelection(t *testing.T) {
	for _, choice := range []int{0, 1} {
		prompter := &scriptedPrompter{choice: choice}
		r := New(&fakeSearcher{results: darkResults}, prompter, nil)

		match, err := r.Resolve(context.Background(), "Dark")
		require.NoError(t, err, "choice %d", choice)
		assert.Equal(t, darkResults[choice].Title, match.Title)
	}
}

func TestResolveSelectionOutOfRange(t *testing.T) {
	prompter := &scriptedPrompter{choice: 3} // == len(results)
	r := New(&fakeSearcher{results: darkResults}, prompter, nil)

	_, err := r.Resolve(context.Background(), "Dark")
	assert.True(t, wikierrors.IsInvalidSelectionError(err))

	prompter = &scriptedPrompter{choice: -1}
	r = New(&fakeSearcher{results: darkResults}, prompter, nil)

	_, err = r.Resolve(context.Background(), "Dark")
	assert.True(t, wikierrors.IsInvalidSelectionError(err))
}

func TestResolveNonIntegerSelection(t *testing.T) {
	prompter := &scriptedPrompter{err: wikierrors.NewNonIntegerSelectionError("abc")}
	r := New(&fakeSearcher{results: darkResults}, prompter, nil)

	_, err := r.Resolve(context.Background(), "Dark")
	assert.True(t, wikierrors.IsNonIntegerSelectionError(err))
}

func TestResolveUnconfirmedSelection(t *testing.T) {
	// Index 2 is the film; the singleton re-check must reject it.
	prompter := &scriptedPrompter{choice: 2}
	r := New(&fakeSearcher{results: darkResults}, prompter, nil)

	_, err := r.Resolve(context.Background(), "Dark")
	assert.True(t, wikierrors.IsUnconfirmedSelectionError(err))
	assert.Contains(t, err.Error(), "Dark (film)")
}

func TestResolveAborted(t *testing.T) {
	prompter := &scriptedPrompter{err: wikierrors.NewAbortedByUserError("interrupted")}
	r := New(&fakeSearcher{results: darkResults}, prompter, nil)

	_, err := r.Resolve(context.Background(), "Dark")
	assert.True(t, wikierrors.IsAbortedByUserError(err))
}

func TestResolveSearchError(t *testing.T) {
	prompter := &scriptedPrompter{}
	r := New(&fakeSearcher{searchErr: fmt.Errorf("connection refused")}, prompter, nil)

	_, err := r.Resolve(context.Background(), "Dark")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `search for "Dark"`)
	assert.Equal(t, 0, prompter.calls)
}
