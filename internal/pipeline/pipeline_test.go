package pipeline

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	wikierrors "github.com/nizsak/wikiseries/internal/errors"
	"github.com/nizsak/wikiseries/internal/fileutil"
	"github.com/nizsak/wikiseries/internal/frontmatter"
	"github.com/nizsak/wikiseries/internal/wikipedia"
)

const articlePage = `<!DOCTYPE html>
<html><body>
<h1 id="firstHeading">Chernobyl (miniseries)</h1>
<div class="mw-parser-output">
<table class="infobox vevent">
<tr><th>No. of episodes</th><td>2</td></tr>
</table>
<table class="wikiepisodetable">
<tr><th>No.</th><th>Title</th><th>Directed by</th><th>Written by</th><th>Original air date</th></tr>
<tr class="vevent">
<th>1</th><td>"1:23:45"</td><td>Johan Renck</td><td>Craig Mazin</td><td>May 6, 2019 <span>(2019-05-06)</span></td>
</tr>
<tr class="vevent">
<th>2</th><td>"Please Remain Calm"</td><td>Johan Renck</td><td>Craig Mazin</td><td>May 13, 2019 <span>(2019-05-13)</span></td>
</tr>
</table>
</div>
</body></html>`

type fakeFetcher struct {
	page []byte
	err  error
}

func (f *fakeFetcher) CachedFetchPage(_ context.Context, _ string) ([]byte, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	return f.page, false, nil
}

func chernobylMatch() *wikipedia.SearchResult {
	return &wikipedia.SearchResult{
		Title:     "Chernobyl (miniseries)",
		URL:       "https://en.wikipedia.org/wiki/Chernobyl_(miniseries)",
		QueryType: wikipedia.QueryTypeMiniseries,
	}
}

func testOptions(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()
	return Options{
		MarkdownDir:      filepath.Join(dir, "markdown"),
		JSONDir:          filepath.Join(dir, "json"),
		WriteJSON:        true,
		Overwrite:        true,
		DatastoreEnabled: true,
		DatastorePath:    filepath.Join(dir, "series.db"),
	}
}

func TestPipelineRun(t *testing.T) {
	opts := testOptions(t)
	p := New(&fakeFetcher{page: []byte(articlePage)}, opts, nil)

	result, err := p.Run(context.Background(), chernobylMatch())
	require.NoError(t, err)

	require.NotNil(t, result.Series)
	assert.True(t, result.Series.Miniseries)
	require.Len(t, result.Series.Seasons, 1)
	assert.Equal(t, 2, result.Series.EpisodeCount())

	// Markdown note with frontmatter and episode table
	data, err := os.ReadFile(result.MarkdownPath)
	require.NoError(t, err)
	note, err := frontmatter.ParseMarkdown(data)
	require.NoError(t, err)
	assert.Equal(t, "Chernobyl (miniseries)", note.GetString("title"))
	assert.Equal(t, "miniseries", note.GetString("type"))
	assert.Equal(t, 1, note.GetInt("seasons"))
	assert.Equal(t, 2, note.GetInt("episodes"))
	assert.Equal(t, "https://en.wikipedia.org/wiki/Chernobyl_(miniseries)", note.GetString("url"))
	assert.Contains(t, note.Body, "## Season 1")
	assert.Contains(t, note.Body, "| 1 | 1:23:45 | Johan Renck | Craig Mazin | 2019-05-06 |")

	// JSON document
	assert.True(t, fileutil.FileExists(result.JSONPath))

	// Datastore rows
	db, err := sql.Open("sqlite", opts.DatastorePath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	var episodes int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM episodes").Scan(&episodes))
	assert.Equal(t, 2, episodes)
}

func TestPipelineFetchFailure(t *testing.T) {
	opts := testOptions(t)
	p := New(&fakeFetcher{err: fmt.Errorf("connection reset")}, opts, nil)

	_, err := p.Run(context.Background(), chernobylMatch())
	require.Error(t, err)
	assert.True(t, wikierrors.IsFetchParseError(err))
	assert.Contains(t, err.Error(), "fetch failed")

	// Nothing persisted
	entries, _ := os.ReadDir(opts.MarkdownDir)
	assert.Empty(t, entries)
	assert.False(t, fileutil.FileExists(opts.DatastorePath))
}

func TestPipelineParseFailure(t *testing.T) {
	opts := testOptions(t)
	page := `<html><body><h1 id="firstHeading">Dark (film)</h1><p>A film.</p></body></html>`
	p := New(&fakeFetcher{page: []byte(page)}, opts, nil)

	_, err := p.Run(context.Background(), chernobylMatch())
	require.Error(t, err)
	assert.True(t, wikierrors.IsFetchParseError(err))
	assert.Contains(t, err.Error(), "parse failed")
	assert.False(t, fileutil.FileExists(opts.DatastorePath))
}

func TestPipelineSkipsExistingMarkdown(t *testing.T) {
	opts := testOptions(t)
	opts.Overwrite = false

	p := New(&fakeFetcher{page: []byte(articlePage)}, opts, nil)
	result, err := p.Run(context.Background(), chernobylMatch())
	require.NoError(t, err)

	// Sentinel content must survive a second run without overwrite
	require.NoError(t, os.WriteFile(result.MarkdownPath, []byte("---\ntitle: keep\n---\nkeep"), 0644))

	_, err = p.Run(context.Background(), chernobylMatch())
	require.NoError(t, err)

	data, err := os.ReadFile(result.MarkdownPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "keep")
}

func TestPipelineWithoutOptionalOutputs(t *testing.T) {
	opts := testOptions(t)
	opts.WriteJSON = false
	opts.DatastoreEnabled = false

	p := New(&fakeFetcher{page: []byte(articlePage)}, opts, nil)
	result, err := p.Run(context.Background(), chernobylMatch())
	require.NoError(t, err)

	assert.Empty(t, result.JSONPath)
	assert.False(t, fileutil.FileExists(opts.DatastorePath))
	assert.True(t, fileutil.FileExists(result.MarkdownPath))
}

func TestRenderMarkdownRegularSeries(t *testing.T) {
	p := New(&fakeFetcher{page: []byte(articlePage)}, testOptions(t), nil)
	match := chernobylMatch()
	match.QueryType = wikipedia.QueryTypeSeries

	result, err := p.Run(context.Background(), match)
	require.NoError(t, err)
	assert.False(t, result.Series.Miniseries)

	data, err := os.ReadFile(result.MarkdownPath)
	require.NoError(t, err)
	note, err := frontmatter.ParseMarkdown(data)
	require.NoError(t, err)
	assert.Equal(t, "series", note.GetString("type"))
}
