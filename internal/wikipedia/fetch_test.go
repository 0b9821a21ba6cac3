package wikipedia

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nizsak/wikiseries/internal/cache"
	wikierrors "github.com/nizsak/wikiseries/internal/errors"
	"github.com/nizsak/wikiseries/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wiki/Chernobyl_%28miniseries%29", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		fmt.Fprint(w, "<html><body><h1>Chernobyl</h1></body></html>")
	}))
	defer server.Close()

	client := testClient(server.URL)
	body, err := client.FetchPage(context.Background(), client.PageURL("Chernobyl (miniseries)"))
	require.NoError(t, err)
	assert.Contains(t, string(body), "<h1>Chernobyl</h1>")
}

func TestFetchPageNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.FetchPage(context.Background(), server.URL+"/wiki/Missing")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestFetchPageThrottled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.FetchPage(context.Background(), server.URL+"/wiki/Busy")
	assert.True(t, wikierrors.IsRateLimitError(err))
}

func TestCachedFetchPage(t *testing.T) {
	require.NoError(t, cache.ResetGlobalCache())
	testutil.SetupCacheConfig(t)
	t.Cleanup(func() { _ = cache.ResetGlobalCache() })

	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, "<html>page</html>")
	}))
	defer server.Close()

	client := testClient(server.URL)
	pageURL := server.URL + "/wiki/Dark"

	body, fromCache, err := client.CachedFetchPage(context.Background(), pageURL)
	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Equal(t, "<html>page</html>", string(body))

	body, fromCache, err = client.CachedFetchPage(context.Background(), pageURL)
	require.NoError(t, err)
	assert.True(t, fromCache)
	assert.Equal(t, "<html>page</html>", string(body))
	assert.Equal(t, 1, hits)
}

func TestCachedSearch(t *testing.T) {
	require.NoError(t, cache.ResetGlobalCache())
	testutil.SetupCacheConfig(t)
	t.Cleanup(func() { _ = cache.ResetGlobalCache() })

	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, `{"query":{"search":[{"title":"Chernobyl (miniseries)","pageid":9,"snippet":"miniseries","wordcount":5000}]}}`)
	}))
	defer server.Close()

	client := testClient(server.URL)

	results, fromCache, err := client.CachedSearch(context.Background(), "Chernobyl")
	require.NoError(t, err)
	assert.False(t, fromCache)
	require.Len(t, results, 1)

	// Same query, different case, same cache entry.
	results, fromCache, err = client.CachedSearch(context.Background(), "chernobyl")
	require.NoError(t, err)
	assert.True(t, fromCache)
	require.Len(t, results, 1)
	assert.Equal(t, "Chernobyl (miniseries)", results[0].Title)
	assert.Equal(t, 1, hits)
}
