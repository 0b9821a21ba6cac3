package wikipedia

import (
	"context"
	"strings"
)

// FetchPage retrieves the rendered article HTML at pageURL.
func (c *Client) FetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	return c.getHTML(ctx, pageURL)
}

// CachedSearch is Search backed by the local response cache.
func (c *Client) CachedSearch(ctx context.Context, name string) ([]SearchResult, bool, error) {
	return cachedSearch(ctx, c, name)
}

// CachedFetchPage is FetchPage backed by the local response cache.
func (c *Client) CachedFetchPage(ctx context.Context, pageURL string) ([]byte, bool, error) {
	return cachedFetchPage(ctx, c, pageURL)
}

func searchCacheKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
