package wikipedia

import (
	"context"
	"strings"

	"github.com/nizsak/wikiseries/internal/cache"
)

func cachedSearch(ctx context.Context, c *Client, name string) ([]SearchResult, bool, error) {
	key := searchCacheKey(name)
	if key == "" {
		return nil, false, nil
	}
	return cache.GetOrFetch("wikipedia_search_cache", key, func() ([]SearchResult, error) {
		return c.Search(ctx, name)
	})
}

func cachedFetchPage(ctx context.Context, c *Client, pageURL string) ([]byte, bool, error) {
	key := strings.TrimSpace(pageURL)
	html, fromCache, err := cache.GetOrFetch("wikipedia_page_cache", key, func() (string, error) {
		body, err := c.FetchPage(ctx, pageURL)
		if err != nil {
			return "", err
		}
		return string(body), nil
	})
	if err != nil {
		return nil, false, err
	}
	return []byte(html), fromCache, nil
}
