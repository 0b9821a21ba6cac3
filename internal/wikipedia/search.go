package wikipedia

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Search queries the wiki full-text search for name and returns candidates
// in API relevance order. An empty or whitespace-only name yields an empty
// result set without touching the network.
func (c *Client) Search(ctx context.Context, name string) ([]SearchResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("format", "json")
	params.Set("srsearch", name)
	params.Set("srlimit", strconv.Itoa(c.searchLimit))
	params.Set("srprop", "snippet|wordcount")

	endpoint := fmt.Sprintf("%s/w/api.php?%s", c.baseURL, params.Encode())

	var response struct {
		Query struct {
			Search []struct {
				Title     string `json:"title"`
				PageID    int    `json:"pageid"`
				Snippet   string `json:"snippet"`
				WordCount int    `json:"wordcount"`
			} `json:"search"`
		} `json:"query"`
	}

	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(response.Query.Search))
	for _, item := range response.Query.Search {
		results = append(results, SearchResult{
			Title:     item.Title,
			PageID:    item.PageID,
			URL:       c.PageURL(item.Title),
			QueryType: ClassifyQueryType(item.Title, item.Snippet),
			Snippet:   item.Snippet,
			WordCount: item.WordCount,
		})
	}

	return results, nil
}

// PageURL builds the canonical article URL for a title.
func (c *Client) PageURL(title string) string {
	return c.baseURL + "/wiki/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))
}

// FindAuthoritative applies the single authoritativeness predicate shared
// by the automatic and post-selection paths: a result qualifies when it is
// classified as a series or miniseries article and its base title equals
// the query (case-insensitive). The match is returned only when exactly
// one result qualifies; zero or multiple qualifying results return nil.
func (c *Client) FindAuthoritative(name string, results []SearchResult) *SearchResult {
	want := normalizeTitle(name)

	var match *SearchResult
	count := 0
	for i := range results {
		r := &results[i]
		if !r.QueryType.IsSeries() {
			continue
		}
		if normalizeTitle(r.BaseTitle()) != want {
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

func normalizeTitle(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
