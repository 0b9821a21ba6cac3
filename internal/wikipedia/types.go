package wikipedia

import (
	"regexp"
	"strings"
)

// QueryType classifies what kind of article a search result points at.
type QueryType string

const (
	// QueryTypeSeries is a regular multi-season television series article.
	QueryTypeSeries QueryType = "series"
	// QueryTypeMiniseries is a limited/miniseries article.
	QueryTypeMiniseries QueryType = "miniseries"
	// QueryTypeDisambiguation is a disambiguation page.
	QueryTypeDisambiguation QueryType = "disambiguation"
	// QueryTypeFilm is a film article.
	QueryTypeFilm QueryType = "film"
	// QueryTypeUnknown is anything the classifier could not place.
	QueryTypeUnknown QueryType = "unknown"
)

// IsSeries reports whether the type is a parseable series article.
func (q QueryType) IsSeries() bool {
	return q == QueryTypeSeries || q == QueryTypeMiniseries
}

// SearchResult represents a single candidate article returned by a search.
// Values are immutable once returned; slice order is the API relevance
// order and is preserved end to end because it drives the numbering shown
// during manual disambiguation.
type SearchResult struct {
	Title     string    `json:"title"`
	PageID    int       `json:"page_id"`
	URL       string    `json:"url"`
	QueryType QueryType `json:"query_type"`
	Snippet   string    `json:"snippet"`
	WordCount int       `json:"word_count"`
}

var (
	qualifierRe = regexp.MustCompile(`\s*\(([^)]*)\)\s*$`)
	tagRe       = regexp.MustCompile(`<[^>]*>`)
)

// BaseTitle returns the title with any trailing parenthetical qualifier
// stripped: "Dark (2017 TV series)" -> "Dark".
func (r SearchResult) BaseTitle() string {
	return qualifierRe.ReplaceAllString(r.Title, "")
}

// Qualifier returns the trailing parenthetical qualifier, lowercased,
// or "" when the title has none.
func (r SearchResult) Qualifier() string {
	m := qualifierRe.FindStringSubmatch(r.Title)
	if m == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(m[1]))
}

// PlainSnippet returns the snippet with the API's searchmatch highlight
// markup stripped, suitable for display.
func (r SearchResult) PlainSnippet() string {
	return strings.TrimSpace(tagRe.ReplaceAllString(r.Snippet, ""))
}

// ClassifyQueryType derives the article classification from the title's
// qualifier, falling back to the search snippet when the title alone is
// inconclusive.
func ClassifyQueryType(title, snippet string) QueryType {
	r := SearchResult{Title: title}
	if q := r.Qualifier(); q != "" {
		switch {
		case strings.Contains(q, "miniseries"):
			return QueryTypeMiniseries
		case strings.Contains(q, "tv series") || strings.Contains(q, "television series"):
			return QueryTypeSeries
		case strings.Contains(q, "film"):
			return QueryTypeFilm
		case q == "disambiguation":
			return QueryTypeDisambiguation
		}
	}

	// Snippets come back with searchmatch highlight markup
	snip := strings.ToLower(tagRe.ReplaceAllString(snippet, ""))
	switch {
	case strings.Contains(snip, "may refer to"):
		return QueryTypeDisambiguation
	case strings.Contains(snip, "miniseries"):
		return QueryTypeMiniseries
	case strings.Contains(snip, "television series") || strings.Contains(snip, "tv series"):
		return QueryTypeSeries
	case strings.Contains(snip, "film"):
		return QueryTypeFilm
	default:
		return QueryTypeUnknown
	}
}
