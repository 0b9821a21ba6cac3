// Package series holds the parsed season/episode model and the article
// parser that produces it.
package series

import "strings"

// Episode is a single episode row from an episode table.
type Episode struct {
	Number        int      `json:"number"`
	OverallNumber int      `json:"overall_number,omitempty"`
	Title         string   `json:"title"`
	Directors     []string `json:"directors,omitempty"`
	Writers       []string `json:"writers,omitempty"`
	AirDate       string   `json:"air_date,omitempty"`
	Summary       string   `json:"summary,omitempty"`
}

// Season groups episodes in broadcast order.
type Season struct {
	Number   int       `json:"number"`
	Year     int       `json:"year,omitempty"`
	Episodes []Episode `json:"episodes"`
}

// Series is the complete parsed structure of one article.
type Series struct {
	Title            string   `json:"title"`
	URL              string   `json:"url"`
	QueryType        string   `json:"query_type"`
	Miniseries       bool     `json:"miniseries"`
	CoverURL         string   `json:"cover_url,omitempty"`
	DeclaredSeasons  int      `json:"declared_seasons,omitempty"`
	DeclaredEpisodes int      `json:"declared_episodes,omitempty"`
	Seasons          []Season `json:"seasons"`
}

// EpisodeCount returns the number of parsed episodes across all seasons.
func (s *Series) EpisodeCount() int {
	total := 0
	for _, season := range s.Seasons {
		total += len(season.Episodes)
	}
	return total
}

// AllDirectors returns the distinct directors across all episodes in
// first-seen order.
func (s *Series) AllDirectors() []string {
	seen := make(map[string]bool)
	var out []string
	for _, season := range s.Seasons {
		for _, ep := range season.Episodes {
			for _, d := range ep.Directors {
				key := strings.ToLower(d)
				if !seen[key] {
					seen[key] = true
					out = append(out, d)
				}
			}
		}
	}
	return out
}
