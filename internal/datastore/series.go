package datastore

import (
	"fmt"
	"strings"

	"github.com/nizsak/wikiseries/internal/series"
)

// SeriesSchema is the table holding one row per imported series.
const SeriesSchema = `
CREATE TABLE IF NOT EXISTS series (
	url TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	query_type TEXT,
	miniseries INTEGER NOT NULL DEFAULT 0,
	cover_url TEXT,
	declared_seasons INTEGER,
	declared_episodes INTEGER,
	season_count INTEGER,
	episode_count INTEGER
)`

// EpisodesSchema is the table holding one row per episode, keyed back to
// the series by URL.
const EpisodesSchema = `
CREATE TABLE IF NOT EXISTS episodes (
	series_url TEXT NOT NULL,
	season INTEGER NOT NULL,
	season_year INTEGER,
	number INTEGER NOT NULL,
	overall_number INTEGER,
	title TEXT NOT NULL,
	directors TEXT,
	writers TEXT,
	air_date TEXT,
	summary TEXT,
	PRIMARY KEY (series_url, season, number)
)`

// SaveSeries replaces any previously stored rows for the series and
// inserts the current parse result.
func SaveSeries(store Store, s *series.Series) error {
	if err := store.CreateTable(SeriesSchema); err != nil {
		return err
	}
	if err := store.CreateTable(EpisodesSchema); err != nil {
		return err
	}

	// Re-imports replace rather than accumulate
	if err := store.DeleteWhere("episodes", "series_url", s.URL); err != nil {
		return err
	}
	if err := store.DeleteWhere("series", "url", s.URL); err != nil {
		return err
	}

	seriesRow := map[string]any{
		"url":               s.URL,
		"title":             s.Title,
		"query_type":        s.QueryType,
		"miniseries":        boolToInt(s.Miniseries),
		"cover_url":         s.CoverURL,
		"declared_seasons":  s.DeclaredSeasons,
		"declared_episodes": s.DeclaredEpisodes,
		"season_count":      len(s.Seasons),
		"episode_count":     s.EpisodeCount(),
	}
	if err := store.BatchInsert("series", []map[string]any{seriesRow}); err != nil {
		return fmt.Errorf("failed to store series row: %w", err)
	}

	var episodeRows []map[string]any
	for _, season := range s.Seasons {
		for _, ep := range season.Episodes {
			episodeRows = append(episodeRows, map[string]any{
				"series_url":     s.URL,
				"season":         season.Number,
				"season_year":    season.Year,
				"number":         ep.Number,
				"overall_number": ep.OverallNumber,
				"title":          ep.Title,
				"directors":      strings.Join(ep.Directors, ", "),
				"writers":        strings.Join(ep.Writers, ", "),
				"air_date":       ep.AirDate,
				"summary":        ep.Summary,
			})
		}
	}
	if err := store.BatchInsert("episodes", episodeRows); err != nil {
		return fmt.Errorf("failed to store episode rows: %w", err)
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
