package cmd

import (
	"fmt"
	"log/slog"

	"github.com/nizsak/wikiseries/internal/cache"
)

// CacheCmd represents the cache command and its subcommands
type CacheCmd struct {
	Clear CacheClearCmd `cmd:"" help:"Remove all cached searches and articles"`
	Stats CacheStatsCmd `cmd:"" help:"Show cache entry counts"`
}

// CacheClearCmd empties every cache table.
type CacheClearCmd struct{}

func (c *CacheClearCmd) Run() error {
	db, err := cache.GetGlobalCache()
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}

	var total int64
	for _, table := range cache.CacheTables {
		removed, err := db.ClearAll(table)
		if err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
		total += removed
	}

	slog.Info("Cache cleared", "entries_removed", total)
	return nil
}

// CacheStatsCmd prints per-table entry counts.
type CacheStatsCmd struct{}

func (c *CacheStatsCmd) Run() error {
	db, err := cache.GetGlobalCache()
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}

	for _, table := range cache.CacheTables {
		count, err := db.Count(table)
		if err != nil {
			return fmt.Errorf("counting %s: %w", table, err)
		}
		fmt.Printf("%s: %d entries\n", table, count)
	}
	return nil
}
