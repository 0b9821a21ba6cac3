package cache

// SQL schemas for cache tables.
// All cache tables use "cache_key" as the primary key column for consistency.

// SearchCacheSchema defines the schema for Wikipedia search result cache
const SearchCacheSchema = `
CREATE TABLE IF NOT EXISTS wikipedia_search_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_wikipedia_search_cached_at ON wikipedia_search_cache(cached_at);
`

// PageCacheSchema defines the schema for fetched article HTML cache
const PageCacheSchema = `
CREATE TABLE IF NOT EXISTS wikipedia_page_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_wikipedia_page_cached_at ON wikipedia_page_cache(cached_at);
`

// AllCacheSchemas contains all cache table schemas for easy initialization
var AllCacheSchemas = []string{
	SearchCacheSchema,
	PageCacheSchema,
}

// CacheTables lists the cache table names in display order.
var CacheTables = []string{
	"wikipedia_search_cache",
	"wikipedia_page_cache",
}

// ValidCacheTableNames is the whitelist of allowed cache table names.
// Used to prevent SQL injection when interpolating table names.
var ValidCacheTableNames = map[string]bool{
	"wikipedia_search_cache": true,
	"wikipedia_page_cache":   true,
}
