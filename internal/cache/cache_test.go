package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *CacheDB {
	t.Helper()

	db, err := NewCacheDB(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for _, schema := range AllCacheSchemas {
		require.NoError(t, db.CreateTable(schema))
	}
	return db
}

func TestSetAndGet(t *testing.T) {
	db := newTestCache(t)

	require.NoError(t, db.Set("wikipedia_search_cache", "dark", `{"hits":3}`))

	data, hit, err := db.Get("wikipedia_search_cache", "dark", time.Hour)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, `{"hits":3}`, data)
}

func TestGetMiss(t *testing.T) {
	db := newTestCache(t)

	_, hit, err := db.Get("wikipedia_page_cache", "absent", time.Hour)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestGetExpired(t *testing.T) {
	db := newTestCache(t)

	require.NoError(t, db.Set("wikipedia_page_cache", "old", "<html></html>"))

	// Zero TTL means everything already cached counts as expired.
	_, hit, err := db.Get("wikipedia_page_cache", "old", 0)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestInvalidTableName(t *testing.T) {
	db := newTestCache(t)

	err := db.Set("users; DROP TABLE users", "k", "v")
	assert.Error(t, err)

	_, _, err = db.Get("bogus_cache", "k", time.Hour)
	assert.Error(t, err)
}

func TestClearAllAndCount(t *testing.T) {
	db := newTestCache(t)

	require.NoError(t, db.Set("wikipedia_search_cache", "a", "1"))
	require.NoError(t, db.Set("wikipedia_search_cache", "b", "2"))

	count, err := db.Count("wikipedia_search_cache")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	deleted, err := db.ClearAll("wikipedia_search_cache")
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	count, err = db.Count("wikipedia_search_cache")
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestGetOrFetch(t *testing.T) {
	require.NoError(t, ResetGlobalCache())
	viper.Reset()
	viper.Set("cache.dbfile", filepath.Join(t.TempDir(), "cache.db"))
	viper.Set("cache.ttl", "1h")
	t.Cleanup(func() {
		_ = ResetGlobalCache()
		viper.Reset()
	})

	calls := 0
	fetch := func() (string, error) {
		calls++
		return "payload", nil
	}

	got, fromCache, err := GetOrFetch("wikipedia_page_cache", "url", fetch)
	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Equal(t, "payload", got)

	got, fromCache, err = GetOrFetch("wikipedia_page_cache", "url", fetch)
	require.NoError(t, err)
	assert.True(t, fromCache)
	assert.Equal(t, "payload", got)
	assert.Equal(t, 1, calls)
}
