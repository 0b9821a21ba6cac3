package testutil

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nizsak/wikiseries/internal/config"
)

func TestTestEnvPaths(t *testing.T) {
	env := NewTestEnv(t)

	path := env.Path("markdown", "Dark.md")
	assert.Contains(t, path, env.RootDir())

	written := env.WriteFile("markdown/Dark.md", []byte("note"))
	assert.Equal(t, path, written)
	assert.Equal(t, "note", string(env.ReadFile("markdown/Dark.md")))
}

func TestResetConfigRestoresState(t *testing.T) {
	config.OverwriteFiles = false
	config.UpdateCovers = false

	t.Run("inner", func(t *testing.T) {
		ResetConfig(t)
		config.OverwriteFiles = true
		config.UpdateCovers = true
		viper.Set("cache.ttl", "9h")
	})

	assert.False(t, config.OverwriteFiles)
	assert.False(t, config.UpdateCovers)
	assert.Empty(t, viper.GetString("cache.ttl"))
}

func TestSetupCacheConfig(t *testing.T) {
	dbfile := SetupCacheConfig(t)
	require.NotEmpty(t, dbfile)
	assert.Equal(t, dbfile, viper.GetString("cache.dbfile"))
	assert.Equal(t, "1h", viper.GetString("cache.ttl"))
}
