package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/nizsak/wikiseries/internal/config"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	OverwriteFiles bool
	UpdateCovers   bool
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		OverwriteFiles: config.OverwriteFiles,
		UpdateCovers:   config.UpdateCovers,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.OverwriteFiles = state.OverwriteFiles
	config.UpdateCovers = state.UpdateCovers
}

// ResetConfig saves the current config state and schedules restoration
// when the test completes. It also resets viper.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetupCacheConfig resets viper and points the cache at a database inside
// a fresh temp directory, restoring everything on cleanup.
func SetupCacheConfig(t *testing.T) string {
	t.Helper()

	ResetConfig(t)
	dbfile := filepath.Join(t.TempDir(), "cache.db")
	viper.Set("cache.dbfile", dbfile)
	viper.Set("cache.ttl", "1h")
	return dbfile
}
