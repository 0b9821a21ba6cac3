// Package config holds the process-wide configuration, populated once from
// viper at startup.
package config

import (
	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// OverwriteFiles controls whether existing output files should be overwritten
	OverwriteFiles bool
	// UpdateCovers forces re-downloading cover images even if they already exist
	UpdateCovers bool
)

// InitConfig initializes the global configuration
func InitConfig() {
	// Set default values
	viper.SetDefault("MarkdownOutputDir", "./markdown/")
	viper.SetDefault("JSONOutputDir", "./json/")
	viper.SetDefault("OverwriteFiles", false)

	viper.SetDefault("wikipedia.baseurl", "https://en.wikipedia.org")
	viper.SetDefault("wikipedia.useragent", "wikiseries/1.0 (https://github.com/nizsak/wikiseries)")
	viper.SetDefault("wikipedia.ratelimit", 1.0)
	viper.SetDefault("wikipedia.searchlimit", 10)

	viper.SetDefault("covers.download", true)
	viper.SetDefault("covers.maxwidth", 500)

	viper.SetDefault("datastore.enabled", true)
	viper.SetDefault("datastore.dbfile", "./wikiseries.db")
	viper.SetDefault("datasette.enabled", false)
	viper.SetDefault("datasette.url", "")
	viper.SetDefault("datasette.token", "")

	// Get values from viper
	OverwriteFiles = viper.GetBool("OverwriteFiles")
	UpdateCovers = viper.GetBool("UpdateCovers")
}

// SetOverwriteFiles sets the OverwriteFiles flag
func SetOverwriteFiles(overwrite bool) {
	OverwriteFiles = overwrite
}

// SetUpdateCovers sets the UpdateCovers flag
func SetUpdateCovers(update bool) {
	UpdateCovers = update
}
