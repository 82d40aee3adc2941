// Package constants provides shared constants used throughout the eramap codebase.
// This includes timeouts, file permissions, extraction limits, and the default
// locations of the source document and reference data.
package constants

import "time"

// Timeout constants
const (
	// DefaultHTTPTimeout bounds the single document fetch of a run
	DefaultHTTPTimeout = 30 * time.Second

	// ShutdownTimeout is how long the CLI waits for cleanup after a failed run
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Extraction limits
const (
	// MinYearAD is the lower bound of the plausible year window
	MinYearAD = 200

	// MaxYearAD is the upper bound of the plausible year window
	MaxYearAD = 600

	// MinEraRunes is the shortest accepted era name, in characters
	MinEraRunes = 2

	// MaxEraRunes is the longest accepted era name, in characters
	MaxEraRunes = 6

	// ResetHeadingLevel is the deepest heading level whose failure to
	// classify clears the current regime (h1-h3)
	ResetHeadingLevel = 3
)

// Document source defaults
const (
	// DefaultAPIURL is the MediaWiki Action API endpoint
	DefaultAPIURL = "https://zh.wikipedia.org/w/api.php"

	// DefaultPage is the page listing Chinese era names
	DefaultPage = "中国年号列表"

	// DefaultVariant requests traditional-script output
	DefaultVariant = "zh-hant"

	// UserAgent identifies eramap to the API
	UserAgent = "eramap/1.0 (historical era name extraction; contact: github)"
)

// Path constants
const (
	// DefaultOutputPath is where the merged dataset is written
	DefaultOutputPath = "era_years.json"

	// DefaultReferencePath is the authoritative era list
	DefaultReferencePath = "src/regime.rs"

	// DefaultConfigName is the config file name searched in $HOME and .
	DefaultConfigName = ".eramap"

	// EnvPrefix prefixes environment variables read by the CLI config
	EnvPrefix = "ERAMAP"
)
