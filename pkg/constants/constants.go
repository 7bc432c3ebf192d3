// Package constants provides shared constants used throughout the fieldscope codebase.
// This includes timeouts, limits, dataset column names, and file permissions
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for fetching a remote dataset
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// LoadTimeout bounds the initial two-resource fetch
	LoadTimeout = 1 * time.Minute

	// DefaultReloadInterval is how often auto-reload refetches the datasets
	DefaultReloadInterval = 15 * time.Minute

	// ShutdownTimeout is how long the server drains connections on exit
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// MaxCandidates is the maximum number of autocomplete candidates returned
	MaxCandidates = 10

	// MaxDatasetBytes is the largest dataset accepted (16 MiB); larger input is rejected
	MaxDatasetBytes = 16 << 20
)

// Default dataset locations, relative to the working directory.
const (
	DefaultSearchData    = "search-data.csv"
	DefaultStandardsData = "standards-data.csv"
)

// Search table columns.
const (
	ColumnApplication     = "App/Modal"
	ColumnSearch          = "Search"
	ColumnAllowsWildcards = "Allows Wildcards?"
)

// Standards table columns. The application column is shared with the search table.
const (
	ColumnStandard    = "Standard"
	ColumnDefinition  = "Definition"
	ColumnSearchField = "Search Field"
	ColumnCompliant   = "Compliant"
)
