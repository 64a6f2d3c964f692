// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (the first source to set a field wins; later sources only fill the
// remaining gaps):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry point is [GetStructuredConfig]. Security-sensitive values
// (the master key, the token sign key) are treated as opaque strings: they
// are validated structurally at startup and never logged.
package config
