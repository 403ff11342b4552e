// Package cmd provides the eval, inspect, and repl subcommands for the
// fee command line interface.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path
	// to the default configuration file (without extension).
	ConfigIdentifier = "config"
)
