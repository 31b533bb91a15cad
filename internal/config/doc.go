// Package config loads and merges the service configuration from three
// sources: environment variables, command-line flags, and an optional JSON
// file. Sources are merged in that order with first-non-zero-wins semantics,
// then validated before the application is allowed to start.
package config
