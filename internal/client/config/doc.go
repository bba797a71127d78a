// Package config provides configuration loading for the listing CLI.
//
// Sources are applied in order: defaults, an optional JSON file (-c or
// -config), environment variables (optionally from a .env file named by
// -env, or ./.env when present), then command-line flags.
//
// The server URL and the API key have no defaults; Validate reports them
// missing and the CLI refuses to start.
package config
