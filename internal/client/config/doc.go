// Package config loads runtime configuration for the profile CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Global flags must come before the subcommand:
//
//	-a string   base URL of the profile service
//	-t int      request timeout (seconds)
//
// # JSON schema
//
// The request timeout uses timex.Duration, so it may be a string like "30s"
// or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8000",
//	  "request_timeout": "30s"
//	}
package config
