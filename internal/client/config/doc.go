// Package config loads runtime configuration for the gophfeed CLI client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c/--config or $GOPHFEED_CLIENT_CONFIG.
//  3. Environment variables GOPHFEED_SERVER_URL and GOPHFEED_TOKEN_FILE.
//  4. Command-line flags, bound by the cli package on its root command.
//
// # JSON schema
//
// request_timeout uses timex.Duration, so it can be a string like "10s" or
// integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "token_file": "/home/me/.config/gophfeed/token",
//	  "request_timeout": "10s"
//	}
package config
