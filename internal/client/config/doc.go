// Package config loads runtime configuration for the notely terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c / -config (or $NOTELY_CONFIG).
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     base URL of the notes API
//	-t string     file holding the saved bearer token
//	-r duration   per-request timeout
//
// # JSON schema
//
//	{
//	  "server_base_url": "http://127.0.0.1:8080/api",
//	  "token_file": "/home/me/.notely/token",
//	  "request_timeout": "10s"
//	}
package config
