// Package config loads runtime configuration for the cpguide CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config (see parseJson).
//  3. Environment variables prefixed CPGUIDE_ (see parseEnv).
//  4. Command-line flags (see parseFlags).
//
// Later sources override earlier ones.
//
// Supported flags
//
//	-a string   base URL of the backend API
//	-e string   deployment environment ("production" enables secure cookies)
//	-d string   path to the local session database
//	-t int      request timeout in seconds (0 = transport default)
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
//	{
//	  "server_base_url": "https://api.example.com",
//	  "environment": "production",
//	  "db_path": "session.db",
//	  "request_timeout": "10s",
//	  "log_level": "info"
//	}
package config
