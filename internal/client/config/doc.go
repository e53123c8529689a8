// Package config loads runtime configuration for the pgdesk client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally seeded from a .env file in the
//     working directory (existing variables are never overridden by it).
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags.
//
// Environment
//
//	PGDESK_BASE_URL      API base URL
//	PGDESK_TIMEOUT       request timeout, milliseconds
//	PGDESK_STORAGE       sqlite | redis
//	PGDESK_STORAGE_DSN   SQLite path or Redis address
//	PGDESK_LOG_LEVEL     debug | info | warn | error
//
// Supported flags
//
//	-u string   API base URL
//	-t int      request timeout (milliseconds)
//	-s string   storage driver
//	-d string   storage DSN
//	-l string   log level
//
// # JSON schema
//
// Durations accept strings like "15s" or integer nanoseconds:
//
//	{
//	  "base_url": "https://api.example.com/api",
//	  "timeout": "15s",
//	  "storage_driver": "sqlite",
//	  "storage_dsn": "pgdesk.db",
//	  "log_level": "info"
//	}
package config
