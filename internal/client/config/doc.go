// Package config loads runtime configuration for the SWMS terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory, then SWMS_* environment
//     variables (see parseEnv). Variables already set in the environment
//     win over the .env file.
//  3. Optional JSON file (see parseJson) selected via -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string     SQLite data file
//	-s string     storage mode: sqlite, memory or disabled
//	-e string     export directory
//	-t duration   display clock interval
//	-auth string  authentication mode: demo or bcrypt
//	-l string     log level: debug, info, warn, error
//
// # JSON schema
//
// Intervals use timex.Duration, so they can be strings like "1s" or integer
// nanoseconds:
//
//	{
//	  "data_file": "swms.db",
//	  "storage": "sqlite",
//	  "export_dir": "export",
//	  "clock_interval": "1s",
//	  "toast_ttl": "2.5s",
//	  "auth_mode": "demo",
//	  "bcrypt_cost": 10,
//	  "log_level": "warn"
//	}
package config
