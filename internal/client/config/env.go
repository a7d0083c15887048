package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const dotEnvFile = ".env"

// Environment variables read by parseEnv.
const (
	EnvDataFile      = "SWMS_DATA_FILE"
	EnvStorage       = "SWMS_STORAGE"
	EnvExportDir     = "SWMS_EXPORT_DIR"
	EnvClockInterval = "SWMS_CLOCK_INTERVAL"
	EnvToastTTL      = "SWMS_TOAST_TTL"
	EnvAuthMode      = "SWMS_AUTH_MODE"
	EnvBcryptCost    = "SWMS_BCRYPT_COST"
	EnvLogLevel      = "SWMS_LOG_LEVEL"
)

// loadDotEnv copies variables from path into the process environment
// without overriding ones that are already set. A missing file is fine.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Errorf("read %s: %w", path, err))
	}
}

// parseEnv overlays cfg with SWMS_* variables. Unset or empty variables are
// ignored.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		return v, ok && v != ""
	}

	if v, ok := get(EnvDataFile); ok {
		cfg.DataFile = v
	}
	if v, ok := get(EnvStorage); ok {
		cfg.Storage = StorageMode(v)
	}
	if v, ok := get(EnvExportDir); ok {
		cfg.ExportDir = v
	}
	if v, ok := get(EnvAuthMode); ok {
		cfg.AuthMode = AuthMode(v)
	}
	if v, ok := get(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := get(EnvClockInterval); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvClockInterval, err)
		}
		cfg.ClockInterval = d
	}
	if v, ok := get(EnvToastTTL); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvToastTTL, err)
		}
		cfg.ToastTTL = d
	}
	if v, ok := get(EnvBcryptCost); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBcryptCost, err)
		}
		cfg.BcryptCost = n
	}
	return nil
}
