package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/swms/internal/logging"
)

type StorageMode string

const (
	StorageSQLite   StorageMode = "sqlite"
	StorageMemory   StorageMode = "memory"
	StorageDisabled StorageMode = "disabled"
)

type AuthMode string

const (
	AuthDemo   AuthMode = "demo"
	AuthBcrypt AuthMode = "bcrypt"
)

// Config holds runtime settings for the SWMS CLI.
//
// Fields:
//   - DataFile: path of the SQLite file used when Storage is "sqlite".
//   - Storage: where slots live; "disabled" runs without persistence.
//   - ExportDir: directory that receives debug exports.
//   - ClockInterval: how often the prompt clock is refreshed.
//   - ToastTTL: how long a notification stays listed.
//   - AuthMode: "demo" accepts the demo passwords, "bcrypt" checks hashes.
//   - BcryptCost: work factor for new hashes in bcrypt mode.
//   - LogLevel: minimum slog level written to stderr.
type Config struct {
	DataFile      string
	Storage       StorageMode
	ExportDir     string
	ClockInterval time.Duration
	ToastTTL      time.Duration
	AuthMode      AuthMode
	BcryptCost    int
	LogLevel      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataFile = "swms.db"
	c.Storage = StorageSQLite
	c.ExportDir = "export"
	c.ClockInterval = time.Second
	c.ToastTTL = 2500 * time.Millisecond
	c.AuthMode = AuthDemo
	c.BcryptCost = bcrypt.DefaultCost
	c.LogLevel = "warn"
}

func (c *Config) Validate() error {
	var errs []error
	switch c.Storage {
	case StorageSQLite:
		if c.DataFile == "" {
			errs = append(errs, errors.New("data file is required for sqlite storage"))
		}
	case StorageMemory, StorageDisabled:
	default:
		errs = append(errs, fmt.Errorf("unknown storage mode %q", c.Storage))
	}
	switch c.AuthMode {
	case AuthDemo, AuthBcrypt:
	default:
		errs = append(errs, fmt.Errorf("unknown auth mode %q", c.AuthMode))
	}
	if c.ClockInterval <= 0 {
		errs = append(errs, fmt.Errorf("clock interval must be positive, got %s", c.ClockInterval))
	}
	if c.ToastTTL <= 0 {
		errs = append(errs, fmt.Errorf("toast ttl must be positive, got %s", c.ToastTTL))
	}
	if c.AuthMode == AuthBcrypt && (c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost) {
		errs = append(errs, fmt.Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones. Invalid input panics.
func LoadConfig() *Config {
	cfg, err := Load(os.Args[1:], os.LookupEnv)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load is LoadConfig with explicit arguments and environment lookup.
func Load(args []string, lookup func(string) (string, bool)) (cfg *Config, err error) {
	defer func() {
		if r := recover(); r != nil {
			cfg, err = nil, fmt.Errorf("config: %v", r)
		}
	}()

	cfg = &Config{}
	cfg.LoadDefaults()
	loadDotEnv(dotEnvFile)
	if err := parseEnv(cfg, lookup); err != nil {
		return nil, err
	}
	parseJson(cfg, args)
	parseFlags(cfg, args)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
