package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/swms/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string     SQLite data file
//	-s string     storage mode
//	-e string     export directory
//	-t duration   display clock interval
//	-auth string  authentication mode
//	-l string     log level
//
// args are filtered with flagx.FilterArgs first, so flags owned by other
// layers (-c/-config) do not interfere. Panics on malformed values.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-d", "-s", "-e", "-t", "-auth", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DataFile, "d", cfg.DataFile, "SQLite data file")
	storage := fs.String("s", string(cfg.Storage), "storage mode: sqlite, memory or disabled")
	fs.StringVar(&cfg.ExportDir, "e", cfg.ExportDir, "export directory")
	fs.DurationVar(&cfg.ClockInterval, "t", cfg.ClockInterval, "display clock interval")
	auth := fs.String("auth", string(cfg.AuthMode), "authentication mode: demo or bcrypt")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.Storage = StorageMode(*storage)
	cfg.AuthMode = AuthMode(*auth)
}
