package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/swms/internal/flagx"
	"github.com/dmitrijs2005/swms/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "1s" or as integer nanoseconds.
type JsonConfig struct {
	DataFile      string         `json:"data_file"`
	Storage       string         `json:"storage"`
	ExportDir     string         `json:"export_dir"`
	ClockInterval timex.Duration `json:"clock_interval"`
	ToastTTL      timex.Duration `json:"toast_ttl"`
	AuthMode      string         `json:"auth_mode"`
	BcryptCost    int            `json:"bcrypt_cost"`
	LogLevel      string         `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c or -config in args.
// Keys missing from the file leave cfg untouched. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DataFile != "" {
		cfg.DataFile = jc.DataFile
	}
	if jc.Storage != "" {
		cfg.Storage = StorageMode(jc.Storage)
	}
	if jc.ExportDir != "" {
		cfg.ExportDir = jc.ExportDir
	}
	if jc.ClockInterval.Duration != 0 {
		cfg.ClockInterval = jc.ClockInterval.Duration
	}
	if jc.ToastTTL.Duration != 0 {
		cfg.ToastTTL = jc.ToastTTL.Duration
	}
	if jc.AuthMode != "" {
		cfg.AuthMode = AuthMode(jc.AuthMode)
	}
	if jc.BcryptCost != 0 {
		cfg.BcryptCost = jc.BcryptCost
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
