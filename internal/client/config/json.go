package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/pgdesk/internal/flagx"
	"github.com/dmitrijs2005/pgdesk/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Only keys present in
// the file override earlier sources.
type JsonConfig struct {
	BaseURL       *string         `json:"base_url"`
	Timeout       *timex.Duration `json:"timeout"`
	StorageDriver *string         `json:"storage_driver"`
	StorageDSN    *string         `json:"storage_dsn"`
	LogLevel      *string         `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c/-config in args.
// Without such a flag nothing happens.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.BaseURL != nil {
		cfg.BaseURL = *jc.BaseURL
	}
	if jc.Timeout != nil {
		cfg.Timeout = jc.Timeout.Duration
	}
	if jc.StorageDriver != nil {
		cfg.StorageDriver = *jc.StorageDriver
	}
	if jc.StorageDSN != nil {
		cfg.StorageDSN = *jc.StorageDSN
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	return nil
}
