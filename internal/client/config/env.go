package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	envBaseURL    = "PGDESK_BASE_URL"
	envTimeout    = "PGDESK_TIMEOUT"
	envStorage    = "PGDESK_STORAGE"
	envStorageDSN = "PGDESK_STORAGE_DSN"
	envLogLevel   = "PGDESK_LOG_LEVEL"
)

// parseEnv overlays cfg with PGDESK_* variables. envFile, when it exists, is
// loaded first; a missing file is not an error.
func parseEnv(cfg *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if v, ok := os.LookupEnv(envBaseURL); ok {
		cfg.BaseURL = v
	}
	if v, ok := os.LookupEnv(envTimeout); ok {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", envTimeout, err)
		}
		cfg.Timeout = time.Duration(ms) * time.Millisecond
	}
	if v, ok := os.LookupEnv(envStorage); ok {
		cfg.StorageDriver = v
	}
	if v, ok := os.LookupEnv(envStorageDSN); ok {
		cfg.StorageDSN = v
	}
	if v, ok := os.LookupEnv(envLogLevel); ok {
		cfg.LogLevel = v
	}
	return nil
}
