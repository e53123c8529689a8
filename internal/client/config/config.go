package config

import (
	"os"
	"time"
)

const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

// Config holds runtime settings for the pgdesk client.
//
// Fields:
//   - BaseURL: origin + path prefix every API endpoint is appended to.
//   - Timeout: hard limit for a single HTTP request.
//   - StorageDriver: "sqlite" (device-local file) or "redis".
//   - StorageDSN: SQLite file path or Redis address, depending on StorageDriver.
//   - LogLevel: debug | info | warn | error.
type Config struct {
	BaseURL       string        `validate:"required,url,startswith=http"`
	Timeout       time.Duration `validate:"gt=0"`
	StorageDriver string        `validate:"oneof=sqlite redis"`
	StorageDSN    string        `validate:"required"`
	LogLevel      string        `validate:"oneof=debug info warn error"`
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:3000/api"
	c.Timeout = 15 * time.Second
	c.StorageDriver = StorageSQLite
	c.StorageDSN = "pgdesk.db"
	c.LogLevel = "info"
}

// Load builds a Config from defaults, then the environment (including an
// optional .env file), then the JSON file named by -c/-config, then flags.
// Later sources win. The result is validated before it is returned.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, ".env"); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
