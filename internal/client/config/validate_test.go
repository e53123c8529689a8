package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		return c
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"relative url", func(c *Config) { c.BaseURL = "/api" }, "BaseURL"},
		{"non-http scheme", func(c *Config) { c.BaseURL = "ftp://host/api" }, "BaseURL"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "Timeout"},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, "Timeout"},
		{"unknown driver", func(c *Config) { c.StorageDriver = "bolt" }, "StorageDriver"},
		{"empty dsn", func(c *Config) { c.StorageDSN = "" }, "StorageDSN"},
		{"unknown level", func(c *Config) { c.LogLevel = "trace" }, "LogLevel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)

			err := c.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
