package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/robotika/internal/flagx"
	"github.com/dmitrijs2005/robotika/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept
// either "168h"-style strings or integer nanoseconds.
type JsonConfig struct {
	HTTPAddress           string         `json:"http_address"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	Production            *bool          `json:"production"`
	LogLevel              string         `json:"log_level"`
}

// parseJson overlays the file given with -c or -config. Only fields present
// in the file replace what config already holds.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if c.HTTPAddress != "" {
		config.HTTPAddress = c.HTTPAddress
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.Production != nil {
		config.Production = *c.Production
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	return nil
}
