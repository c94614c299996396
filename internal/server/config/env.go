package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvFileKey   = "ROBOTIKA_ENV_FILE"
	EnvHTTPAddr  = "ROBOTIKA_HTTP_ADDR"
	EnvDSN       = "ROBOTIKA_DATABASE_DSN"
	EnvSecretKey = "ROBOTIKA_SECRET_KEY"
	EnvTokenTTL  = "ROBOTIKA_TOKEN_TTL"
	EnvProd      = "ROBOTIKA_PRODUCTION"
	EnvLogLevel  = "ROBOTIKA_LOG_LEVEL"

	defaultEnvFile = ".env"
)

// readEnvFile is a seam over godotenv.Read.
var readEnvFile = func(path string) (map[string]string, error) {
	return godotenv.Read(path)
}

// parseEnv overlays ROBOTIKA_* variables. Values from the .env file (path in
// ROBOTIKA_ENV_FILE, default ".env") are used only where the real
// environment has none. A missing .env file is not an error.
func parseEnv(config *Config, lookup func(string) (string, bool)) error {
	path := defaultEnvFile
	if p, ok := lookup(EnvFileKey); ok && p != "" {
		path = p
	}

	file, err := readEnvFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read env file %s: %w", path, err)
		}
		file = map[string]string{}
	}

	get := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}

	if v, ok := get(EnvHTTPAddr); ok && v != "" {
		config.HTTPAddress = v
	}
	if v, ok := get(EnvDSN); ok && v != "" {
		config.DatabaseDSN = v
	}
	if v, ok := get(EnvSecretKey); ok && v != "" {
		config.SecretKey = v
	}
	if v, ok := get(EnvTokenTTL); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTokenTTL, err)
		}
		config.TokenValidityDuration = d
	}
	if v, ok := get(EnvProd); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvProd, err)
		}
		config.Production = b
	}
	if v, ok := get(EnvLogLevel); ok && v != "" {
		config.LogLevel = v
	}
	return nil
}
