// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment variables and command-line
// flags.
package config

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Supported values for Config.DatabaseDriver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DefaultSecretKey is the development signing key. Anyone can forge tokens
// for a server that keeps it.
const DefaultSecretKey = "secretKey"

// MaxPageSize bounds both the configured default and the page_size query
// parameter.
const MaxPageSize = 100

// Config holds runtime settings for the gophfeed server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DatabaseDriver: "postgres" (pgx) or "sqlite" (go-sqlite3).
//   - DatabaseDSN: driver specific DSN; a file path for sqlite.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the default in prod.
//   - AccessTokenValidityDuration: lifetime of tokens issued by login.
//   - PageSize: feed page size when the request does not ask for one.
//   - LogLevel / LogFormat: slog level and handler ("json" or "text").
//   - BcryptCost: work factor for password hashing.
type Config struct {
	EndpointAddrHTTP            string
	DatabaseDriver              string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	PageSize                    int
	LogLevel                    string
	LogFormat                   string
	BcryptCost                  int
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDriver = DriverSQLite
	c.DatabaseDSN = "gophfeed.db"
	c.SecretKey = DefaultSecretKey
	c.AccessTokenValidityDuration = 60 * time.Minute
	c.PageSize = 10
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.BcryptCost = bcrypt.DefaultCost
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.DatabaseDriver)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("database DSN is empty")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret key is empty")
	}
	if c.AccessTokenValidityDuration <= 0 {
		return fmt.Errorf("access token validity must be positive, got %s", c.AccessTokenValidityDuration)
	}
	if c.PageSize < 1 || c.PageSize > MaxPageSize {
		return fmt.Errorf("page size must be within 1..%d, got %d", MaxPageSize, c.PageSize)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost must be within %d..%d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}
	return nil
}
