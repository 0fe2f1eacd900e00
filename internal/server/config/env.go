package config

import (
	"time"

	"github.com/dmitrijs2005/gophfeed/internal/flagx"
)

// Environment variables read by parseEnv.
const (
	EnvAddress     = "GOPHFEED_ADDRESS"
	EnvDriver      = "GOPHFEED_DB_DRIVER"
	EnvDatabaseDSN = "GOPHFEED_DATABASE_DSN"
	EnvSecretKey   = "GOPHFEED_SECRET_KEY"
	EnvTokenTTL    = "GOPHFEED_TOKEN_TTL"
	EnvPageSize    = "GOPHFEED_PAGE_SIZE"
	EnvLogLevel    = "GOPHFEED_LOG_LEVEL"
	EnvLogFormat   = "GOPHFEED_LOG_FORMAT"
	EnvBcryptCost  = "GOPHFEED_BCRYPT_COST"
)

// parseEnv overlays values from the environment. GOPHFEED_TOKEN_TTL is in
// minutes, like the -e flag. Malformed numbers panic.
func parseEnv(config *Config) {
	flagx.EnvString(&config.EndpointAddrHTTP, EnvAddress)
	flagx.EnvString(&config.DatabaseDriver, EnvDriver)
	flagx.EnvString(&config.DatabaseDSN, EnvDatabaseDSN)
	flagx.EnvString(&config.SecretKey, EnvSecretKey)
	flagx.EnvString(&config.LogLevel, EnvLogLevel)
	flagx.EnvString(&config.LogFormat, EnvLogFormat)

	ttl := int(config.AccessTokenValidityDuration.Minutes())
	for _, e := range []struct {
		dst *int
		key string
	}{
		{&ttl, EnvTokenTTL},
		{&config.PageSize, EnvPageSize},
		{&config.BcryptCost, EnvBcryptCost},
	} {
		if err := flagx.EnvInt(e.dst, e.key); err != nil {
			panic(err)
		}
	}
	config.AccessTokenValidityDuration = time.Duration(ttl) * time.Minute
}
