package config

import "github.com/dmitrijs2005/gophfeed/internal/flagx"

const (
	EnvServerURL = "GOPHFEED_SERVER_URL"
	EnvTokenFile = "GOPHFEED_TOKEN_FILE"
)

func parseEnv(cfg *Config) {
	flagx.EnvString(&cfg.ServerURL, EnvServerURL)
	flagx.EnvString(&cfg.TokenFile, EnvTokenFile)
}
