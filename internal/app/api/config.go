package api

import (
	"strings"

	"github.com/spf13/viper"
)

// Config carries environment-driven settings for the API process. The core
// only consumes these values; ownership of the environment stays here.
type Config struct {
	Port        string
	PostgresDSN string
	SQLitePath  string
	Environment string
}

// LoadConfig reads environment variables through viper and applies defaults.
func LoadConfig() Config {
	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "local")
	v.AutomaticEnv()

	return Config{
		Port:        strings.TrimSpace(v.GetString("PORT")),
		PostgresDSN: strings.TrimSpace(v.GetString("POSTGRES_DSN")),
		SQLitePath:  strings.TrimSpace(v.GetString("SQLITE_PATH")),
		Environment: strings.TrimSpace(v.GetString("ENVIRONMENT")),
	}
}

// Addr renders the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
