package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type envConfig struct {
	ServerBaseURL  string         `env:"CPGUIDE_BACKEND"`
	Environment    string         `env:"CPGUIDE_ENV"`
	DBPath         string         `env:"CPGUIDE_DB_PATH"`
	RequestTimeout *time.Duration `env:"CPGUIDE_REQUEST_TIMEOUT"`
	LogLevel       string         `env:"CPGUIDE_LOG_LEVEL"`
}

// parseEnv overlays cfg with CPGUIDE_* variables that are set.
// It panics when a variable cannot be parsed.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.ServerBaseURL != "" {
		cfg.ServerBaseURL = ec.ServerBaseURL
	}
	if ec.Environment != "" {
		cfg.Environment = ec.Environment
	}
	if ec.DBPath != "" {
		cfg.DBPath = ec.DBPath
	}
	if ec.RequestTimeout != nil {
		cfg.RequestTimeout = *ec.RequestTimeout
	}
	if ec.LogLevel != "" {
		cfg.LogLevel = ec.LogLevel
	}
}
