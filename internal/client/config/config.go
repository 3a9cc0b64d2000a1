package config

import "time"

const EnvironmentProduction = "production"

// Config holds runtime settings for the cpguide CLI.
type Config struct {
	ServerBaseURL  string
	Environment    string
	DBPath         string
	RequestTimeout time.Duration
	LogLevel       string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.Environment = "development"
	c.DBPath = "session.db"
	c.RequestTimeout = 0
	c.LogLevel = "info"
}

// IsProduction reports whether cookies must be written with the secure flag.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvironmentProduction
}

// LoadConfig applies defaults, then JSON, environment and flags in that order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
