package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "ditelemetry/pkg/config"
)

// Config defines telemetry API configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"TELEMETRY_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"TELEMETRY_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"TELEMETRY_REDIS_ADDR"`
		Password string `yaml:"password" env:"TELEMETRY_REDIS_PASSWORD"`
		TTLHours int    `yaml:"ttl_hours" env:"TELEMETRY_REDIS_TTL_HOURS"`
	} `yaml:"redis"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret" env:"TELEMETRY_JWT_SECRET"`
	} `yaml:"auth"`
	Telemetry struct {
		MaxPastHours     int `yaml:"max_past_hours" env:"TELEMETRY_MAX_PAST_HOURS"`
		MaxFutureMinutes int `yaml:"max_future_minutes" env:"TELEMETRY_MAX_FUTURE_MINUTES"`
	} `yaml:"telemetry"`
}

// Load configuration using the shared helper.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8080"
	cfg.Redis.TTLHours = 24
	cfg.Telemetry.MaxPastHours = 24
	cfg.Telemetry.MaxFutureMinutes = 60

	if err := libconfig.Load(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// RedisTTL returns the latest-snapshot cache lifetime.
func (c *Config) RedisTTL() time.Duration {
	hours := c.Redis.TTLHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// Freshness returns the accepted timestamp window around now.
func (c *Config) Freshness() (past, future time.Duration) {
	past = time.Duration(c.Telemetry.MaxPastHours) * time.Hour
	if past <= 0 {
		past = 24 * time.Hour
	}
	future = time.Duration(c.Telemetry.MaxFutureMinutes) * time.Minute
	if future <= 0 {
		future = time.Hour
	}
	return past, future
}
