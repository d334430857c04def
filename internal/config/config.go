// Package config loads service settings from flags, environment and defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"

	defaultPostgresDSN = "host=localhost user=ermachine dbname=blog port=5432 sslmode=disable"
)

type Config struct {
	HTTP            HTTPConfig
	MetricsPort     int
	Database        DatabaseConfig
	LogDevelopment  bool
	ShutdownTimeout time.Duration
}

type HTTPConfig struct {
	Port int
	// SSL enables redirect and HSTS headers; leave off behind a TLS-terminating proxy.
	SSL bool
}

type DatabaseConfig struct {
	Driver string
	DSN    string
	// Seed preloads fixture posts into the memory driver.
	Seed  bool
	Debug bool
}

// NewViper returns a viper instance with defaults and BLOG_* env bindings.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("blog")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http.port", 8080)
	v.SetDefault("http.ssl", false)
	v.SetDefault("metrics.port", 2112)
	v.SetDefault("db.driver", DriverPostgres)
	v.SetDefault("db.dsn", defaultPostgresDSN)
	v.SetDefault("db.seed", false)
	v.SetDefault("db.debug", false)
	v.SetDefault("log.development", false)
	v.SetDefault("shutdown.timeout", 10*time.Second)

	// POSTGRES_DSN is kept for existing deployments.
	_ = v.BindEnv("db.dsn", "BLOG_DB_DSN", "POSTGRES_DSN")
	return v
}

// Load reads and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		HTTP: HTTPConfig{
			Port: v.GetInt("http.port"),
			SSL:  v.GetBool("http.ssl"),
		},
		MetricsPort: v.GetInt("metrics.port"),
		Database: DatabaseConfig{
			Driver: strings.ToLower(strings.TrimSpace(v.GetString("db.driver"))),
			DSN:    v.GetString("db.dsn"),
			Seed:   v.GetBool("db.seed"),
			Debug:  v.GetBool("db.debug"),
		},
		LogDevelopment:  v.GetBool("log.development"),
		ShutdownTimeout: v.GetDuration("shutdown.timeout"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid http port %d", c.HTTP.Port)
	}
	if c.MetricsPort < 0 || c.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port %d", c.MetricsPort)
	}
	if c.MetricsPort == c.HTTP.Port {
		return fmt.Errorf("metrics port %d collides with http port", c.MetricsPort)
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("db.dsn is required for driver %q", c.Database.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown db driver %q", c.Database.Driver)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}
	return nil
}
