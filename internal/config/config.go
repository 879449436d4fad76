package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

type Config struct {
	Port          string
	PortfolioFile string
	Source        string
	PostgresURL   string
	LogLevel      logrus.Level
	GinMode       string
	CORSOrigins   []string
}

// Load reads an optional .env file, then the environment.
func Load() (Config, error) {
	// .env is optional, e.g. absent in production
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a variable lookup, applying defaults.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:          "4000",
		PortfolioFile: "Sample-Portfolio-Dataset-for-Assignment.xlsx",
		Source:        SourceFile,
		LogLevel:      logrus.InfoLevel,
		GinMode:       getenv("GIN_MODE"),
		CORSOrigins:   []string{"*"},
		PostgresURL:   getenv("POSTGRES_URL"),
	}

	if v := getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err != nil || p <= 0 || p > 65535 {
			return Config{}, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = v
	}
	if v := getenv("PORTFOLIO_FILE"); v != "" {
		cfg.PortfolioFile = v
	}
	if v := getenv("SNAPSHOT_SOURCE"); v != "" {
		cfg.Source = strings.ToLower(v)
	}
	switch cfg.Source {
	case SourceFile:
	case SourcePostgres:
		if cfg.PostgresURL == "" {
			return Config{}, fmt.Errorf("POSTGRES_URL is required when SNAPSHOT_SOURCE=%s", SourcePostgres)
		}
	default:
		return Config{}, fmt.Errorf("invalid SNAPSHOT_SOURCE %q", cfg.Source)
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		lvl, err := logrus.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = lvl
	}
	if v := getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}
	return cfg, nil
}

// AllowAllOrigins reports whether CORS is open to any origin.
func (c Config) AllowAllOrigins() bool {
	for _, o := range c.CORSOrigins {
		if o == "*" {
			return true
		}
	}
	return len(c.CORSOrigins) == 0
}
