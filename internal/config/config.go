package config

import (
	"fmt"
	"os"
	"strings"
)

// Storage backends the server can run against.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	HTTP struct {
		Port string
	}

	Log struct {
		Level  string
		Format string
	}

	DB struct {
		URL      string
		Host     string
		Port     string
		User     string
		Password string
		Name     string
	}

	// Storage selects the backend: "postgres" (default) or "memory".
	Storage string
}

func New() *Config {
	cfg := &Config{}

	cfg.HTTP.Port = getEnvDefault("HTTP_PORT", "8080")

	cfg.Log.Level = getEnvDefault("LOG_LEVEL", "info")
	cfg.Log.Format = getEnvDefault("LOG_FORMAT", "json")

	cfg.Storage = strings.ToLower(getEnvDefault("STORAGE", StoragePostgres))

	cfg.DB.URL = os.Getenv("FILMRATE_DATABASE_URL")
	if cfg.DB.URL == "" {
		cfg.DB.Host = getEnvDefault("DB_HOST", "localhost")
		cfg.DB.Port = getEnvDefault("DB_PORT", "5432")
		cfg.DB.User = getEnvDefault("DB_USER", "filmrate")
		cfg.DB.Password = getEnvDefault("DB_PASSWORD", "filmrate")
		cfg.DB.Name = getEnvDefault("DB_NAME", "filmrate")

		cfg.DB.URL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			cfg.DB.User, cfg.DB.Password, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name)
	}

	return cfg
}

func getEnvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
