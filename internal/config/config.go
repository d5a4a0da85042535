// Package config handles loading ports, database strings and backend
// settings from a YAML file and environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Store backends.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Sequence backends. SequenceStore uses the launch store's own counter.
const (
	SequenceStore = "store"
	SequenceRedis = "redis"
)

// Config holds all configuration values for the application.
type Config struct {
	// Store backend: postgres or memory
	Store string

	// Database connection string, required for the postgres store
	DatabaseURL string

	// HTTP server port for the controller
	HTTPPort int

	// Launch data provider query endpoint
	SpaceXAPIURL string

	// Upper bound for one provider download
	ImportTimeout time.Duration

	// Path of the Kepler CSV export used to seed the planet catalog
	PlanetsFile string

	// Flight number allocator: store or redis
	SequenceBackend string

	// Redis address or redis:// URL, required for the redis sequence backend
	RedisURL string

	// NATS server URL; empty disables event publishing
	NATSURL string

	// Subject prefix for published events
	NATSSubjectPrefix string

	// OTLP gRPC collector address
	OTELEndpoint string

	// Time between background re-imports; 0 disables them
	SyncInterval time.Duration

	// Launch list page size when the request has no limit; 0 returns everything
	DefaultPageLimit int

	// Log level: debug, info, warn or error
	LogLevel string
}

// Load reads configuration from an optional YAML file, then environment
// variables. Environment variables win over the file. An empty path looks
// for launchplane.yaml in the working directory and ignores it if absent.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("store", StorePostgres)
	v.SetDefault("port", 8000)
	v.SetDefault("spacex_api_url", "https://api.spacexdata.com/v4/launches/query")
	v.SetDefault("import_timeout", 60*time.Second)
	v.SetDefault("planets_file", "data/kepler_data.csv")
	v.SetDefault("sequence_backend", SequenceStore)
	v.SetDefault("nats_subject_prefix", "")
	v.SetDefault("otel_endpoint", "localhost:4317")
	v.SetDefault("default_page_limit", 0)
	v.SetDefault("sync_interval", 0)
	v.SetDefault("log_level", "info")

	envs := map[string]string{
		"store":               "STORE_BACKEND",
		"database_url":        "DATABASE_URL",
		"port":                "PORT",
		"spacex_api_url":      "SPACEX_API_URL",
		"import_timeout":      "IMPORT_TIMEOUT",
		"planets_file":        "PLANETS_FILE",
		"sequence_backend":    "SEQUENCE_BACKEND",
		"redis_url":           "REDIS_URL",
		"nats_url":            "NATS_URL",
		"nats_subject_prefix": "NATS_SUBJECT_PREFIX",
		"otel_endpoint":       "OTEL_EXPORTER_OTLP_ENDPOINT",
		"default_page_limit":  "DEFAULT_PAGE_LIMIT",
		"sync_interval":       "SYNC_INTERVAL",
		"log_level":           "LOG_LEVEL",
	}
	for key, env := range envs {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("launchplane")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{
		Store:             v.GetString("store"),
		DatabaseURL:       v.GetString("database_url"),
		HTTPPort:          v.GetInt("port"),
		SpaceXAPIURL:      v.GetString("spacex_api_url"),
		ImportTimeout:     v.GetDuration("import_timeout"),
		PlanetsFile:       v.GetString("planets_file"),
		SequenceBackend:   v.GetString("sequence_backend"),
		RedisURL:          v.GetString("redis_url"),
		NATSURL:           v.GetString("nats_url"),
		NATSSubjectPrefix: v.GetString("nats_subject_prefix"),
		OTELEndpoint:      v.GetString("otel_endpoint"),
		DefaultPageLimit:  v.GetInt("default_page_limit"),
		SyncInterval:      v.GetDuration("sync_interval"),
		LogLevel:          v.GetString("log_level"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store {
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("database_url is required (env: DATABASE_URL)")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("invalid store %q (env: STORE_BACKEND): must be %s or %s", c.Store, StorePostgres, StoreMemory)
	}

	switch c.SequenceBackend {
	case SequenceStore:
	case SequenceRedis:
		if c.RedisURL == "" {
			return errors.New("redis_url is required when sequence_backend is redis (env: REDIS_URL)")
		}
	default:
		return fmt.Errorf("invalid sequence_backend %q (env: SEQUENCE_BACKEND): must be %s or %s", c.SequenceBackend, SequenceStore, SequenceRedis)
	}

	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid port %d (env: PORT)", c.HTTPPort)
	}
	if c.ImportTimeout <= 0 {
		return fmt.Errorf("invalid import_timeout %v (env: IMPORT_TIMEOUT)", c.ImportTimeout)
	}
	if c.DefaultPageLimit < 0 {
		return fmt.Errorf("invalid default_page_limit %d (env: DEFAULT_PAGE_LIMIT)", c.DefaultPageLimit)
	}
	if c.SyncInterval < 0 {
		return fmt.Errorf("invalid sync_interval %v (env: SYNC_INTERVAL)", c.SyncInterval)
	}
	return nil
}
