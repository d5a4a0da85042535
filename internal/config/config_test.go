package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	// Clear any existing env vars
	t.Setenv("DATABASE_URL", "")
	t.Setenv("STORE_BACKEND", "")

	_, err := Load("")
	if err == nil {
		t.Fatal("expected error when DATABASE_URL is missing")
	}
	if err.Error() != "database_url is required (env: DATABASE_URL)" {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Store != StorePostgres {
		t.Errorf("expected Store postgres, got %s", cfg.Store)
	}
	if cfg.HTTPPort != 8000 {
		t.Errorf("expected HTTPPort 8000, got %d", cfg.HTTPPort)
	}
	if cfg.SpaceXAPIURL != "https://api.spacexdata.com/v4/launches/query" {
		t.Errorf("unexpected SpaceXAPIURL %s", cfg.SpaceXAPIURL)
	}
	if cfg.ImportTimeout != 60*time.Second {
		t.Errorf("expected ImportTimeout 60s, got %v", cfg.ImportTimeout)
	}
	if cfg.PlanetsFile != "data/kepler_data.csv" {
		t.Errorf("expected PlanetsFile data/kepler_data.csv, got %s", cfg.PlanetsFile)
	}
	if cfg.SequenceBackend != SequenceStore {
		t.Errorf("expected SequenceBackend store, got %s", cfg.SequenceBackend)
	}
	if cfg.NATSURL != "" {
		t.Errorf("expected events disabled by default, got %s", cfg.NATSURL)
	}
	if cfg.OTELEndpoint != "localhost:4317" {
		t.Errorf("expected OTELEndpoint localhost:4317, got %s", cfg.OTELEndpoint)
	}
	if cfg.DefaultPageLimit != 0 {
		t.Errorf("expected DefaultPageLimit 0, got %d", cfg.DefaultPageLimit)
	}
	if cfg.SyncInterval != 0 {
		t.Errorf("expected background sync disabled by default, got %v", cfg.SyncInterval)
	}
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://custom/db")
	t.Setenv("PORT", "9999")
	t.Setenv("IMPORT_TIMEOUT", "2m")
	t.Setenv("SEQUENCE_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")
	t.Setenv("NATS_URL", "nats://bus:4222")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel-collector:4317")
	t.Setenv("DEFAULT_PAGE_LIMIT", "50")
	t.Setenv("SYNC_INTERVAL", "6h")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DatabaseURL != "postgres://custom/db" {
		t.Errorf("expected DatabaseURL from env, got %s", cfg.DatabaseURL)
	}
	if cfg.HTTPPort != 9999 {
		t.Errorf("expected HTTPPort 9999, got %d", cfg.HTTPPort)
	}
	if cfg.ImportTimeout != 2*time.Minute {
		t.Errorf("expected ImportTimeout 2m, got %v", cfg.ImportTimeout)
	}
	if cfg.SequenceBackend != SequenceRedis {
		t.Errorf("expected SequenceBackend redis, got %s", cfg.SequenceBackend)
	}
	if cfg.RedisURL != "redis://cache:6379/0" {
		t.Errorf("expected RedisURL from env, got %s", cfg.RedisURL)
	}
	if cfg.NATSURL != "nats://bus:4222" {
		t.Errorf("expected NATSURL from env, got %s", cfg.NATSURL)
	}
	if cfg.OTELEndpoint != "otel-collector:4317" {
		t.Errorf("expected OTELEndpoint otel-collector:4317, got %s", cfg.OTELEndpoint)
	}
	if cfg.DefaultPageLimit != 50 {
		t.Errorf("expected DefaultPageLimit 50, got %d", cfg.DefaultPageLimit)
	}
	if cfg.SyncInterval != 6*time.Hour {
		t.Errorf("expected SyncInterval 6h, got %v", cfg.SyncInterval)
	}
}

func TestLoad_MemoryStoreNeedsNoDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("STORE_BACKEND", "memory")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Store != StoreMemory {
		t.Errorf("expected Store memory, got %s", cfg.Store)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "Store", env: map[string]string{"STORE_BACKEND": "mongo"}},
		{name: "Sequence backend", env: map[string]string{"SEQUENCE_BACKEND": "zookeeper"}},
		{name: "Redis without URL", env: map[string]string{"SEQUENCE_BACKEND": "redis", "REDIS_URL": ""}},
		{name: "Port", env: map[string]string{"PORT": "70000"}},
		{name: "Page limit", env: map[string]string{"DEFAULT_PAGE_LIMIT": "-1"}},
		{name: "Sync interval", env: map[string]string{"SYNC_INTERVAL": "-1m"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "postgres://localhost/test")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := Load(""); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	// Create temp config file
	tmpFile, err := os.CreateTemp("", "launchplane-test-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	configContent := `
database_url: "postgres://config-file/db"
port: 7777
planets_file: /srv/kepler.csv
nats_url: nats://file:4222
`
	if _, err := tmpFile.WriteString(configContent); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	tmpFile.Close()

	// Clear env vars that would override
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("PLANETS_FILE", "")
	t.Setenv("NATS_URL", "")

	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DatabaseURL != "postgres://config-file/db" {
		t.Errorf("expected DatabaseURL from config file, got %s", cfg.DatabaseURL)
	}
	if cfg.HTTPPort != 7777 {
		t.Errorf("expected HTTPPort 7777, got %d", cfg.HTTPPort)
	}
	if cfg.PlanetsFile != "/srv/kepler.csv" {
		t.Errorf("expected PlanetsFile from config file, got %s", cfg.PlanetsFile)
	}
	if cfg.NATSURL != "nats://file:4222" {
		t.Errorf("expected NATSURL from config file, got %s", cfg.NATSURL)
	}
}

func TestLoad_EnvOverridesConfigFile(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "launchplane-test-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	configContent := `
database_url: "postgres://from-file/db"
port: 7777
`
	if _, err := tmpFile.WriteString(configContent); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	tmpFile.Close()

	t.Setenv("DATABASE_URL", "postgres://from-env/db")
	t.Setenv("PORT", "8888")

	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Env should override config file
	if cfg.DatabaseURL != "postgres://from-env/db" {
		t.Errorf("expected DatabaseURL from env, got %s", cfg.DatabaseURL)
	}
	if cfg.HTTPPort != 8888 {
		t.Errorf("expected HTTPPort 8888 from env, got %d", cfg.HTTPPort)
	}
}

func TestLoad_InvalidConfigFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")

	_, err := Load("/nonexistent/path/to/config.yaml")
	if err == nil {
		t.Error("expected error for nonexistent config file")
	}
}
