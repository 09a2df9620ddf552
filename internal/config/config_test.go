package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "STORE_BACKEND", "TEAM_COUNT", "GENERATION_WORKERS",
		"TELEGRAM_ENABLED", "CACHE_ENABLED", "CACHE_TTL", "CORS_ALLOWED_ORIGINS",
		"UPTRACE_DSN", "OTEL_EXPORTER_OTLP_HEADERS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Fatalf("unexpected app env: got=%s want=%s", cfg.AppEnv, EnvDev)
	}
	if cfg.StoreBackend != StoreBackendMemory {
		t.Fatalf("unexpected store backend: got=%s want=%s", cfg.StoreBackend, StoreBackendMemory)
	}
	if cfg.TeamCount != 3 {
		t.Fatalf("unexpected team count: got=%d want=3", cfg.TeamCount)
	}
	if cfg.GenerationWorkers != 2 {
		t.Fatalf("unexpected generation workers: got=%d want=2", cfg.GenerationWorkers)
	}
	if cfg.TelegramEnabled {
		t.Fatal("telegram should be disabled by default")
	}
	if !cfg.CacheEnabled || cfg.CacheTTL != time.Minute {
		t.Fatalf("unexpected cache settings: enabled=%v ttl=%s", cfg.CacheEnabled, cfg.CacheTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("TEAM_COUNT", "4")
	t.Setenv("GENERATION_WORKERS", "8")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("TELEGRAM_ENABLED", "true")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200300")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.AppEnv != EnvProd {
		t.Fatalf("unexpected app env: got=%s", cfg.AppEnv)
	}
	if cfg.StoreBackend != StoreBackendPostgres {
		t.Fatalf("unexpected store backend: got=%s", cfg.StoreBackend)
	}
	if cfg.TeamCount != 4 || cfg.GenerationWorkers != 8 {
		t.Fatalf("unexpected generation settings: teams=%d workers=%d", cfg.TeamCount, cfg.GenerationWorkers)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowedOrigins)
	}
	if !cfg.TelegramEnabled || cfg.TelegramChatID != "-100200300" {
		t.Fatalf("unexpected telegram settings: enabled=%v chat=%s", cfg.TelegramEnabled, cfg.TelegramChatID)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  string
	}{
		{name: "unknown app env", key: "APP_ENV", val: "qa"},
		{name: "unknown store backend", key: "STORE_BACKEND", val: "mysql"},
		{name: "team count below minimum", key: "TEAM_COUNT", val: "1"},
		{name: "non numeric workers", key: "GENERATION_WORKERS", val: "many"},
		{name: "negative solver budget", key: "SOLVER_MAX_NODES", val: "-1"},
		{name: "zero cache ttl", key: "CACHE_TTL", val: "0s"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected an error for %s=%s", tc.key, tc.val)
			}
		})
	}
}

func TestLoadTelegramRequiresCredentials(t *testing.T) {
	t.Setenv("TELEGRAM_ENABLED", "true")
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "TELEGRAM_TOKEN") {
		t.Fatalf("expected a missing token error, got %v", err)
	}
}

func TestLoadUptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `x-api-key=abc, uptrace-dsn="https://token@uptrace.dev/1"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@uptrace.dev/1" {
		t.Fatalf("unexpected uptrace dsn: got=%q", cfg.UptraceDSN)
	}
}
