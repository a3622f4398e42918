package config

import (
	"testing"
	"time"

	"github.com/nbanima/pickslate/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.ServiceName != "pickslate-api" {
		t.Fatalf("unexpected ServiceName: %q", cfg.ServiceName)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.LockBufferMinutes != 5 {
		t.Fatalf("unexpected LockBufferMinutes: %d", cfg.LockBufferMinutes)
	}
	if cfg.CacheTTL != time.Minute {
		t.Fatalf("unexpected CacheTTL: %s", cfg.CacheTTL)
	}
	if cfg.BalldontlieEnabled {
		t.Fatalf("expected provider disabled by default")
	}
	if cfg.BalldontlieBaseURL != "https://api.balldontlie.io/v1" {
		t.Fatalf("unexpected BalldontlieBaseURL: %q", cfg.BalldontlieBaseURL)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel: %v", cfg.LogLevel)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@uptrace.dev/123"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@uptrace.dev/123" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_BalldontlieConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("disabled by default", func(t *testing.T) {
		t.Setenv("BALLDONTLIE_ENABLED", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.BalldontlieEnabled {
			t.Fatalf("expected BalldontlieEnabled=false by default")
		}
	})

	t.Run("enabled requires api key", func(t *testing.T) {
		t.Setenv("BALLDONTLIE_ENABLED", "true")
		t.Setenv("BALLDONTLIE_API_KEY", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when BALLDONTLIE_ENABLED=true without BALLDONTLIE_API_KEY")
		}
	})

	t.Run("enabled with valid values", func(t *testing.T) {
		t.Setenv("BALLDONTLIE_ENABLED", "true")
		t.Setenv("BALLDONTLIE_API_KEY", "key-123")
		t.Setenv("BALLDONTLIE_TIMEOUT", "5s")
		t.Setenv("BALLDONTLIE_MAX_RETRIES", "2")
		t.Setenv("BALLDONTLIE_CIRCUIT_FAILURE_COUNT", "3")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.BalldontlieEnabled {
			t.Fatalf("expected BalldontlieEnabled=true")
		}
		if cfg.BalldontlieAPIKey != "key-123" {
			t.Fatalf("unexpected BalldontlieAPIKey")
		}
		if cfg.BalldontlieTimeout != 5*time.Second {
			t.Fatalf("unexpected BalldontlieTimeout: %s", cfg.BalldontlieTimeout)
		}
		if cfg.BalldontlieMaxRetries != 2 {
			t.Fatalf("unexpected BalldontlieMaxRetries: %d", cfg.BalldontlieMaxRetries)
		}
		if cfg.BalldontlieCircuitFailureCount != 3 {
			t.Fatalf("unexpected BalldontlieCircuitFailureCount: %d", cfg.BalldontlieCircuitFailureCount)
		}
	})
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_LockBufferValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PICKS_LOCK_BUFFER_MINUTES", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for PICKS_LOCK_BUFFER_MINUTES=0")
	}
}

func TestLoad_LogLevelParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogLevel != logging.LevelWarn {
		t.Fatalf("unexpected LogLevel: %v", cfg.LogLevel)
	}
}
