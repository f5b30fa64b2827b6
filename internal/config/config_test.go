package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_BesoccerRequiresTokenWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("BESOCCER_ENABLED", "true")
	t.Setenv("BESOCCER_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when BESOCCER_ENABLED=true without BESOCCER_TOKEN")
	}
}

func TestLoad_GeminiRequiresKeyWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("GEMINI_ENABLED", "true")
	t.Setenv("GEMINI_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when GEMINI_ENABLED=true without GEMINI_API_KEY")
	}
}

func TestLoad_BesoccerConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("BESOCCER_ENABLED", "true")
	t.Setenv("BESOCCER_TOKEN", "token-123")
	t.Setenv("BESOCCER_TIMEOUT", "7s")
	t.Setenv("BESOCCER_CIRCUIT_FAILURE_COUNT", "3")
	t.Setenv("BESOCCER_DEFAULT_COUNTRY", "england")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.BesoccerEnabled {
		t.Fatalf("expected BesoccerEnabled=true")
	}
	if cfg.BesoccerToken != "token-123" {
		t.Fatalf("unexpected BesoccerToken")
	}
	if cfg.BesoccerTimeout != 7*time.Second {
		t.Fatalf("unexpected BesoccerTimeout: %s", cfg.BesoccerTimeout)
	}
	if cfg.BesoccerCircuitFailureCount != 3 {
		t.Fatalf("unexpected BesoccerCircuitFailureCount: %d", cfg.BesoccerCircuitFailureCount)
	}
	if cfg.BesoccerDefaultCountry != "england" {
		t.Fatalf("unexpected BesoccerDefaultCountry: %q", cfg.BesoccerDefaultCountry)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.BesoccerTimeout != 10*time.Second {
		t.Fatalf("unexpected default BesoccerTimeout: %s", cfg.BesoccerTimeout)
	}
	if cfg.GeminiModel != "gemini-pro" {
		t.Fatalf("unexpected default GeminiModel: %q", cfg.GeminiModel)
	}
	if cfg.SyncHorizon != 720*time.Hour {
		t.Fatalf("unexpected default SyncHorizon: %s", cfg.SyncHorizon)
	}
	if cfg.SyncWorkers != 4 {
		t.Fatalf("unexpected default SyncWorkers: %d", cfg.SyncWorkers)
	}
	if cfg.LogLevel.String() != "info" {
		t.Fatalf("unexpected default LogLevel: %s", cfg.LogLevel.String())
	}
}

func TestLoad_InvalidDurations(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SYNC_HORIZON", "-1h")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative SYNC_HORIZON")
	}
}
