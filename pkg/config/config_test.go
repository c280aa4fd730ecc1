package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.App.Port)
	}
	if cfg.Admin.SessionToken != "static-token" {
		t.Fatalf("unexpected session token %q", cfg.Admin.SessionToken)
	}
	if cfg.Store.BaseURL != "https://board.example.firebaseio.com" {
		t.Fatalf("unexpected store base URL %q", cfg.Store.BaseURL)
	}
	if cfg.Store.Collection != "wishlist" {
		t.Fatalf("expected default collection wishlist, got %q", cfg.Store.Collection)
	}
	if cfg.Store.Timeout != 10*time.Second {
		t.Fatalf("expected default store timeout 10s, got %v", cfg.Store.Timeout)
	}
	if cfg.RateLimit.LoginWindow != time.Minute {
		t.Fatalf("expected default login window 1m, got %v", cfg.RateLimit.LoginWindow)
	}
	if cfg.Redis.URL != "" {
		t.Fatalf("redis should be disabled by default, got %q", cfg.Redis.URL)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvSessionToken); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvSessionToken, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestAppEnvHelpers(t *testing.T) {
	if !(AppConfig{Env: "Development"}).IsDev() {
		t.Fatal("expected IsDev to match case-insensitively")
	}
	if !(AppConfig{Env: "production"}).IsProd() {
		t.Fatal("expected IsProd to match")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvAdminUser, "admin")
	t.Setenv(EnvAdminPass, "hunter2")
	t.Setenv(EnvSessionToken, "static-token")
	t.Setenv(EnvStoreBaseURL, "https://board.example.firebaseio.com")
}
