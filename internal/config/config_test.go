package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "DEBUG", "DATABASE_URL", "REDIS_ADDR", "REDIS_PASSWORD",
		"JWT_SECRET", "ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL", "ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServerPort != "4000" {
		t.Errorf("ServerPort: expected 4000, got %s", cfg.ServerPort)
	}
	if cfg.Debug {
		t.Error("Debug must default to false")
	}
	if cfg.AccessTokenTTL != 60*time.Minute {
		t.Errorf("AccessTokenTTL: expected 60m, got %s", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 7*24*time.Hour {
		t.Errorf("RefreshTokenTTL: expected 168h, got %s", cfg.RefreshTokenTTL)
	}
	if cfg.AllowedOrigins != "*" {
		t.Errorf("AllowedOrigins: expected *, got %s", cfg.AllowedOrigins)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DEBUG", "true")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/app")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("REFRESH_TOKEN_TTL", "720h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort: expected 8080, got %s", cfg.ServerPort)
	}
	if !cfg.Debug {
		t.Error("Debug must be true")
	}
	if cfg.DatabaseURL != "postgres://u:p@db:5432/app" {
		t.Errorf("DatabaseURL not overridden: %s", cfg.DatabaseURL)
	}
	if cfg.RedisAddr != "cache:6379" {
		t.Errorf("RedisAddr not overridden: %s", cfg.RedisAddr)
	}
	if cfg.JWTSecret != "s3cret" {
		t.Errorf("JWTSecret not overridden: %s", cfg.JWTSecret)
	}
	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Errorf("AccessTokenTTL: expected 15m, got %s", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 720*time.Hour {
		t.Errorf("RefreshTokenTTL: expected 720h, got %s", cfg.RefreshTokenTTL)
	}
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AccessTokenTTL != 60*time.Minute {
		t.Errorf("bad duration must fall back to default, got %s", cfg.AccessTokenTTL)
	}
}
