package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("PLAY_TTL_HOURS", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Fatalf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.PlayTTL != 24*time.Hour {
		t.Fatalf("PlayTTL = %v, want 24h", cfg.PlayTTL)
	}
	if cfg.AllowedOrigins != nil {
		t.Fatalf("AllowedOrigins = %v, want nil", cfg.AllowedOrigins)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MAX_DB_CONNS", "32")
	t.Setenv("SESSION_MAX_AGE_HOURS", "2")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test ")

	cfg := Load()

	if cfg.ServerPort != "9090" {
		t.Fatalf("ServerPort = %q, want 9090", cfg.ServerPort)
	}
	if cfg.MaxDBConns != 32 {
		t.Fatalf("MaxDBConns = %d, want 32", cfg.MaxDBConns)
	}
	if cfg.SessionMaxAge != 2*time.Hour {
		t.Fatalf("SessionMaxAge = %v, want 2h", cfg.SessionMaxAge)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "http://a.test" || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestGetEnvIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("PLAY_TTL_HOURS", "soon")
	if got := getEnvInt("PLAY_TTL_HOURS", 5); got != 5 {
		t.Fatalf("getEnvInt = %d, want 5", got)
	}
	t.Setenv("PLAY_TTL_HOURS", "-3")
	if got := getEnvInt("PLAY_TTL_HOURS", 5); got != 5 {
		t.Fatalf("getEnvInt = %d, want 5", got)
	}
}

func TestPlayAnsweredKey(t *testing.T) {
	if got := CacheKey.PlayAnsweredKey("abc"); got != "play:abc:answered" {
		t.Fatalf("PlayAnsweredKey = %q", got)
	}
}
