package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		App:   AppConfig{Env: "local", Port: 3500},
		DB:    DBConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "x", Name: "technotes"},
		Redis: RedisConfig{Host: "localhost", Port: 6379},
		Auth:  AuthConfig{AccessSecret: "access-secret", RefreshSecret: "refresh-secret"},
	}
}

func TestValidate_ReportsMissingRequired(t *testing.T) {
	c := Config{}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestValidate_AppliesTokenTTLDefaults(t *testing.T) {
	c := validConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.Auth.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("expected 15m access TTL default, got %v", c.Auth.AccessTokenTTL)
	}
	if c.Auth.RefreshTokenTTL != 7*24*time.Hour {
		t.Fatalf("expected 7d refresh TTL default, got %v", c.Auth.RefreshTokenTTL)
	}
	if c.Auth.LoginAttempts != 5 || c.Auth.LoginWindow != time.Minute {
		t.Fatalf("expected login limiter defaults, got %d/%v", c.Auth.LoginAttempts, c.Auth.LoginWindow)
	}
}

func TestValidate_RejectsSharedSecret(t *testing.T) {
	c := validConfig()
	c.Auth.RefreshSecret = c.Auth.AccessSecret
	err := c.Validate()
	if err == nil {
		t.Fatalf("expected error for shared signing secret")
	}
	if !strings.Contains(err.Error(), "must differ") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_RejectsRefreshTTLNotAboveAccess(t *testing.T) {
	c := validConfig()
	c.Auth.AccessTokenTTL = time.Hour
	c.Auth.RefreshTokenTTL = time.Hour
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for refresh TTL <= access TTL")
	}
}

func TestValidate_ProductionRequiresCORSOrigins(t *testing.T) {
	c := validConfig()
	c.App.Env = "production"
	c.DB.SSLMode = "require"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for production without CORS origins")
	}
	c.CORS.AllowedOrigins = []string{"https://notes.example.com"}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidate_LocalDefaultsSSLMode(t *testing.T) {
	c := validConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.DB.SSLMode != "disable" {
		t.Fatalf("expected sslmode disable default, got %q", c.DB.SSLMode)
	}
}
