package config

import (
	"testing"
	"time"
)

func TestValidate_DevAllowsMissingSecret(t *testing.T) {
	cfg := &Config{Env: "development"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("development config should validate, got %v", err)
	}
}

func TestValidate_ProductionRequiresSecret(t *testing.T) {
	cfg := &Config{Env: "production", AITimeout: 10 * time.Second}
	if err := cfg.Validate(); err == nil {
		t.Fatal("production config without JWT_SECRET must not validate")
	}

	cfg.JWTSecret = "short"
	if err := cfg.Validate(); err == nil {
		t.Fatal("short JWT_SECRET must not validate")
	}

	cfg.JWTSecret = "0123456789abcdef0123456789abcdef"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid production config, got %v", err)
	}
}

func TestValidate_ProductionRequiresPositiveAITimeout(t *testing.T) {
	cfg := &Config{
		Env:       "production",
		JWTSecret: "0123456789abcdef0123456789abcdef",
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("zero AI_TIMEOUT must not validate in production")
	}
}

func TestIsDev(t *testing.T) {
	if !(&Config{Env: "development"}).IsDev() {
		t.Error("expected IsDev for ENV=development")
	}
	if (&Config{Env: "production"}).IsDev() {
		t.Error("expected !IsDev for ENV=production")
	}
}
