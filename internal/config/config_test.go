package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.Address != ":8080" {
		t.Errorf("Server.Address = %q", cfg.Server.Address)
	}
	if !cfg.API.UseMock {
		t.Error("the mock backend must be the default")
	}
	if cfg.API.BaseURL != "http://localhost:3000/api" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.Store.ReadDelay != 500*time.Millisecond {
		t.Errorf("Store.ReadDelay = %v", cfg.Store.ReadDelay)
	}
	if cfg.Store.WriteDelay != 400*time.Millisecond {
		t.Errorf("Store.WriteDelay = %v", cfg.Store.WriteDelay)
	}
	if cfg.Database.Name != "training_log" {
		t.Errorf("Database.Name = %q", cfg.Database.Name)
	}
	if cfg.JWT.Expiration != time.Hour {
		t.Errorf("JWT.Expiration = %v", cfg.JWT.Expiration)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("API_USE_MOCK", "false")
	t.Setenv("API_BASE_URL", "https://api.example.com/v2")
	t.Setenv("STORE_READ_DELAY", "0s")
	t.Setenv("SERVER_ADDRESS", ":9000")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.API.UseMock {
		t.Error("API_USE_MOCK=false must switch off the mock backend")
	}
	if cfg.API.BaseURL != "https://api.example.com/v2" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.Store.ReadDelay != 0 {
		t.Errorf("Store.ReadDelay = %v", cfg.Store.ReadDelay)
	}
	if cfg.Server.Address != ":9000" {
		t.Errorf("Server.Address = %q", cfg.Server.Address)
	}
}
