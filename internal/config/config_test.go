package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg := Load("does-not-exist.ini")
	if cfg.Addr != ":8080" || cfg.RateLimit != 10 || cfg.RateBurst != 20 {
		t.Errorf("defaults: %+v", cfg)
	}
	if cfg.DefaultNoise != "simplified" {
		t.Errorf("default noise method = %q", cfg.DefaultNoise)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.ini")
	contents := "[server]\nAddr = :9090\nRateLimit = 5\n\n[noise]\nDefaultMethod = iec_60534_8_3\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Load(path)
	if cfg.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.Addr)
	}
	if cfg.RateLimit != 5 {
		t.Errorf("rate limit = %v", cfg.RateLimit)
	}
	if cfg.RateBurst != 20 {
		t.Errorf("missing key should default: %v", cfg.RateBurst)
	}
	if cfg.DefaultNoise != "iec_60534_8_3" {
		t.Errorf("noise method = %q", cfg.DefaultNoise)
	}
}
