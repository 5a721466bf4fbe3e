package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.CacheTTL != 24*time.Hour {
		t.Errorf("CacheTTL = %v", cfg.CacheTTL)
	}
	if cfg.MaxBodyBytes != 1<<20 {
		t.Errorf("MaxBodyBytes = %d", cfg.MaxBodyBytes)
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("MOLDRAW_ADDR", "127.0.0.1:9000")
	t.Setenv("MOLDRAW_CACHE_TTL", "90m")
	t.Setenv("MOLDRAW_MAX_CONCURRENT", "0")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9000" || cfg.CacheTTL != 90*time.Minute {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.MaxConcurrent != 1 {
		t.Errorf("MaxConcurrent = %d, want 1", cfg.MaxConcurrent)
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("MOLDRAW_CACHE_DIR=/tmp/moldraw-test\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// godotenv does not override variables that are already set, so make
	// sure the test controls the value and cleans it up.
	t.Setenv("MOLDRAW_CACHE_DIR", "")
	os.Unsetenv("MOLDRAW_CACHE_DIR")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CacheDir != "/tmp/moldraw-test" {
		t.Errorf("CacheDir = %q", cfg.CacheDir)
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("MOLDRAW_CACHE_TTL", "soon")
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err == nil {
		t.Error("expected error for bad duration")
	}
}
