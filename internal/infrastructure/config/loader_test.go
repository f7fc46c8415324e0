package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/doeshing/modelscout/internal/domain"
)

func TestLoadWritesDefaultsOnFirstRun(t *testing.T) {
	t.Setenv(domain.BaseURLEnvVar, "")
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := NewFileLoader(path).WithDotenv().Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Backend.BaseURL != domain.DefaultBaseURL {
		t.Fatalf("base url = %q", cfg.Backend.BaseURL)
	}
	if cfg.Dashboard.PollInterval() != domain.DefaultPollInterval {
		t.Fatalf("poll interval = %v", cfg.Dashboard.PollInterval())
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
}

func TestLoadHydratesAndHonorsEnvBaseURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := "backend:\n  base_url: http://analysis.internal:8080/\nworkflow:\n  default_mode: full\n"
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(domain.BaseURLEnvVar, "")
	cfg, err := NewFileLoader(path).WithDotenv().Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Backend.BaseURL != "http://analysis.internal:8080" {
		t.Fatalf("trailing slash not trimmed: %q", cfg.Backend.BaseURL)
	}
	if cfg.Workflow.DefaultMode != domain.ModeFull {
		t.Fatalf("mode = %q", cfg.Workflow.DefaultMode)
	}
	if cfg.Storage.Driver != domain.StorageDriverSQLite || cfg.Backend.TimeoutSeconds == 0 {
		t.Fatalf("defaults not hydrated: %+v", cfg)
	}

	t.Setenv(domain.BaseURLEnvVar, "https://override.example.com")
	cfg, err = NewFileLoader(path).WithDotenv().Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Backend.BaseURL != "https://override.example.com" {
		t.Fatalf("env override ignored: %q", cfg.Backend.BaseURL)
	}
}

func TestLoadReadsDotenv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte(domain.BaseURLEnvVar+"=http://from-dotenv:5000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(domain.BaseURLEnvVar, "")
	os.Unsetenv(domain.BaseURLEnvVar)

	cfg, err := NewFileLoader(filepath.Join(dir, "config.yaml")).WithDotenv(envFile).Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Backend.BaseURL != "http://from-dotenv:5000" {
		t.Fatalf("dotenv not applied: %q", cfg.Backend.BaseURL)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("storage:\n  driver: redis\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(domain.BaseURLEnvVar, "")
	if _, err := NewFileLoader(path).WithDotenv().Load(context.Background()); err == nil {
		t.Fatal("expected validation error")
	}
}
