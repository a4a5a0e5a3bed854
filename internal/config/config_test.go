package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CatalogBaseURL != "http://localhost:8000/api" {
		t.Fatalf("unexpected catalog url %q", cfg.CatalogBaseURL)
	}
	if cfg.ProcessingBaseURL != "http://localhost:3001/api" {
		t.Fatalf("unexpected processing url %q", cfg.ProcessingBaseURL)
	}
	if cfg.HTTPTimeout != 0 {
		t.Fatalf("expected no default timeout, got %v", cfg.HTTPTimeout)
	}
	if cfg.StorageType != "none" {
		t.Fatalf("expected journal disabled by default, got %q", cfg.StorageType)
	}
	if cfg.DemoCountryCode != "BR" || cfg.DemoItemName == "" {
		t.Fatalf("unexpected demo item %q/%q", cfg.DemoItemName, cfg.DemoCountryCode)
	}
	if cfg.StorageTTL != 7*24*time.Hour {
		t.Fatalf("unexpected storage ttl %v", cfg.StorageTTL)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CATALOG_BASE_URL", "http://catalog.internal/api/")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "3")
	t.Setenv("DEMO_COUNTRY_CODE", "ca")
	t.Setenv("DEMO_REPORTS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CatalogBaseURL != "http://catalog.internal/api" {
		t.Fatalf("trailing slash not trimmed: %q", cfg.CatalogBaseURL)
	}
	if cfg.HTTPTimeout != 3*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.HTTPTimeout)
	}
	if cfg.DemoCountryCode != "CA" {
		t.Fatalf("country code not normalized: %q", cfg.DemoCountryCode)
	}
	if !cfg.DemoReports {
		t.Fatalf("expected demo reports enabled")
	}
}

func TestLoadRejectsNegativeTimeout(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_TIMEOUT_SECONDS", "-1")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative timeout")
	}
}
