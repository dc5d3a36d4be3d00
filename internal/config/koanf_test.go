// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Dataset.TTL != 10*time.Minute {
		t.Errorf("Dataset.TTL = %v, want 10m", cfg.Dataset.TTL)
	}
	if cfg.Dataset.Timeout != 25*time.Second {
		t.Errorf("Dataset.Timeout = %v, want 25s", cfg.Dataset.Timeout)
	}
	if cfg.Geocode.PostalTTL != 24*time.Hour {
		t.Errorf("Geocode.PostalTTL = %v, want 24h", cfg.Geocode.PostalTTL)
	}
	if cfg.Geocode.AddressTTL != 10*time.Minute {
		t.Errorf("Geocode.AddressTTL = %v, want 10m", cfg.Geocode.AddressTTL)
	}
	if cfg.Geocode.Timeout != 10*time.Second {
		t.Errorf("Geocode.Timeout = %v, want 10s", cfg.Geocode.Timeout)
	}

	w := cfg.Recommend.Weights
	if w.CCA != 0.4 || w.Subjects != 0.25 || w.Level != 0.15 || w.Distance != 0.2 {
		t.Errorf("Recommend.Weights = %+v, want {0.4 0.25 0.15 0.2}", w)
	}
	if cfg.Recommend.DefaultLimit != 999999 {
		t.Errorf("Recommend.DefaultLimit = %d, want 999999", cfg.Recommend.DefaultLimit)
	}
	if cfg.Dataset.CutoffsID != "" {
		t.Errorf("Dataset.CutoffsID should be empty by default, got %q", cfg.Dataset.CutoffsID)
	}
	if cfg.Store.Path != "" {
		t.Errorf("Store.Path should be empty by default, got %q", cfg.Store.Path)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"LOG_LEVEL", "logging.level"},
		{"DATASET_TTL", "dataset.ttl"},
		{"GEOCODE_POSTAL_TTL", "geocode.postal_ttl"},
		{"RECOMMEND_WEIGHT_CCA", "recommend.weights.cca"},
		{"RECOMMEND_WEIGHT_DISTANCE", "recommend.weights.distance"},
		{"JWT_SECRET", "security.jwt_secret"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"STORE_PATH", "store.path"},
		{"PATH", ""},
		{"HOME", ""},
		{"RANDOM_VARIABLE", ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATASET_TTL", "5m")
	t.Setenv("GEOCODE_POSTAL_TTL", "12h")
	t.Setenv("RECOMMEND_WEIGHT_CCA", "0.2")
	t.Setenv("RECOMMEND_WEIGHT_DISTANCE", "0.4")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Dataset.TTL != 5*time.Minute {
		t.Errorf("Dataset.TTL = %v, want 5m", cfg.Dataset.TTL)
	}
	if cfg.Geocode.PostalTTL != 12*time.Hour {
		t.Errorf("Geocode.PostalTTL = %v, want 12h", cfg.Geocode.PostalTTL)
	}
	if cfg.Recommend.Weights.CCA != 0.2 || cfg.Recommend.Weights.Distance != 0.4 {
		t.Errorf("weights = %+v, want cca=0.2 distance=0.4", cfg.Recommend.Weights)
	}
	if cfg.Recommend.Weights.Subjects != 0.25 {
		t.Errorf("unset weight should keep default, got %v", cfg.Recommend.Weights.Subjects)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v, want two trimmed origins", cfg.Security.CORSOrigins)
	}
	if cfg.Security.JWTSecret != "s3cret" {
		t.Errorf("JWTSecret = %q, want s3cret", cfg.Security.JWTSecret)
	}
}

func TestLoadWithKoanf_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 7000
dataset:
  cutoffs_id: d_cutoffs
recommend:
  weights:
    level: 0.5
store:
  path: /tmp/prefs
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Dataset.CutoffsID != "d_cutoffs" {
		t.Errorf("Dataset.CutoffsID = %q, want d_cutoffs", cfg.Dataset.CutoffsID)
	}
	if cfg.Recommend.Weights.Level != 0.5 {
		t.Errorf("Weights.Level = %v, want 0.5", cfg.Recommend.Weights.Level)
	}
	if cfg.Recommend.Weights.CCA != 0.4 {
		t.Errorf("Weights.CCA = %v, want default 0.4", cfg.Recommend.Weights.CCA)
	}
	if cfg.Store.Path != "/tmp/prefs" {
		t.Errorf("Store.Path = %q, want /tmp/prefs", cfg.Store.Path)
	}
}

func TestLoadWithKoanf_InvalidEnvFailsValidation(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("RECOMMEND_WEIGHT_LEVEL", "-1")

	if _, err := LoadWithKoanf(); err == nil {
		t.Fatal("expected validation error for negative weight")
	}
}
