// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists config file locations in priority order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/schoolscout/config.yaml",
	"/etc/schoolscout/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RequestTimeout:  45 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Dataset: DatasetConfig{
			BaseURL:      "https://api-production.data.gov.sg/v2/public/api/datasets",
			SchoolsID:    "d_688b934f82c1059ed0a6993d2a829089",
			ActivitiesID: "d_9aba12b5527843afb0b2e8e4ed6ac6bd",
			SubjectsID:   "d_f1d144e423570c9d84dbc5102c2e664d",
			Timeout:      25 * time.Second,
			TTL:          10 * time.Minute,
			MaxPages:     200,
		},
		Geocode: GeocodeConfig{
			PrimaryURL:    "https://www.onemap.gov.sg",
			SecondaryURL:  "https://nominatim.openstreetmap.org",
			UserAgent:     "schoolscout/1.0 (+https://github.com/tomtom215/schoolscout)",
			Timeout:       10 * time.Second,
			PostalTTL:     24 * time.Hour,
			AddressTTL:    10 * time.Minute,
			RatePerSecond: 5,
			RateBurst:     5,
		},
		Recommend: RecommendConfig{
			Weights: WeightsConfig{
				CCA:      0.4,
				Subjects: 0.25,
				Level:    0.15,
				Distance: 0.2,
			},
			DefaultLimit:      999999,
			LocateConcurrency: 8,
		},
	}
}

// LoadWithKoanf loads configuration with precedence ENV > file > defaults,
// then validates it.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
// Unlisted variables are ignored.
var envMappings = map[string]string{
	"http_port":        "server.port",
	"http_host":        "server.host",
	"read_timeout":     "server.read_timeout",
	"write_timeout":    "server.write_timeout",
	"idle_timeout":     "server.idle_timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"request_timeout":  "server.request_timeout",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"cors_origins":        "security.cors_origins",
	"rate_limit_reqs":     "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"rate_limit_disabled": "security.rate_limit_disabled",
	"jwt_secret":          "security.jwt_secret",
	"jwt_issuer":          "security.jwt_issuer",

	"dataset_base_url":      "dataset.base_url",
	"dataset_schools_id":    "dataset.schools_id",
	"dataset_activities_id": "dataset.activities_id",
	"dataset_subjects_id":   "dataset.subjects_id",
	"dataset_cutoffs_id":    "dataset.cutoffs_id",
	"dataset_timeout":       "dataset.timeout",
	"dataset_ttl":           "dataset.ttl",
	"dataset_max_pages":     "dataset.max_pages",

	"geocode_primary_url":     "geocode.primary_url",
	"geocode_secondary_url":   "geocode.secondary_url",
	"geocode_user_agent":      "geocode.user_agent",
	"geocode_timeout":         "geocode.timeout",
	"geocode_postal_ttl":      "geocode.postal_ttl",
	"geocode_address_ttl":     "geocode.address_ttl",
	"geocode_rate_per_second": "geocode.rate_per_second",
	"geocode_rate_burst":      "geocode.rate_burst",

	"recommend_weight_cca":         "recommend.weights.cca",
	"recommend_weight_subjects":    "recommend.weights.subjects",
	"recommend_weight_level":       "recommend.weights.level",
	"recommend_weight_distance":    "recommend.weights.distance",
	"recommend_default_limit":      "recommend.default_limit",
	"recommend_locate_concurrency": "recommend.locate_concurrency",

	"store_path": "store.path",
}

// envTransformFunc transforms environment variable names to koanf paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - DATASET_TTL -> dataset.ttl
//   - RECOMMEND_WEIGHT_CCA -> recommend.weights.cca
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
