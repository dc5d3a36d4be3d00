// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
//
// Loading order (see LoadWithKoanf):
//  1. Defaults from defaultConfig()
//  2. Optional YAML file (CONFIG_PATH or one of DefaultConfigPaths)
//  3. Environment variables mapped by envTransformFunc
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//	srv := &http.Server{Addr: cfg.Server.Addr()}
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Security  SecurityConfig  `koanf:"security"`
	Dataset   DatasetConfig   `koanf:"dataset"`
	Geocode   GeocodeConfig   `koanf:"geocode"`
	Recommend RecommendConfig `koanf:"recommend"`
	Store     StoreConfig     `koanf:"store"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	// RequestTimeout bounds a single handler, including upstream fetches.
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds logging settings passed to logging.Init.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// SecurityConfig holds CORS, rate limiting and bearer token settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// JWTSecret verifies HS256 bearer tokens minted by the account service.
	// Empty disables stored-preference lookups; anonymous callers must then
	// always send explicit preferences.
	JWTSecret string `koanf:"jwt_secret"`
	JWTIssuer string `koanf:"jwt_issuer"`
}

// DatasetConfig describes the upstream open-data API and cache lifetime.
type DatasetConfig struct {
	BaseURL string `koanf:"base_url"`

	SchoolsID    string `koanf:"schools_id"`
	ActivitiesID string `koanf:"activities_id"`
	SubjectsID   string `koanf:"subjects_id"`
	// CutoffsID is optional; empty disables the cut-off table.
	CutoffsID string `koanf:"cutoffs_id"`

	Timeout  time.Duration `koanf:"timeout"`
	TTL      time.Duration `koanf:"ttl"`
	MaxPages int           `koanf:"max_pages"`
}

// GeocodeConfig configures the primary and secondary geocoding providers.
type GeocodeConfig struct {
	PrimaryURL   string        `koanf:"primary_url"`
	SecondaryURL string        `koanf:"secondary_url"`
	UserAgent    string        `koanf:"user_agent"`
	Timeout      time.Duration `koanf:"timeout"`
	PostalTTL    time.Duration `koanf:"postal_ttl"`
	AddressTTL   time.Duration `koanf:"address_ttl"`
	// RatePerSecond limits outbound calls per provider. Zero disables limiting.
	RatePerSecond float64 `koanf:"rate_per_second"`
	RateBurst     int     `koanf:"rate_burst"`
}

// RecommendConfig holds ranking defaults.
type RecommendConfig struct {
	Weights      WeightsConfig `koanf:"weights"`
	DefaultLimit int           `koanf:"default_limit"`
	// LocateConcurrency bounds parallel school postal-code lookups.
	LocateConcurrency int `koanf:"locate_concurrency"`
}

// WeightsConfig mirrors recommend.Weights without importing it.
type WeightsConfig struct {
	CCA      float64 `koanf:"cca"`
	Subjects float64 `koanf:"subjects"`
	Level    float64 `koanf:"level"`
	Distance float64 `koanf:"distance"`
}

// StoreConfig configures the preferences store. An empty Path keeps the
// store in memory.
type StoreConfig struct {
	Path string `koanf:"path"`
}

// Load reads configuration using koanf layering.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
