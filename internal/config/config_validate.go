// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package config

import (
	"fmt"
	"net/url"
	"time"
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateLogging,
		c.validateSecurity,
		c.validateDataset,
		c.validateGeocode,
		c.validateRecommend,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	return requirePositive(map[string]time.Duration{
		"READ_TIMEOUT":     c.Server.ReadTimeout,
		"WRITE_TIMEOUT":    c.Server.WriteTimeout,
		"SHUTDOWN_TIMEOUT": c.Server.ShutdownTimeout,
		"REQUEST_TIMEOUT":  c.Server.RequestTimeout,
	})
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQS must be positive, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" && len(c.Security.CORSOrigins) > 1 {
			return fmt.Errorf("CORS_ORIGINS cannot mix '*' with explicit origins")
		}
	}
	return nil
}

func (c *Config) validateDataset() error {
	if err := validateURL("DATASET_BASE_URL", c.Dataset.BaseURL); err != nil {
		return err
	}
	ids := map[string]string{
		"DATASET_SCHOOLS_ID":    c.Dataset.SchoolsID,
		"DATASET_ACTIVITIES_ID": c.Dataset.ActivitiesID,
		"DATASET_SUBJECTS_ID":   c.Dataset.SubjectsID,
	}
	for name, id := range ids {
		if id == "" {
			return fmt.Errorf("%s is required", name)
		}
	}
	if c.Dataset.MaxPages < 1 {
		return fmt.Errorf("DATASET_MAX_PAGES must be positive, got %d", c.Dataset.MaxPages)
	}
	return requirePositive(map[string]time.Duration{
		"DATASET_TIMEOUT": c.Dataset.Timeout,
		"DATASET_TTL":     c.Dataset.TTL,
	})
}

func (c *Config) validateGeocode() error {
	if err := validateURL("GEOCODE_PRIMARY_URL", c.Geocode.PrimaryURL); err != nil {
		return err
	}
	if err := validateURL("GEOCODE_SECONDARY_URL", c.Geocode.SecondaryURL); err != nil {
		return err
	}
	if c.Geocode.RatePerSecond < 0 {
		return fmt.Errorf("GEOCODE_RATE_PER_SECOND must be non-negative")
	}
	return requirePositive(map[string]time.Duration{
		"GEOCODE_TIMEOUT":     c.Geocode.Timeout,
		"GEOCODE_POSTAL_TTL":  c.Geocode.PostalTTL,
		"GEOCODE_ADDRESS_TTL": c.Geocode.AddressTTL,
	})
}

func (c *Config) validateRecommend() error {
	w := c.Recommend.Weights
	weights := map[string]float64{
		"cca":      w.CCA,
		"subjects": w.Subjects,
		"level":    w.Level,
		"distance": w.Distance,
	}
	for name, v := range weights {
		if v < 0 {
			return fmt.Errorf("recommend.weights.%s must be non-negative, got %f", name, v)
		}
	}
	if c.Recommend.DefaultLimit < 1 {
		return fmt.Errorf("RECOMMEND_DEFAULT_LIMIT must be positive, got %d", c.Recommend.DefaultLimit)
	}
	if c.Recommend.LocateConcurrency < 1 {
		return fmt.Errorf("RECOMMEND_LOCATE_CONCURRENCY must be positive, got %d", c.Recommend.LocateConcurrency)
	}
	return nil
}

func validateURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
	}
	return nil
}

func requirePositive(durations map[string]time.Duration) error {
	for name, d := range durations {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}
	return nil
}
