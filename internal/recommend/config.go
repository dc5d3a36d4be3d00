// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package recommend

import (
	"fmt"
	"math"

	"github.com/tomtom215/schoolscout/internal/config"
)

// DefaultLimit is used when a request sets no limit.
const DefaultLimit = 999999

// Config contains all configuration for the ranking engine.
type Config struct {
	// Weights are used for any request that does not override them.
	Weights Weights `json:"weights"`

	// DefaultLimit caps results when a request sets no limit.
	DefaultLimit int `json:"default_limit"`

	// LocateConcurrency bounds parallel school coordinate lookups.
	LocateConcurrency int `json:"locate_concurrency"`
}

// DefaultWeights returns {cca 0.4, subjects 0.25, level 0.15, distance 0.2}.
func DefaultWeights() Weights {
	return Weights{
		CCA:      0.4,
		Subjects: 0.25,
		Level:    0.15,
		Distance: 0.2,
	}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Weights:           DefaultWeights(),
		DefaultLimit:      DefaultLimit,
		LocateConcurrency: 8,
	}
}

// FromConfig converts the koanf-loaded section.
func FromConfig(cfg config.RecommendConfig) Config {
	c := Config{
		Weights: Weights{
			CCA:      cfg.Weights.CCA,
			Subjects: cfg.Weights.Subjects,
			Level:    cfg.Weights.Level,
			Distance: cfg.Weights.Distance,
		},
		DefaultLimit:      cfg.DefaultLimit,
		LocateConcurrency: cfg.LocateConcurrency,
	}
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = DefaultLimit
	}
	if c.LocateConcurrency <= 0 {
		c.LocateConcurrency = 8
	}
	return c
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.LocateConcurrency <= 0 {
		return fmt.Errorf("locate_concurrency must be positive, got %d", c.LocateConcurrency)
	}
	return nil
}

// Validate rejects negative and non-finite weights.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"cca":      w.CCA,
		"subjects": w.Subjects,
		"level":    w.Level,
		"distance": w.Distance,
	} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("weight %s must be a finite non-negative number, got %v", name, v)
		}
	}
	return nil
}

// WeightOverrides carries optionally-supplied weights from a request.
type WeightOverrides struct {
	CCA      *float64 `json:"cca,omitempty" validate:"omitempty,gte=0,finite"`
	Subjects *float64 `json:"subjects,omitempty" validate:"omitempty,gte=0,finite"`
	Level    *float64 `json:"level,omitempty" validate:"omitempty,gte=0,finite"`
	Distance *float64 `json:"distance,omitempty" validate:"omitempty,gte=0,finite"`
}

// Apply returns base with every supplied override replacing its field.
func (o *WeightOverrides) Apply(base Weights) Weights {
	if o == nil {
		return base
	}
	if o.CCA != nil {
		base.CCA = *o.CCA
	}
	if o.Subjects != nil {
		base.Subjects = *o.Subjects
	}
	if o.Level != nil {
		base.Level = *o.Level
	}
	if o.Distance != nil {
		base.Distance = *o.Distance
	}
	return base
}
