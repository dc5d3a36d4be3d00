// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/schoolscout/internal/config"
	"github.com/tomtom215/schoolscout/internal/logging"
	"github.com/tomtom215/schoolscout/internal/metrics"
	"github.com/tomtom215/schoolscout/internal/models"
)

const prefixPreferences = "prefs:"

var (
	// ErrNotFound is returned when a subject has no stored preferences.
	ErrNotFound = errors.New("preferences not found")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("store is closed")

	// ErrEmptySubject is returned for a blank subject.
	ErrEmptySubject = errors.New("subject is required")
)

// Config configures the store.
type Config struct {
	// Path is the BadgerDB directory. Empty keeps everything in memory.
	Path string

	// GCInterval is how often Serve runs value-log GC.
	GCInterval time.Duration

	// GCRatio is the discard ratio handed to badger.
	GCRatio float64
}

// record is the on-disk value.
type record struct {
	Preferences models.Preferences `json:"preferences"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// Store persists preferences per subject in BadgerDB. It is safe for
// concurrent use.
type Store struct {
	db     *badger.DB
	cfg    Config
	logger zerolog.Logger
	closed atomic.Bool
	now    func() time.Time
}

// Open opens (or creates) the store.
func Open(cfg Config) (*Store, error) {
	if cfg.GCInterval <= 0 {
		cfg.GCInterval = 10 * time.Minute
	}
	if cfg.GCRatio <= 0 || cfg.GCRatio >= 1 {
		cfg.GCRatio = 0.5
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.Path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open preferences db: %w", err)
	}

	s := &Store{
		db:     db,
		cfg:    cfg,
		logger: logging.WithComponent("store"),
		now:    time.Now,
	}
	s.logger.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.Path == "").
		Msg("Preferences store opened")
	return s, nil
}

// OpenFromConfig opens the store described by the loaded configuration.
func OpenFromConfig(cfg config.StoreConfig) (*Store, error) {
	return Open(Config{Path: cfg.Path})
}

func key(subject string) []byte {
	return []byte(prefixPreferences + subject)
}

// Get returns the stored preferences for subject.
func (s *Store) Get(ctx context.Context, subject string) (models.Preferences, error) {
	var rec record
	err := s.view(ctx, subject, func(txn *badger.Txn) error {
		item, err := txn.Get(key(subject))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get preferences: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})

	metrics.RecordPreferenceOperation("get", ignoreNotFound(err))
	if err != nil {
		return models.Preferences{}, err
	}
	return rec.Preferences, nil
}

// Put replaces the preferences stored for subject.
func (s *Store) Put(ctx context.Context, subject string, prefs models.Preferences) error {
	data, err := json.Marshal(record{Preferences: prefs.Normalized(), UpdatedAt: s.now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	err = s.update(ctx, subject, func(txn *badger.Txn) error {
		return txn.Set(key(subject), data)
	})
	metrics.RecordPreferenceOperation("put", err)
	return err
}

// Delete removes subject's preferences. Deleting a missing entry is not an
// error.
func (s *Store) Delete(ctx context.Context, subject string) error {
	err := s.update(ctx, subject, func(txn *badger.Txn) error {
		return txn.Delete(key(subject))
	})
	metrics.RecordPreferenceOperation("delete", err)
	return err
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := s.usable(ctx); err != nil {
		return 0, err
	}
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefixPreferences)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

func (s *Store) view(ctx context.Context, subject string, fn func(*badger.Txn) error) error {
	if err := s.check(ctx, subject); err != nil {
		return err
	}
	return s.db.View(fn)
}

func (s *Store) update(ctx context.Context, subject string, fn func(*badger.Txn) error) error {
	if err := s.check(ctx, subject); err != nil {
		return err
	}
	if err := s.db.Update(fn); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}

func (s *Store) check(ctx context.Context, subject string) error {
	if strings.TrimSpace(subject) == "" {
		return ErrEmptySubject
	}
	return s.usable(ctx)
}

func (s *Store) usable(ctx context.Context) error {
	if s.closed.Load() {
		return ErrClosed
	}
	return ctx.Err()
}

// RunGC reclaims value-log space until badger reports nothing to rewrite.
func (s *Store) RunGC() error {
	if s.closed.Load() {
		return ErrClosed
	}
	if s.cfg.Path == "" {
		return nil
	}
	for {
		err := s.db.RunValueLogGC(s.cfg.GCRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run value log gc: %w", err)
		}
	}
}

// Serve runs value-log GC on an interval until ctx is done. It implements
// suture.Service.
func (s *Store) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.GCInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.RunGC(); err != nil {
				if errors.Is(err, ErrClosed) {
					return err
				}
				s.logger.Warn().Err(err).Msg("Value log GC failed")
			}
		}
	}
}

// String names the service in supervisor logs.
func (s *Store) String() string {
	return "preferences-store-gc"
}

// Close closes the database. Later calls are no-ops; other methods then
// return ErrClosed.
func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.db.Close()
}

func ignoreNotFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
