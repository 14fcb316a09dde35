// Package mem is the forum entity store: users, threads and comments kept in
// memory behind one data lock and persisted as a whole snapshot after every
// successful write.
package mem

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/itchan-dev/forum/backend/internal/storage/blob"
	"github.com/itchan-dev/forum/shared/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	persistDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "forum_snapshot_persist_duration_seconds",
			Help:    "Time spent encoding and saving the snapshot",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	persistFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "forum_snapshot_persist_failures_total",
			Help: "Snapshot saves that failed and were rolled back",
		},
	)
)

// Storage owns the data. View and Update hold the data lock for the whole
// callback, Update also holds it while the snapshot is saved.
type Storage struct {
	mu   sync.Mutex
	data *data
	blob blob.Store
	// last successfully persisted snapshot, the rollback point
	last []byte
}

// Open loads the snapshot from b. A missing snapshot starts an empty store and
// saves it right away.
func Open(ctx context.Context, b blob.Store) (*Storage, error) {
	log := logger.Component("store")
	s := &Storage{blob: b}

	raw, err := b.Load(ctx)
	switch {
	case errors.Is(err, blob.ErrNotFound):
		log.Warn("no database found, creating a new one")
		s.data = newData()
		if err := s.persist(ctx); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("load snapshot: %w", err)
	default:
		d, err := decode(raw)
		if err != nil {
			return nil, fmt.Errorf("decode snapshot: %w", err)
		}
		s.data = d
		s.last = raw
	}

	log.Info("store opened",
		"users", len(s.data.users),
		"threads", len(s.data.threads),
		"comments", len(s.data.comments))
	return s, nil
}

// View runs fn with read access. fn must not keep references to entities
// after it returns.
func (s *Storage) View(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&Tx{d: s.data})
}

// Update runs fn with write access and persists the result. fn must validate
// before it mutates: an error from fn is returned as is, without rollback.
// A failed save restores the state of the last successful save.
func (s *Storage) Update(ctx context.Context, fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(&Tx{d: s.data}); err != nil {
		return err
	}
	return s.persist(ctx)
}

// Reset drops every entity and persists the empty store.
func (s *Storage) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = newData()
	return s.persist(ctx)
}

// Snapshot encodes the current data the way it is persisted.
func (s *Storage) Snapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return encode(s.data)
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.blob.Ping(ctx)
}

func (s *Storage) Close() error {
	return s.blob.Close()
}

// persist must be called with the lock held.
func (s *Storage) persist(ctx context.Context) error {
	start := time.Now()
	defer func() { persistDuration.Observe(time.Since(start).Seconds()) }()

	raw, err := encode(s.data)
	if err == nil {
		err = s.blob.Save(ctx, raw)
	}
	if err != nil {
		persistFailures.Inc()
		s.rollback()
		return fmt.Errorf("writing to database failed: %w", err)
	}

	s.last = raw
	return nil
}

func (s *Storage) rollback() {
	if s.last == nil {
		s.data = newData()
		return
	}
	d, err := decode(s.last)
	if err != nil {
		// last was produced by encode, so this means a codec bug
		logger.Component("store").Error("rollback failed", "error", err)
		return
	}
	s.data = d
}
