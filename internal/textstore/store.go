// Package textstore keeps the editor document in sync with a durable slot.
//
// Reads fall back to a default value when the slot was never written. When
// the durable medium fails the store keeps working from memory for the rest
// of the session: failures are logged, never returned, never retried.
package textstore

import (
	"context"
	"errors"
	"sync"

	"github.com/goliatone/go-mdpad/internal/logging"
	"github.com/goliatone/go-mdpad/internal/slots"
	"github.com/goliatone/go-mdpad/pkg/interfaces"
)

// ErrUnavailable is recorded when the store starts without a durable repository.
var ErrUnavailable = errors.New("textstore: durable storage unavailable")

// Option customises a Store.
type Option func(*Store)

// WithLogger sets the logger used to report degraded persistence.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Store) {
		s.logger = logging.Ensure(logger)
	}
}

// Store is the persistent text store for a single slot key.
type Store struct {
	repo     slots.Repository
	key      string
	fallback string
	logger   interfaces.Logger

	mu       sync.Mutex
	memory   *string
	degraded bool
	err      error
}

// New returns a store reading and writing key in repo. A nil repo starts the
// store in memory-only mode.
func New(repo slots.Repository, key, fallback string, opts ...Option) *Store {
	s := &Store{
		repo:     repo,
		key:      key,
		fallback: fallback,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.logger = logging.WithSlotContext(s.logger, key)
	if repo == nil {
		s.degraded = true
		s.err = ErrUnavailable
	}
	return s
}

// Key returns the slot key the store is bound to.
func (s *Store) Key() string {
	return s.key
}

// Read returns the last written value, or the default when nothing was ever
// written.
func (s *Store) Read(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.memory != nil {
		return *s.memory
	}
	if s.degraded {
		return s.fallback
	}

	slot, err := s.repo.Get(ctx, s.key)
	switch {
	case err == nil:
		value := slot.Value
		s.memory = &value
		return value
	case errors.Is(err, slots.ErrSlotNotFound):
		return s.fallback
	default:
		s.degrade("store.read.failed", err)
		return s.fallback
	}
}

// Write records value, replacing any prior value.
func (s *Store) Write(ctx context.Context, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.memory = &value
	if s.degraded {
		return
	}
	slot, err := s.repo.Put(ctx, s.key, value)
	if err != nil {
		s.degrade("store.write.failed", err)
		return
	}
	s.logger.Trace("store.write", "revision", slot.Revision, "runes", len([]rune(value)))
}

// Degraded reports whether the store has fallen back to memory-only mode.
func (s *Store) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// Err returns the failure that caused the store to degrade, if any.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Store) degrade(event string, err error) {
	s.degraded = true
	s.err = err
	s.logger.Warn(event, "error", err, "fallback", "memory")
}
