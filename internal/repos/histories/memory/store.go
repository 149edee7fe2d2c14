// Package memory holds the charge/use event log in a process-local slice,
// standing in for an external append-only history store.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yongtae/pointsvc/internal/repos/histories"
	"github.com/yongtae/pointsvc/internal/repos/simlatency"
)

type Option func(*Store)

// WithLatency makes every call sleep a random duration up to max.
func WithLatency(max time.Duration) Option {
	return func(s *Store) { s.latency = max }
}

type Store struct {
	mu      sync.Mutex
	entries []histories.Entry
	nextID  int64

	latency time.Duration
}

var _ histories.Store = (*Store)(nil)

func New(opts ...Option) *Store {
	s := &Store{nextID: 1}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Store) Append(ctx context.Context, e histories.Entry) (histories.Entry, error) {
	err := simlatency.Sleep(ctx, s.latency)
	if err != nil {
		return histories.Entry{}, fmt.Errorf("append history: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.nextID
	s.nextID++

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	s.entries = append(s.entries, e)

	return e, nil
}

func (s *Store) ListByUser(ctx context.Context, userID int64) ([]histories.Entry, error) {
	err := simlatency.Sleep(ctx, s.latency)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []histories.Entry
	for _, e := range s.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}

	return out, nil
}
