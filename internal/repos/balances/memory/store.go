// Package memory holds balances in a process-local map.
//
// It stands in for an external balance store: each call is individually
// atomic and, when latency is enabled, takes a random non-zero time, but
// there is no transactional scope across calls.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yongtae/pointsvc/internal/repos/balances"
	"github.com/yongtae/pointsvc/internal/repos/simlatency"
)

type Option func(*Store)

// WithReadLatency makes every Get sleep a random duration up to max.
func WithReadLatency(max time.Duration) Option {
	return func(s *Store) { s.readLatency = max }
}

// WithWriteLatency makes every Put sleep a random duration up to max.
func WithWriteLatency(max time.Duration) Option {
	return func(s *Store) { s.writeLatency = max }
}

type Store struct {
	mu      sync.RWMutex
	records map[int64]balances.Record

	readLatency  time.Duration
	writeLatency time.Duration
}

var _ balances.Store = (*Store)(nil)

func New(opts ...Option) *Store {
	s := &Store{records: make(map[int64]balances.Record)}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Store) Get(ctx context.Context, userID int64) (balances.Record, error) {
	err := simlatency.Sleep(ctx, s.readLatency)
	if err != nil {
		return balances.Record{}, fmt.Errorf("get balance: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[userID]
	if !ok {
		return balances.Zero(userID), nil
	}

	return rec, nil
}

func (s *Store) Put(ctx context.Context, userID int64, amount int64) (balances.Record, error) {
	err := simlatency.Sleep(ctx, s.writeLatency)
	if err != nil {
		return balances.Record{}, fmt.Errorf("put balance: %w", err)
	}

	rec := balances.Record{
		UserID:    userID,
		Amount:    amount,
		UpdatedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[userID] = rec

	return rec, nil
}
