// Package points implements the point balance mutation core.
//
// Balance computation is a read-then-write across two store calls that are
// each atomic on their own but share no transactional scope. The store's
// per-call atomicity is therefore not enough: without external
// serialization, two concurrent mutations for one user could both read the
// same balance and one update would be lost. The core closes that gap with
// a per-user mutex held across the whole get → guard → put → log sequence,
// making per-user operations linearizable in lock-acquisition order while
// mutations for distinct users run fully in parallel.
package points

import (
	"context"
	"fmt"

	"github.com/yongtae/pointsvc/internal/repos/balances"
	"github.com/yongtae/pointsvc/internal/repos/histories"
	"github.com/yongtae/pointsvc/pkg/keyedmutex"
)

type Service struct {
	balances balances.Store
	history  histories.Store

	// One mutex per user id ever seen, owned by the service for its
	// lifetime. Mutations borrow a mutex for the span of one call.
	locks keyedmutex.Map[int64]
}

func New(b balances.Store, h histories.Store) *Service {
	return &Service{balances: b, history: h}
}

// Charge credits the user's balance.
//
// Fails with ErrBalanceLimitExceeded when the result would exceed
// MaxBalance; nothing is mutated on failure.
func (s *Service) Charge(ctx context.Context, req Request) (balances.Record, error) {
	err := req.validate()
	if err != nil {
		return balances.Record{}, err
	}

	req = req.withDefaults()

	mu := s.locks.Get(req.UserID)
	mu.Lock()
	defer mu.Unlock()

	cur, err := s.balances.Get(ctx, req.UserID)
	if err != nil {
		return balances.Record{}, fmt.Errorf("get balance: %w", err)
	}

	if cur.Amount+req.Amount > MaxBalance {
		return balances.Record{}, ErrBalanceLimitExceeded
	}

	rec, err := s.commit(ctx, req, cur.Amount+req.Amount, histories.KindCharge)
	if err != nil {
		return balances.Record{}, fmt.Errorf("charge: %w", err)
	}

	return rec, nil
}

// Use debits the user's balance.
//
// Guards run in a fixed order: expiry first, then insufficiency. Staleness
// is a property of the balance itself, independent of the requested amount,
// so an expired-but-sufficient balance reports expiry. Nothing is mutated
// on failure.
func (s *Service) Use(ctx context.Context, req Request) (balances.Record, error) {
	err := req.validate()
	if err != nil {
		return balances.Record{}, err
	}

	req = req.withDefaults()

	mu := s.locks.Get(req.UserID)
	mu.Lock()
	defer mu.Unlock()

	cur, err := s.balances.Get(ctx, req.UserID)
	if err != nil {
		return balances.Record{}, fmt.Errorf("get balance: %w", err)
	}

	if req.RequestedAt.Sub(cur.UpdatedAt) > ExpiryWindow {
		return balances.Record{}, ErrBalanceExpired
	}

	if cur.Amount-req.Amount < 0 {
		return balances.Record{}, ErrInsufficientBalance
	}

	rec, err := s.commit(ctx, req, cur.Amount-req.Amount, histories.KindUse)
	if err != nil {
		return balances.Record{}, fmt.Errorf("use: %w", err)
	}

	return rec, nil
}

// commit persists the new balance, then appends the history entry. There is
// no atomicity across the two calls: a fault after the put leaves a
// committed balance with no history entry, an accepted inconsistency
// window. The caller holds the user's lock.
func (s *Service) commit(ctx context.Context, req Request, newAmount int64, kind histories.Kind) (balances.Record, error) {
	rec, err := s.balances.Put(ctx, req.UserID, newAmount)
	if err != nil {
		return balances.Record{}, fmt.Errorf("put balance: %w", err)
	}

	_, err = s.history.Append(ctx, histories.Entry{
		UserID:    req.UserID,
		Amount:    req.Amount,
		Kind:      kind,
		CreatedAt: req.RequestedAt,
	})
	if err != nil {
		return balances.Record{}, fmt.Errorf("append history: %w", err)
	}

	return rec, nil
}

// Point returns the user's current balance. Reads are single store calls,
// atomic on their own, and are not serialized through the lock registry.
func (s *Service) Point(ctx context.Context, userID int64) (balances.Record, error) {
	if userID < 1 {
		return balances.Record{}, ErrInvalidUserID
	}

	rec, err := s.balances.Get(ctx, userID)
	if err != nil {
		return balances.Record{}, fmt.Errorf("get balance: %w", err)
	}

	return rec, nil
}

// History returns the user's charge/use events in insertion order.
func (s *Service) History(ctx context.Context, userID int64) ([]histories.Entry, error) {
	if userID < 1 {
		return nil, ErrInvalidUserID
	}

	entries, err := s.history.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	return entries, nil
}
