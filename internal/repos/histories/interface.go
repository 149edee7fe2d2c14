// Package histories defines the append-only charge/use event log contract.
package histories

import (
	"context"
	"time"
)

// Kind labels a history entry with the mutation that produced it.
type Kind string

const (
	KindCharge Kind = "charge"
	KindUse    Kind = "use"
)

// Entry is one committed charge or use event. Entries are never mutated or
// deleted after Append.
type Entry struct {
	ID        int64
	UserID    int64
	Amount    int64
	Kind      Kind
	CreatedAt time.Time
}

type Store interface {
	// Append stores one event and returns it with its assigned ID.
	Append(ctx context.Context, e Entry) (Entry, error)

	// ListByUser returns the user's entries in insertion order.
	ListByUser(ctx context.Context, userID int64) ([]Entry, error)
}
