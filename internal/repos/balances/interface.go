// Package balances defines the balance store contract.
//
// The store is the system of record for current per-user point amounts. Its
// two calls are each individually atomic, but there is no transactional
// scope across them: read-then-write consistency for one user is the
// mutation core's responsibility, not the store's.
package balances

import (
	"context"
	"errors"
	"time"
)

// ErrOutOfRange is returned by store implementations that enforce the
// balance range themselves (defense in depth; the mutation core checks the
// business limits before ever calling Put).
var ErrOutOfRange = errors.New("balance amount out of range")

// Record is a user's current point balance as persisted by the store.
type Record struct {
	UserID    int64
	Amount    int64
	UpdatedAt time.Time
}

// Zero returns the synthesized balance for a user the store has never seen:
// zero points, stamped now (first-touch semantics).
func Zero(userID int64) Record {
	return Record{UserID: userID, Amount: 0, UpdatedAt: time.Now()}
}

type Store interface {
	// Get returns the user's current balance. Unknown ids yield a zero
	// record with a current timestamp, never a not-found error.
	Get(ctx context.Context, userID int64) (Record, error)

	// Put unconditionally overwrites the user's balance and returns the
	// persisted record with a fresh timestamp.
	Put(ctx context.Context, userID int64, amount int64) (Record, error)
}
