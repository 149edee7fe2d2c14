package points

import (
	"errors"
	"time"
)

// Business constraints on point balances.
const (
	// MaxBalance is the inclusive cap on a user's balance.
	MaxBalance int64 = 5000

	// MinAmount is the smallest unit a single charge or use may move.
	MinAmount int64 = 100

	// ExpiryWindow is how long a balance stays spendable after its last
	// update. An untouched balance older than this cannot be used until a
	// charge refreshes its timestamp.
	ExpiryWindow = 10 * time.Second
)

// Guard and validation failures. All are rejected synchronously with no
// state mutated; callers branch with errors.Is.
var (
	ErrInvalidUserID        = errors.New("user id must be positive")
	ErrAmountTooSmall       = errors.New("amount below minimum unit")
	ErrBalanceLimitExceeded = errors.New("charge would exceed maximum balance")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrBalanceExpired       = errors.New("balance expired")
)

// Request describes one charge or use. It is transient, built per call.
type Request struct {
	UserID int64
	Amount int64

	// RequestedAt anchors the expiry check. Zero means "now".
	RequestedAt time.Time
}

func (r Request) validate() error {
	if r.UserID < 1 {
		return ErrInvalidUserID
	}

	if r.Amount < MinAmount {
		return ErrAmountTooSmall
	}

	return nil
}

// withDefaults returns the request with a concrete timestamp.
func (r Request) withDefaults() Request {
	if r.RequestedAt.IsZero() {
		r.RequestedAt = time.Now()
	}

	return r
}
