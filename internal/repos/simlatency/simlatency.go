// Package simlatency simulates the variable call latency of a real backing
// store. The in-memory stores use it so the mutation core is exercised
// against blocking, unpredictably slow get/put calls; tests leave it
// disabled and stay deterministic.
package simlatency

import (
	"context"
	"math/rand/v2"
	"time"
)

// Sleep blocks for a uniformly random duration in [0, max). A max of zero
// or less disables the delay. Returns early with ctx.Err() if the context
// is canceled first.
func Sleep(ctx context.Context, max time.Duration) error {
	if max <= 0 {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	t := time.NewTimer(rand.N(max))
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
