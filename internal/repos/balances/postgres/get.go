package balances

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yongtae/pointsvc/internal/repos/balances"
)

func (r *balancesRepo) Get(ctx context.Context, userID int64) (balances.Record, error) {
	rec := balances.Record{UserID: userID}

	err := r.db.QueryRowContext(ctx, `
		SELECT amount, updated_at
		FROM user_points
		WHERE user_id = $1
	`, userID).Scan(&rec.Amount, &rec.UpdatedAt)
	if err != nil {
		// First-touch semantics: an unknown user has a zero balance.
		if errors.Is(err, sql.ErrNoRows) {
			return balances.Zero(userID), nil
		}

		return balances.Record{}, fmt.Errorf("get balance: %w", err)
	}

	return rec, nil
}
