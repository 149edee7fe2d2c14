package balances

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yongtae/pointsvc/internal/repos/balances"
)

func (r *balancesRepo) Put(ctx context.Context, userID int64, amount int64) (balances.Record, error) {
	rec := balances.Record{UserID: userID}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO user_points (user_id, amount, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id)
		DO UPDATE SET amount = EXCLUDED.amount, updated_at = now()
		RETURNING amount, updated_at
	`, userID, amount).Scan(&rec.Amount, &rec.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23514" { // check_violation: amount outside [0, 5000]
				return balances.Record{}, balances.ErrOutOfRange
			}
		}

		return balances.Record{}, fmt.Errorf("put balance: %w", err)
	}

	return rec, nil
}
