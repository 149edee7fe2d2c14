package histories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yongtae/pointsvc/internal/repos/histories"
)

var _ histories.Store = (*historiesRepo)(nil)

type historiesRepo struct{ db *sql.DB }

func New(db *sql.DB) *historiesRepo {
	return &historiesRepo{db: db}
}

func (r *historiesRepo) Append(ctx context.Context, e histories.Entry) (histories.Entry, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO point_histories (user_id, amount, kind, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING id, created_at
	`, e.UserID, e.Amount, string(e.Kind)).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return histories.Entry{}, fmt.Errorf("append history: %w", err)
	}

	return e, nil
}

func (r *historiesRepo) ListByUser(ctx context.Context, userID int64) ([]histories.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, amount, kind, created_at
		FROM point_histories
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var out []histories.Entry

	for rows.Next() {
		var e histories.Entry

		err = rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Kind, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}

		out = append(out, e)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}

	return out, nil
}
