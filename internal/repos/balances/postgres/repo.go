package balances

import (
	"database/sql"

	"github.com/yongtae/pointsvc/internal/repos/balances"
)

var _ balances.Store = (*balancesRepo)(nil)

type balancesRepo struct{ db *sql.DB }

func New(db *sql.DB) *balancesRepo {
	return &balancesRepo{db: db}
}
