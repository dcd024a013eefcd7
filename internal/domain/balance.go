package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance holds the current amount of one currency for one user.
// Exactly one row exists per (user, currency) pair; rows are created at
// user creation time and never deleted. Only the ledger engine mutates
// the amount.
type Balance struct {
	ID        int64           `db:"id" json:"id,omitempty"`
	UserID    int64           `db:"user_id" json:"user_id,omitempty"`
	Currency  Currency        `db:"currency" json:"currency"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	CreatedAt time.Time       `db:"created_at" json:"created_at,omitempty"`
}
