package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of a ledger transaction.
// The only legal transition is PROCESSED -> ROLLBACKED, exactly once.
type TransactionStatus string

const (
	TransactionProcessed  TransactionStatus = "PROCESSED"
	TransactionRollbacked TransactionStatus = "ROLLBACKED"
)

// Transaction is one signed amount movement against a single
// (user, currency) balance. Positive amount is a deposit, negative a
// withdrawal. Amount, currency and user are immutable after creation.
type Transaction struct {
	ID        int64             `db:"id" json:"id"`
	UserID    int64             `db:"user_id" json:"user_id"`
	Currency  Currency          `db:"currency" json:"currency"`
	Amount    decimal.Decimal   `db:"amount" json:"amount"`
	Status    TransactionStatus `db:"status" json:"status"`
	CreatedAt time.Time         `db:"created_at" json:"created_at"`
}
