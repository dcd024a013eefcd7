package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ledger_service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// CreateWithTx appends a ledger row inside an open database transaction
func (r *TransactionRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	err := tx.QueryRow(ctx,
		`INSERT INTO transactions (user_id, currency, amount, status)
		 VALUES ($1, $2, $3::numeric, $4)
		 RETURNING id, created_at`,
		t.UserID, t.Currency, t.Amount.String(), t.Status,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetWithBalanceForUpdate locks both the transaction row and its owning
// balance row in one statement, joined on the transaction's currency.
// Returns (nil, nil, nil) when no transaction matches the id for this user.
func (r *TransactionRepository) GetWithBalanceForUpdate(ctx context.Context, tx pgx.Tx, userID, transactionID int64) (*domain.Transaction, *domain.Balance, error) {
	row := tx.QueryRow(ctx,
		`SELECT t.id, t.user_id, t.currency, t.amount::text, t.status, t.created_at,
		        b.id, b.user_id, b.currency, b.amount::text, b.created_at
		 FROM transactions t
		 JOIN balances b ON b.user_id = t.user_id AND b.currency = t.currency
		 WHERE t.id = $1 AND t.user_id = $2
		 FOR UPDATE OF t, b`,
		transactionID, userID,
	)

	var (
		t          domain.Transaction
		b          domain.Balance
		tAmountStr string
		bAmountStr string
	)
	err := row.Scan(
		&t.ID, &t.UserID, &t.Currency, &tAmountStr, &t.Status, &t.CreatedAt,
		&b.ID, &b.UserID, &b.Currency, &bAmountStr, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("lock transaction with balance: %w", err)
	}

	if t.Amount, err = decimal.NewFromString(tAmountStr); err != nil {
		return nil, nil, fmt.Errorf("parse transaction amount %q: %w", tAmountStr, err)
	}
	if b.Amount, err = decimal.NewFromString(bAmountStr); err != nil {
		return nil, nil, fmt.Errorf("parse balance amount %q: %w", bAmountStr, err)
	}
	return &t, &b, nil
}

// ExistsWithTx reports whether a transaction with this id exists for any user
func (r *TransactionRepository) ExistsWithTx(ctx context.Context, tx pgx.Tx, transactionID int64) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM transactions WHERE id = $1)`, transactionID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check transaction exists: %w", err)
	}
	return exists, nil
}

// MarkRolledBackWithTx flips the transaction status to ROLLBACKED. The
// caller holds the row lock and has verified the current status.
func (r *TransactionRepository) MarkRolledBackWithTx(ctx context.Context, tx pgx.Tx, transactionID int64) error {
	if _, err := tx.Exec(ctx,
		`UPDATE transactions SET status = $1 WHERE id = $2`,
		domain.TransactionRollbacked, transactionID); err != nil {
		return fmt.Errorf("mark transaction rollbacked: %w", err)
	}
	return nil
}

// List returns transactions newest first, optionally scoped to one user,
// paginated with skip/limit.
func (r *TransactionRepository) List(ctx context.Context, userID *int64, skip, limit int) ([]*domain.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	if skip < 0 {
		skip = 0
	}

	query := `SELECT id, user_id, currency, amount::text, status, created_at
	          FROM transactions`
	args := []any{}
	if userID != nil {
		query += ` WHERE user_id = $1`
		args = append(args, *userID)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC OFFSET $%d LIMIT $%d`, len(args)+1, len(args)+2)
	args = append(args, skip, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListCreatedSince returns all transactions created at or after the given
// moment, for the analytics report.
func (r *TransactionRepository) ListCreatedSince(ctx context.Context, since time.Time) ([]*domain.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, currency, amount::text, status, created_at
		 FROM transactions
		 WHERE created_at >= $1`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("list transactions since: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func scanTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var result []*domain.Transaction
	for rows.Next() {
		var (
			t         domain.Transaction
			amountStr string
		)
		if err := rows.Scan(&t.ID, &t.UserID, &t.Currency, &amountStr, &t.Status, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("parse transaction amount %q: %w", amountStr, err)
		}
		t.Amount = amount
		result = append(result, &t)
	}
	return result, rows.Err()
}
