package repository

import (
	"context"
	"errors"
	"fmt"

	"ledger_service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type BalanceRepository struct {
	db *pgxpool.Pool
}

func NewBalanceRepository(db *pgxpool.Pool) *BalanceRepository {
	return &BalanceRepository{db: db}
}

// GetForUpdateWithTx loads the (user, currency) balance row with an
// exclusive lock, serializing concurrent balance mutations.
func (r *BalanceRepository) GetForUpdateWithTx(ctx context.Context, tx pgx.Tx, userID int64, currency domain.Currency) (*domain.Balance, error) {
	row := tx.QueryRow(ctx,
		`SELECT id, user_id, currency, amount::text, created_at
		 FROM balances
		 WHERE user_id = $1 AND currency = $2
		 FOR UPDATE`,
		userID, currency,
	)

	b, err := scanBalance(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBalanceMissing
		}
		return nil, fmt.Errorf("lock balance: %w", err)
	}
	return b, nil
}

// UpdateAmountWithTx writes a new balance amount. Callers hold the row lock.
func (r *BalanceRepository) UpdateAmountWithTx(ctx context.Context, tx pgx.Tx, balanceID int64, amount decimal.Decimal) error {
	if _, err := tx.Exec(ctx,
		`UPDATE balances SET amount = $1::numeric WHERE id = $2`,
		amount.String(), balanceID); err != nil {
		return fmt.Errorf("update balance amount: %w", err)
	}
	return nil
}

// CreateAllWithTx bulk-inserts a zero balance per supported currency for a
// newly created user.
func (r *BalanceRepository) CreateAllWithTx(ctx context.Context, tx pgx.Tx, userID int64) error {
	batch := &pgx.Batch{}
	for _, currency := range domain.Currencies {
		batch.Queue(
			`INSERT INTO balances (user_id, currency, amount) VALUES ($1, $2, 0)`,
			userID, currency)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range domain.Currencies {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert initial balance: %w", err)
		}
	}
	return nil
}

// GetByUserIDs returns balances for a set of users, ordered by amount desc
// within each user, keyed by user id.
func (r *BalanceRepository) GetByUserIDs(ctx context.Context, userIDs []int64) (map[int64][]*domain.Balance, error) {
	result := make(map[int64][]*domain.Balance)
	if len(userIDs) == 0 {
		return result, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, currency, amount::text, created_at
		 FROM balances
		 WHERE user_id = ANY($1)
		 ORDER BY user_id, amount DESC`,
		userIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		result[b.UserID] = append(result[b.UserID], b)
	}
	return result, rows.Err()
}

func scanBalance(row pgx.Row) (*domain.Balance, error) {
	var (
		b         domain.Balance
		amountStr string
	)
	if err := row.Scan(&b.ID, &b.UserID, &b.Currency, &amountStr, &b.CreatedAt); err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("parse balance amount %q: %w", amountStr, err)
	}
	b.Amount = amount
	return &b, nil
}
