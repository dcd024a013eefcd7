package service

import (
	"context"

	"ledger_service/internal/domain"
	"ledger_service/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// LedgerService applies and rolls back balance-affecting transactions.
// Every operation runs as one database transaction: the balance row is
// locked with FOR UPDATE before the read-modify-write, so concurrent
// operations on the same (user, currency) pair serialize on the lock.
type LedgerService struct {
	db              *pgxpool.Pool
	userRepo        *repository.UserRepository
	balanceRepo     *repository.BalanceRepository
	transactionRepo *repository.TransactionRepository
}

func NewLedgerService(db *pgxpool.Pool) *LedgerService {
	return &LedgerService{
		db:              db,
		userRepo:        repository.NewUserRepository(db),
		balanceRepo:     repository.NewBalanceRepository(db),
		transactionRepo: repository.NewTransactionRepository(db),
	}
}

// Apply records a signed transaction and adjusts the owning balance.
// Positive amount deposits, negative withdraws. Fails with
// domain.ErrInsufficientBalance when the withdrawal would drive the
// balance negative, leaving both tables untouched.
func (s *LedgerService) Apply(ctx context.Context, userID int64, currency domain.Currency, amount decimal.Decimal) (*domain.Transaction, error) {
	if amount.IsZero() {
		return nil, domain.ErrInvalidAmount
	}
	if !currency.IsValid() {
		return nil, domain.ErrInvalidCurrency
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	user, err := s.userRepo.GetWithTx(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if user.Status == domain.UserStatusBlocked {
		return nil, domain.ErrUserBlocked
	}

	balance, err := s.balanceRepo.GetForUpdateWithTx(ctx, tx, userID, currency)
	if err != nil {
		return nil, err
	}

	newAmount := balance.Amount.Add(amount)
	if newAmount.IsNegative() {
		return nil, domain.ErrInsufficientBalance
	}

	if err := s.balanceRepo.UpdateAmountWithTx(ctx, tx, balance.ID, newAmount); err != nil {
		return nil, err
	}

	transaction := &domain.Transaction{
		UserID:   userID,
		Currency: currency,
		Amount:   amount,
		Status:   domain.TransactionProcessed,
	}
	if err := s.transactionRepo.CreateWithTx(ctx, tx, transaction); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return transaction, nil
}

// Rollback reverses a previously applied transaction and marks it
// ROLLBACKED. The second rollback of the same transaction is an error,
// not a no-op. Reversal does not re-check the negative-balance floor:
// reversing a deposit legitimately exposes a deficit when later
// withdrawals already spent it.
func (s *LedgerService) Rollback(ctx context.Context, userID, transactionID int64) (*domain.Transaction, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	user, err := s.userRepo.GetWithTx(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if user.Status == domain.UserStatusBlocked {
		return nil, domain.ErrUserBlocked
	}

	transaction, balance, err := s.transactionRepo.GetWithBalanceForUpdate(ctx, tx, userID, transactionID)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		// Distinguish a foreign transaction from a nonexistent one
		exists, err := s.transactionRepo.ExistsWithTx(ctx, tx, transactionID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrTransactionNotOwned
		}
		return nil, domain.ErrTransactionNotFound
	}

	if transaction.Status == domain.TransactionRollbacked {
		return nil, domain.ErrTransactionRolledBack
	}

	// Subtracting the signed amount reverses both directions: a deposit
	// is taken back, a withdrawal is returned.
	newAmount := balance.Amount.Sub(transaction.Amount)

	if err := s.balanceRepo.UpdateAmountWithTx(ctx, tx, balance.ID, newAmount); err != nil {
		return nil, err
	}
	if err := s.transactionRepo.MarkRolledBackWithTx(ctx, tx, transaction.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	transaction.Status = domain.TransactionRollbacked
	return transaction, nil
}

// List returns transactions newest first, optionally for one user
func (s *LedgerService) List(ctx context.Context, userID *int64, skip, limit int) ([]*domain.Transaction, error) {
	return s.transactionRepo.List(ctx, userID, skip, limit)
}
