package service

import (
	"context"

	"ledger_service/internal/domain"
	"ledger_service/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UsersService manages user accounts and their initial balances
type UsersService struct {
	db          *pgxpool.Pool
	userRepo    *repository.UserRepository
	balanceRepo *repository.BalanceRepository
}

func NewUsersService(db *pgxpool.Pool) *UsersService {
	return &UsersService{
		db:          db,
		userRepo:    repository.NewUserRepository(db),
		balanceRepo: repository.NewBalanceRepository(db),
	}
}

// Create inserts an ACTIVE user and one zero balance per supported
// currency in a single database transaction.
func (s *UsersService) Create(ctx context.Context, email string) (*domain.User, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	exists, err := s.userRepo.EmailExistsWithTx(ctx, tx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	user := &domain.User{
		Email:  email,
		Status: domain.UserStatusActive,
	}
	if err := s.userRepo.CreateWithTx(ctx, tx, user); err != nil {
		return nil, err
	}

	if err := s.balanceRepo.CreateAllWithTx(ctx, tx, user.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return user, nil
}

// List returns users newest first with their balances attached, balances
// ordered by amount desc. Filters are ANDed; email matches
// case-insensitively.
func (s *UsersService) List(ctx context.Context, filter repository.UserFilter) ([]*domain.User, error) {
	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return users, nil
	}

	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	balances, err := s.balanceRepo.GetByUserIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		u.Balances = balances[u.ID]
	}
	return users, nil
}

// SetStatus flips a user between ACTIVE and BLOCKED. Setting the status
// the user already has is an error.
func (s *UsersService) SetStatus(ctx context.Context, userID int64, status domain.UserStatus) (*domain.User, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	user, err := s.userRepo.GetForUpdateWithTx(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	if user.Status == status {
		if status == domain.UserStatusBlocked {
			return nil, domain.ErrUserAlreadyBlocked
		}
		return nil, domain.ErrUserAlreadyActive
	}

	if err := s.userRepo.UpdateStatusWithTx(ctx, tx, userID, status); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	user.Status = status
	return user, nil
}
