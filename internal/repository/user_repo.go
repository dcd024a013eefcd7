package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ledger_service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, status, created_at FROM users WHERE id = $1`, id)

	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.Status, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

// GetWithTx loads a user inside an open database transaction
func (r *UserRepository) GetWithTx(ctx context.Context, tx pgx.Tx, id int64) (*domain.User, error) {
	row := tx.QueryRow(ctx,
		`SELECT id, email, status, created_at FROM users WHERE id = $1`, id)

	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.Status, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

// GetForUpdateWithTx loads a user with an exclusive row lock
func (r *UserRepository) GetForUpdateWithTx(ctx context.Context, tx pgx.Tx, id int64) (*domain.User, error) {
	row := tx.QueryRow(ctx,
		`SELECT id, email, status, created_at FROM users WHERE id = $1 FOR UPDATE`, id)

	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.Status, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("lock user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) EmailExistsWithTx(ctx context.Context, tx pgx.Tx, email string) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1))`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, u *domain.User) error {
	err := tx.QueryRow(ctx,
		`INSERT INTO users (email, status) VALUES ($1, $2) RETURNING id, created_at`,
		u.Email, u.Status,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateStatusWithTx(ctx context.Context, tx pgx.Tx, id int64, status domain.UserStatus) error {
	if _, err := tx.Exec(ctx,
		`UPDATE users SET status = $1 WHERE id = $2`, status, id); err != nil {
		return fmt.Errorf("update user status: %w", err)
	}
	return nil
}

// UserFilter narrows List results; nil fields are ignored, set fields are ANDed
type UserFilter struct {
	ID     *int64
	Email  *string
	Status *domain.UserStatus
}

// List returns users newest first matching the filter, without balances
func (r *UserRepository) List(ctx context.Context, filter UserFilter) ([]*domain.User, error) {
	query := `SELECT id, email, status, created_at FROM users WHERE 1=1`
	args := []any{}
	n := 0

	if filter.ID != nil {
		n++
		query += fmt.Sprintf(" AND id = $%d", n)
		args = append(args, *filter.ID)
	}
	if filter.Email != nil {
		n++
		query += fmt.Sprintf(" AND email ILIKE $%d", n)
		args = append(args, *filter.Email)
	}
	if filter.Status != nil {
		n++
		query += fmt.Sprintf(" AND status = $%d", n)
		args = append(args, *filter.Status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var result []*domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Status, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		result = append(result, &u)
	}
	return result, rows.Err()
}

// RegisteredUser is the slice of user data the analytics report needs
type RegisteredUser struct {
	ID        int64
	CreatedAt time.Time
}

// ListCreatedSince returns id and creation time of users registered at or
// after the given moment
func (r *UserRepository) ListCreatedSince(ctx context.Context, since time.Time) ([]RegisteredUser, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, created_at FROM users WHERE created_at >= $1`, since)
	if err != nil {
		return nil, fmt.Errorf("list users since: %w", err)
	}
	defer rows.Close()

	var result []RegisteredUser
	for rows.Next() {
		var u RegisteredUser
		if err := rows.Scan(&u.ID, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan registered user: %w", err)
		}
		result = append(result, u)
	}
	return result, rows.Err()
}
