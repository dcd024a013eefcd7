package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserBlocked        = errors.New("user is blocked")
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrUserAlreadyActive  = errors.New("user is already active")
	ErrUserAlreadyBlocked = errors.New("user is already blocked")

	// ErrBalanceMissing signals a data-integrity fault: every user gets a
	// balance row per currency at creation, so a missing row means the
	// store is corrupted, not that the caller did something wrong.
	ErrBalanceMissing = errors.New("balance row missing for user and currency")

	ErrInsufficientBalance = errors.New("not enough balance")
	ErrInvalidAmount       = errors.New("transaction can not have zero amount")
	ErrInvalidCurrency     = errors.New("unsupported currency")

	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrTransactionNotOwned   = errors.New("transaction does not belong to user")
	ErrTransactionRolledBack = errors.New("transaction is already rollbacked")
)
