package domain

import "time"

// UserStatus is the lifecycle state of a user account
type UserStatus string

const (
	UserStatusActive  UserStatus = "ACTIVE"
	UserStatusBlocked UserStatus = "BLOCKED"
)

func (s UserStatus) IsValid() bool {
	return s == UserStatusActive || s == UserStatusBlocked
}

type User struct {
	ID        int64      `db:"id" json:"id"`
	Email     string     `db:"email" json:"email"`
	Status    UserStatus `db:"status" json:"status"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`

	// Balances is populated on list reads, ordered by amount desc
	Balances []*Balance `json:"balances,omitempty"`
}
