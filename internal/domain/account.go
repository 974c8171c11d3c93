// internal/domain/account.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// Account holds the cash funds of a user. Invariant: Funds is never negative
// after a committed operation.
type Account struct {
	UserID    string          `db:"user_id" json:"user_id"` // Owner, also the lookup key
	Funds     decimal.Decimal `db:"funds" json:"funds"`     // NUMERIC(20, 4) in DB
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// NewAccount creates a new Account with zero funds.
func NewAccount(userID string) *Account {
	now := time.Now().UTC()
	return &Account{
		UserID:    userID,
		Funds:     decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
