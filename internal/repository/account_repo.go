// internal/repository/account_repo.go
package repository

import (
	"context"

	"github.com/Paulodemoc/torochallenge/internal/domain"

	"github.com/shopspring/decimal"
)

// AccountRepository defines the interface for account (funds) data operations.
type AccountRepository interface {
	// CreateAccount adds a new account using the provided DBExecutor.
	CreateAccount(ctx context.Context, q DBExecutor, account *domain.Account) error
	// GetAccountByUserID retrieves the account owned by the given user.
	GetAccountByUserID(ctx context.Context, q DBExecutor, userID string) (*domain.Account, error)
	// GetAccountForUpdate retrieves the account with a row lock so that
	// concurrent mutations against the same account serialize. Must be called
	// inside a transaction.
	GetAccountForUpdate(ctx context.Context, q DBExecutor, userID string) (*domain.Account, error)
	// UpdateAccountFunds writes the new funds value for the account.
	UpdateAccountFunds(ctx context.Context, q DBExecutor, userID string, funds decimal.Decimal) error
}
