// internal/repository/postgres/account_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Paulodemoc/torochallenge/internal/domain"
	"github.com/Paulodemoc/torochallenge/internal/repository"
	"github.com/Paulodemoc/torochallenge/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// AccountRepository implements repository.AccountRepository for PostgreSQL.
type AccountRepository struct {
	// Methods receive a DBExecutor directly instead of holding *sqlx.DB
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *sqlx.DB) repository.AccountRepository {
	return &AccountRepository{}
}

// CreateAccount inserts a new account using the provided DBExecutor.
func (r *AccountRepository) CreateAccount(ctx context.Context, q repository.DBExecutor, account *domain.Account) error {
	query := `INSERT INTO accounts (user_id, funds, created_at, updated_at)
              VALUES ($1, $2, $3, $4)`
	_, err := q.ExecContext(ctx, query, account.UserID, account.Funds, account.CreatedAt, account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetAccountByUserID retrieves the account owned by the given user.
func (r *AccountRepository) GetAccountByUserID(ctx context.Context, q repository.DBExecutor, userID string) (*domain.Account, error) {
	var account domain.Account
	query := `SELECT user_id, funds, created_at, updated_at FROM accounts WHERE user_id = $1`
	err := q.GetContext(ctx, &account, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account for user %s: %w", userID, err)
	}
	return &account, nil
}

// GetAccountForUpdate retrieves the account with a FOR UPDATE row lock.
// Concurrent mutations of the same account block here until the holding
// transaction commits, so validation never runs against stale funds.
func (r *AccountRepository) GetAccountForUpdate(ctx context.Context, q repository.DBExecutor, userID string) (*domain.Account, error) {
	var account domain.Account
	query := `SELECT user_id, funds, created_at, updated_at FROM accounts WHERE user_id = $1 FOR UPDATE`
	err := q.GetContext(ctx, &account, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock account for user %s: %w", userID, err)
	}
	return &account, nil
}

// UpdateAccountFunds writes the new funds value for the account.
func (r *AccountRepository) UpdateAccountFunds(ctx context.Context, q repository.DBExecutor, userID string, funds decimal.Decimal) error {
	query := `UPDATE accounts SET funds = $1, updated_at = $2 WHERE user_id = $3`
	result, err := q.ExecContext(ctx, query, funds, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("failed to update funds for user %s: %w", userID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating funds for user %s: %w", userID, err)
	}
	if rowsAffected == 0 {
		return util.NewNotFound(util.EntityAccount, userID)
	}
	return nil
}
