// internal/service/funds_service.go
package service

import (
	"context"
	"fmt"

	"github.com/Paulodemoc/torochallenge/internal/domain"
	"github.com/Paulodemoc/torochallenge/internal/repository"
	"github.com/Paulodemoc/torochallenge/internal/util"
	"github.com/Paulodemoc/torochallenge/pkg/db"

	"github.com/shopspring/decimal"
)

// FundsService defines the business logic for cash balance operations.
type FundsService interface {
	// ViewFunds returns the account of the given user.
	ViewFunds(ctx context.Context, userID string) (*domain.Account, error)
	// Deposit increases the account funds by amount and persists the account.
	Deposit(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Account, error)
	// Withdraw decreases the account funds by amount and persists the account.
	Withdraw(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Account, error)
}

// fundsService implements the FundsService interface.
type fundsService struct {
	dbBeginner  db.DBTxBeginner       // For starting transactions (e.g., *sqlx.DB)
	dbExecutor  repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)
	accountRepo repository.AccountRepository
	beginTx     db.BeginTxFunc
	commitTx    db.CommitTxFunc
	rollbackTx  db.RollbackTxFunc
}

// NewFundsService creates a new instance of FundsService.
func NewFundsService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	accountRepo repository.AccountRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) FundsService {
	return &fundsService{
		dbBeginner:  dbBeginner,
		dbExecutor:  dbExecutor,
		accountRepo: accountRepo,
		beginTx:     beginTx,
		commitTx:    commitTx,
		rollbackTx:  rollbackTx,
	}
}

// ViewFunds returns the account of the given user.
func (s *fundsService) ViewFunds(ctx context.Context, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.GetAccountByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.NewNotFound(util.EntityAccount, userID)
		}
		return nil, fmt.Errorf("view funds: failed to get account %s: %w", userID, err)
	}
	return account, nil
}

// Deposit increases the account funds by amount.
// Validation order: amount first, then the account lookup. A zero or negative
// amount is rejected before any store access happens.
func (s *fundsService) Deposit(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Account, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("deposit: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("deposit: transaction controller does not implement DBExecutor")
	}

	account, err := s.accountRepo.GetAccountForUpdate(ctx, txExecutor, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.NewNotFound(util.EntityAccount, userID)
		}
		return nil, fmt.Errorf("deposit: failed to get account %s: %w", userID, err)
	}

	account.Funds = account.Funds.Add(amount)
	if err := s.accountRepo.UpdateAccountFunds(ctx, txExecutor, userID, account.Funds); err != nil {
		return nil, fmt.Errorf("deposit: failed to update account funds: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("deposit: failed to commit transaction: %w", err)
	}

	return account, nil
}

// Withdraw decreases the account funds by amount.
// Validation order: amount, then account lookup, then sufficient funds.
func (s *fundsService) Withdraw(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Account, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("withdraw: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("withdraw: transaction controller does not implement DBExecutor")
	}

	account, err := s.accountRepo.GetAccountForUpdate(ctx, txExecutor, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.NewNotFound(util.EntityAccount, userID)
		}
		return nil, fmt.Errorf("withdraw: failed to get account %s: %w", userID, err)
	}

	if account.Funds.LessThan(amount) {
		return nil, util.ErrInsufficientFunds
	}

	account.Funds = account.Funds.Sub(amount)
	if err := s.accountRepo.UpdateAccountFunds(ctx, txExecutor, userID, account.Funds); err != nil {
		return nil, fmt.Errorf("withdraw: failed to update account funds: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("withdraw: failed to commit transaction: %w", err)
	}

	return account, nil
}
