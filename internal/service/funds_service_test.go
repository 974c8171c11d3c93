// internal/service/funds_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Paulodemoc/torochallenge/internal/domain"
	"github.com/Paulodemoc/torochallenge/internal/util"
	"github.com/Paulodemoc/torochallenge/pkg/db"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// fundsFixture bundles the mocks behind a FundsService under test.
type fundsFixture struct {
	accountRepo *MockAccountRepository
	dbBeginner  *MockDBBeginner
	dbExecutor  *MockDBExecutor
	tx          *MockTxController
	service     FundsService
}

func newFundsFixture() *fundsFixture {
	f := &fundsFixture{
		accountRepo: new(MockAccountRepository),
		dbBeginner:  new(MockDBBeginner),
		dbExecutor:  new(MockDBExecutor),
		tx:          new(MockTxController),
	}
	f.service = NewFundsService(
		f.dbBeginner,
		f.dbExecutor,
		f.accountRepo,
		func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
			return f.tx, nil
		},
		func(tx db.TxController) error {
			return f.tx.Commit()
		},
		func(tx db.TxController) {
			_ = f.tx.Rollback()
		},
	)
	return f
}

func (f *fundsFixture) assertExpectations(t *testing.T) {
	mock.AssertExpectationsForObjects(t, f.dbBeginner, f.dbExecutor, f.tx, f.accountRepo)
}

func TestViewFunds(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFundsFixture()
		account := &domain.Account{UserID: "12345", Funds: decimal.NewFromInt(10)}
		f.accountRepo.On("GetAccountByUserID", ctx, f.dbExecutor, "12345").Return(account, nil).Once()

		res, err := f.service.ViewFunds(ctx, "12345")

		assert.NoError(t, err)
		assert.True(t, decimal.NewFromInt(10).Equal(res.Funds), "Funds should be 10")
		f.assertExpectations(t)
	})

	t.Run("AccountNotFound", func(t *testing.T) {
		f := newFundsFixture()
		f.accountRepo.On("GetAccountByUserID", ctx, f.dbExecutor, "").Return(nil, util.ErrNotFound).Once()

		res, err := f.service.ViewFunds(ctx, "")

		assert.ErrorIs(t, err, util.ErrNotFound)
		assert.Nil(t, res)
		f.assertExpectations(t)
	})
}

func TestDeposit(t *testing.T) {
	ctx := context.Background()

	t.Run("SuccessfulDeposit", func(t *testing.T) {
		f := newFundsFixture()
		account := &domain.Account{UserID: "12345", Funds: decimal.NewFromInt(500)}

		f.tx.On("Commit").Return(nil).Once()
		f.tx.On("Rollback").Return(nil).Maybe() // Deferred rollback runs after commit
		f.accountRepo.On("GetAccountForUpdate", ctx, mock.Anything, "12345").Return(account, nil).Once()
		f.accountRepo.On("UpdateAccountFunds", ctx, mock.Anything, "12345", decimal.NewFromInt(600)).Return(nil).Once()

		res, err := f.service.Deposit(ctx, "12345", decimal.NewFromInt(100))

		assert.NoError(t, err)
		assert.True(t, decimal.NewFromInt(600).Equal(res.Funds), "New funds should be 600")
		f.assertExpectations(t)
	})

	t.Run("InvalidAmountRejectedBeforeLookup", func(t *testing.T) {
		f := newFundsFixture()

		res, err := f.service.Deposit(ctx, "", decimal.Zero)

		assert.ErrorIs(t, err, util.ErrInvalidInput)
		assert.Nil(t, res)

		// Bad request wins over not-found: no store access, no transaction.
		f.accountRepo.AssertNotCalled(t, "GetAccountForUpdate", mock.Anything, mock.Anything, mock.Anything)
		f.tx.AssertNotCalled(t, "Commit")
		f.tx.AssertNotCalled(t, "Rollback")
		f.assertExpectations(t)
	})

	t.Run("NegativeAmount", func(t *testing.T) {
		f := newFundsFixture()

		res, err := f.service.Deposit(ctx, "12345", decimal.NewFromInt(-10))

		assert.ErrorIs(t, err, util.ErrInvalidInput)
		assert.Nil(t, res)
		f.assertExpectations(t)
	})

	t.Run("AccountNotFound", func(t *testing.T) {
		f := newFundsFixture()
		f.accountRepo.On("GetAccountForUpdate", ctx, mock.Anything, "00000").Return(nil, util.ErrNotFound).Once()
		f.tx.On("Rollback").Return(nil).Once()

		res, err := f.service.Deposit(ctx, "00000", decimal.NewFromInt(1))

		assert.ErrorIs(t, err, util.ErrNotFound)
		var notFound *util.NotFoundError
		assert.ErrorAs(t, err, &notFound)
		assert.Equal(t, util.EntityAccount, notFound.Kind)
		assert.Nil(t, res)

		f.tx.AssertNotCalled(t, "Commit")
		f.accountRepo.AssertNotCalled(t, "UpdateAccountFunds", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("UpdateFundsError", func(t *testing.T) {
		f := newFundsFixture()
		account := &domain.Account{UserID: "12345", Funds: decimal.NewFromInt(500)}
		f.accountRepo.On("GetAccountForUpdate", ctx, mock.Anything, "12345").Return(account, nil).Once()
		f.accountRepo.On("UpdateAccountFunds", ctx, mock.Anything, "12345", decimal.NewFromInt(600)).Return(errors.New("db error")).Once()
		f.tx.On("Rollback").Return(nil).Once()

		res, err := f.service.Deposit(ctx, "12345", decimal.NewFromInt(100))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to update account funds")
		assert.Nil(t, res)

		f.tx.AssertNotCalled(t, "Commit")
		f.assertExpectations(t)
	})
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()

	t.Run("SuccessfulWithdrawal", func(t *testing.T) {
		f := newFundsFixture()
		account := &domain.Account{UserID: "12345", Funds: decimal.NewFromInt(10)}

		f.tx.On("Commit").Return(nil).Once()
		f.tx.On("Rollback").Return(nil).Maybe()
		f.accountRepo.On("GetAccountForUpdate", ctx, mock.Anything, "12345").Return(account, nil).Once()
		f.accountRepo.On("UpdateAccountFunds", ctx, mock.Anything, "12345", decimal.NewFromInt(9)).Return(nil).Once()

		res, err := f.service.Withdraw(ctx, "12345", decimal.NewFromInt(1))

		assert.NoError(t, err)
		assert.True(t, decimal.NewFromInt(9).Equal(res.Funds), "New funds should be 9")
		f.assertExpectations(t)
	})

	t.Run("InvalidAmountRejectedBeforeLookup", func(t *testing.T) {
		f := newFundsFixture()

		res, err := f.service.Withdraw(ctx, "", decimal.Zero)

		assert.ErrorIs(t, err, util.ErrInvalidInput)
		assert.Nil(t, res)
		f.accountRepo.AssertNotCalled(t, "GetAccountForUpdate", mock.Anything, mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("AccountNotFound", func(t *testing.T) {
		f := newFundsFixture()
		f.accountRepo.On("GetAccountForUpdate", ctx, mock.Anything, "00000").Return(nil, util.ErrNotFound).Once()
		f.tx.On("Rollback").Return(nil).Once()

		res, err := f.service.Withdraw(ctx, "00000", decimal.NewFromInt(1))

		assert.ErrorIs(t, err, util.ErrNotFound)
		assert.Nil(t, res)
		f.tx.AssertNotCalled(t, "Commit")
		f.assertExpectations(t)
	})

	t.Run("InsufficientFunds", func(t *testing.T) {
		f := newFundsFixture()
		account := &domain.Account{UserID: "12345", Funds: decimal.NewFromInt(10)}
		f.accountRepo.On("GetAccountForUpdate", ctx, mock.Anything, "12345").Return(account, nil).Once()
		f.tx.On("Rollback").Return(nil).Once()

		res, err := f.service.Withdraw(ctx, "12345", decimal.NewFromInt(1000))

		assert.ErrorIs(t, err, util.ErrInsufficientFunds)
		assert.Nil(t, res)

		// Funds are invariant under a failed withdrawal.
		f.accountRepo.AssertNotCalled(t, "UpdateAccountFunds", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.tx.AssertNotCalled(t, "Commit")
		f.assertExpectations(t)
	})

	t.Run("DepositWithdrawRoundTrip", func(t *testing.T) {
		f := newFundsFixture()
		amount := decimal.NewFromInt(250)

		f.tx.On("Commit").Return(nil).Twice()
		f.tx.On("Rollback").Return(nil).Maybe()

		f.accountRepo.On("GetAccountForUpdate", ctx, mock.Anything, "12345").
			Return(&domain.Account{UserID: "12345", Funds: decimal.NewFromInt(100)}, nil).Once()
		f.accountRepo.On("UpdateAccountFunds", ctx, mock.Anything, "12345", decimal.NewFromInt(350)).Return(nil).Once()
		f.accountRepo.On("GetAccountForUpdate", ctx, mock.Anything, "12345").
			Return(&domain.Account{UserID: "12345", Funds: decimal.NewFromInt(350)}, nil).Once()
		f.accountRepo.On("UpdateAccountFunds", ctx, mock.Anything, "12345", decimal.NewFromInt(100)).Return(nil).Once()

		deposited, err := f.service.Deposit(ctx, "12345", amount)
		assert.NoError(t, err)
		assert.True(t, decimal.NewFromInt(350).Equal(deposited.Funds))

		withdrawn, err := f.service.Withdraw(ctx, "12345", amount)
		assert.NoError(t, err)
		assert.True(t, decimal.NewFromInt(100).Equal(withdrawn.Funds), "Round trip should restore the original funds")
		f.assertExpectations(t)
	})
}
