// internal/api/handler/mocks_test.go
package handler

import (
	"context"
	"io"
	"log/slog"

	"github.com/Paulodemoc/torochallenge/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockFundsService is a mock implementation of service.FundsService.
type MockFundsService struct {
	mock.Mock
}

func (m *MockFundsService) ViewFunds(ctx context.Context, userID string) (*domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockFundsService) Deposit(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Account, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockFundsService) Withdraw(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Account, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// MockTradingService is a mock implementation of service.TradingService.
type MockTradingService struct {
	mock.Mock
}

func (m *MockTradingService) ListQuotes(ctx context.Context) ([]domain.Quote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quote), args.Error(1)
}

func (m *MockTradingService) ListInvestments(ctx context.Context, userID string) ([]domain.Holding, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Holding), args.Error(1)
}

func (m *MockTradingService) Buy(ctx context.Context, userID, stockCode string, amount decimal.Decimal) (*domain.Account, *domain.Holding, error) {
	args := m.Called(ctx, userID, stockCode, amount)
	var account *domain.Account
	var holding *domain.Holding
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	if args.Get(1) != nil {
		holding = args.Get(1).(*domain.Holding)
	}
	return account, holding, args.Error(2)
}

func (m *MockTradingService) Sell(ctx context.Context, userID, stockCode string, amount decimal.Decimal) (*domain.Account, *domain.Holding, error) {
	args := m.Called(ctx, userID, stockCode, amount)
	var account *domain.Account
	var holding *domain.Holding
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	if args.Get(1) != nil {
		holding = args.Get(1).(*domain.Holding)
	}
	return account, holding, args.Error(2)
}

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Authenticate(ctx context.Context, username, password string) (string, *domain.User, error) {
	args := m.Called(ctx, username, password)
	var user *domain.User
	if args.Get(1) != nil {
		user = args.Get(1).(*domain.User)
	}
	return args.String(0), user, args.Error(2)
}

func (m *MockUserService) GetUserData(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Register(ctx context.Context, username, password string) (*domain.User, *domain.Account, error) {
	args := m.Called(ctx, username, password)
	var user *domain.User
	var account *domain.Account
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	if args.Get(1) != nil {
		account = args.Get(1).(*domain.Account)
	}
	return user, account, args.Error(2)
}
