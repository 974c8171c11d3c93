// internal/service/trading_service.go
package service

import (
	"context"
	"fmt"

	"github.com/Paulodemoc/torochallenge/internal/domain"
	"github.com/Paulodemoc/torochallenge/internal/quotes"
	"github.com/Paulodemoc/torochallenge/internal/repository"
	"github.com/Paulodemoc/torochallenge/internal/util"
	"github.com/Paulodemoc/torochallenge/pkg/db"

	"github.com/shopspring/decimal"
)

// TradingService defines the business logic for quotes and stock positions.
type TradingService interface {
	// ListQuotes returns the current quote snapshot, in feed order.
	ListQuotes(ctx context.Context) ([]domain.Quote, error)
	// ListInvestments returns every position held by the given user.
	ListInvestments(ctx context.Context, userID string) ([]domain.Holding, error)
	// Buy debits amount*price from funds and increases the held quantity.
	Buy(ctx context.Context, userID, stockCode string, amount decimal.Decimal) (*domain.Account, *domain.Holding, error)
	// Sell credits amount*price to funds and decreases the held quantity.
	Sell(ctx context.Context, userID, stockCode string, amount decimal.Decimal) (*domain.Account, *domain.Holding, error)
}

// tradingService implements the TradingService interface.
type tradingService struct {
	dbBeginner  db.DBTxBeginner
	dbExecutor  repository.DBExecutor
	userRepo    repository.UserRepository
	accountRepo repository.AccountRepository
	holdingRepo repository.HoldingRepository
	quoteSource quotes.Source
	beginTx     db.BeginTxFunc
	commitTx    db.CommitTxFunc
	rollbackTx  db.RollbackTxFunc
}

// NewTradingService creates a new instance of TradingService.
func NewTradingService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	accountRepo repository.AccountRepository,
	holdingRepo repository.HoldingRepository,
	quoteSource quotes.Source,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) TradingService {
	return &tradingService{
		dbBeginner:  dbBeginner,
		dbExecutor:  dbExecutor,
		userRepo:    userRepo,
		accountRepo: accountRepo,
		holdingRepo: holdingRepo,
		quoteSource: quoteSource,
		beginTx:     beginTx,
		commitTx:    commitTx,
		rollbackTx:  rollbackTx,
	}
}

// ListQuotes returns the current quote snapshot in the order the feed
// supplied it. An empty snapshot is returned as-is; the caller decides how to
// surface it.
func (s *tradingService) ListQuotes(ctx context.Context) ([]domain.Quote, error) {
	snapshot, err := s.quoteSource.CurrentQuotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quotes: failed to fetch quote snapshot: %w", err)
	}
	return snapshot, nil
}

// ListInvestments returns every position held by the given user.
func (s *tradingService) ListInvestments(ctx context.Context, userID string) ([]domain.Holding, error) {
	if _, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, userID); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.NewNotFound(util.EntityUser, userID)
		}
		return nil, fmt.Errorf("list investments: failed to get user %s: %w", userID, err)
	}

	holdings, err := s.holdingRepo.GetHoldingsByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("list investments: failed to fetch holdings for user %s: %w", userID, err)
	}
	if len(holdings) == 0 {
		return nil, util.NewNotFound(util.EntityHolding, userID)
	}
	return holdings, nil
}

// Buy purchases amount units of stockCode at the currently quoted price.
// Validation order is load-bearing: amount, then user, then account, then
// stock, then sufficient funds. The first failing check wins and nothing is
// persisted on any failure path.
func (s *tradingService) Buy(ctx context.Context, userID, stockCode string, amount decimal.Decimal) (*domain.Account, *domain.Holding, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("buy: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("buy: transaction controller does not implement DBExecutor")
	}

	account, quote, err := s.resolveTrade(ctx, txExecutor, userID, stockCode)
	if err != nil {
		return nil, nil, err
	}

	cost := quote.Price.Mul(amount)
	if account.Funds.LessThan(cost) {
		return nil, nil, util.ErrInsufficientFunds
	}

	account.Funds = account.Funds.Sub(cost)
	if err := s.accountRepo.UpdateAccountFunds(ctx, txExecutor, userID, account.Funds); err != nil {
		return nil, nil, fmt.Errorf("buy: failed to update account funds: %w", err)
	}

	holding, err := s.holdingRepo.GetHolding(ctx, txExecutor, userID, stockCode)
	if err != nil {
		if !util.IsError(err, util.ErrNotFound) {
			return nil, nil, fmt.Errorf("buy: failed to get holding %s: %w", stockCode, err)
		}
		holding = domain.NewHolding(userID, quote.StockCode, quote.Name)
	}
	holding.Quantity = holding.Quantity.Add(amount)
	if err := s.holdingRepo.UpsertHolding(ctx, txExecutor, holding); err != nil {
		return nil, nil, fmt.Errorf("buy: failed to upsert holding %s: %w", stockCode, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("buy: failed to commit transaction: %w", err)
	}

	return account, holding, nil
}

// Sell disposes of amount units of stockCode at the currently quoted price.
// Validation order: amount, user, account, stock, position exists, sufficient
// held quantity. The first failing check wins and nothing is persisted on any
// failure path.
func (s *tradingService) Sell(ctx context.Context, userID, stockCode string, amount decimal.Decimal) (*domain.Account, *domain.Holding, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("sell: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("sell: transaction controller does not implement DBExecutor")
	}

	account, quote, err := s.resolveTrade(ctx, txExecutor, userID, stockCode)
	if err != nil {
		return nil, nil, err
	}

	holding, err := s.holdingRepo.GetHolding(ctx, txExecutor, userID, stockCode)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, nil, util.NewNotFound(util.EntityHolding, stockCode)
		}
		return nil, nil, fmt.Errorf("sell: failed to get holding %s: %w", stockCode, err)
	}

	if holding.Quantity.LessThan(amount) {
		return nil, nil, util.ErrInsufficientHoldings
	}

	account.Funds = account.Funds.Add(quote.Price.Mul(amount))
	if err := s.accountRepo.UpdateAccountFunds(ctx, txExecutor, userID, account.Funds); err != nil {
		return nil, nil, fmt.Errorf("sell: failed to update account funds: %w", err)
	}

	holding.Quantity = holding.Quantity.Sub(amount)
	if err := s.holdingRepo.UpsertHolding(ctx, txExecutor, holding); err != nil {
		return nil, nil, fmt.Errorf("sell: failed to upsert holding %s: %w", stockCode, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("sell: failed to commit transaction: %w", err)
	}

	return account, holding, nil
}

// resolveTrade runs the shared precondition chain of Buy and Sell: the user
// must exist, the user's account must exist (locked for the transaction), and
// the stock must be quoted. Pricing uses the snapshot fetched here, so the
// price in effect at validation time is the price applied.
func (s *tradingService) resolveTrade(ctx context.Context, q repository.DBExecutor, userID, stockCode string) (*domain.Account, domain.Quote, error) {
	if _, err := s.userRepo.GetUserByID(ctx, q, userID); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, domain.Quote{}, util.NewNotFound(util.EntityUser, userID)
		}
		return nil, domain.Quote{}, fmt.Errorf("failed to get user %s: %w", userID, err)
	}

	account, err := s.accountRepo.GetAccountForUpdate(ctx, q, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, domain.Quote{}, util.NewNotFound(util.EntityAccount, userID)
		}
		return nil, domain.Quote{}, fmt.Errorf("failed to get account %s: %w", userID, err)
	}

	snapshot, err := s.quoteSource.CurrentQuotes(ctx)
	if err != nil {
		return nil, domain.Quote{}, fmt.Errorf("failed to fetch quote snapshot: %w", err)
	}
	quote, err := quotes.FindQuote(snapshot, stockCode)
	if err != nil {
		return nil, domain.Quote{}, err
	}

	return account, quote, nil
}
