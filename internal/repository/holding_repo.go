// internal/repository/holding_repo.go
package repository

import (
	"context"

	"github.com/Paulodemoc/torochallenge/internal/domain"
)

// HoldingRepository defines the interface for stock-position data operations.
type HoldingRepository interface {
	// GetHoldingsByUserID retrieves every position held by the given user.
	GetHoldingsByUserID(ctx context.Context, q DBExecutor, userID string) ([]domain.Holding, error)
	// GetHolding retrieves the user's position in a single stock.
	GetHolding(ctx context.Context, q DBExecutor, userID, stockCode string) (*domain.Holding, error)
	// UpsertHolding inserts the position or overwrites its quantity.
	UpsertHolding(ctx context.Context, q DBExecutor, holding *domain.Holding) error
}
