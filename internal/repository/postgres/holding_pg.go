// internal/repository/postgres/holding_pg.go
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
)

// HoldingRepository implements repository.HoldingRepository for PostgreSQL.
type HoldingRepository struct {
	// Methods receive a DBExecutor directly instead of holding *sqlx.DB
}

// NewHoldingRepository creates a new HoldingRepository.
func NewHoldingRepository(db *sqlx.DB) repository.HoldingRepository {
	return &HoldingRepository{}
}

// GetHoldingsByUserID retrieves every position held by the given user.
func (r *HoldingRepository) GetHoldingsByUserID(ctx context.Context, q repository.DBExecutor, userID string) ([]domain.Holding, error) {
	holdings := []domain.Holding{}
	query := `
		SELECT user_id, stock_code, name, quantity, created_at, updated_at
		FROM holdings
		WHERE user_id = $1
		ORDER BY stock_code ASC`
	if err := q.SelectContext(ctx, &holdings, query, userID); err != nil {
		return nil, fmt.Errorf("failed to fetch holdings for user %s: %w", userID, err)
	}
	return holdings, nil
}

// GetHolding retrieves the user's position in a single stock.
func (r *HoldingRepository) GetHolding(ctx context.Context, q repository.DBExecutor, userID, stockCode string) (*domain.Holding, error) {
	var holding domain.Holding
	query := `SELECT user_id, stock_code, name, quantity, created_at, updated_at
              FROM holdings WHERE user_id = $1 AND stock_code = $2 FOR UPDATE`
	err := q.GetContext(ctx, &holding, query, userID, stockCode)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get holding %s for user %s: %w", stockCode, userID, err)
	}
	return &holding, nil
}

// UpsertHolding inserts the position or overwrites its quantity.
func (r *HoldingRepository) UpsertHolding(ctx context.Context, q repository.DBExecutor, holding *domain.Holding) error {
	query := `
		INSERT INTO holdings (user_id, stock_code, name, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, stock_code)
		DO UPDATE SET quantity = EXCLUDED.quantity, name = EXCLUDED.name, updated_at = EXCLUDED.updated_at`
	_, err := q.ExecContext(ctx, query,
		holding.UserID,
		holding.StockCode,
		holding.Name,
		holding.Quantity,
		holding.CreatedAt,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert holding %s for user %s: %w", holding.StockCode, holding.UserID, err)
	}
	return nil
}
