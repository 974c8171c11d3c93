// internal/domain/holding.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is a stock position owned by a user's account.
// Invariant: Quantity is never negative after a committed operation.
type Holding struct {
	UserID    string          `db:"user_id" json:"user_id"`
	StockCode string          `db:"stock_code" json:"stock_code"`
	Name      string          `db:"name" json:"name"` // Reference info from the quote feed
	Quantity  decimal.Decimal `db:"quantity" json:"quantity"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// NewHolding creates an empty position for a stock.
func NewHolding(userID, stockCode, name string) *Holding {
	now := time.Now().UTC()
	return &Holding{
		UserID:    userID,
		StockCode: stockCode,
		Name:      name,
		Quantity:  decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
