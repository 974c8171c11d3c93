// internal/domain/quote.go
package domain

import "github.com/shopspring/decimal"

// Quote is a per-request snapshot of a stock's current unit price.
// Quotes are supplied by the quote source and never persisted.
type Quote struct {
	StockCode string          `json:"stock_code"`
	Name      string          `json:"name,omitempty"`
	Price     decimal.Decimal `json:"price"`
}
