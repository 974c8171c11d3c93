// internal/api/handler/stock.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/Paulodemoc/torochallenge/internal/service"
	"github.com/Paulodemoc/torochallenge/internal/util"
)

// StockHandler handles HTTP requests for quotes and stock positions.
type StockHandler struct {
	service service.TradingService
	logger  *slog.Logger
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(svc service.TradingService, logger *slog.Logger) *StockHandler {
	return &StockHandler{
		service: svc,
		logger:  logger,
	}
}

// TradeRequest is the request body shared by buy and sell.
type TradeRequest struct {
	StockCode string          `json:"stock_code"`
	Amount    decimal.Decimal `json:"amount"`
}

// ListQuotes handles the list quotes request. An empty quote snapshot is a
// 204, not an empty 200 payload.
// GET /stocks/quotes
func (h *StockHandler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.ListQuotes(r.Context())
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	if len(snapshot) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, snapshot)
}

// ListInvestments handles the list investments request.
// GET /stocks/{userID}/investments
func (h *StockHandler) ListInvestments(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	holdings, err := h.service.ListInvestments(r.Context(), userID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, holdings)
}

// Buy handles the buy stocks request.
// POST /stocks/{userID}/buy
func (h *StockHandler) Buy(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	account, holding, err := h.service.Buy(r.Context(), userID, req.StockCode, req.Amount)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message":      "Purchase successful",
		"user_id":      account.UserID,
		"new_funds":    account.Funds,
		"stock_code":   holding.StockCode,
		"new_quantity": holding.Quantity,
	})
}

// Sell handles the sell stocks request.
// POST /stocks/{userID}/sell
func (h *StockHandler) Sell(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	account, holding, err := h.service.Sell(r.Context(), userID, req.StockCode, req.Amount)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message":      "Sale successful",
		"user_id":      account.UserID,
		"new_funds":    account.Funds,
		"stock_code":   holding.StockCode,
		"new_quantity": holding.Quantity,
	})
}
