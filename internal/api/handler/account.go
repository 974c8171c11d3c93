// internal/api/handler/account.go
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

// AccountHandler handles HTTP requests for cash balance operations.
type AccountHandler struct {
	service service.FundsService
	logger  *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(svc service.FundsService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		service: svc,
		logger:  logger,
	}
}

// AmountRequest is the request body shared by deposit and withdraw.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// ViewFunds handles the view funds request.
// GET /accounts/{userID}/funds
func (h *AccountHandler) ViewFunds(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	account, err := h.service.ViewFunds(r.Context(), userID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"user_id": account.UserID,
		"funds":   account.Funds,
	})
}

// Deposit handles the deposit funds request.
// POST /accounts/{userID}/deposit
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	account, err := h.service.Deposit(r.Context(), userID, req.Amount)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message":   "Deposit successful",
		"user_id":   account.UserID,
		"new_funds": account.Funds,
	})
}

// Withdraw handles the withdraw funds request.
// POST /accounts/{userID}/withdraw
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	account, err := h.service.Withdraw(r.Context(), userID, req.Amount)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message":   "Withdrawal successful",
		"user_id":   account.UserID,
		"new_funds": account.Funds,
	})
}
