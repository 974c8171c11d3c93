// internal/api/handler/handler.go
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Paulodemoc/torochallenge/internal/util"
)

// DefaultTimeout bounds request handling at the router level.
const DefaultTimeout = 30 * time.Second

// respondWithJSON sends a JSON response with the given status code.
func respondWithJSON(w http.ResponseWriter, logger *slog.Logger, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError maps service errors to HTTP status codes.
// Validation and insufficient-resource failures are 400s with distinct
// messages; not-found errors are 404s, structured variants carrying the
// missing entity's kind and identifier.
func respondWithError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var notFound *util.NotFoundError
	if errors.As(err, &notFound) {
		respondWithJSON(w, logger, http.StatusNotFound, map[string]string{
			"error":  "Resource not found",
			"entity": string(notFound.Kind),
			"id":     notFound.ID,
		})
		return
	}

	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = util.ErrInvalidInput.Error()
	case util.IsError(err, util.ErrInvalidCredentials):
		statusCode = http.StatusBadRequest
		message = "Username or password is incorrect"
	case util.IsError(err, util.ErrInsufficientFunds):
		statusCode = http.StatusBadRequest
		message = "Insufficient funds"
	case util.IsError(err, util.ErrInsufficientHoldings):
		statusCode = http.StatusBadRequest
		message = "Insufficient holdings"
	case util.IsError(err, util.ErrDuplicateEntry):
		statusCode = http.StatusConflict
		message = "Username already taken"
	case util.IsError(err, util.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	default:
		logger.Error("Unhandled service error", "error", err)
	}

	respondWithJSON(w, logger, statusCode, map[string]string{"error": message})
}
