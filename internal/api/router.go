// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Paulodemoc/torochallenge/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(
	userHandler *handler.UserHandler,
	accountHandler *handler.AccountHandler,
	stockHandler *handler.StockHandler,
	jwtSecret string,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Public user routes
	r.Route("/users", func(r chi.Router) {
		r.Post("/authenticate", userHandler.Authenticate)
		r.Post("/register", userHandler.Register)

		r.Group(func(r chi.Router) {
			r.Use(Authenticator(jwtSecret))
			r.Get("/{userID}", userHandler.GetUserData)
		})
	})

	// Account routes (cash balances)
	r.Route("/accounts", func(r chi.Router) {
		r.Use(Authenticator(jwtSecret))
		r.Get("/{userID}/funds", accountHandler.ViewFunds)
		r.Post("/{userID}/deposit", accountHandler.Deposit)
		r.Post("/{userID}/withdraw", accountHandler.Withdraw)
	})

	// Stock routes (quotes and positions)
	r.Route("/stocks", func(r chi.Router) {
		r.Use(Authenticator(jwtSecret))
		r.Get("/quotes", stockHandler.ListQuotes)
		r.Get("/{userID}/investments", stockHandler.ListInvestments)
		r.Post("/{userID}/buy", stockHandler.Buy)
		r.Post("/{userID}/sell", stockHandler.Sell)
	})

	return r
}
