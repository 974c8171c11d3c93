// internal/quotes/source.go
package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Paulodemoc/torochallenge/internal/domain"
	"github.com/Paulodemoc/torochallenge/internal/util"
)

// Source supplies the current per-symbol market prices.
// The snapshot may be empty; it is fetched fresh on every call.
type Source interface {
	CurrentQuotes(ctx context.Context) ([]domain.Quote, error)
}

// FindQuote scans a snapshot for the given stock code (case-insensitive).
// It returns a structured not-found error when the stock is not quoted.
func FindQuote(snapshot []domain.Quote, stockCode string) (domain.Quote, error) {
	for _, q := range snapshot {
		if strings.EqualFold(q.StockCode, stockCode) {
			return q, nil
		}
	}
	return domain.Quote{}, util.NewNotFound(util.EntityStock, stockCode)
}

// HTTPSource fetches quotes from a ticker-price JSON endpoint.
type HTTPSource struct {
	httpClient *http.Client
	url        string
}

// NewHTTPSource creates a quote source backed by the given feed URL.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		url: url,
	}
}

// CurrentQuotes fetches the full current quote snapshot from the feed,
// preserving the order the feed supplies.
func (s *HTTPSource) CurrentQuotes(ctx context.Context) ([]domain.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create quote request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quotes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("quote feed error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var snapshot []domain.Quote
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode quote feed response: %w", err)
	}
	return snapshot, nil
}

// StaticSource serves a fixed quote snapshot. Useful for local wiring and
// tests where no feed is configured.
type StaticSource struct {
	snapshot []domain.Quote
}

// NewStaticSource creates a quote source over a fixed snapshot.
func NewStaticSource(snapshot []domain.Quote) *StaticSource {
	return &StaticSource{snapshot: snapshot}
}

// CurrentQuotes returns the fixed snapshot.
func (s *StaticSource) CurrentQuotes(ctx context.Context) ([]domain.Quote, error) {
	return s.snapshot, nil
}
