package market

import (
	"context"
	"errors"

	"github.com/Jamesduongrx/Stock-Chatbot/internal/model"
)

// ErrNoData indicates the provider has no data for the requested ticker or
// query. Callers treat it as an empty result, not a failure.
var ErrNoData = errors.New("market: no data")

// SymbolMatch is one result from a symbol lookup.
type SymbolMatch struct {
	Symbol        string
	DisplaySymbol string
	Description   string
	Type          string
}

// Fetcher defines the interface for retrieving market data.
type Fetcher interface {
	Quote(ctx context.Context, ticker string) (model.Quote, error)
	RecommendationTrends(ctx context.Context, ticker string) ([]model.RecommendationPeriod, error)
	SymbolLookup(ctx context.Context, query string) ([]SymbolMatch, error)
	Name() string
}
