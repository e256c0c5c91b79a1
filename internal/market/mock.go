package market

import (
	"context"

	"github.com/Jamesduongrx/Stock-Chatbot/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	QuoteData model.Quote
	Trends    []model.RecommendationPeriod
	Symbols   []SymbolMatch
	QuoteErr  error
	TrendsErr error
	LookupErr error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) Quote(_ context.Context, _ string) (model.Quote, error) {
	if m.QuoteErr != nil {
		return model.Quote{}, m.QuoteErr
	}
	return m.QuoteData, nil
}

func (m *MockFetcher) RecommendationTrends(_ context.Context, _ string) ([]model.RecommendationPeriod, error) {
	if m.TrendsErr != nil {
		return nil, m.TrendsErr
	}
	if len(m.Trends) == 0 {
		return nil, ErrNoData
	}
	return m.Trends, nil
}

func (m *MockFetcher) SymbolLookup(_ context.Context, _ string) ([]SymbolMatch, error) {
	if m.LookupErr != nil {
		return nil, m.LookupErr
	}
	if len(m.Symbols) == 0 {
		return nil, ErrNoData
	}
	return m.Symbols, nil
}
