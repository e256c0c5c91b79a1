package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/Jamesduongrx/Stock-Chatbot/internal/market"
	"github.com/Jamesduongrx/Stock-Chatbot/internal/model"
)

type fakeResolver struct {
	ticker string
	found  bool
}

func (f *fakeResolver) Resolve(_ context.Context, _ string) (string, bool) {
	return f.ticker, f.found
}

type fakeRetriever struct {
	arts []model.ArticleSummary
	err  error
}

func (f *fakeRetriever) Retrieve(_ context.Context, _ string) ([]model.ArticleSummary, error) {
	return f.arts, f.err
}

type fakeCompleter struct {
	reply      string
	err        error
	lastSystem string
}

func (f *fakeCompleter) Complete(_ context.Context, system, _ string) (string, error) {
	f.lastSystem = system
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type captureRecorder struct {
	exchanges []*model.Exchange
}

func (c *captureRecorder) RecordExchange(ex *model.Exchange) error {
	c.exchanges = append(c.exchanges, ex)
	return nil
}
func (c *captureRecorder) Close() error { return nil }

var tslaQuote = model.Quote{
	Current: 250.5, Change: 4.5, PercentChange: 1.83,
	High: 255.0, Low: 244.0, Open: 246.0, PreviousClose: 246.0,
}

var tslaTrends = []model.RecommendationPeriod{
	{Period: "2024-12-01", StrongBuy: 12, Buy: 20, Hold: 8, Sell: 3, StrongSell: 1},
	{Period: "2024-11-01", StrongBuy: 10, Buy: 18, Hold: 9, Sell: 4, StrongSell: 2},
}

var tslaArts = []model.ArticleSummary{
	{Title: "Tesla deliveries", URL: "https://finance.yahoo.com/t", Summary: "Record quarter."},
}

func TestRun_FullScenario(t *testing.T) {
	completer := &fakeCompleter{reply: "Yes, analysts lean Strong Buy."}
	rec := &captureRecorder{}
	p := New(
		&fakeResolver{ticker: "TSLA", found: true},
		&market.MockFetcher{QuoteData: tslaQuote, Trends: tslaTrends},
		&fakeRetriever{arts: tslaArts},
		completer,
		rec,
	)

	res, err := p.Run(context.Background(), "Should I buy Tesla stock")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.TickerFound || res.Ticker != "TSLA" {
		t.Errorf("expected TSLA resolution, got %+v", res)
	}
	if res.QuoteStatus != model.StagePresent || res.Quote == nil {
		t.Error("expected present quote stage")
	}
	if res.RecStatus != model.StagePresent || len(res.Recommendations) != 2 {
		t.Error("expected present recommendation stage")
	}
	if res.Recommendations[0].Period != "2024-12-01" {
		t.Errorf("expected periods in descending date order, got %s first", res.Recommendations[0].Period)
	}
	if res.Answer == "" {
		t.Error("expected non-empty answer")
	}

	// The assembled context must reach the completion endpoint with all
	// sections and the six labeled quote fields.
	for _, want := range []string{
		"Quote:", "Recommendations:", "Article Summaries:",
		"Current price:", "High price of the day:", "Low price of the day:",
		"Open price of the day:", "Previous close price:", "Strong Buy: 12",
	} {
		if !strings.Contains(completer.lastSystem, want) {
			t.Errorf("expected %q in the answer prompt", want)
		}
	}

	if len(rec.exchanges) != 1 {
		t.Fatalf("expected 1 recorded exchange, got %d", len(rec.exchanges))
	}
	if rec.exchanges[0].Ticker != "TSLA" || rec.exchanges[0].ArticleCount != 1 {
		t.Errorf("recorded exchange mismatched: %+v", rec.exchanges[0])
	}
}

func TestRun_UnresolvableCompany(t *testing.T) {
	completer := &fakeCompleter{reply: "Based on recent coverage, the outlook is mixed."}
	p := New(
		&fakeResolver{},
		&market.MockFetcher{},
		&fakeRetriever{arts: tslaArts},
		completer,
		&captureRecorder{},
	)

	res, err := p.Run(context.Background(), "what about an obscure startup")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TickerFound {
		t.Error("expected no ticker")
	}
	if res.QuoteStatus != model.StageSkipped || res.RecStatus != model.StageSkipped {
		t.Error("market stages must be skipped without a ticker")
	}
	if strings.Contains(completer.lastSystem, "Quote:") || strings.Contains(completer.lastSystem, "Recommendations:") {
		t.Error("skipped sections must not appear in the answer prompt")
	}
	if res.Answer == "" {
		t.Error("pipeline must still produce an answer from articles alone")
	}
}

func TestRun_MarketFailureDegrades(t *testing.T) {
	completer := &fakeCompleter{reply: "answer"}
	p := New(
		&fakeResolver{ticker: "TSLA", found: true},
		&market.MockFetcher{QuoteErr: fmt.Errorf("timeout"), TrendsErr: fmt.Errorf("timeout")},
		&fakeRetriever{arts: tslaArts},
		completer,
		&captureRecorder{},
	)

	res, err := p.Run(context.Background(), "Should I buy Tesla stock")
	if err != nil {
		t.Fatalf("market failure must not fail the pipeline: %v", err)
	}
	if res.QuoteStatus != model.StageEmpty || res.RecStatus != model.StageEmpty {
		t.Errorf("expected empty market stages, got quote=%s rec=%s", res.QuoteStatus, res.RecStatus)
	}
	if res.Answer == "" {
		t.Error("expected answer despite market failure")
	}
}

func TestRun_ArticleFailureDegrades(t *testing.T) {
	completer := &fakeCompleter{reply: "answer"}
	p := New(
		&fakeResolver{ticker: "TSLA", found: true},
		&market.MockFetcher{QuoteData: tslaQuote, Trends: tslaTrends},
		&fakeRetriever{err: fmt.Errorf("search quota exceeded")},
		completer,
		&captureRecorder{},
	)

	res, err := p.Run(context.Background(), "Should I buy Tesla stock")
	if err != nil {
		t.Fatalf("article failure must not fail the pipeline: %v", err)
	}
	if res.ArticleStatus != model.StageEmpty {
		t.Errorf("expected empty article stage, got %s", res.ArticleStatus)
	}
}

func TestRun_AnswerFailureIsReported(t *testing.T) {
	p := New(
		&fakeResolver{},
		&market.MockFetcher{},
		&fakeRetriever{},
		&fakeCompleter{err: fmt.Errorf("auth failure")},
		&captureRecorder{},
	)

	if _, err := p.Run(context.Background(), "anything"); err == nil {
		t.Fatal("expected error when answer generation fails")
	}
}
