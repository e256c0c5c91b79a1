// Package resolver maps free-text company mentions in a user query to an
// exchange ticker symbol.
package resolver

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"

	"github.com/Jamesduongrx/Stock-Chatbot/internal/llm"
	"github.com/Jamesduongrx/Stock-Chatbot/internal/market"
)

const tickerSystemPrompt = `Identify the company's stock ticker based on the user's query below.
Prioritize common stocks from NASDAQ and NYSE.
You are only allowed to include the stock ticker in your response.`

// symbolTable maps well-known company names to tickers, checked before any
// network call. First match in table order wins.
var symbolTable = []struct {
	Name   string
	Ticker string
}{
	{"tesla", "TSLA"},
	{"apple", "AAPL"},
	{"microsoft", "MSFT"},
	{"amazon", "AMZN"},
	{"alphabet", "GOOGL"},
	{"google", "GOOGL"},
	{"meta", "META"},
	{"facebook", "META"},
	{"nvidia", "NVDA"},
	{"netflix", "NFLX"},
	{"intel", "INTC"},
	{"amd", "AMD"},
	{"boeing", "BA"},
	{"disney", "DIS"},
	{"walmart", "WMT"},
}

var tickerPattern = regexp.MustCompile(`^[A-Z][A-Z.]{0,5}$`)

// Resolver resolves tickers via a name table, then an LLM suggestion
// confirmed against the market-data symbol lookup.
type Resolver struct {
	Completer llm.Completer
	Fetcher   market.Fetcher // optional; confirms LLM suggestions when set
}

// Resolve returns the ticker implied by the query. Absence of a ticker is a
// valid terminal result: the second return is false and no error is raised.
func (r *Resolver) Resolve(ctx context.Context, query string) (string, bool) {
	if t, ok := lookupTable(query); ok {
		return t, true
	}
	if r.Completer == nil {
		return "", false
	}

	reply, err := r.Completer.Complete(ctx, tickerSystemPrompt, query)
	if err != nil {
		log.Printf("[WARN] ticker resolution via LLM failed: %v", err)
		return "", false
	}
	candidate := sanitizeTicker(reply)
	if candidate == "" {
		return "", false
	}
	if r.Fetcher == nil {
		return candidate, true
	}
	return r.confirm(ctx, candidate)
}

// lookupTable scans the query words for a known company name.
func lookupTable(query string) (string, bool) {
	q := strings.ToLower(query)
	for _, e := range symbolTable {
		if containsWord(q, e.Name) {
			return e.Ticker, true
		}
	}
	return "", false
}

func containsWord(query, name string) bool {
	for _, w := range strings.Fields(query) {
		if strings.Trim(w, `.,!?'"()`) == name {
			return true
		}
	}
	return false
}

// sanitizeTicker reduces an LLM reply to a plausible ticker symbol, or ""
// when the reply is empty, prose, or otherwise not ticker-shaped.
func sanitizeTicker(reply string) string {
	fields := strings.Fields(reply)
	if len(fields) != 1 {
		return ""
	}
	candidate := strings.ToUpper(strings.Trim(fields[0], `.,!?'"()`))
	if !tickerPattern.MatchString(candidate) {
		return ""
	}
	return candidate
}

// confirm validates an LLM-suggested ticker against the symbol-lookup
// endpoint, preferring the first common-stock listing. A provider miss
// rejects the candidate; an unavailable lookup accepts it as-is so the
// pipeline can still try the market-data endpoints.
func (r *Resolver) confirm(ctx context.Context, candidate string) (string, bool) {
	matches, err := r.Fetcher.SymbolLookup(ctx, candidate)
	switch {
	case errors.Is(err, market.ErrNoData):
		return "", false
	case err != nil:
		log.Printf("[WARN] symbol lookup unavailable, using %q as-is: %v", candidate, err)
		return candidate, true
	case len(matches) == 0:
		return "", false
	}
	for _, m := range matches {
		if m.Type == "Common Stock" {
			return m.DisplaySymbol, true
		}
	}
	return matches[0].DisplaySymbol, true
}
