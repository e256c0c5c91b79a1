package resolver

import (
	"context"
	"fmt"
	"testing"

	"github.com/Jamesduongrx/Stock-Chatbot/internal/market"
)

type fakeCompleter struct {
	reply string
	err   error
	calls int
}

func (f *fakeCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestResolve_KnownCompanyWithoutNetwork(t *testing.T) {
	completer := &fakeCompleter{reply: "should not be called"}
	r := &Resolver{Completer: completer}

	ticker, ok := r.Resolve(context.Background(), "Should I buy Tesla stock")
	if !ok || ticker != "TSLA" {
		t.Fatalf("expected TSLA from the name table, got %q ok=%v", ticker, ok)
	}
	if completer.calls != 0 {
		t.Error("table hit must not call the LLM")
	}
}

func TestResolve_LLMConfirmedByLookup(t *testing.T) {
	completer := &fakeCompleter{reply: "PLTR"}
	fetcher := &market.MockFetcher{Symbols: []market.SymbolMatch{
		{Symbol: "PLTR2", DisplaySymbol: "PLTR2", Type: "Warrant"},
		{Symbol: "PLTR", DisplaySymbol: "PLTR", Type: "Common Stock"},
	}}
	r := &Resolver{Completer: completer, Fetcher: fetcher}

	ticker, ok := r.Resolve(context.Background(), "what about palantir")
	if !ok || ticker != "PLTR" {
		t.Fatalf("expected common-stock confirmation PLTR, got %q ok=%v", ticker, ok)
	}
}

func TestResolve_LookupMissRejectsCandidate(t *testing.T) {
	completer := &fakeCompleter{reply: "ZZZZ"}
	fetcher := &market.MockFetcher{} // empty lookup -> ErrNoData
	r := &Resolver{Completer: completer, Fetcher: fetcher}

	if ticker, ok := r.Resolve(context.Background(), "some unknown corp"); ok {
		t.Fatalf("expected not-found, got %q", ticker)
	}
}

func TestResolve_LookupUnavailableAcceptsCandidate(t *testing.T) {
	completer := &fakeCompleter{reply: "pltr"}
	fetcher := &market.MockFetcher{LookupErr: fmt.Errorf("connection refused")}
	r := &Resolver{Completer: completer, Fetcher: fetcher}

	ticker, ok := r.Resolve(context.Background(), "what about palantir")
	if !ok || ticker != "PLTR" {
		t.Fatalf("expected sanitized candidate when lookup is down, got %q ok=%v", ticker, ok)
	}
}

func TestResolve_ProseReplyIsNotFound(t *testing.T) {
	completer := &fakeCompleter{reply: "The user did not mention any company."}
	r := &Resolver{Completer: completer}

	if ticker, ok := r.Resolve(context.Background(), "what is the meaning of life"); ok {
		t.Fatalf("expected not-found for prose reply, got %q", ticker)
	}
}

func TestResolve_LLMFailureIsNotFound(t *testing.T) {
	completer := &fakeCompleter{err: fmt.Errorf("rate limited")}
	r := &Resolver{Completer: completer}

	if _, ok := r.Resolve(context.Background(), "obscure holdings inc"); ok {
		t.Fatal("expected not-found when the LLM is unavailable")
	}
}

func TestSanitizeTicker(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"TSLA", "TSLA"},
		{" tsla \n", "TSLA"},
		{"TSLA.", "TSLA"},
		{"'BRK.B'", "BRK.B"},
		{"TSLA is the ticker", ""},
		{"", ""},
		{"1234", ""},
		{"TOOLONGTICKER", ""},
	}
	for _, c := range cases {
		if got := sanitizeTicker(c.in); got != c.want {
			t.Errorf("sanitizeTicker(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
