package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/Jamesduongrx/Stock-Chatbot/internal/model"
)

// FinnhubFetcher implements Fetcher using the Finnhub REST API.
type FinnhubFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewFinnhubFetcher creates a new fetcher with optional proxy support.
func NewFinnhubFetcher(baseURL, apiKey, proxyURL string, timeout time.Duration) *FinnhubFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = "https://finnhub.io/api/v1"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &FinnhubFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (f *FinnhubFetcher) Name() string { return "finnhub" }

func (f *FinnhubFetcher) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Finnhub-Token", f.APIKey)

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("finnhub fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("finnhub read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("finnhub: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("finnhub decode: %w", err)
	}
	return nil
}

// finnhubQuote is the response shape of the /quote endpoint.
type finnhubQuote struct {
	C  float64 `json:"c"`  // current price
	D  float64 `json:"d"`  // change
	Dp float64 `json:"dp"` // percent change
	H  float64 `json:"h"`  // day high
	L  float64 `json:"l"`  // day low
	O  float64 `json:"o"`  // day open
	Pc float64 `json:"pc"` // previous close
}

// Quote retrieves the current quote for a ticker. Finnhub returns an all-zero
// record for unknown symbols; that is reported as ErrNoData rather than a
// populated quote.
func (f *FinnhubFetcher) Quote(ctx context.Context, ticker string) (model.Quote, error) {
	endpoint := fmt.Sprintf("%s/quote?symbol=%s", f.BaseURL, url.QueryEscape(ticker))
	var q finnhubQuote
	if err := f.get(ctx, endpoint, &q); err != nil {
		return model.Quote{}, err
	}
	if q.C == 0 && q.Pc == 0 {
		return model.Quote{}, ErrNoData
	}
	return model.Quote{
		Current:       q.C,
		Change:        q.D,
		PercentChange: q.Dp,
		High:          q.H,
		Low:           q.L,
		Open:          q.O,
		PreviousClose: q.Pc,
	}, nil
}

// finnhubTrend is one element of the /stock/recommendation response.
type finnhubTrend struct {
	Period     string `json:"period"`
	StrongBuy  int    `json:"strongBuy"`
	Buy        int    `json:"buy"`
	Hold       int    `json:"hold"`
	Sell       int    `json:"sell"`
	StrongSell int    `json:"strongSell"`
}

// RecommendationTrends retrieves analyst recommendation counts per monthly
// period, most recent period first.
func (f *FinnhubFetcher) RecommendationTrends(ctx context.Context, ticker string) ([]model.RecommendationPeriod, error) {
	endpoint := fmt.Sprintf("%s/stock/recommendation?symbol=%s", f.BaseURL, url.QueryEscape(ticker))
	var trends []finnhubTrend
	if err := f.get(ctx, endpoint, &trends); err != nil {
		return nil, err
	}
	if len(trends) == 0 {
		return nil, ErrNoData
	}

	periods := make([]model.RecommendationPeriod, 0, len(trends))
	for _, t := range trends {
		periods = append(periods, model.RecommendationPeriod{
			Period:     t.Period,
			StrongBuy:  t.StrongBuy,
			Buy:        t.Buy,
			Hold:       t.Hold,
			Sell:       t.Sell,
			StrongSell: t.StrongSell,
		})
	}
	// The provider is observed to return descending periods, but the order is
	// undocumented. Enforce it.
	sort.SliceStable(periods, func(i, j int) bool { return periods[i].Period > periods[j].Period })
	return periods, nil
}

// finnhubSearch is the response shape of the /search endpoint.
type finnhubSearch struct {
	Count  int `json:"count"`
	Result []struct {
		Symbol        string `json:"symbol"`
		DisplaySymbol string `json:"displaySymbol"`
		Description   string `json:"description"`
		Type          string `json:"type"`
	} `json:"result"`
}

// SymbolLookup searches listed symbols matching a free-text query.
func (f *FinnhubFetcher) SymbolLookup(ctx context.Context, query string) ([]SymbolMatch, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s", f.BaseURL, url.QueryEscape(query))
	var sr finnhubSearch
	if err := f.get(ctx, endpoint, &sr); err != nil {
		return nil, err
	}
	if sr.Count == 0 || len(sr.Result) == 0 {
		return nil, ErrNoData
	}

	matches := make([]SymbolMatch, 0, len(sr.Result))
	for _, r := range sr.Result {
		matches = append(matches, SymbolMatch{
			Symbol:        r.Symbol,
			DisplaySymbol: r.DisplaySymbol,
			Description:   r.Description,
			Type:          r.Type,
		})
	}
	return matches, nil
}
