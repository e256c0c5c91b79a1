// Package search wraps the Google Custom Search JSON API with the domain
// filtering and ranking rules used for financial article retrieval.
package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// numResults is how many hits are requested per search. A few more than the
// article cap, so inaccessible pages can be replaced by lower-ranked hits.
const numResults = 5

// preferredDomains are ranked first; blacklistedDomains are dropped outright
// (paywalled or bot-hostile sources that rarely yield readable text).
var (
	preferredDomains = []string{
		"finance.yahoo.com", "bloomberg.com", "morningstar.com", "seekingalpha.com", "nasdaq.com",
	}
	blacklistedDomains = []string{
		"investors.com", "marketwatch.com", "reuters.com", "motleyfool.com",
	}
)

// Result is one ranked search hit.
type Result struct {
	Title     string
	Link      string
	Published time.Time // zero when the page reports no publication time
}

// Client queries the Google Custom Search JSON API.
type Client struct {
	BaseURL      string
	APIKey       string
	EngineID     string
	DateRestrict string // dN / wN / mN / yN recency window
	Client       *http.Client
}

// NewClient creates a search client with optional proxy support.
func NewClient(baseURL, apiKey, engineID, dateRestrict, proxyURL string, timeout time.Duration) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = "https://www.googleapis.com/customsearch/v1"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL:      baseURL,
		APIKey:       apiKey,
		EngineID:     engineID,
		DateRestrict: dateRestrict,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Search issues one search request and returns filtered, re-ranked results:
// blacklisted domains removed, preferred domains first, then newer articles
// first within the same preference class. The re-rank is stable, so equal
// entries keep their search rank.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("key", c.APIKey)
	params.Set("cx", c.EngineID)
	params.Set("num", strconv.Itoa(numResults))
	if c.DateRestrict != "" {
		params.Set("dateRestrict", c.DateRestrict)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("search read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search: status %d, body: %s", resp.StatusCode, string(body))
	}

	var results []Result
	gjson.GetBytes(body, "items").ForEach(func(_, item gjson.Result) bool {
		link := item.Get("link").String()
		if link == "" || isBlacklisted(link) {
			return true
		}
		r := Result{
			Title: item.Get("title").String(),
			Link:  link,
		}
		if ts := item.Get("pagemap.metatags.0.article:published_time").String(); ts != "" {
			if t, err := time.Parse(time.RFC3339, ts); err == nil {
				r.Published = t
			}
		}
		results = append(results, r)
		return true
	})

	sort.SliceStable(results, func(i, j int) bool {
		pi, pj := isPreferred(results[i].Link), isPreferred(results[j].Link)
		if pi != pj {
			return pi
		}
		return results[i].Published.After(results[j].Published)
	})
	return results, nil
}

func isBlacklisted(link string) bool {
	for _, d := range blacklistedDomains {
		if strings.Contains(link, d) {
			return true
		}
	}
	return false
}

func isPreferred(link string) bool {
	for _, d := range preferredDomains {
		if strings.Contains(link, d) {
			return true
		}
	}
	return false
}
