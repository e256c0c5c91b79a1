// Package articles fetches search-result pages, extracts their readable text,
// and produces per-article summaries for the answer context.
package articles

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/Jamesduongrx/Stock-Chatbot/internal/llm"
	"github.com/Jamesduongrx/Stock-Chatbot/internal/model"
	"github.com/Jamesduongrx/Stock-Chatbot/internal/search"
)

const (
	defaultMaxArticles = 3
	maxBodyBytes       = 1 << 20 // cap on fetched page size
	maxSummaryInput    = 4000    // cap on text sent to the summarizer
	browserUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

const summarizeSystemPrompt = `Summarize the input text below.
Limit the summary to 1 paragraph.
Use an advanced reading level similar to the input text, and ensure that all people, places, and other proper names and dates are included in the summary.
When possible, keep buy/hold/sell ratings, challenges the company faces, and financial information in the summary.
Only include the summary.`

// Searcher is the slice of the search client the retriever needs.
type Searcher interface {
	Search(ctx context.Context, query string) ([]search.Result, error)
}

// Retriever turns a query into a bounded sequence of article summaries.
// Individual page failures are skipped; only a search-API failure empties the
// whole stage.
type Retriever struct {
	Searcher    Searcher
	Completer   llm.Completer
	MaxArticles int
	Client      *http.Client
}

// NewRetriever creates a retriever with optional proxy support.
func NewRetriever(searcher Searcher, completer llm.Completer, maxArticles int, proxyURL string, timeout time.Duration) *Retriever {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if maxArticles <= 0 {
		maxArticles = defaultMaxArticles
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Retriever{
		Searcher:    searcher,
		Completer:   completer,
		MaxArticles: maxArticles,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Retrieve searches for the query, fetches the top result pages, and returns
// at most MaxArticles summaries in search-rank order.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]model.ArticleSummary, error) {
	results, err := r.Searcher.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("article search: %w", err)
	}

	summaries := make([]model.ArticleSummary, 0, r.MaxArticles)
	for _, res := range results {
		if len(summaries) >= r.MaxArticles {
			break
		}
		content, err := r.fetchPageText(ctx, res.Link)
		if err != nil {
			log.Printf("[INFO] skipping inaccessible article %s: %v", res.Link, err)
			continue
		}
		summaries = append(summaries, model.ArticleSummary{
			Title:   res.Title,
			URL:     res.Link,
			Summary: r.summarize(ctx, content),
		})
	}
	return summaries, nil
}

// fetchPageText downloads a page and extracts its paragraph text.
func (r *Retriever) fetchPageText(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := r.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	text := strings.TrimSpace(paragraphText(doc))
	if text == "" {
		return "", fmt.Errorf("no readable text")
	}
	return text, nil
}

// paragraphText collects the text content of every <p> element.
func paragraphText(doc *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "p" {
			b.WriteString(textContent(n))
			b.WriteString(" ")
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return b.String()
}

// textContent extracts the text of an HTML node and its descendants.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

// summarize produces a one-paragraph summary via the LLM, falling back to
// sentence truncation when the endpoint is unavailable.
func (r *Retriever) summarize(ctx context.Context, content string) string {
	if len(content) > maxSummaryInput {
		content = content[:maxSummaryInput]
	}
	out, err := r.Completer.Complete(ctx, summarizeSystemPrompt, content)
	if err != nil {
		log.Printf("[WARN] summarization failed, falling back to truncation: %v", err)
		return truncateSummary(content)
	}
	return strings.TrimSpace(out)
}

// truncateSummary keeps the first three sentences of the content.
func truncateSummary(content string) string {
	parts := strings.SplitN(content, ".", 4)
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return strings.TrimSpace(strings.Join(parts, ".")) + "..."
}
