// Package pipeline runs the per-query retrieval-augmented answer sequence:
// resolve ticker, fetch market data, retrieve articles, assemble context,
// generate the answer.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Jamesduongrx/Stock-Chatbot/internal/llm"
	"github.com/Jamesduongrx/Stock-Chatbot/internal/market"
	"github.com/Jamesduongrx/Stock-Chatbot/internal/model"
	"github.com/Jamesduongrx/Stock-Chatbot/internal/prompt"
	"github.com/Jamesduongrx/Stock-Chatbot/internal/recorder"
)

// TickerResolver resolves a query to a ticker symbol, or reports not-found.
type TickerResolver interface {
	Resolve(ctx context.Context, query string) (string, bool)
}

// ArticleRetriever produces a bounded sequence of article summaries.
type ArticleRetriever interface {
	Retrieve(ctx context.Context, query string) ([]model.ArticleSummary, error)
}

// Result carries every artifact produced while answering one query. Derived
// entities live exactly as long as the query that produced them.
type Result struct {
	Query           string
	Ticker          string
	TickerFound     bool
	Quote           *model.Quote
	QuoteStatus     model.StageStatus
	Recommendations []model.RecommendationPeriod
	RecStatus       model.StageStatus
	Articles        []model.ArticleSummary
	ArticleStatus   model.StageStatus
	Answer          string
}

// Pipeline wires the stages together. Control flow is strictly linear; every
// stage except answer generation degrades to empty on failure.
type Pipeline struct {
	Resolver  TickerResolver
	Fetcher   market.Fetcher
	Retriever ArticleRetriever
	Completer llm.Completer
	Recorder  recorder.Recorder
}

// New creates a Pipeline.
func New(res TickerResolver, fetcher market.Fetcher, ret ArticleRetriever, completer llm.Completer, rec recorder.Recorder) *Pipeline {
	return &Pipeline{
		Resolver:  res,
		Fetcher:   fetcher,
		Retriever: ret,
		Completer: completer,
		Recorder:  rec,
	}
}

// Run executes the full pipeline for one query. The returned error covers
// answer generation only; upstream stage failures degrade to empty sections.
func (p *Pipeline) Run(ctx context.Context, query string) (*Result, error) {
	start := time.Now()
	res := &Result{
		Query:         query,
		QuoteStatus:   model.StageSkipped,
		RecStatus:     model.StageSkipped,
		ArticleStatus: model.StageSkipped,
	}

	if ticker, ok := p.Resolver.Resolve(ctx, query); ok {
		res.Ticker = ticker
		res.TickerFound = true
		p.fetchMarketData(ctx, res)
	} else {
		log.Printf("[INFO] no ticker resolved, answering from articles only")
	}

	p.retrieveArticles(ctx, res)

	contextBlock := prompt.Assemble(res.Quote, res.Recommendations, res.Articles)
	tmpl := prompt.AnswerTemplate{
		Preamble: prompt.AnswerPreamble,
		Context:  contextBlock,
		Query:    query,
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}

	answer, err := p.Completer.Complete(ctx, tmpl.Render(), query)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}
	res.Answer = strings.TrimSpace(answer)

	p.record(res, time.Since(start))
	return res, nil
}

// fetchMarketData issues one request per data category; each degrades
// independently so an answer can still be produced from articles alone.
func (p *Pipeline) fetchMarketData(ctx context.Context, res *Result) {
	res.QuoteStatus = model.StageEmpty
	quote, err := p.Fetcher.Quote(ctx, res.Ticker)
	switch {
	case errors.Is(err, market.ErrNoData):
	case err != nil:
		log.Printf("[WARN] quote fetch failed for %s: %v", res.Ticker, err)
	default:
		res.Quote = &quote
		res.QuoteStatus = model.StagePresent
	}

	res.RecStatus = model.StageEmpty
	trends, err := p.Fetcher.RecommendationTrends(ctx, res.Ticker)
	switch {
	case errors.Is(err, market.ErrNoData):
	case err != nil:
		log.Printf("[WARN] recommendation fetch failed for %s: %v", res.Ticker, err)
	default:
		res.Recommendations = trends
		res.RecStatus = model.StagePresent
	}
}

func (p *Pipeline) retrieveArticles(ctx context.Context, res *Result) {
	res.ArticleStatus = model.StageEmpty
	arts, err := p.Retriever.Retrieve(ctx, res.Query)
	if err != nil {
		log.Printf("[WARN] article retrieval failed: %v", err)
		return
	}
	if len(arts) > 0 {
		res.Articles = arts
		res.ArticleStatus = model.StagePresent
	}
}

func (p *Pipeline) record(res *Result, elapsed time.Duration) {
	if p.Recorder == nil {
		return
	}
	ex := &model.Exchange{
		Timestamp:     time.Now(),
		Query:         res.Query,
		Ticker:        res.Ticker,
		QuoteStatus:   res.QuoteStatus,
		RecStatus:     res.RecStatus,
		ArticleStatus: res.ArticleStatus,
		ArticleCount:  len(res.Articles),
		Answer:        res.Answer,
		Elapsed:       elapsed,
	}
	if err := p.Recorder.RecordExchange(ex); err != nil {
		log.Printf("[WARN] record exchange: %v", err)
	}
}
