package main

import (
	"context"
	"log"
	"os"

	"github.com/Jamesduongrx/Stock-Chatbot/internal/articles"
	"github.com/Jamesduongrx/Stock-Chatbot/internal/chat"
	"github.com/Jamesduongrx/Stock-Chatbot/internal/config"
	"github.com/Jamesduongrx/Stock-Chatbot/internal/llm"
	"github.com/Jamesduongrx/Stock-Chatbot/internal/market"
	"github.com/Jamesduongrx/Stock-Chatbot/internal/pipeline"
	"github.com/Jamesduongrx/Stock-Chatbot/internal/recorder"
	"github.com/Jamesduongrx/Stock-Chatbot/internal/resolver"
	"github.com/Jamesduongrx/Stock-Chatbot/internal/search"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] stock chatbot starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init LLM client
	completer := llm.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model, cfg.Timeout())
	log.Printf("[INFO] llm model: %s", cfg.LLM.Model)

	// Init market data fetcher
	fetcher := market.NewFinnhubFetcher(cfg.Market.BaseURL, cfg.Market.APIKey, cfg.Proxy, cfg.Timeout())
	log.Printf("[INFO] market data source: %s", fetcher.Name())

	// Init article retrieval
	searcher := search.NewClient(cfg.Search.BaseURL, cfg.Search.APIKey, cfg.Search.EngineID, cfg.Search.DateRestrict, cfg.Proxy, cfg.Timeout())
	retriever := articles.NewRetriever(searcher, completer, cfg.Search.MaxArticles, cfg.Proxy, cfg.Timeout())

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Wire the pipeline
	res := &resolver.Resolver{Completer: completer, Fetcher: fetcher}
	pl := pipeline.New(res, fetcher, retriever, completer, rec)

	loop := &chat.Loop{Pipeline: pl, In: os.Stdin, Out: os.Stdout}
	if err := loop.Run(context.Background()); err != nil {
		log.Fatalf("[FATAL] read input: %v", err)
	}
	log.Println("[INFO] stock chatbot stopped")
}
