package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	LLM struct {
		APIKey  string `yaml:"api_key"`
		BaseURL string `yaml:"base_url"`
		Model   string `yaml:"model"`
	} `yaml:"llm"`
	Search struct {
		APIKey       string `yaml:"api_key"`
		EngineID     string `yaml:"engine_id"`
		BaseURL      string `yaml:"base_url"`
		MaxArticles  int    `yaml:"max_articles"`
		DateRestrict string `yaml:"date_restrict"`
	} `yaml:"search"`
	Market struct {
		APIKey  string `yaml:"api_key"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"market"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy          string `yaml:"proxy"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("GROQ_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		cfg.Search.APIKey = v
	}
	if v := os.Getenv("GOOGLE_CSE_ID"); v != "" {
		cfg.Search.EngineID = v
	}
	if v := os.Getenv("FINN_API_KEY"); v != "" {
		cfg.Market.APIKey = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutSeconds = n
		}
	}

	// Defaults
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "llama3-8b-8192"
	}
	if cfg.Search.BaseURL == "" {
		cfg.Search.BaseURL = "https://www.googleapis.com/customsearch/v1"
	}
	if cfg.Search.MaxArticles == 0 {
		cfg.Search.MaxArticles = 3
	}
	if cfg.Search.DateRestrict == "" {
		cfg.Search.DateRestrict = "m1"
	}
	if cfg.Market.BaseURL == "" {
		cfg.Market.BaseURL = "https://finnhub.io/api/v1"
	}
	if cfg.TimeoutSeconds == 0 {
		cfg.TimeoutSeconds = 10
	}

	return cfg, nil
}

// Validate checks that all required credentials are set. A missing credential
// is a startup-fatal configuration error, not a per-query error.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key (GROQ_API_KEY) is required")
	}
	if c.Search.APIKey == "" {
		return fmt.Errorf("search.api_key (GOOGLE_API_KEY) is required")
	}
	if c.Search.EngineID == "" {
		return fmt.Errorf("search.engine_id (GOOGLE_CSE_ID) is required")
	}
	if c.Market.APIKey == "" {
		return fmt.Errorf("market.api_key (FINN_API_KEY) is required")
	}
	if c.Search.MaxArticles < 0 {
		return fmt.Errorf("search.max_articles must not be negative")
	}
	return nil
}

// Timeout returns the per-request timeout applied to every outbound HTTP
// client, so one unresponsive endpoint cannot hang the loop indefinitely.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
