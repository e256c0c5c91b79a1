package model

// Quote is a snapshot of a stock's current and recent price statistics,
// mapped verbatim from the market-data provider (no unit conversion).
type Quote struct {
	Current       float64
	Change        float64
	PercentChange float64
	High          float64
	Low           float64
	Open          float64
	PreviousClose float64
}

// RecommendationPeriod is a monthly aggregate of analyst buy/sell/hold
// counts for a ticker. Sequences are ordered most recent period first.
type RecommendationPeriod struct {
	Period     string // YYYY-MM-DD
	StrongBuy  int
	Buy        int
	Hold       int
	Sell       int
	StrongSell int
}

// ArticleSummary is one retrieved and summarized search result.
// Ordering follows search-result rank.
type ArticleSummary struct {
	Title   string
	URL     string
	Summary string
}
