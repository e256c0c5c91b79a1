package model

import "time"

// Exchange is one completed query/answer round. It exists only for the
// transcript recorder; nothing reads it back while answering.
type Exchange struct {
	Timestamp     time.Time
	Query         string
	Ticker        string
	QuoteStatus   StageStatus
	RecStatus     StageStatus
	ArticleStatus StageStatus
	ArticleCount  int
	Answer        string
	Elapsed       time.Duration
}
