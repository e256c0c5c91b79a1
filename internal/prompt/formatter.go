package prompt

import (
	"fmt"
	"strings"

	"github.com/Jamesduongrx/Stock-Chatbot/internal/model"
)

// FormatQuote formats a quote as the six labeled numeric fields plus the
// change figures, on a single line.
func FormatQuote(q model.Quote) string {
	return fmt.Sprintf(
		"Current price: %g, Change: %g, Percent change: %g%%, High price of the day: %g, Low price of the day: %g, Open price of the day: %g, Previous close price: %g",
		q.Current, q.Change, q.PercentChange, q.High, q.Low, q.Open, q.PreviousClose)
}

// FormatRecommendations formats recommendation periods one line each, in the
// order given (most recent period first).
func FormatRecommendations(recs []model.RecommendationPeriod) string {
	var b strings.Builder
	for i, r := range recs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("Period: %s, Strong Buy: %d, Buy: %d, Hold: %d, Sell: %d, Strong Sell: %d",
			r.Period, r.StrongBuy, r.Buy, r.Hold, r.Sell, r.StrongSell))
	}
	return b.String()
}

// FormatArticles formats article summaries as title/URL/summary blocks
// separated by blank lines.
func FormatArticles(arts []model.ArticleSummary) string {
	var b strings.Builder
	for i, a := range arts {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(fmt.Sprintf("Title: %s\nURL: %s\nSummary: %s", a.Title, a.URL, a.Summary))
	}
	return b.String()
}
