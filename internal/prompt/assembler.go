// Package prompt assembles retrieved data into the context block and the
// final completion request sent to the language model.
package prompt

import (
	"strings"

	"github.com/Jamesduongrx/Stock-Chatbot/internal/model"
)

// Assemble concatenates quote data, recommendation data, and article
// summaries into a single labeled text block. A section whose input is empty
// is omitted entirely, label included. Pure and deterministic: identical
// inputs produce byte-identical output.
func Assemble(quote *model.Quote, recs []model.RecommendationPeriod, arts []model.ArticleSummary) string {
	var sections []string
	if quote != nil {
		sections = append(sections, "Quote:\n"+FormatQuote(*quote))
	}
	if len(recs) > 0 {
		sections = append(sections, "Recommendations:\n"+FormatRecommendations(recs))
	}
	if len(arts) > 0 {
		sections = append(sections, "Article Summaries:\n"+FormatArticles(arts))
	}
	return strings.Join(sections, "\n\n")
}
