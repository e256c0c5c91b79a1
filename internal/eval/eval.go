// Package eval scores generated answers against externally supplied fixture
// sets using fuzzy keyword matching. The metrics are advisory regression
// signals, not machine-checkable contracts.
package eval

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// VerdictCase pairs a company and a recommendation source with the verdict
// the generated answer is expected to reflect.
type VerdictCase struct {
	Company        string `json:"company"`
	Source         string `json:"source"`
	Recommendation string `json:"recommendation"`
}

// ChallengeCase lists challenge keywords expected in an answer about a
// company. Each challenge is a set of accepted synonyms.
type ChallengeCase struct {
	Company    string     `json:"company"`
	Challenges [][]string `json:"challenges"`
}

// Question renders the fixed question template for a verdict case.
func (c VerdictCase) Question() string {
	return fmt.Sprintf("Does %s recommend %s for %s?", c.Source, c.Recommendation, c.Company)
}

// Question renders the fixed question template for a challenge case.
func (c ChallengeCase) Question() string {
	return fmt.Sprintf("What are the most significant challenges %s is currently facing based on recent news and trends? Focus on industry-related, financial, and operational issues.", c.Company)
}

// LoadVerdictCases reads a verdict fixture file.
func LoadVerdictCases(path string) ([]VerdictCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read verdict cases: %w", err)
	}
	var cases []VerdictCase
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("parse verdict cases: %w", err)
	}
	return cases, nil
}

// LoadChallengeCases reads a challenge fixture file.
func LoadChallengeCases(path string) ([]ChallengeCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read challenge cases: %w", err)
	}
	var cases []ChallengeCase
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("parse challenge cases: %w", err)
	}
	return cases, nil
}

var (
	negativeKeywords = []string{"no", "bearish", "overvalued"}
	positiveKeywords = []string{"yes", "undervalued", "bullish"}
)

// ScoreVerdict reports whether the answer agrees with the expected
// recommendation. A negative keyword anywhere in the answer overrides
// everything else; otherwise a positive keyword or a whole-word match of the
// expected recommendation counts as agreement.
func ScoreVerdict(answer string, c VerdictCase) bool {
	lower := strings.ToLower(answer)
	for _, kw := range negativeKeywords {
		if matchWord(lower, kw) {
			return false
		}
	}
	for _, kw := range positiveKeywords {
		if matchWord(lower, kw) {
			return true
		}
	}
	return matchWord(lower, strings.ToLower(c.Recommendation))
}

// ScoreChallenges returns how many expected challenges the answer mentions
// (any synonym counts) and the total number of challenges in the case.
func ScoreChallenges(answer string, c ChallengeCase) (matched, total int) {
	lower := strings.ToLower(answer)
	for _, synonyms := range c.Challenges {
		total++
		for _, word := range synonyms {
			if matchWord(lower, strings.ToLower(word)) {
				matched++
				break
			}
		}
	}
	return matched, total
}

// Accuracy returns the percentage of correct predictions.
func Accuracy(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// matchWord reports a whole-word occurrence of word in text, tolerating a
// plural s.
func matchWord(text, word string) bool {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `s?\b`)
	return re.MatchString(text)
}
