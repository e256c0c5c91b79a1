// Package chat implements the interactive read-eval-print loop over
// standard input.
package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Jamesduongrx/Stock-Chatbot/internal/pipeline"
	"github.com/Jamesduongrx/Stock-Chatbot/internal/prompt"
)

// state of the interactive loop.
type state int

const (
	stateAwaiting state = iota
	stateProcessing
	stateStopped
)

const promptText = "Stock Recommendation Chatbot: "

// Runner executes one query through the answer pipeline.
type Runner interface {
	Run(ctx context.Context, query string) (*pipeline.Result, error)
}

// Loop reads queries from In and writes structured results to Out until EOF,
// an empty line, or an exit keyword.
type Loop struct {
	Pipeline Runner
	In       io.Reader
	Out      io.Writer
}

// Run drives the loop. A per-query error is printed and the loop continues;
// only input exhaustion stops it.
func (l *Loop) Run(ctx context.Context) error {
	fmt.Fprintln(l.Out, "Please include the name of the company or its ticker and your question in complete sentences.")
	fmt.Fprintln(l.Out, "Enter 'exit' or 'quit' to end the conversation.")

	scanner := bufio.NewScanner(l.In)
	st := stateAwaiting
	for st != stateStopped {
		fmt.Fprint(l.Out, promptText)
		if !scanner.Scan() {
			st = stateStopped
			continue
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" || strings.EqualFold(query, "exit") || strings.EqualFold(query, "quit") {
			st = stateStopped
			continue
		}

		st = stateProcessing
		l.process(ctx, query)
		st = stateAwaiting
	}

	fmt.Fprintln(l.Out, "Exiting the chatbot. Goodbye!")
	return scanner.Err()
}

func (l *Loop) process(ctx context.Context, query string) {
	res, err := l.Pipeline.Run(ctx, query)
	if err != nil {
		fmt.Fprintf(l.Out, "Error: %v\n\n", err)
		return
	}
	l.printResult(res)
}

// printResult writes the intermediate artifacts in a fixed layout, then the
// answer. Sections that produced nothing are omitted.
func (l *Loop) printResult(res *pipeline.Result) {
	if res.TickerFound {
		fmt.Fprintf(l.Out, "Stock Ticker: %s\n", res.Ticker)
	}
	if res.Quote != nil {
		fmt.Fprintf(l.Out, "Quote: %s\n", prompt.FormatQuote(*res.Quote))
	}
	if len(res.Recommendations) > 0 {
		fmt.Fprintf(l.Out, "Recommendations:\n%s\n", prompt.FormatRecommendations(res.Recommendations))
	}
	if len(res.Articles) > 0 {
		fmt.Fprintf(l.Out, "Article Summaries:\n%s\n", prompt.FormatArticles(res.Articles))
	}
	fmt.Fprintf(l.Out, "\n%s\n\n", res.Answer)
}
