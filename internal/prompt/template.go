package prompt

import (
	"fmt"
	"strings"
)

// AnswerPreamble is the fixed instruction block for the final answer request.
const AnswerPreamble = `You are a professional stock analyst and advisor tasked with answering user queries based on the provided information.
Do not take into account any knowledge outside of the provided information in your answer.
Do not add any extra details, opinions, or unnecessary explanations.
You are not allowed to mention the source of your information.
Your responses must be concise, accurate, and directly address the user's question in at most three complete sentences.
Answer the user as if you have personally conducted the research and are providing a professional summary of the findings.
Incorporate relevant insights from the financial data, stock recommendations, and article summaries provided.
You should only use the stock recommendations if no specific source is requested since it is aggregated across many sources.
Include 'Yes' or 'No' in your answer when applicable.
Stop responding once you have provided the necessary answer.`

// AnswerTemplate enumerates the slots of the final completion request.
// Preamble and Query are required; Context may be empty when every retrieval
// stage came back empty.
type AnswerTemplate struct {
	Preamble string
	Context  string
	Query    string
}

// Validate checks required slot presence before submission to the endpoint.
func (t *AnswerTemplate) Validate() error {
	if strings.TrimSpace(t.Preamble) == "" {
		return fmt.Errorf("answer template: preamble is required")
	}
	if strings.TrimSpace(t.Query) == "" {
		return fmt.Errorf("answer template: query is required")
	}
	return nil
}

// Render produces the system message for the completion request.
func (t *AnswerTemplate) Render() string {
	var b strings.Builder
	b.WriteString(t.Preamble)
	if t.Context != "" {
		b.WriteString("\n\n")
		b.WriteString(t.Context)
	}
	b.WriteString("\n\nUser query: ")
	b.WriteString(t.Query)
	return b.String()
}
