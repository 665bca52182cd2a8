package batch

import (
	"bytes"
	"encoding/json"
)

// Content is the text carried for a unit: either plain text or the token
// sequence produced by dictionary matching.
type Content struct {
	Text   string
	Tokens []string
}

// PlainText wraps a string.
func PlainText(s string) Content { return Content{Text: s} }

// TokenText wraps a token sequence.
func TokenText(tokens []string) Content {
	if tokens == nil {
		tokens = []string{}
	}
	return Content{Tokens: tokens}
}

// IsTokens reports whether c holds a token sequence.
func (c Content) IsTokens() bool { return c.Tokens != nil }

// Empty reports whether there is nothing to analyze. A token sequence is
// never empty in this sense, it has already been normalized.
func (c Content) Empty() bool { return c.Tokens == nil && c.Text == "" }

func (c Content) MarshalJSON() ([]byte, error) {
	if c.Tokens != nil {
		return json.Marshal(c.Tokens)
	}
	return json.Marshal(c.Text)
}

func (c *Content) UnmarshalJSON(data []byte) error {
	*c = Content{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var tokens []string
		if err := json.Unmarshal(trimmed, &tokens); err != nil {
			return err
		}
		*c = TokenText(tokens)
		return nil
	}
	return json.Unmarshal(trimmed, &c.Text)
}

// ResultItem is one successfully analyzed unit.
type ResultItem struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
	Text  Content `json:"text"`
}

// ErrorItem is one unit that could not be analyzed.
type ErrorItem struct {
	ID  string `json:"id"`
	Msg string `json:"msg"`
}

// Payload is what a pipeline hands back to the responder.
type Payload interface {
	// FailureCount is the number of failed units, compared against the
	// original document count to decide the verdict.
	FailureCount() int
}

// Report is the sentiment-mode payload.
type Report struct {
	Documents []ResultItem `json:"documents"`
	Errors    []ErrorItem  `json:"errors"`
}

// NewReport returns a report with empty, non-nil lists.
func NewReport() *Report {
	return &Report{Documents: []ResultItem{}, Errors: []ErrorItem{}}
}

func (r *Report) FailureCount() int { return len(r.Errors) }
