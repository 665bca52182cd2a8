// Package match decides whether a unit passes the batch search and what
// text goes to analysis and to the response when it does.
package match

import (
	"regexp"
	"strings"

	"github.com/textinsight/backend/internal/batch"
	"github.com/textinsight/backend/internal/lexical"
	"github.com/textinsight/backend/internal/markup"
)

// Result carries the two faces of a matched unit.
type Result struct {
	// Request is handed to the analysis function.
	Request batch.Content
	// Display is reported back in the response.
	Display batch.Content
}

// Matcher applies one batch search to many units.
type Matcher struct {
	search  batch.Search
	pattern *regexp.Regexp
}

// New compiles search once for the whole batch.
func New(search batch.Search) *Matcher {
	m := &Matcher{search: search}
	if search.Kind == batch.SearchKeyword {
		m.pattern = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(search.Keyword))
	}
	return m
}

// Match tests text against the search. The second result is false when the
// unit must be dropped from the output.
//
// A keyword match analyzes the plain text and displays a copy in which
// every occurrence, in any case, is replaced by the highlighted keyword. A dictionary match analyzes and displays the normalized tokens.
func (m *Matcher) Match(text string) (Result, bool) {
	switch m.search.Kind {
	case batch.SearchKeyword:
		highlighted, ok := m.highlight(text)
		if !ok {
			return Result{}, false
		}
		return Result{Request: batch.PlainText(text), Display: batch.PlainText(highlighted)}, true

	case batch.SearchDictionary:
		tokens := lexical.Normalize(text)
		for _, tok := range tokens {
			if m.search.Has(strings.ToLower(tok)) {
				content := batch.TokenText(tokens)
				return Result{Request: content, Display: content}, true
			}
		}
		return Result{}, false

	default:
		return Result{Request: batch.PlainText(text), Display: batch.PlainText(text)}, true
	}
}

func (m *Matcher) highlight(text string) (string, bool) {
	if !m.pattern.MatchString(text) {
		return "", false
	}
	return m.pattern.ReplaceAllLiteralString(text, markup.Highlight(m.search.Keyword)), true
}
