// Package sentiment holds the sentiment scorers the analysis dispatcher
// calls through analysis.Scorer.
package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/textinsight/backend/internal/lexical"
)

// ErrUnsupportedLanguage is returned when neither a built-in lexicon nor a
// supplemental dictionary covers the language.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Lexicon scores tokens against a word list. It is safe for concurrent use:
// every table is built in NewLexicon and only read afterwards.
type Lexicon struct {
	stems map[string]map[string]float64 // language -> stem -> score
}

// NewLexicon builds the stemmed tables for the built-in languages.
func NewLexicon() *Lexicon {
	l := &Lexicon{stems: make(map[string]map[string]float64)}
	l.stems["en"] = stemTable(englishLexicon, "en")
	return l
}

func stemTable(words map[string]float64, language string) map[string]float64 {
	table := make(map[string]float64, len(words))
	for w, score := range words {
		table[lexical.Stem(w, language)] = score
	}
	return table
}

// Score returns the sum of the token scores divided by the number of word
// tokens. A negator flips the next scored word. Entries of the
// supplemental dictionary take precedence over the built-in list.
func (l *Lexicon) Score(ctx context.Context, language string, tokens []string, dictionary json.RawMessage) (float64, error) {
	language = strings.ToLower(language)
	extra, err := ParseDictionary(dictionary, language)
	if err != nil {
		return 0, err
	}
	builtin := l.stems[language]
	if builtin == nil && len(extra) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}

	var total float64
	words := 0
	negate := false
	for _, tok := range tokens {
		if !lexical.IsWord(tok) {
			negate = false
			continue
		}
		words++
		lower := strings.ToLower(tok)
		if _, ok := negators[lower]; ok {
			negate = true
			continue
		}

		score, ok := extra[lower]
		if !ok {
			stem := lexical.Stem(lower, language)
			if score, ok = extra[stem]; !ok {
				score, ok = builtin[stem]
			}
		}
		if !ok {
			continue
		}
		if negate {
			score = -score
			negate = false
		}
		total += score
	}

	if words == 0 {
		return 0, nil
	}
	return total / float64(words), nil
}

// ParseDictionary reads a supplemental dictionary, either an object
// {"word": score} or an array [{"word": w, "score": s}]. Keys are stored
// lower-cased and stemmed. Other shapes give an empty dictionary.
func ParseDictionary(raw json.RawMessage, language string) (map[string]float64, error) {
	out := map[string]float64{}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return out, nil
	}

	add := func(word string, score float64) {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			return
		}
		out[word] = score
		out[lexical.Stem(word, language)] = score
	}

	switch trimmed[0] {
	case '{':
		var obj map[string]any
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("parse dictionary: %w", err)
		}
		for w, v := range obj {
			if score, ok := v.(float64); ok {
				add(w, score)
			}
		}
	case '[':
		var entries []struct {
			Word  string   `json:"word"`
			Score *float64 `json:"score"`
		}
		if err := json.Unmarshal(raw, &entries); err != nil {
			// arrays of plain words carry no scores
			return out, nil
		}
		for _, e := range entries {
			if e.Score != nil {
				add(e.Word, *e.Score)
			}
		}
	}
	return out, nil
}
