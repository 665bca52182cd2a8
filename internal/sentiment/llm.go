package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/textinsight/backend/internal/provider"
)

var numberPattern = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)

// LLMScorer asks a language model for a polarity in [-1, 1].
type LLMScorer struct {
	LLM provider.LLMProvider
}

func NewLLMScorer(llm provider.LLMProvider) *LLMScorer {
	return &LLMScorer{LLM: llm}
}

// Score sends the tokens joined back into text and parses the first number
// of the reply, clamped to [-1, 1].
func (s *LLMScorer) Score(ctx context.Context, language string, tokens []string, dictionary json.RawMessage) (float64, error) {
	hints, err := ParseDictionary(dictionary, language)
	if err != nil {
		return 0, err
	}
	prompt := BuildPrompt(strings.Join(tokens, " "), language, hints)

	reply, err := s.LLM.Generate(ctx, prompt)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", s.LLM.Name(), err)
	}
	return ParseScore(reply)
}

// BuildPrompt renders the scoring instruction for one text.
func BuildPrompt(text, language string, hints map[string]float64) string {
	var b strings.Builder
	b.WriteString("You are a sentiment analysis engine. Rate the sentiment of the text below ")
	b.WriteString("on a scale from -1 (very negative) to 1 (very positive), 0 being neutral.\n")
	b.WriteString("Reply with the number only.\n\n")
	b.WriteString("LANGUAGE: " + language + "\n")
	if len(hints) > 0 {
		words := make([]string, 0, len(hints))
		for w := range hints {
			words = append(words, w)
		}
		sort.Strings(words)
		b.WriteString("WORD SCORES TO RESPECT (AFINN scale -5..5):\n")
		for _, w := range words {
			b.WriteString(fmt.Sprintf("- %s: %g\n", w, hints[w]))
		}
	}
	b.WriteString("TEXT:\n" + text + "\n\nSCORE:\n")
	return b.String()
}

// ParseScore extracts the first number of a model reply.
func ParseScore(reply string) (float64, error) {
	m := numberPattern.FindString(reply)
	if m == "" {
		return 0, fmt.Errorf("no score in reply %q", truncate(reply, 80))
	}
	score, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, fmt.Errorf("parse score: %w", err)
	}
	if score > 1 {
		score = 1
	} else if score < -1 {
		score = -1
	}
	return score, nil
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
