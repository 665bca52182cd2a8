package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"math"

	"github.com/textinsight/backend/internal/batch"
	"github.com/textinsight/backend/internal/lexical"
)

// Unit error messages reported to clients.
var (
	ErrEmptyField = errors.New("Empty field")
	ErrUnscorable = errors.New("unable to do sentiment")
)

// Scorer is the sentiment collaborator: it scores a token sequence.
type Scorer interface {
	Score(ctx context.Context, language string, tokens []string, dictionary json.RawMessage) (float64, error)
}

// SentenceScorer adapts a Scorer into a ScoreFunc. Plain text is
// contraction-expanded and tokenized first; a token sequence from the
// dictionary matcher is scored as is.
func SentenceScorer(scorer Scorer) ScoreFunc {
	return func(ctx context.Context, text batch.Content, language string, dictionary json.RawMessage) (float64, error) {
		if text.Empty() {
			return 0, ErrEmptyField
		}
		tokens := text.Tokens
		if !text.IsTokens() {
			tokens = lexical.Normalize(text.Text)
		}
		score, err := scorer.Score(ctx, language, tokens, dictionary)
		if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
			return 0, ErrUnscorable
		}
		return score, nil
	}
}
