// Package segment splits documents into sentence units whose ids keep
// the lineage of the document they came from.
package segment

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/textinsight/backend/internal/batch"
)

// A run ending in one or more terminators, or a trailing fragment with none.
var sentencePattern = regexp.MustCompile(`([^.!?]+[.!?]+)|([^.!?]+$)`)

// Sentences splits text on '.', '!' and '?'. Fragments are trimmed and
// those of length one or less are dropped. It returns nil when nothing
// qualifies.
func Sentences(text string) []string {
	var sentences []string
	for _, m := range sentencePattern.FindAllString(text, -1) {
		m = strings.TrimSpace(m)
		if utf8.RuneCountInString(m) > 1 {
			sentences = append(sentences, m)
		}
	}
	return sentences
}

// ChildID is the id of the index-th sentence derived from parentID.
func ChildID(parentID string, index int) string {
	return parentID + "-" + strconv.Itoa(index)
}

// Documents returns a new sequence in which each original unit is
// rewritten in place and every extra sentence is appended after the
// originals. Only units of the given slice are split, in a single pass.
//
// A unit that splits into more than one sentence keeps the first one and
// is renamed "{id}-0"; sentence i is appended as "{id}-i" with the parent
// language. A unit yielding a single sentence keeps its id and its
// trimmed text. Blank text is normalized to "".
func Documents(units []batch.Unit) []batch.Unit {
	out := make([]batch.Unit, len(units), len(units)*2)
	var derived []batch.Unit

	for i, u := range units {
		text := strings.TrimSpace(u.Text)
		if text == "" {
			u.Text = ""
			out[i] = u
			continue
		}
		u.Text = text

		sentences := Sentences(text)
		if len(sentences) == 0 {
			out[i] = u
			continue
		}

		parentID := u.ID
		if len(sentences) > 1 {
			u.Text = sentences[0]
			u.ID = ChildID(parentID, 0)
		}
		out[i] = u

		for n := 1; n < len(sentences); n++ {
			derived = append(derived, batch.Unit{
				ID:       ChildID(parentID, n),
				Text:     sentences[n],
				Language: u.Language,
			})
		}
	}
	return append(out, derived...)
}
