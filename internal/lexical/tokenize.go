package lexical

import (
	"regexp"
	"unicode"
)

var wordPunct = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+|[^\p{L}\p{M}\p{N}_\s]+`)

// Tokenize splits text into word and punctuation tokens, keeping the
// original case: "Hi, there!" gives ["Hi" "," "there" "!"].
func Tokenize(text string) []string {
	tokens := wordPunct.FindAllString(text, -1)
	if tokens == nil {
		return []string{}
	}
	return tokens
}

// IsWord reports whether a token carries a letter or a digit.
func IsWord(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}

// Normalize expands contractions and tokenizes, the form both the
// dictionary matcher and the sentiment scorer consume.
func Normalize(text string) []string {
	return Tokenize(ExpandContractions(text))
}
