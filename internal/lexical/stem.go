package lexical

import (
	"strings"

	"github.com/kljensen/snowball"
)

var snowballLanguages = map[string]string{
	"en": "english",
	"es": "spanish",
	"fr": "french",
	"ru": "russian",
	"sv": "swedish",
	"no": "norwegian",
	"nb": "norwegian",
	"hu": "hungarian",
}

// Stem returns the snowball stem of a lower-cased word. Languages without
// a stemmer get the lower-cased word back.
func Stem(word, language string) string {
	lower := strings.ToLower(word)
	name, ok := snowballLanguages[strings.ToLower(language)]
	if !ok {
		return lower
	}
	stemmed, err := snowball.Stem(lower, name, true)
	if err != nil {
		return lower
	}
	return stemmed
}
