package lexical

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

var contractions = map[string]string{
	"ain't":     "is not",
	"aren't":    "are not",
	"can't":     "cannot",
	"couldn't":  "could not",
	"could've":  "could have",
	"didn't":    "did not",
	"doesn't":   "does not",
	"don't":     "do not",
	"hadn't":    "had not",
	"hasn't":    "has not",
	"haven't":   "have not",
	"he'd":      "he would",
	"he'll":     "he will",
	"he's":      "he is",
	"how'd":     "how did",
	"how'll":    "how will",
	"how's":     "how is",
	"i'd":       "i would",
	"i'll":      "i will",
	"i'm":       "i am",
	"i've":      "i have",
	"isn't":     "is not",
	"it'd":      "it would",
	"it'll":     "it will",
	"it's":      "it is",
	"let's":     "let us",
	"mightn't":  "might not",
	"might've":  "might have",
	"mustn't":   "must not",
	"must've":   "must have",
	"needn't":   "need not",
	"shan't":    "shall not",
	"she'd":     "she would",
	"she'll":    "she will",
	"she's":     "she is",
	"shouldn't": "should not",
	"should've": "should have",
	"that'd":    "that would",
	"that's":    "that is",
	"there'd":   "there would",
	"there's":   "there is",
	"they'd":    "they would",
	"they'll":   "they will",
	"they're":   "they are",
	"they've":   "they have",
	"wasn't":    "was not",
	"we'd":      "we would",
	"we'll":     "we will",
	"we're":     "we are",
	"we've":     "we have",
	"weren't":   "were not",
	"what'll":   "what will",
	"what're":   "what are",
	"what's":    "what is",
	"what've":   "what have",
	"where'd":   "where did",
	"where's":   "where is",
	"who'd":     "who would",
	"who'll":    "who will",
	"who're":    "who are",
	"who's":     "who is",
	"who've":    "who have",
	"why's":     "why is",
	"won't":     "will not",
	"wouldn't":  "would not",
	"would've":  "would have",
	"y'all":     "you all",
	"you'd":     "you would",
	"you'll":    "you will",
	"you're":    "you are",
	"you've":    "you have",
}

var contractionPattern = buildContractionPattern()

func buildContractionPattern() *regexp.Regexp {
	keys := make([]string, 0, len(contractions))
	for k := range contractions {
		keys = append(keys, regexp.QuoteMeta(k))
	}
	// longest first so "could've" wins over shorter prefixes
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })
	alt := strings.ReplaceAll(strings.Join(keys, "|"), "'", "['’]")
	return regexp.MustCompile(`(?i)\b(?:` + alt + `)\b`)
}

// ExpandContractions rewrites English contractions into their long form
// ("couldn't" becomes "could not"). A capitalized contraction keeps its
// leading capital.
func ExpandContractions(text string) string {
	if text == "" {
		return text
	}
	return contractionPattern.ReplaceAllStringFunc(text, func(m string) string {
		key := strings.ToLower(strings.ReplaceAll(m, "’", "'"))
		expanded, ok := contractions[key]
		if !ok {
			return m
		}
		first, _ := utf8.DecodeRuneInString(m)
		if unicode.IsUpper(first) {
			r, size := utf8.DecodeRuneInString(expanded)
			expanded = string(unicode.ToUpper(r)) + expanded[size:]
		}
		return expanded
	})
}
