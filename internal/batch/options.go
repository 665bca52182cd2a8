package batch

import (
	"bytes"
	"encoding/json"
	"strings"
)

// SearchKind tells which variant a Search holds.
type SearchKind int

const (
	SearchNone SearchKind = iota
	SearchKeyword
	SearchDictionary
)

// Search is the filter/highlight target of a batch: nothing, a single
// keyword, or a dictionary of words.
type Search struct {
	Kind    SearchKind
	Keyword string
	Words   map[string]struct{}
}

// Keyword builds a single-keyword search. An empty keyword means no search.
func Keyword(k string) Search {
	if k == "" {
		return Search{}
	}
	return Search{Kind: SearchKeyword, Keyword: k}
}

// Dictionary builds a dictionary search. Words are matched lower-cased.
// An empty dictionary is still a dictionary and matches nothing.
func Dictionary(words ...string) Search {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return Search{Kind: SearchDictionary, Words: set}
}

// Active reports whether the search filters units.
func (s Search) Active() bool { return s.Kind != SearchNone }

// Has reports whether the dictionary contains the lower-cased word.
func (s Search) Has(word string) bool {
	_, ok := s.Words[word]
	return ok
}

// UnmarshalJSON resolves the string-or-array shape once.
func (s *Search) UnmarshalJSON(data []byte) error {
	*s = Search{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}
	switch trimmed[0] {
	case '"':
		var k string
		if err := json.Unmarshal(trimmed, &k); err != nil {
			return err
		}
		*s = Keyword(k)
	case '[':
		var items []any
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		words := make([]string, 0, len(items))
		for _, item := range items {
			if w, ok := item.(string); ok {
				words = append(words, w)
			}
		}
		*s = Dictionary(words...)
	}
	return nil
}

// MarshalJSON writes the search back in its request shape.
func (s Search) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case SearchKeyword:
		return json.Marshal(s.Keyword)
	case SearchDictionary:
		words := make([]string, 0, len(s.Words))
		for w := range s.Words {
			words = append(words, w)
		}
		return json.Marshal(words)
	default:
		return []byte("null"), nil
	}
}

// Options are the recognized batch options.
type Options struct {
	Sentence     bool
	Search       Search
	NumberTopics int
	Sweeps       int
	Language     string
	HTML         bool
}

// UnmarshalJSON decodes options leniently: wrong-typed fields are ignored
// rather than failing the batch.
func (o *Options) UnmarshalJSON(data []byte) error {
	*o = Options{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}

	var raw struct {
		Sentence     any             `json:"sentence"`
		Search       json.RawMessage `json:"search"`
		NumberTopics any             `json:"numberTopics"`
		Sweeps       any             `json:"sweeps"`
		Language     any             `json:"language"`
		HTML         any             `json:"html"`
	}
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}

	o.Sentence, _ = raw.Sentence.(bool)
	o.HTML, _ = raw.HTML.(bool)
	if lang, ok := raw.Language.(string); ok {
		o.Language = strings.TrimSpace(lang)
	}
	if n, ok := raw.NumberTopics.(float64); ok {
		o.NumberTopics = int(n)
	}
	if n, ok := raw.Sweeps.(float64); ok {
		o.Sweeps = int(n)
	}
	if len(raw.Search) > 0 {
		if err := o.Search.UnmarshalJSON(raw.Search); err != nil {
			return err
		}
	}
	return nil
}
