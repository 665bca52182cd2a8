package batch

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// DefaultLanguage is used wherever a unit or batch carries no language.
const DefaultLanguage = "en"

// Unit is a document or a sentence derived from one.
type Unit struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}

// LanguageOrDefault returns the unit language, falling back to DefaultLanguage.
func (u Unit) LanguageOrDefault() string {
	if u.Language == "" {
		return DefaultLanguage
	}
	return u.Language
}

// UnmarshalJSON accepts loosely typed documents. Non-string or blank text
// becomes "", numeric ids are kept in decimal form and non-object elements
// decode to an empty unit.
func (u *Unit) UnmarshalJSON(data []byte) error {
	*u = Unit{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}

	var raw struct {
		ID       any `json:"id"`
		Text     any `json:"text"`
		Language any `json:"language"`
	}
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}

	u.ID = scalarString(raw.ID)
	if text, ok := raw.Text.(string); ok && strings.TrimSpace(text) != "" {
		u.Text = text
	}
	if lang, ok := raw.Language.(string); ok {
		u.Language = strings.TrimSpace(lang)
	}
	return nil
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// FirstLanguage returns the language of the first unit, or DefaultLanguage.
func FirstLanguage(units []Unit) string {
	if len(units) == 0 || units[0].Language == "" {
		return DefaultLanguage
	}
	return units[0].Language
}
