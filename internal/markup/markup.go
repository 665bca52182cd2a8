package markup

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Strip returns the visible text of an HTML fragment: tags are dropped,
// script and style bodies skipped, entities decoded and whitespace
// collapsed. Plain text comes back with its whitespace collapsed.
func Strip(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return cleanText(fragment)
	}

	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	var textBuilder strings.Builder
	inScript := false
	inStyle := false

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			// io.EOF, or a malformed tail: keep what was read either way
			return cleanText(textBuilder.String())

		case html.StartTagToken, html.SelfClosingTagToken:
			switch tokenizer.Token().DataAtom {
			case atom.Script:
				inScript = true
			case atom.Style:
				inStyle = true
			case atom.Br, atom.P, atom.Div, atom.Li:
				textBuilder.WriteString(" ")
			}

		case html.EndTagToken:
			switch tokenizer.Token().DataAtom {
			case atom.Script:
				inScript = false
			case atom.Style:
				inStyle = false
			case atom.P, atom.Div, atom.Li:
				textBuilder.WriteString(" ")
			}

		case html.TextToken:
			if !inScript && !inStyle {
				textBuilder.WriteString(tokenizer.Token().Data)
			}
		}
	}
}

// Highlight wraps text in <span class="highlight">. The text is inserted
// as given.
func Highlight(text string) string {
	return `<span class="highlight">` + text + `</span>`
}

// cleanText removes excessive whitespace
func cleanText(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
