package markup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/textinsight/backend/internal/markup"
)

func TestStrip(t *testing.T) {
	html := `<html><head><style>p { color: red; }</style><script>alert(1)</script></head>
	<body><p>Great <b>service</b>,</p><p>fish &amp; chips</p>line<br/>break</body></html>`

	assert.Equal(t, "Great service, fish & chips line break", markup.Strip(html))
}

func TestStripPlainText(t *testing.T) {
	assert.Equal(t, "just some text", markup.Strip("  just   some\ntext "))
}

func TestHighlight(t *testing.T) {
	assert.Equal(t, `<span class="highlight">Good</span>`, markup.Highlight("Good"))
	assert.Equal(t, `<span class="highlight">R&D "quoted"</span>`, markup.Highlight(`R&D "quoted"`))
}
