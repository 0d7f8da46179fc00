package util

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return d
}

func TestFirstMatchPriorityOrder(t *testing.T) {
	d := doc(t, `<h1 class="app-title">Primary</h1><h1>Secondary</h1>`)

	got := FirstMatch(d, "Unknown Title",
		Text("h1.app-title"),
		Text("h1"),
	)
	assert.Equal(t, "Primary", got)
}

func TestFirstMatchFallsThroughEmptyMatches(t *testing.T) {
	d := doc(t, `<h1 class="app-title">   </h1><h1>Secondary</h1>`)

	got := FirstMatch(d, "Unknown Title",
		Text("h1.app-title"),
		Text("h1"),
	)
	assert.Equal(t, "Secondary", got)
}

func TestFirstMatchDefault(t *testing.T) {
	d := doc(t, `<p>no headings here</p>`)

	got := FirstMatch(d, "Unknown Title", Text("h1"), Text("h2"))
	assert.Equal(t, "Unknown Title", got)
}

func TestAttrSource(t *testing.T) {
	d := doc(t, `<meta property="og:title" content="Meta Title"><title>Doc Title</title>`)

	got := FirstMatch(d, "",
		Attr(`meta[property="og:title"]`, "content"),
		Text("title"),
	)
	assert.Equal(t, "Meta Title", got)
}
