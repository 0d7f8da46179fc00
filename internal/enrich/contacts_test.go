package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindHREmail(t *testing.T) {
	text := "Reach support@acme.com or careers@acme.com with questions."
	assert.Equal(t, "careers@acme.com", findHREmail(text))
}

func TestFindHREmailNoHint(t *testing.T) {
	assert.Equal(t, "", findHREmail("write to info@acme.com any time"))
}

func TestFindLinkedIn(t *testing.T) {
	html := `<a href="https://www.linkedin.com/in/jane-doe">Jane</a>`
	assert.Equal(t, "https://www.linkedin.com/in/jane-doe", findLinkedIn(html))
	assert.Equal(t, "", findLinkedIn("<p>no profiles here</p>"))
}
