package enrich

import (
	"regexp"
	"strings"
)

var (
	reEmail    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	reLinkedIn = regexp.MustCompile(`https?://(?:www\.)?linkedin\.com/in/[\w-]+`)
)

// hrHints marks addresses likely to reach a recruiting inbox rather than
// support@ or info@.
var hrHints = []string{"recruit", "hr", "talent", "career", "hiring", "jobs", "people"}

func findHREmail(text string) string {
	for _, email := range reEmail.FindAllString(text, -1) {
		low := strings.ToLower(email)
		for _, hint := range hrHints {
			if strings.Contains(low, hint) {
				return email
			}
		}
	}
	return ""
}

func findLinkedIn(html string) string {
	return reLinkedIn.FindString(html)
}
