package lever

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RamithaMN/job-scraper/internal/domain"
	"github.com/RamithaMN/job-scraper/internal/enrich"
)

const jobURL = "https://jobs.lever.co/acme/f81b2398"

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtract(t *testing.T) {
	html := `<html><body>
		<div class="posting">
			<h2 class="posting-headline">Senior AI Engineer</h2>
			<div class="location">San Francisco, CA</div>
			<div class="content">Acme builds trustworthy machine learning systems for logistics.</div>
		</div>
	</body></html>`

	job := Extract(context.Background(), jobURL, parse(t, html), enrich.Noop{})
	require.NotNil(t, job)
	assert.Equal(t, "Senior AI Engineer", job.Title)
	assert.Equal(t, "acme", job.Company)
	assert.Equal(t, "San Francisco, CA", job.Location)
	assert.Equal(t, jobURL, job.SourceURL)
	assert.Equal(t, domain.PlatformLever, job.Platform)
	assert.NotEmpty(t, job.Description)
}

func TestExtractClosedPhrases(t *testing.T) {
	for _, phrase := range []string{"no longer open", "job is closed", "position has been filled"} {
		html := `<html><body><h2>Engineer</h2><p>This posting is ` + phrase + `.</p>
			<div class="content">Plenty of description text here.</div></body></html>`
		job := Extract(context.Background(), jobURL, parse(t, html), enrich.Noop{})
		assert.Nil(t, job, phrase)
	}
}

func TestExtractMultiplePostingBlocks(t *testing.T) {
	// A dead link often lands on the company board, which renders a list of
	// posting blocks instead of one job.
	html := `<html><body>
		<div class="posting"><h5>Engineer A</h5><div class="content">aaa</div></div>
		<div class="posting"><h5>Engineer B</h5></div>
	</body></html>`

	job := Extract(context.Background(), jobURL, parse(t, html), enrich.Noop{})
	assert.Nil(t, job)
}

func TestExtractTitleAndLocationFallbacks(t *testing.T) {
	html := `<html><body>
		<h2>Plain Heading Title</h2>
		<div class="content">A perfectly fine description of the role.</div>
	</body></html>`

	job := Extract(context.Background(), jobURL, parse(t, html), enrich.Noop{})
	require.NotNil(t, job)
	assert.Equal(t, "Plain Heading Title", job.Title)
	assert.Equal(t, "Remote/Unknown", job.Location)
}

func TestExtractMissingTitleDoesNotDisqualify(t *testing.T) {
	html := `<html><body><div class="content">Description without any heading.</div></body></html>`

	job := Extract(context.Background(), jobURL, parse(t, html), enrich.Noop{})
	require.NotNil(t, job)
	assert.Equal(t, "Unknown Title", job.Title)
}

func TestExtractMissingDescriptionDisqualifies(t *testing.T) {
	html := `<html><body><h2 class="posting-headline">Engineer</h2></body></html>`

	job := Extract(context.Background(), jobURL, parse(t, html), enrich.Noop{})
	assert.Nil(t, job)
}

func TestExtractTruncatesLongDescription(t *testing.T) {
	long := strings.Repeat("description ", 100)
	html := `<html><body><h2>Engineer</h2><div class="content">` + long + `</div></body></html>`

	job := Extract(context.Background(), jobURL, parse(t, html), enrich.Noop{})
	require.NotNil(t, job)
	assert.LessOrEqual(t, len(job.Description), 504)
	assert.True(t, strings.HasSuffix(job.Description, "..."))
}
