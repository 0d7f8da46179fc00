package scrape

import (
	"context"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/RamithaMN/job-scraper/internal/domain"
	"github.com/RamithaMN/job-scraper/internal/enrich"
	"github.com/RamithaMN/job-scraper/internal/scrape/ashby"
	"github.com/RamithaMN/job-scraper/internal/scrape/greenhouse"
	"github.com/RamithaMN/job-scraper/internal/scrape/lever"
	"github.com/RamithaMN/job-scraper/internal/scrape/smartrecruiters"
)

// Extractor dispatches a fetched page to the strategy for its platform.
// The platform set is closed (see domain.Platform); only Ashby carries
// state, its API client.
type Extractor struct {
	ashby *ashby.Extractor
}

func NewExtractor(ashbyAPI *ashby.Client) *Extractor {
	return &Extractor{ashby: ashby.NewExtractor(ashbyAPI)}
}

// Extract parses the HTML and runs the platform strategy. Any failure —
// malformed markup, a panic inside a strategy — yields nil for this URL
// only; extraction never aborts the batch.
func (x *Extractor) Extract(ctx context.Context, platform domain.Platform, url, html string, en enrich.Enricher) (job *domain.JobPosting) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[scrape] extractor panic url=%s: %v", url, r)
			job = nil
		}
	}()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		log.Printf("[scrape] parse html url=%s err=%v", url, err)
		return nil
	}

	switch platform {
	case domain.PlatformLever:
		return lever.Extract(ctx, url, doc, en)
	case domain.PlatformAshby:
		return x.ashby.Extract(ctx, url, doc, en)
	case domain.PlatformGreenhouse:
		return greenhouse.Extract(ctx, url, doc, en)
	case domain.PlatformSmartRecruiters:
		return smartrecruiters.Extract(ctx, url, doc, en)
	}
	return nil
}
