// Package scrape turns candidate URLs into normalized job postings: fetch,
// redirect classification, then one extraction strategy per ATS platform.
package scrape

import (
	"context"
	"log"
	"net/http"

	"github.com/RamithaMN/job-scraper/internal/domain"
	"github.com/RamithaMN/job-scraper/internal/enrich"
	"github.com/RamithaMN/job-scraper/internal/fetch"
)

// Jobs processes the candidate URLs strictly one at a time; pacing between
// fetches lives in the fetcher's limiter. A failed fetch, a non-200 status
// or a disqualified page skips that URL and the batch continues. Nothing is
// retried.
func Jobs(ctx context.Context, urls []string, f fetch.Fetcher, x *Extractor, en enrich.Enricher) []domain.JobPosting {
	var out []domain.JobPosting

	for _, u := range urls {
		platform := domain.PlatformForURL(u)
		if platform == domain.PlatformUnknown {
			continue
		}

		log.Printf("[scrape] fetching %s", u)
		res, err := f.Fetch(ctx, u)
		if err != nil {
			log.Printf("[scrape] fetch failed url=%s err=%v", u, err)
			continue
		}
		if res.StatusCode != http.StatusOK {
			log.Printf("[scrape] skipping url=%s status=%d", u, res.StatusCode)
			continue
		}
		if ClosedByRedirect(u, res.FinalURL) {
			log.Printf("[scrape] skipping closed job (redirected): %s", u)
			continue
		}

		if job := x.Extract(ctx, platform, u, res.Body, en); job != nil {
			out = append(out, *job)
		}
	}

	return out
}
