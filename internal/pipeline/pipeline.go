// Package pipeline wires one full run: candidate discovery, sequential
// scrape, delta ingest, notification.
package pipeline

import (
	"context"
	"log"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"

	"github.com/RamithaMN/job-scraper/internal/config"
	"github.com/RamithaMN/job-scraper/internal/domain"
	"github.com/RamithaMN/job-scraper/internal/enrich"
	"github.com/RamithaMN/job-scraper/internal/fetch"
	"github.com/RamithaMN/job-scraper/internal/notify"
	"github.com/RamithaMN/job-scraper/internal/scrape"
	"github.com/RamithaMN/job-scraper/internal/scrape/ashby"
	"github.com/RamithaMN/job-scraper/internal/search"
	"github.com/RamithaMN/job-scraper/internal/store"
)

// Deps are the collaborators a run needs. Tests swap in stubs; RunOnce only
// defines the order they are called in.
type Deps struct {
	Search    *search.Engine
	AshbyAPI  *ashby.Client
	Fetcher   fetch.Fetcher
	Extractor *scrape.Extractor
	Enricher  enrich.Enricher
	Store     *store.DeltaStore
	Notifiers []notify.Notifier
}

type Summary struct {
	RunID      string
	Candidates int
	Extracted  int
	NewJobs    int
}

// RunOnce executes a single pipeline invocation end to end. The caller
// guarantees invocations do not overlap; nothing here locks the store.
// Only a persistence failure is returned as an error — per-URL trouble is
// logged and skipped.
func RunOnce(ctx context.Context, cfg config.Config, deps Deps) (Summary, error) {
	sum := Summary{RunID: uuid.NewString()}
	log.Printf("[pipeline] run %s query=%q", sum.RunID, cfg.Search.DefaultQuery)

	urls := deps.Search.CandidateURLs(ctx, cfg.Search.DefaultQuery)
	log.Printf("[pipeline] %d candidate URLs from search engines", len(urls))

	ashbyURLs := search.AshbyDirect(ctx, deps.AshbyAPI, cfg.Ashby.Companies, cfg.Search.DefaultQuery)
	log.Printf("[pipeline] %d candidate URLs from direct Ashby search", len(ashbyURLs))

	all := mapset.NewSet[string]()
	for _, u := range urls {
		all.Add(u)
	}
	for _, u := range ashbyURLs {
		all.Add(u)
	}
	candidates := all.ToSlice()
	if cfg.Search.MaxResults > 0 && len(candidates) > cfg.Search.MaxResults {
		log.Printf("[pipeline] limiting to %d candidates (found %d)", cfg.Search.MaxResults, len(candidates))
		candidates = candidates[:cfg.Search.MaxResults]
	}
	sum.Candidates = len(candidates)

	jobs := scrape.Jobs(ctx, candidates, deps.Fetcher, deps.Extractor, deps.Enricher)
	sum.Extracted = len(jobs)

	delta, err := deps.Store.Ingest(jobs)
	if err != nil {
		return sum, err
	}
	sum.NewJobs = len(delta)

	if len(delta) > 0 {
		run := notify.RunMeta{ID: sum.RunID, At: time.Now()}
		for _, n := range deps.Notifiers {
			if err := n.Notify(ctx, delta, run); err != nil {
				log.Printf("[pipeline] notify failed: %v", err)
			}
		}
	}

	log.Printf("[pipeline] run %s done: candidates=%d extracted=%d new=%d",
		sum.RunID, sum.Candidates, sum.Extracted, sum.NewJobs)
	return sum, nil
}

// Postings runs only the extraction half of the pipeline over explicit URLs,
// bypassing discovery. Useful for one-off URL checks from the CLI.
func Postings(ctx context.Context, urls []string, deps Deps) []domain.JobPosting {
	return scrape.Jobs(ctx, urls, deps.Fetcher, deps.Extractor, deps.Enricher)
}
