package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

type stubFetcher struct {
	pages map[string]fetch.Outcome
}

func (s *stubFetcher) Fetch(_ context.Context, url string) (fetch.Outcome, error) {
	out, ok := s.pages[url]
	if !ok {
		return fetch.Outcome{RequestedURL: url}, fmt.Errorf("no route for %s", url)
	}
	return out, nil
}

// recordingNotifier captures each delivery so tests can assert on when the
// pipeline fires and with how many postings.
type recordingNotifier struct {
	mu     sync.Mutex
	deltas [][]domain.JobPosting
	runs   []notify.RunMeta
}

func (r *recordingNotifier) Notify(_ context.Context, delta []domain.JobPosting, run notify.RunMeta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deltas = append(r.deltas, delta)
	r.runs = append(r.runs, run)
	return nil
}

// searchServer serves DDG-shaped result pages whose links can be swapped
// between runs.
type searchServer struct {
	mu   sync.Mutex
	urls []string
}

func (s *searchServer) set(urls []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.urls = urls
}

func (s *searchServer) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var b strings.Builder
	b.WriteString("<html><body>")
	for _, u := range s.urls {
		fmt.Fprintf(&b, `<a class="result__a" href="%s">result</a>`, u)
	}
	b.WriteString("</body></html>")
	w.Write([]byte(b.String()))
}

func leverPage(title, desc string) string {
	return `<html><body><div class="posting">
		<h2 class="posting-headline">` + title + `</h2>
		<div class="location">Remote</div>
		<div class="content">` + desc + `</div>
	</div></body></html>`
}

func okOutcome(url, title string) fetch.Outcome {
	return fetch.Outcome{
		RequestedURL: url,
		FinalURL:     url,
		StatusCode:   200,
		Body:         leverPage(title, "Backend systems work on the "+title+" team."),
	}
}

func TestRunOnceFirstRunThenDelta(t *testing.T) {
	results := &searchServer{}
	srv := httptest.NewServer(results)
	defer srv.Close()

	engine := search.NewEngine(nil, 20)
	engine.BaseURL = srv.URL

	u1 := "https://jobs.lever.co/acme/1"
	u2 := "https://jobs.lever.co/acme/2"
	u3 := "https://jobs.lever.co/beta/3"
	u4 := "https://jobs.lever.co/beta/4"

	fetcher := &stubFetcher{pages: map[string]fetch.Outcome{
		u1: okOutcome(u1, "Backend Engineer"),
		u2: okOutcome(u2, "Platform Engineer"),
		u3: okOutcome(u3, "ML Engineer"),
		u4: okOutcome(u4, "Infra Engineer"),
	}}

	dir := t.TempDir()
	ds := store.NewDeltaStore(filepath.Join(dir, "master.csv"), filepath.Join(dir, "delta.csv"))
	rec := &recordingNotifier{}

	deps := Deps{
		Search:    engine,
		AshbyAPI:  ashby.NewClient(nil),
		Fetcher:   fetcher,
		Extractor: scrape.NewExtractor(nil),
		Enricher:  enrich.Noop{},
		Store:     ds,
		Notifiers: []notify.Notifier{rec},
	}

	cfg := config.Config{}
	cfg.Search.DefaultQuery = "engineer"
	cfg.Search.MaxResults = 20

	// First run: three fresh postings land in both artifacts and one
	// notification goes out with all three.
	results.set([]string{u1, u2, u3})
	sum, err := RunOnce(context.Background(), cfg, deps)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Candidates)
	assert.Equal(t, 3, sum.Extracted)
	assert.Equal(t, 3, sum.NewJobs)

	master, err := store.ReadAll(ds.MasterPath)
	require.NoError(t, err)
	assert.Len(t, master, 3)
	delta, err := store.ReadAll(ds.DeltaPath)
	require.NoError(t, err)
	assert.Len(t, delta, 3)

	require.Len(t, rec.deltas, 1)
	assert.Len(t, rec.deltas[0], 3)
	assert.Equal(t, sum.RunID, rec.runs[0].ID)

	// Second run: same three plus one new. Delta holds exactly the new
	// posting, master grows by one, and the notifier sees only the new one.
	results.set([]string{u1, u2, u3, u4})
	sum2, err := RunOnce(context.Background(), cfg, deps)
	require.NoError(t, err)
	assert.Equal(t, 4, sum2.Extracted)
	assert.Equal(t, 1, sum2.NewJobs)
	assert.NotEqual(t, sum.RunID, sum2.RunID)

	master, err = store.ReadAll(ds.MasterPath)
	require.NoError(t, err)
	assert.Len(t, master, 4)
	delta, err = store.ReadAll(ds.DeltaPath)
	require.NoError(t, err)
	require.Len(t, delta, 1)
	assert.Equal(t, u4, delta[0].SourceURL)

	require.Len(t, rec.deltas, 2)
	require.Len(t, rec.deltas[1], 1)
	assert.Equal(t, "Infra Engineer", rec.deltas[1][0].Title)
}

func TestRunOnceEmptyDeltaSkipsNotify(t *testing.T) {
	results := &searchServer{}
	srv := httptest.NewServer(results)
	defer srv.Close()

	engine := search.NewEngine(nil, 20)
	engine.BaseURL = srv.URL

	u := "https://jobs.lever.co/acme/1"
	fetcher := &stubFetcher{pages: map[string]fetch.Outcome{u: okOutcome(u, "Backend Engineer")}}

	dir := t.TempDir()
	ds := store.NewDeltaStore(filepath.Join(dir, "master.csv"), filepath.Join(dir, "delta.csv"))
	rec := &recordingNotifier{}

	deps := Deps{
		Search:    engine,
		AshbyAPI:  ashby.NewClient(nil),
		Fetcher:   fetcher,
		Extractor: scrape.NewExtractor(nil),
		Enricher:  enrich.Noop{},
		Store:     ds,
		Notifiers: []notify.Notifier{rec},
	}

	cfg := config.Config{}
	cfg.Search.DefaultQuery = "engineer"
	cfg.Search.MaxResults = 20

	results.set([]string{u})
	_, err := RunOnce(context.Background(), cfg, deps)
	require.NoError(t, err)
	require.Len(t, rec.deltas, 1)

	// Re-running over the same posting produces an empty delta and no
	// second notification.
	sum, err := RunOnce(context.Background(), cfg, deps)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.NewJobs)
	assert.Len(t, rec.deltas, 1)
}

func TestPostingsBypassesDiscovery(t *testing.T) {
	u := "https://jobs.lever.co/acme/1"
	fetcher := &stubFetcher{pages: map[string]fetch.Outcome{u: okOutcome(u, "Backend Engineer")}}

	deps := Deps{
		Fetcher:   fetcher,
		Extractor: scrape.NewExtractor(nil),
		Enricher:  enrich.Noop{},
	}

	jobs := Postings(context.Background(), []string{u}, deps)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Backend Engineer", jobs[0].Title)
}
