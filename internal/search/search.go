// Package search produces candidate posting URLs for the pipeline: a
// DuckDuckGo fan-out over site-scoped queries, plus a direct probe of the
// Ashby board API for configured companies.
package search

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/sync/errgroup"

	"github.com/RamithaMN/job-scraper/internal/scrape/util"
)

// DefaultBaseURL is DuckDuckGo's HTML (non-JS) results endpoint, which is
// lenient with rate limits compared to the JSON API.
const DefaultBaseURL = "https://duckduckgo.com/html/"

// siteScopes restricts each query to one supported ATS host. Simple
// per-site queries avoid boolean-operator quirks in the search engines.
var siteScopes = []string{
	"site:jobs.lever.co",
	"site:jobs.ashbyhq.com",
	"site:boards.greenhouse.io",
	"site:jobs.smartrecruiters.com",
}

type Engine struct {
	BaseURL string
	hc      *http.Client
	limiter *util.HostLimiter
	max     int
}

func NewEngine(limiter *util.HostLimiter, maxResults int) *Engine {
	return &Engine{
		BaseURL: DefaultBaseURL,
		hc:      &http.Client{Timeout: 15 * time.Second},
		limiter: limiter,
		max:     maxResults,
	}
}

// CandidateURLs runs the four scoped queries concurrently and returns the
// deduplicated union. A failed query is logged and contributes nothing; the
// fan-out never fails as a whole.
func (e *Engine) CandidateURLs(ctx context.Context, query string) []string {
	found := mapset.NewSet[string]()

	var g errgroup.Group
	for _, scope := range siteScopes {
		q := scope + " " + query
		g.Go(func() error {
			urls, err := e.queryOnce(ctx, q)
			if err != nil {
				log.Printf("[search] query %q failed: %v", q, err)
				return nil
			}
			log.Printf("[search] %d results for %q", len(urls), q)
			for _, u := range urls {
				found.Add(u)
			}
			return nil
		})
	}
	_ = g.Wait()

	return found.ToSlice()
}

func (e *Engine) queryOnce(ctx context.Context, q string) ([]string, error) {
	u := e.BaseURL + "?q=" + url.QueryEscape(q)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")

	if e.limiter != nil {
		if err := e.limiter.WaitURL(ctx, u); err != nil {
			return nil, err
		}
	}

	res, err := e.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, err
	}

	var out []string
	doc.Find("a.result__a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		target := decodeRedirect(href)
		if target == "" {
			return
		}
		out = append(out, target)
		if e.max > 0 && len(out) >= e.max {
			return
		}
	})
	if e.max > 0 && len(out) > e.max {
		out = out[:e.max]
	}
	return out, nil
}

func decodeRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if uddg := u.Query().Get("uddg"); uddg != "" {
		if dec, err := url.QueryUnescape(uddg); err == nil && dec != "" {
			return dec
		}
	}
	if u.Host == "" {
		return ""
	}
	return href
}
