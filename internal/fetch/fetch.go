package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/RamithaMN/job-scraper/internal/scrape/util"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.114 Safari/537.36"

// Outcome is the terminal result of fetching one candidate URL. FinalURL is
// where the client ended up after redirects, which the redirect classifier
// compares against RequestedURL.
type Outcome struct {
	RequestedURL string
	FinalURL     string
	StatusCode   int
	Body         string
}

type Fetcher interface {
	Fetch(ctx context.Context, url string) (Outcome, error)
}

// HTTPFetcher fetches posting pages with a bounded per-request timeout and
// per-host pacing. A timeout or network error aborts only that URL.
type HTTPFetcher struct {
	hc      *http.Client
	limiter *util.HostLimiter
}

func NewHTTP(timeout time.Duration, limiter *util.HostLimiter) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPFetcher{
		hc:      &http.Client{Timeout: timeout},
		limiter: limiter,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (Outcome, error) {
	out := Outcome{RequestedURL: url}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return out, err
	}
	req.Header.Set("User-Agent", userAgent)

	if f.limiter != nil {
		if err := f.limiter.WaitURL(ctx, url); err != nil {
			return out, err
		}
	}

	res, err := f.hc.Do(req)
	if err != nil {
		return out, err
	}
	defer res.Body.Close()

	out.StatusCode = res.StatusCode
	out.FinalURL = res.Request.URL.String()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return out, err
	}
	out.Body = string(body)
	return out, nil
}
