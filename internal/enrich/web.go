package enrich

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/RamithaMN/job-scraper/internal/scrape/util"
	"github.com/RamithaMN/job-scraper/internal/store"
)

// atsBlocklist filters job-board hosts out of website candidates; pointing
// "company website" back at the ATS defeats the purpose.
var atsBlocklist = []string{
	"lever.co",
	"greenhouse.io",
	"ashbyhq.com",
	"smartrecruiters.com",
	"linkedin.com",
}

// WebEnricher discovers company websites and HR contacts from the posting
// page, the company site and DuckDuckGo's HTML results. Lookups are paced by
// the shared limiter and cached in SQLite keyed by company.
type WebEnricher struct {
	hc      *http.Client
	limiter *util.HostLimiter
	cache   *store.DB
}

func NewWebEnricher(limiter *util.HostLimiter, cache *store.DB) *WebEnricher {
	return &WebEnricher{
		hc:      &http.Client{Timeout: 12 * time.Second},
		limiter: limiter,
		cache:   cache,
	}
}

// FindWebsite tries, in order: the cached lookup, the page's og:url meta,
// anchor text heuristics on the posting page, then a DDG search. Every
// failure path returns "".
func (e *WebEnricher) FindWebsite(ctx context.Context, page *goquery.Document, company string) string {
	if e.cache != nil {
		if site, err := store.GetCompanySite(ctx, e.cache.Pool, company); err == nil && site != "" {
			return site
		}
	}

	site := websiteFromPage(page, company)
	if site == "" && company != "" && company != "Unknown" {
		site = e.searchWebsiteDDG(ctx, company)
	}

	if site != "" && e.cache != nil {
		if err := store.UpsertCompanySite(ctx, e.cache.Pool, company, site); err != nil {
			log.Printf("[enrich] cache write company=%q err=%v", company, err)
		}
	}
	return site
}

func websiteFromPage(page *goquery.Document, company string) string {
	if page == nil {
		return ""
	}

	if v, ok := page.Find(`meta[property="og:url"]`).First().Attr("content"); ok {
		if u, err := url.Parse(v); err == nil && u.Host != "" && !blockedHost(u.Host) {
			return v
		}
	}

	keywords := []string{"website", "company site", "visit us", "learn more about"}
	if company != "" && company != "Unknown" {
		keywords = append(keywords, strings.ToLower(company))
	}

	var found string
	page.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if !strings.HasPrefix(href, "http") {
			return true
		}
		text := strings.ToLower(util.CleanText(a.Text()))
		if text == "" {
			return true
		}
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				if u, err := url.Parse(href); err == nil && !blockedHost(u.Host) {
					found = href
					return false
				}
			}
		}
		return true
	})
	return found
}

func (e *WebEnricher) searchWebsiteDDG(ctx context.Context, company string) string {
	query := fmt.Sprintf("%s official website", company)
	u := "https://duckduckgo.com/html/?q=" + url.QueryEscape(query)

	doc, err := e.getDoc(ctx, u)
	if err != nil {
		log.Printf("[enrich] website search company=%q err=%v", company, err)
		return ""
	}

	var best string
	doc.Find("a.result__a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return true
		}
		target := decodeDDGRedirect(href)
		tu, err := url.Parse(target)
		if err != nil || tu.Host == "" || blockedHost(tu.Host) {
			return true
		}
		best = target
		return false
	})
	return best
}

// FindContacts crawls the first few likely pages of the company site for an
// HR-flavored email address and a LinkedIn profile link.
func (e *WebEnricher) FindContacts(ctx context.Context, website, company string) Contacts {
	var out Contacts
	if website == "" {
		return out
	}

	pages := []string{
		website,
		joinPath(website, "/careers"),
		joinPath(website, "/about"),
		joinPath(website, "/team"),
		joinPath(website, "/contact"),
	}
	// First three pages only; contact crawling is best-effort.
	if len(pages) > 3 {
		pages = pages[:3]
	}

	for _, pageURL := range pages {
		doc, err := e.getDoc(ctx, pageURL)
		if err != nil {
			continue
		}

		text := doc.Text()
		if out.Email == "" {
			out.Email = findHREmail(text)
		}
		if out.LinkedIn == "" {
			html, _ := doc.Html()
			out.LinkedIn = findLinkedIn(html)
		}
		if out.Email != "" || out.LinkedIn != "" {
			break
		}
	}

	if out.Email == "" && out.LinkedIn == "" {
		log.Printf("[enrich] no contacts company=%q site=%q", company, website)
	}
	return out
}

func (e *WebEnricher) getDoc(ctx context.Context, rawURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")

	if e.limiter != nil {
		if err := e.limiter.WaitURL(ctx, rawURL); err != nil {
			return nil, err
		}
	}

	res, err := e.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", res.StatusCode)
	}
	return goquery.NewDocumentFromReader(res.Body)
}

func blockedHost(host string) bool {
	host = strings.ToLower(strings.TrimPrefix(host, "www."))
	for _, b := range atsBlocklist {
		if host == b || strings.HasSuffix(host, "."+b) {
			return true
		}
	}
	return false
}

func decodeDDGRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	// DDG wraps results as /l/?uddg=<urlencoded>
	if uddg := u.Query().Get("uddg"); uddg != "" {
		if dec, err := url.QueryUnescape(uddg); err == nil && dec != "" {
			return dec
		}
	}
	return href
}

func joinPath(base, p string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	ref, err := url.Parse(p)
	if err != nil {
		return base
	}
	return u.ResolveReference(ref).String()
}
