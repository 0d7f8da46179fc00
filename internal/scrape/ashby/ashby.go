// Package ashby extracts postings from jobs.ashbyhq.com pages. Unlike the
// other platforms, an Ashby page is not trusted on its own: the posting is
// cross-checked against the company's live board via the public API.
package ashby

import (
	"context"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/RamithaMN/job-scraper/internal/domain"
	"github.com/RamithaMN/job-scraper/internal/enrich"
	"github.com/RamithaMN/job-scraper/internal/scrape/util"
)

var closedPhrases = []string{
	"job not found",
	"no longer accepting applications",
	"job is closed",
}

// minDescription filters out placeholder blurbs the Ashby shell renders
// before hydration.
const minDescription = 50

type Extractor struct {
	api *Client
}

func NewExtractor(api *Client) *Extractor {
	return &Extractor{api: api}
}

// Extract verifies the posting against the board API and assembles the
// record. "Job id absent from the listing" degrades to page-derived fields;
// "the API call itself failed" returns nil — the former usually means the
// job just closed, the latter that nothing can be verified at all.
func (e *Extractor) Extract(ctx context.Context, rawURL string, doc *goquery.Document, en enrich.Enricher) *domain.JobPosting {
	if util.ContainsAny(doc.Text(), closedPhrases...) {
		log.Printf("[ashby] skipping closed job (text match): %s", rawURL)
		return nil
	}

	company, jobID := splitPostingURL(rawURL)
	if company == "" || jobID == "" {
		log.Printf("[ashby] invalid URL structure: %s", rawURL)
		return nil
	}

	postings, err := e.api.BoardPostings(ctx, company)
	if err != nil {
		log.Printf("[ashby] board lookup failed company=%q err=%v", company, err)
		return nil
	}

	var title, location string
	if p := findPosting(postings, jobID); p != nil {
		title = p.Title
		if title == "" {
			title = "Unknown Title"
		}
		location = p.LocationName
		if location == "" {
			location = "Unknown"
		}
	} else {
		log.Printf("[ashby] job id %s not in board listing, using page fallback: %s", jobID, rawURL)
		title = util.FirstMatch(doc, "Unknown Title",
			util.Attr(`meta[property="og:title"]`, "content"),
			util.Text("title"),
		)
		// Page titles carry a "Role @Company" suffix.
		if i := strings.Index(title, "@"); i >= 0 {
			title = strings.TrimSpace(title[:i])
		}
		location = "Unknown"
	}

	description := firstLongMatch(doc,
		util.Text("div.job-description"),
		util.Text(`div[data-testid="job-description"]`),
		util.Text("div.posting-description"),
		util.Attr(`meta[property="og:description"]`, "content"),
	)
	if description == "" {
		log.Printf("[ashby] no meaningful description found: %s", rawURL)
		return nil
	}

	companyID := domain.CompanyFromURL(rawURL)
	website := en.FindWebsite(ctx, doc, companyID)
	contacts := en.FindContacts(ctx, website, companyID)

	return &domain.JobPosting{
		Title:          title,
		Company:        companyID,
		Location:       location,
		Description:    util.Truncate(description),
		SourceURL:      rawURL,
		CompanyWebsite: website,
		HREmail:        contacts.Email,
		HRName:         contacts.Name,
		HRLinkedIn:     contacts.LinkedIn,
		Platform:       domain.PlatformAshby,
	}
}

// firstLongMatch is FirstMatch with the Ashby-only minimum length applied
// per candidate, so a placeholder hit falls through to the next source.
func firstLongMatch(doc *goquery.Document, sources ...util.Source) string {
	for _, src := range sources {
		if v := src(doc); len(v) > minDescription {
			return v
		}
	}
	return ""
}

func findPosting(postings []Posting, jobID string) *Posting {
	for i := range postings {
		if postings[i].ID == jobID {
			return &postings[i]
		}
	}
	return nil
}

func splitPostingURL(rawURL string) (company, jobID string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 {
		return "", ""
	}
	return parts[0], parts[1]
}
