// Package lever extracts postings from jobs.lever.co pages. Lever's HTML is
// consistent enough that the page alone is authoritative.
package lever

import (
	"context"
	"log"

	"github.com/PuerkitoBio/goquery"

	"github.com/RamithaMN/job-scraper/internal/domain"
	"github.com/RamithaMN/job-scraper/internal/enrich"
	"github.com/RamithaMN/job-scraper/internal/scrape/util"
)

var closedPhrases = []string{
	"no longer open",
	"job is closed",
	"position has been filled",
}

// Extract returns the normalized posting, or nil when the page is a closed
// posting, a bounced listing page, or rendered without a description.
func Extract(ctx context.Context, url string, doc *goquery.Document, en enrich.Enricher) *domain.JobPosting {
	if util.ContainsAny(doc.Text(), closedPhrases...) {
		log.Printf("[lever] skipping closed job (text match): %s", url)
		return nil
	}

	// A closed posting often redirects to the company's board, which renders
	// many posting blocks instead of one.
	if doc.Find("div.posting").Length() > 1 {
		log.Printf("[lever] skipping closed job (shows job list): %s", url)
		return nil
	}

	title := util.FirstMatch(doc, "Unknown Title",
		util.Text("h2.posting-headline"),
		util.Text("h2"),
	)

	location := util.FirstMatch(doc, "Remote/Unknown",
		util.Text("div.location"),
	)

	description := util.FirstMatch(doc, "",
		util.Text("div.content"),
		util.Text("div.posting-description"),
	)
	if description == "" {
		log.Printf("[lever] skipping job with no description: %s", url)
		return nil
	}

	company := domain.CompanyFromURL(url)
	website := en.FindWebsite(ctx, doc, company)
	contacts := en.FindContacts(ctx, website, company)

	return &domain.JobPosting{
		Title:          title,
		Company:        company,
		Location:       location,
		Description:    util.Truncate(description),
		SourceURL:      url,
		CompanyWebsite: website,
		HREmail:        contacts.Email,
		HRName:         contacts.Name,
		HRLinkedIn:     contacts.LinkedIn,
		Platform:       domain.PlatformLever,
	}
}
