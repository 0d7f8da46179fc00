// Package greenhouse extracts postings from boards.greenhouse.io pages.
package greenhouse

import (
	"context"
	"log"

	"github.com/PuerkitoBio/goquery"

	"github.com/RamithaMN/job-scraper/internal/domain"
	"github.com/RamithaMN/job-scraper/internal/enrich"
	"github.com/RamithaMN/job-scraper/internal/scrape/util"
)

var closedPhrases = []string{
	"job not found",
	"no longer accepting applications",
	"position has been filled",
}

func Extract(ctx context.Context, url string, doc *goquery.Document, en enrich.Enricher) *domain.JobPosting {
	if util.ContainsAny(doc.Text(), closedPhrases...) {
		log.Printf("[greenhouse] skipping closed job (text match): %s", url)
		return nil
	}

	title := util.FirstMatch(doc, "Unknown Title",
		util.Text("h1.app-title"),
		util.Text("h1"),
		util.Attr(`meta[property="og:title"]`, "content"),
	)

	location := util.FirstMatch(doc, "Unknown",
		util.Text("div.location"),
		util.Text("span.location"),
	)

	description := util.FirstMatch(doc, "",
		util.Text("div#content"),
		util.Text("div#main"),
	)
	if description == "" {
		log.Printf("[greenhouse] skipping job with no description: %s", url)
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
		Platform:       domain.PlatformGreenhouse,
	}
}
