// Package smartrecruiters extracts postings from jobs.smartrecruiters.com
// pages. Location comes from the schema.org addressLocality metadata rather
// than a visible DOM chain.
package smartrecruiters

import (
	"context"
	"log"

	"github.com/PuerkitoBio/goquery"

	"github.com/RamithaMN/job-scraper/internal/domain"
	"github.com/RamithaMN/job-scraper/internal/enrich"
	"github.com/RamithaMN/job-scraper/internal/scrape/util"
)

var closedPhrases = []string{
	"no longer available",
	"job is closed",
	"position has been filled",
}

func Extract(ctx context.Context, url string, doc *goquery.Document, en enrich.Enricher) *domain.JobPosting {
	if util.ContainsAny(doc.Text(), closedPhrases...) {
		log.Printf("[smartrecruiters] skipping closed job (text match): %s", url)
		return nil
	}

	title := util.FirstMatch(doc, "Unknown Title",
		util.Text("h1.job-title"),
		util.Text("h1#st-jobTitle"),
	)

	location := util.FirstMatch(doc, "Unknown",
		util.Attr(`meta[itemprop="addressLocality"]`, "content"),
	)

	description := util.FirstMatch(doc, "",
		util.Text(`div[itemprop="description"]`),
		util.Text("div.job-sections"),
	)
	if description == "" {
		log.Printf("[smartrecruiters] skipping job with no description: %s", url)
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
		Platform:       domain.PlatformSmartRecruiters,
	}
}
