package enrich

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// Contacts carries the optional HR signals discovered on a company site.
// Name is reserved in the output schema but nothing fills it yet.
type Contacts struct {
	Email    string
	Name     string
	LinkedIn string
}

// Enricher resolves a posting's company identity to a website and HR
// contacts. Implementations must degrade to empty values on failure;
// enrichment never disqualifies a posting.
type Enricher interface {
	FindWebsite(ctx context.Context, page *goquery.Document, company string) string
	FindContacts(ctx context.Context, website, company string) Contacts
}

// Noop returns empty enrichment for every posting.
type Noop struct{}

func (Noop) FindWebsite(context.Context, *goquery.Document, string) string { return "" }
func (Noop) FindContacts(context.Context, string, string) Contacts         { return Contacts{} }
