package search

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/RamithaMN/job-scraper/internal/scrape/ashby"
)

// defaultKeywords backstop the title filter when the query parses to
// nothing usable.
var defaultKeywords = []string{"engineer", "ai", "ml", "machine learning", "developer"}

// AshbyDirect queries the board API for each configured company and keeps
// postings whose title matches the query's keywords. Ashby boards barely
// show up in search engines, so the API probe is the reliable channel.
// Pacing between companies is handled by the client's limiter.
func AshbyDirect(ctx context.Context, api *ashby.Client, companies []string, query string) []string {
	keywords := queryKeywords(query)
	log.Printf("[search:ashby] filtering board titles for keywords: %v", keywords)

	var out []string
	for _, company := range companies {
		postings, err := api.BoardPostings(ctx, company)
		if err != nil {
			log.Printf("[search:ashby] company=%q err=%v", company, err)
			continue
		}
		matched := 0
		for _, p := range postings {
			title := strings.ToLower(p.Title)
			for _, kw := range keywords {
				if strings.Contains(title, kw) {
					out = append(out, fmt.Sprintf("https://jobs.ashbyhq.com/%s/%s", company, p.ID))
					matched++
					break
				}
			}
		}
		log.Printf("[search:ashby] company=%q postings=%d matched=%d", company, len(postings), matched)
	}
	return out
}

// queryKeywords flattens a quoted/boolean query into plain lowercase terms.
func queryKeywords(query string) []string {
	clean := strings.ToLower(query)
	clean = strings.NewReplacer("(", "", ")", "", `"`, "", " or ", " ").Replace(clean)

	var out []string
	for _, k := range strings.Fields(clean) {
		if len(k) > 1 {
			out = append(out, k)
		}
	}
	if len(out) == 0 {
		return defaultKeywords
	}
	return out
}
