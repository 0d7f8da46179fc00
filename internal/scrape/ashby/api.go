package ashby

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/RamithaMN/job-scraper/internal/scrape/util"
)

// DefaultAPIURL is the public non-user GraphQL endpoint Ashby's own frontend
// hits for board listings.
const DefaultAPIURL = "https://jobs.ashbyhq.com/api/non-user-graphql?op=ApiJobBoardWithTeams"

const boardQuery = `query ApiJobBoardWithTeams($organizationHostedJobsPageName: String!) { jobBoard: jobBoardWithTeams(organizationHostedJobsPageName: $organizationHostedJobsPageName) { jobPostings { id title locationName } } }`

type Posting struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	LocationName string `json:"locationName"`
}

// Client fetches a company's live posting list from the Ashby board API.
// Both the extractor's verification lookup and the direct search use it.
type Client struct {
	APIURL  string
	hc      *http.Client
	limiter *util.HostLimiter
}

func NewClient(limiter *util.HostLimiter) *Client {
	return &Client{
		APIURL:  DefaultAPIURL,
		hc:      &http.Client{Timeout: 10 * time.Second},
		limiter: limiter,
	}
}

type boardRequest struct {
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
	Query         string         `json:"query"`
}

type boardResponse struct {
	Data struct {
		JobBoard struct {
			JobPostings []Posting `json:"jobPostings"`
		} `json:"jobBoard"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// BoardPostings returns every live posting on the company's board. A non-200
// status or a GraphQL error payload is an error: without the API an Ashby
// posting cannot be verified.
func (c *Client) BoardPostings(ctx context.Context, company string) ([]Posting, error) {
	body, _ := json.Marshal(boardRequest{
		OperationName: "ApiJobBoardWithTeams",
		Variables:     map[string]any{"organizationHostedJobsPageName": company},
		Query:         boardQuery,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")

	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, c.APIURL); err != nil {
			return nil, err
		}
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ashby api: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ashby api status %d", res.StatusCode)
	}

	var br boardResponse
	if err := json.NewDecoder(res.Body).Decode(&br); err != nil {
		return nil, fmt.Errorf("ashby api decode: %w", err)
	}
	if len(br.Errors) > 0 {
		return nil, fmt.Errorf("ashby api graphql: %s", br.Errors[0].Message)
	}
	return br.Data.JobBoard.JobPostings, nil
}
