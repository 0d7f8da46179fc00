// Package notify pushes the per-run delta downstream. Transport retries are
// out of scope here; a failed push is logged by the caller and the run's
// artifacts remain on disk.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/RamithaMN/job-scraper/internal/domain"
)

// RunMeta identifies the pipeline run a delivery belongs to.
type RunMeta struct {
	ID string
	At time.Time
}

type Notifier interface {
	Notify(ctx context.Context, delta []domain.JobPosting, run RunMeta) error
}

// jobRecord mirrors the CSV column names so webhook consumers see the same
// schema as the artifacts. Absent values serialize as empty strings.
type jobRecord struct {
	Title      string `json:"Job Title"`
	Company    string `json:"Company"`
	Location   string `json:"Location"`
	Desc       string `json:"Description"`
	URL        string `json:"Job URL"`
	Website    string `json:"Company Website"`
	HREmail    string `json:"HR Contact Email"`
	HRName     string `json:"HR Contact Name"`
	HRLinkedIn string `json:"HR LinkedIn"`
	Source     string `json:"Source"`
}

type payload struct {
	Jobs      []jobRecord `json:"jobs"`
	Count     int         `json:"count"`
	Timestamp string      `json:"timestamp"`
	RunID     string      `json:"run_id"`
}

type WebhookNotifier struct {
	URL string
	hc  *http.Client
}

func NewWebhook(url string) *WebhookNotifier {
	return &WebhookNotifier{
		URL: url,
		hc:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *WebhookNotifier) Notify(ctx context.Context, delta []domain.JobPosting, run RunMeta) error {
	records := make([]jobRecord, 0, len(delta))
	for _, j := range delta {
		records = append(records, jobRecord{
			Title:      j.Title,
			Company:    j.Company,
			Location:   j.Location,
			Desc:       j.Description,
			URL:        j.SourceURL,
			Website:    j.CompanyWebsite,
			HREmail:    j.HREmail,
			HRName:     j.HRName,
			HRLinkedIn: j.HRLinkedIn,
			Source:     string(j.Platform),
		})
	}

	body, err := json.Marshal(payload{
		Jobs:      records,
		Count:     len(records),
		Timestamp: run.At.Format("2006-01-02 15:04:05"),
		RunID:     run.ID,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := n.hc.Do(req)
	if err != nil {
		return fmt.Errorf("webhook post: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook status %d", res.StatusCode)
	}
	return nil
}
