package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RamithaMN/job-scraper/internal/domain"
)

func TestWebhookNotifyPayload(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))
	}))
	defer srv.Close()

	delta := []domain.JobPosting{
		{
			Title:     "Backend Engineer",
			Company:   "acme",
			Location:  "Remote",
			SourceURL: "https://jobs.lever.co/acme/1",
			Platform:  domain.PlatformLever,
		},
		{
			Title:     "ML Engineer",
			Company:   "beta",
			SourceURL: "https://boards.greenhouse.io/beta/jobs/2",
			Platform:  domain.PlatformGreenhouse,
		},
	}
	run := RunMeta{
		ID: "run-123",
		At: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
	}

	n := NewWebhook(srv.URL)
	require.NoError(t, n.Notify(context.Background(), delta, run))

	assert.Equal(t, float64(2), got["count"])
	assert.Equal(t, "run-123", got["run_id"])
	assert.Equal(t, "2025-03-01 09:30:00", got["timestamp"])

	jobs, ok := got["jobs"].([]any)
	require.True(t, ok)
	require.Len(t, jobs, 2)

	first, ok := jobs[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Backend Engineer", first["Job Title"])
	assert.Equal(t, "https://jobs.lever.co/acme/1", first["Job URL"])
	assert.Equal(t, "Lever", first["Source"])
	// Absent fields still appear with empty values.
	assert.Equal(t, "", first["HR Contact Email"])
}

func TestWebhookNotifyNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewWebhook(srv.URL)
	err := n.Notify(context.Background(), nil, RunMeta{ID: "r", At: time.Now()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
