package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/RamithaMN/job-scraper/internal/domain"
)

// Columns is the shared schema of the master and delta artifacts. Job URL is
// the dedup key. Missing values are written as empty strings, never as a
// literal null token.
var Columns = []string{
	"Job Title",
	"Company",
	"Location",
	"Description",
	"Job URL",
	"Company Website",
	"HR Contact Email",
	"HR Contact Name",
	"HR LinkedIn",
	"Source",
}

// DeltaStore accumulates every accepted posting in an append-only master CSV
// and rewrites the delta CSV each run with exactly the postings not seen
// before. It performs a plain read-then-append with no locking; the caller
// must guarantee runs do not overlap.
type DeltaStore struct {
	MasterPath string
	DeltaPath  string
}

func NewDeltaStore(masterPath, deltaPath string) *DeltaStore {
	return &DeltaStore{MasterPath: masterPath, DeltaPath: deltaPath}
}

// Ingest computes the subsequence of jobs whose Job URL is not yet in the
// master, appends it to the master and replaces the delta artifact with it.
// An empty input is a no-op that leaves both artifacts untouched. A master
// that exists but cannot be parsed is fatal: treating it as empty would
// replay the entire history into the delta.
func (s *DeltaStore) Ingest(jobs []domain.JobPosting) ([]domain.JobPosting, error) {
	if len(jobs) == 0 {
		log.Printf("[store] no jobs found; leaving %s and %s untouched", s.MasterPath, s.DeltaPath)
		return nil, nil
	}

	existing, masterExists, err := s.loadMasterKeys()
	if err != nil {
		return nil, err
	}
	if existing == nil {
		existing = make(map[string]bool)
	}

	var delta []domain.JobPosting
	for _, j := range jobs {
		if existing[j.SourceURL] {
			continue
		}
		existing[j.SourceURL] = true // first sighting wins within a batch too
		delta = append(delta, j)
	}

	if !masterExists {
		if err := writeCSV(s.MasterPath, delta); err != nil {
			return nil, fmt.Errorf("write master: %w", err)
		}
		if err := writeCSV(s.DeltaPath, delta); err != nil {
			return nil, fmt.Errorf("write delta: %w", err)
		}
		log.Printf("[store] first run: %d jobs saved to %s and %s", len(delta), s.MasterPath, s.DeltaPath)
		return delta, nil
	}

	if len(delta) == 0 {
		// Deliberate "ran fine, found nothing new" signal: a delta artifact
		// with the schema and zero rows, distinct from never having run.
		if err := writeCSV(s.DeltaPath, nil); err != nil {
			return nil, fmt.Errorf("write delta: %w", err)
		}
		log.Printf("[store] no new jobs since last run")
		return nil, nil
	}

	if err := appendCSV(s.MasterPath, delta); err != nil {
		return nil, fmt.Errorf("append master: %w", err)
	}
	if err := writeCSV(s.DeltaPath, delta); err != nil {
		return nil, fmt.Errorf("write delta: %w", err)
	}
	log.Printf("[store] %d new jobs appended to %s, delta saved to %s", len(delta), s.MasterPath, s.DeltaPath)
	return delta, nil
}

func (s *DeltaStore) loadMasterKeys() (map[string]bool, bool, error) {
	f, err := os.Open(s.MasterPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("open master: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err != nil {
		return nil, false, fmt.Errorf("corrupt master %s: read header: %w", s.MasterPath, err)
	}

	urlIdx := -1
	for i, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), "Job URL") {
			urlIdx = i
			break
		}
	}
	if urlIdx < 0 {
		return nil, false, fmt.Errorf("corrupt master %s: missing %q column", s.MasterPath, "Job URL")
	}

	keys := make(map[string]bool)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, false, fmt.Errorf("corrupt master %s: %w", s.MasterPath, err)
		}
		if urlIdx >= len(rec) {
			return nil, false, fmt.Errorf("corrupt master %s: row has %d columns, want at least %d", s.MasterPath, len(rec), urlIdx+1)
		}
		keys[rec[urlIdx]] = true
	}
	return keys, true, nil
}

func writeCSV(path string, jobs []domain.JobPosting) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, j := range jobs {
		if err := cw.Write(row(j)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func appendCSV(path string, jobs []domain.JobPosting) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	for _, j := range jobs {
		if err := cw.Write(row(j)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func row(j domain.JobPosting) []string {
	return []string{
		j.Title,
		j.Company,
		j.Location,
		j.Description,
		j.SourceURL,
		j.CompanyWebsite,
		j.HREmail,
		j.HRName,
		j.HRLinkedIn,
		string(j.Platform),
	}
}

// ReadAll loads the postings of one artifact, typically for the notifier's
// payload or for tests. Field order follows Columns.
func ReadAll(path string) ([]domain.JobPosting, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(Columns) {
		return nil, fmt.Errorf("unexpected header width %d, want %d", len(header), len(Columns))
	}

	var out []domain.JobPosting
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, domain.JobPosting{
			Title:          rec[0],
			Company:        rec[1],
			Location:       rec[2],
			Description:    rec[3],
			SourceURL:      rec[4],
			CompanyWebsite: rec[5],
			HREmail:        rec[6],
			HRName:         rec[7],
			HRLinkedIn:     rec[8],
			Platform:       domain.Platform(rec[9]),
		})
	}
	return out, nil
}
