package store

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// GetCompanySite returns the cached website for a company or "" if missing.
func GetCompanySite(ctx context.Context, db *sql.DB, company string) (string, error) {
	company = normalizeCompanyKey(company)
	if company == "" {
		return "", nil
	}

	var website string
	err := db.QueryRowContext(ctx,
		`SELECT website FROM company_sites WHERE company = ? LIMIT 1;`,
		company,
	).Scan(&website)

	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(website), nil
}

func UpsertCompanySite(ctx context.Context, db *sql.DB, company, website string) error {
	company = normalizeCompanyKey(company)
	website = strings.TrimSpace(website)

	if company == "" || website == "" {
		return nil
	}

	_, err := db.ExecContext(ctx, `
INSERT INTO company_sites(company, website, fetched_at)
VALUES(?,?,?)
ON CONFLICT(company) DO UPDATE SET
  website = excluded.website,
  fetched_at = excluded.fetched_at;
`, company, website, time.Now().UTC().Format(time.RFC3339))

	return err
}

func normalizeCompanyKey(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ToLower(s)
	return s
}
