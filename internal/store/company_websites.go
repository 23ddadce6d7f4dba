package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sitefinder/internal/domain"
)

type CompanyWebsite struct {
	RunID      string
	RowIndex   int
	Company    string
	Website    string
	ResolvedAt time.Time
}

// SaveRun upserts one row per record under runID.
func (d *DB) SaveRun(ctx context.Context, runID string, records []domain.CompanyRecord) error {
	tx, err := d.Pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO company_websites(run_id, row_index, company, website, resolved_at)
VALUES(?,?,?,?,?)
ON CONFLICT(run_id, row_index) DO UPDATE SET
  company = excluded.company,
  website = excluded.website,
  resolved_at = excluded.resolved_at;
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, runID, r.Index, normalizeCompanyKey(r.Name()), strings.TrimSpace(r.Website), now); err != nil {
			return fmt.Errorf("save row %d: %w", r.Index, err)
		}
	}
	return tx.Commit()
}

// ListRun returns the rows saved under runID ordered by row index.
func (d *DB) ListRun(ctx context.Context, runID string) ([]CompanyWebsite, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT run_id, row_index, company, website, resolved_at
FROM company_websites
WHERE run_id = ?
ORDER BY row_index;`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CompanyWebsite
	for rows.Next() {
		var w CompanyWebsite
		var at string
		if err := rows.Scan(&w.RunID, &w.RowIndex, &w.Company, &w.Website, &at); err != nil {
			return nil, err
		}
		w.ResolvedAt, _ = time.Parse(time.RFC3339, at)
		out = append(out, w)
	}
	return out, rows.Err()
}

func normalizeCompanyKey(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}
