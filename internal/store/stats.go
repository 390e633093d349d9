package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath      string       `json:"db_path"`
	DBSizeBytes int64        `json:"db_size_bytes"`
	TotalRuns   int          `json:"total_runs"`
	TotalBreeds int          `json:"total_breeds"`
	Latest      *LatestStats `json:"latest,omitempty"`
}

// LatestStats breaks down the most recent run.
type LatestStats struct {
	RunID       string         `json:"run_id"`
	Cats        int            `json:"cats"`
	Dogs        int            `json:"dogs"`
	Sizes       map[string]int `json:"sizes"`
	WithoutSize int            `json:"without_size"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	// DB file size
	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&st.TotalRuns)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM breeds`).Scan(&st.TotalBreeds)

	if st.TotalRuns == 0 {
		return st, nil
	}

	run, err := s.GetRun(ctx, "")
	if err != nil {
		return st, err
	}
	latest := &LatestStats{RunID: run.ID, Sizes: map[string]int{}}
	s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(is_cat), 0), COALESCE(SUM(1 - is_cat), 0) FROM breeds WHERE run_id = ?`,
		run.ID).Scan(&latest.Cats, &latest.Dogs)

	rows, err := s.db.QueryContext(ctx, `
		SELECT size, COUNT(*) FROM breeds WHERE run_id = ?
		GROUP BY size ORDER BY size`, run.ID)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var size string
		var n int
		rows.Scan(&size, &n)
		if size == "" {
			latest.WithoutSize = n
			continue
		}
		latest.Sizes[size] = n
	}

	st.Latest = latest
	return st, nil
}
