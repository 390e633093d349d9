package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/breed-vibe/internal/model"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("run not found")

// timeLayout is fixed width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id          TEXT PRIMARY KEY,
		source      TEXT NOT NULL,
		preset      TEXT NOT NULL,
		zero_mode   TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		total       INTEGER NOT NULL DEFAULT 0,
		avg_weight  REAL,
		avg_height  REAL,
		avg_length  REAL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

	CREATE TABLE IF NOT EXISTS breeds (
		id             TEXT PRIMARY KEY,
		run_id         TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		seq            INTEGER NOT NULL,
		name           TEXT NOT NULL,
		type           TEXT NOT NULL,
		lifespan       TEXT,
		weight_text    TEXT,
		height_text    TEXT,
		length_text    TEXT,
		care           TEXT,
		price_paper    TEXT,
		price_no_paper TEXT,
		price_intl     TEXT,
		avg_weight     REAL,
		avg_height     REAL,
		avg_length     REAL,
		energy         INTEGER NOT NULL,
		space          INTEGER NOT NULL,
		grooming       INTEGER NOT NULL,
		kid_friendly   INTEGER NOT NULL,
		size_index     REAL,
		size           TEXT NOT NULL DEFAULT '',
		is_cat         INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_breeds_run ON breeds(run_id, seq);
	CREATE INDEX IF NOT EXISTS idx_breeds_size ON breeds(run_id, size);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) SaveRun(ctx context.Context, p SaveParams) (*model.Run, error) {
	now := time.Now().UTC()
	run := &model.Run{
		ID:        s.newID(),
		Source:    p.Source,
		Preset:    p.Preset,
		ZeroMode:  p.ZeroMode,
		CreatedAt: now.Truncate(time.Second),
		Total:     len(p.Result.Breeds),
		AvgWeight: p.Result.Averages.Weight,
		AvgHeight: p.Result.Averages.Height,
		AvgLength: p.Result.Averages.Length,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, preset, zero_mode, created_at, total, avg_weight, avg_height, avg_length)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.Preset, run.ZeroMode, now.Format(timeLayout), run.Total,
		run.AvgWeight, run.AvgHeight, run.AvgLength)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO breeds (id, run_id, seq, name, type, lifespan, weight_text, height_text, length_text,
		                     care, price_paper, price_no_paper, price_intl, avg_weight, avg_height, avg_length,
		                     energy, space, grooming, kid_friendly, size_index, size, is_cat)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("prepare breed insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range p.Result.Breeds {
		sc := b.Scores
		_, err = stmt.ExecContext(ctx,
			s.newID(), run.ID, b.Seq, b.Name, b.TypeLabel, b.Lifespan, b.WeightText, b.HeightText, b.LengthText,
			b.Care, b.PricePaper, b.PriceNoPaper, b.PriceIntl, b.Weight, b.Height, b.Length,
			sc.Energy, sc.Space, sc.Grooming, sc.KidFriendly, sc.SizeIndex, string(sc.Size), sc.IsCat)
		if err != nil {
			return nil, fmt.Errorf("insert breed %d: %w", b.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return run, nil
}

const runColumns = `id, source, preset, zero_mode, created_at, total, avg_weight, avg_height, avg_length`

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*model.Run, error) {
	var row *sql.Row
	if id == "" {
		row = s.db.QueryRowContext(ctx,
			`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`)
	} else {
		row = s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	}

	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		if id == "" {
			return nil, fmt.Errorf("%w: no runs stored", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) ListBreeds(ctx context.Context, p ListParams) ([]model.ScoredBreed, error) {
	run, err := s.GetRun(ctx, p.RunID)
	if err != nil {
		return nil, err
	}

	limit := p.Limit
	if limit <= 0 {
		limit = 1000
	}

	q := sq.Select(breedColumns).
		From("breeds").
		Where(sq.Eq{"run_id": run.ID}).
		OrderBy("seq", "rowid").
		Limit(uint64(limit))

	switch strings.ToLower(p.Species) {
	case "":
	case "cat":
		q = q.Where(sq.Eq{"is_cat": 1})
	case "dog":
		q = q.Where(sq.Eq{"is_cat": 0})
	default:
		return nil, fmt.Errorf("invalid species %q (use cat or dog)", p.Species)
	}
	if p.Size != "" {
		q = q.Where(sq.Eq{"size": string(p.Size)})
	}
	if p.Query != "" {
		like := "%" + p.Query + "%"
		q = q.Where(sq.Or{sq.Like{"name": like}, sq.Like{"care": like}})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build breed query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var breeds []model.ScoredBreed
	for rows.Next() {
		b, err := scanBreed(rows)
		if err != nil {
			return nil, err
		}
		breeds = append(breeds, b)
	}
	return breeds, rows.Err()
}

func (s *SQLiteStore) RmRun(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func nullFloat(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func scanRun(row scanner) (model.Run, error) {
	var r model.Run
	var createdAt string
	var w, h, l sql.NullFloat64

	err := row.Scan(&r.ID, &r.Source, &r.Preset, &r.ZeroMode, &createdAt, &r.Total, &w, &h, &l)
	if err != nil {
		return r, err
	}
	r.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	r.CreatedAt = r.CreatedAt.Truncate(time.Second)
	r.AvgWeight, r.AvgHeight, r.AvgLength = nullFloat(w), nullFloat(h), nullFloat(l)
	return r, nil
}

const breedColumns = `seq, name, type, lifespan, weight_text, height_text, length_text,
	care, price_paper, price_no_paper, price_intl, avg_weight, avg_height, avg_length,
	energy, space, grooming, kid_friendly, size_index, size, is_cat`

func scanBreed(row scanner) (model.ScoredBreed, error) {
	var b model.ScoredBreed
	var lifespan, wt, ht, lt, care, pp, pnp, pi sql.NullString
	var w, h, l, idx sql.NullFloat64
	var size string

	err := row.Scan(
		&b.Seq, &b.Name, &b.TypeLabel, &lifespan, &wt, &ht, &lt,
		&care, &pp, &pnp, &pi, &w, &h, &l,
		&b.Scores.Energy, &b.Scores.Space, &b.Scores.Grooming, &b.Scores.KidFriendly,
		&idx, &size, &b.Scores.IsCat,
	)
	if err != nil {
		return b, err
	}

	b.Lifespan, b.WeightText, b.HeightText, b.LengthText = lifespan.String, wt.String, ht.String, lt.String
	b.Care, b.PricePaper, b.PriceNoPaper, b.PriceIntl = care.String, pp.String, pnp.String, pi.String
	b.Weight, b.Height, b.Length = nullFloat(w), nullFloat(h), nullFloat(l)
	b.Scores.SizeIndex = nullFloat(idx)
	b.Scores.Size = model.SizeLabel(size)
	return b, nil
}
