// Package store persists runs, turn snapshots, and the cross-run
// collapse history behind a Postgres database.
package store

import (
	"context"
	"database/sql"
	errs "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"guildhall/internal/engine"
	"guildhall/internal/util"
)

var ErrNoChange = errs.New("no change")

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errs.New("not found")

// DB wraps gorm.DB for repositories and exposes Close.
type DB struct {
	gorm *gorm.DB
	sql  *sql.DB
}

func (d *DB) Close() error   { return d.sql.Close() }
func (d *DB) Gorm() *gorm.DB { return d.gorm }

// Open connects to the database per config.
func Open(ctx context.Context, cfg util.Config) (*DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("missing DSN")
	}
	gdb, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sdb, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sdb.SetConnMaxLifetime(30 * time.Minute)
	sdb.SetMaxOpenConns(10)
	sdb.SetMaxIdleConns(5)
	if err := sdb.PingContext(ctx); err != nil {
		return nil, err
	}
	return &DB{gorm: gdb, sql: sdb}, nil
}

// WithTx executes fn within a database transaction.
func (d *DB) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.gorm.WithContext(ctx).Transaction(fn)
}

// Run is one play-through, finished or live.
type Run struct {
	ID       uuid.UUID
	SeedText string
	Day      int
	Finished bool
}

type RunRepo struct{ db *DB }

func NewRunRepo(db *DB) *RunRepo { return &RunRepo{db: db} }

func (r *RunRepo) Create(ctx context.Context, seedText string) (Run, error) {
	id := uuid.New()
	err := r.db.gorm.WithContext(ctx).Exec(
		`INSERT INTO runs(id, seed_text, day, finished) VALUES (?,?,1,false)`, id, seedText,
	).Error
	if err != nil {
		return Run{}, wrap(err, "create run")
	}
	return Run{ID: id, SeedText: seedText, Day: 1}, nil
}

func (r *RunRepo) Get(ctx context.Context, id uuid.UUID) (Run, error) {
	row := r.db.gorm.WithContext(ctx).Raw(
		`SELECT id, seed_text, day, finished FROM runs WHERE id = ?`, id,
	).Row()
	var rr Run
	if err := row.Scan(&rr.ID, &rr.SeedText, &rr.Day, &rr.Finished); err != nil {
		if err == sql.ErrNoRows {
			return Run{}, ErrNotFound
		}
		return Run{}, wrap(err, "get run")
	}
	return rr, nil
}

// Latest returns the most recent unfinished run, for the continue flow.
func (r *RunRepo) Latest(ctx context.Context) (Run, error) {
	row := r.db.gorm.WithContext(ctx).Raw(
		`SELECT id, seed_text, day, finished FROM runs WHERE NOT finished ORDER BY created_at DESC LIMIT 1`,
	).Row()
	var rr Run
	if err := row.Scan(&rr.ID, &rr.SeedText, &rr.Day, &rr.Finished); err != nil {
		if err == sql.ErrNoRows {
			return Run{}, ErrNotFound
		}
		return Run{}, wrap(err, "latest run")
	}
	return rr, nil
}

func (r *RunRepo) Finish(ctx context.Context, tx *gorm.DB, id uuid.UUID, day int) error {
	return wrap(tx.Exec(
		`UPDATE runs SET finished = true, day = ? WHERE id = ?`, day, id,
	).Error, "finish run")
}

// SnapshotRepo keeps one latest snapshot per run, overwritten after
// every turn. Writes are fire-and-forget single-writer.
type SnapshotRepo struct{ db *DB }

func NewSnapshotRepo(db *DB) *SnapshotRepo { return &SnapshotRepo{db: db} }

func (s *SnapshotRepo) Upsert(ctx context.Context, runID uuid.UUID, day int, payload []byte) error {
	return wrap(s.db.gorm.WithContext(ctx).Exec(
		`INSERT INTO snapshots(run_id, day, payload) VALUES (?,?,?)
		 ON CONFLICT (run_id) DO UPDATE SET day = EXCLUDED.day, payload = EXCLUDED.payload, updated_at = now()`,
		runID, day, payload,
	).Error, "upsert snapshot")
}

func (s *SnapshotRepo) Load(ctx context.Context, runID uuid.UUID) (engine.Snapshot, error) {
	row := s.db.gorm.WithContext(ctx).Raw(
		`SELECT payload FROM snapshots WHERE run_id = ?`, runID,
	).Row()
	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return engine.Snapshot{}, ErrNotFound
		}
		return engine.Snapshot{}, wrap(err, "load snapshot")
	}
	snap, err := engine.UnmarshalSnapshot(payload)
	return snap, wrap(err, "decode snapshot")
}

// CollapseRepo records finished runs and aggregates them into the
// cross-run profile that drives the meta phases.
type CollapseRepo struct{ db *DB }

func NewCollapseRepo(db *DB) *CollapseRepo { return &CollapseRepo{db: db} }

func (c *CollapseRepo) Insert(ctx context.Context, tx *gorm.DB, runID uuid.UUID, sum engine.Summary) error {
	return wrap(tx.Exec(
		`INSERT INTO collapses(id, run_id, day, cause, kind, victory, funds, reputation, readiness)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		uuid.New(), runID, sum.Day, sum.Cause, string(sum.Kind), sum.Victory,
		sum.Meters.Funds, sum.Meters.Reputation, sum.Meters.Readiness,
	).Error, "insert collapse")
}

// Profile rebuilds the meta profile from the collapse history.
func (c *CollapseRepo) Profile(ctx context.Context) (*engine.Profile, error) {
	rows, err := c.db.gorm.WithContext(ctx).Raw(
		`SELECT kind, COUNT(*) FROM collapses GROUP BY kind`,
	).Rows()
	if err != nil {
		return nil, wrap(err, "load profile")
	}
	defer rows.Close()

	profile := engine.NewProfile()
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, wrap(err, "scan profile row")
		}
		k := engine.CollapseKind(kind)
		profile.Legacy[k] = count * k.LegacyValue()
		profile.Collapses += count
		profile.Runs += count
	}
	return profile, wrap(rows.Err(), "iterate profile rows")
}

// History returns recent finished runs, newest first.
func (c *CollapseRepo) History(ctx context.Context, limit int) ([]engine.Summary, error) {
	rows, err := c.db.gorm.WithContext(ctx).Raw(
		`SELECT day, cause, kind, victory, funds, reputation, readiness
		 FROM collapses ORDER BY created_at DESC LIMIT ?`, limit,
	).Rows()
	if err != nil {
		return nil, wrap(err, "load history")
	}
	defer rows.Close()

	var out []engine.Summary
	for rows.Next() {
		var s engine.Summary
		var kind string
		if err := rows.Scan(&s.Day, &s.Cause, &kind, &s.Victory, &s.Meters.Funds, &s.Meters.Reputation, &s.Meters.Readiness); err != nil {
			return nil, wrap(err, "scan history row")
		}
		s.Kind = engine.CollapseKind(kind)
		out = append(out, s)
	}
	return out, wrap(rows.Err(), "iterate history rows")
}

// BestDay is the longest any run on record survived, 0 with no history.
// Feeds the survival achievements.
func (c *CollapseRepo) BestDay(ctx context.Context) (int, error) {
	var best int
	row := c.db.gorm.WithContext(ctx).Raw(`SELECT COALESCE(MAX(day), 0) FROM collapses`).Row()
	if err := row.Scan(&best); err != nil {
		return 0, wrap(err, "load best day")
	}
	return best, nil
}

// SettingsRepo stores the single-row UI preferences.
type SettingsRepo struct{ db *DB }

func NewSettingsRepo(db *DB) *SettingsRepo { return &SettingsRepo{db: db} }

func (s *SettingsRepo) Upsert(ctx context.Context, theme, density string) error {
	return wrap(s.db.gorm.WithContext(ctx).Exec(
		`INSERT INTO settings(id, theme, text_density) VALUES (1,?,?)
		 ON CONFLICT (id) DO UPDATE SET theme = EXCLUDED.theme, text_density = EXCLUDED.text_density`,
		theme, density,
	).Error, "upsert settings")
}

func (s *SettingsRepo) Get(ctx context.Context) (theme, density string, err error) {
	row := s.db.gorm.WithContext(ctx).Raw(`SELECT theme, text_density FROM settings WHERE id = 1`).Row()
	if err := row.Scan(&theme, &density); err != nil {
		if err == sql.ErrNoRows {
			return "", "", ErrNotFound
		}
		return "", "", wrap(err, "get settings")
	}
	return theme, density, nil
}

func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}
