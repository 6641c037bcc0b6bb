package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtnitsch/wp-migrate/models"
)

// Run kinds.
const (
	KindTaxonomy = "taxonomy"
	KindVerify   = "verify"
	KindCheck    = "check"
	KindAudit    = "audit"
)

// Run outcomes.
const (
	OutcomeReady    = "ready"
	OutcomeNotReady = "not ready"
	OutcomeFailed   = "failed"
)

// Finding kinds.
const (
	FindingMissing = "missing"
	FindingExtra   = "extra"
	FindingError   = "error"
)

const timeLayout = "2006-01-02 15:04:05.000000"

var (
	ErrRunNotFound  = errors.New("run not found")
	ErrAmbiguousRun = errors.New("run id prefix matches more than one run")
)

// Run is one recorded pass.
type Run struct {
	ID           string
	Kind         string
	StartedAt    time.Time
	ExportPath   string
	ExportSHA256 string

	OriginalPosts int
	OriginalPages int
	MigratedPosts int
	MigratedPages int

	Missing int
	Extra   int
	Errors  int

	Categories int
	Tags       int
	Posts      int

	Ready   bool
	Outcome string
}

// OriginalTotal is posts plus pages in the export.
func (r Run) OriginalTotal() int { return r.OriginalPosts + r.OriginalPages }

// MigratedTotal is posts plus pages on disk.
func (r Run) MigratedTotal() int { return r.MigratedPosts + r.MigratedPages }

// Finding is one missing item, extra file or file error of a run.
type Finding struct {
	Kind        string
	ContentType string
	Title       string
	Slug        string
	Ref         string
}

// NewRun starts a run record with a fresh id.
func NewRun(kind string, startedAt time.Time) Run {
	return Run{ID: uuid.NewString(), Kind: kind, StartedAt: startedAt, Outcome: OutcomeFailed}
}

// ApplyReconciliation copies counts and readiness from a reconciliation.
func (r *Run) ApplyReconciliation(res models.ReconciliationResult, ready models.Readiness) {
	r.OriginalPosts = res.Original.Posts
	r.OriginalPages = res.Original.Pages
	r.MigratedPosts = res.Migrated.Posts
	r.MigratedPages = res.Migrated.Pages
	r.Missing = len(res.Missing)
	r.Extra = len(res.Extra)
	r.Errors = len(res.Errors)
	r.Ready = ready.Ready
	r.Outcome = OutcomeNotReady
	if ready.Ready {
		r.Outcome = OutcomeReady
	}
}

// FindingsFrom flattens a reconciliation into findings.
func FindingsFrom(res models.ReconciliationResult) []Finding {
	out := make([]Finding, 0, len(res.Missing)+len(res.Extra)+len(res.Errors))
	for _, m := range res.Missing {
		out = append(out, Finding{Kind: FindingMissing, ContentType: m.Type, Title: m.Title, Slug: m.Slug, Ref: m.ID})
	}
	for _, e := range res.Extra {
		out = append(out, Finding{Kind: FindingExtra, ContentType: e.Type, Title: e.Title, Slug: e.Slug, Ref: e.File})
	}
	for _, msg := range res.Errors {
		out = append(out, Finding{Kind: FindingError, Ref: msg})
	}
	return out
}

// RecordRun stores a run and its findings atomically.
func (db *DB) RecordRun(run Run, findings []Finding) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO runs (
			run_id, kind, started_at, export_path, export_sha256,
			original_posts, original_pages, migrated_posts, migrated_pages,
			missing_count, extra_count, error_count,
			category_count, tag_count, post_count,
			ready, outcome
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Kind, run.StartedAt.UTC().Format(timeLayout), NewNullString(run.ExportPath), NewNullString(run.ExportSHA256),
		run.OriginalPosts, run.OriginalPages, run.MigratedPosts, run.MigratedPages,
		run.Missing, run.Extra, run.Errors,
		run.Categories, run.Tags, run.Posts,
		run.Ready, run.Outcome,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO findings (run_id, kind, content_type, title, slug, ref) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare finding insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range findings {
		if _, err := stmt.Exec(run.ID, f.Kind, f.ContentType, f.Title, f.Slug, f.Ref); err != nil {
			return fmt.Errorf("failed to insert finding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

const runColumns = `
	run_id, kind, started_at, export_path, export_sha256,
	original_posts, original_pages, migrated_posts, migrated_pages,
	missing_count, extra_count, error_count,
	category_count, tag_count, post_count,
	ready, outcome`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		r          Run
		startedAt  string
		exportPath sql.NullString
		exportHash sql.NullString
	)
	err := row.Scan(
		&r.ID, &r.Kind, &startedAt, &exportPath, &exportHash,
		&r.OriginalPosts, &r.OriginalPages, &r.MigratedPosts, &r.MigratedPages,
		&r.Missing, &r.Extra, &r.Errors,
		&r.Categories, &r.Tags, &r.Posts,
		&r.Ready, &r.Outcome,
	)
	if err != nil {
		return r, err
	}
	r.ExportPath = exportPath.String
	r.ExportSHA256 = exportHash.String
	r.StartedAt, err = time.ParseInLocation(timeLayout, startedAt, time.UTC)
	if err != nil {
		return r, fmt.Errorf("failed to parse run time %q: %w", startedAt, err)
	}
	return r, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	rows, err := db.Query(`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun finds a run by full id or unique id prefix.
func (db *DB) GetRun(idOrPrefix string) (Run, error) {
	rows, err := db.Query(`SELECT `+runColumns+` FROM runs WHERE run_id = ? OR run_id LIKE ? || '%' ORDER BY started_at DESC LIMIT 2`, idOrPrefix, idOrPrefix)
	if err != nil {
		return Run{}, fmt.Errorf("failed to get run: %w", err)
	}
	defer rows.Close()

	var matches []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return Run{}, fmt.Errorf("failed to scan run: %w", err)
		}
		if r.ID == idOrPrefix {
			return r, nil
		}
		matches = append(matches, r)
	}
	if err := rows.Err(); err != nil {
		return Run{}, err
	}

	switch len(matches) {
	case 0:
		return Run{}, ErrRunNotFound
	case 1:
		return matches[0], nil
	}
	return Run{}, ErrAmbiguousRun
}

// GetFindings returns the findings of a run in insertion order.
func (db *DB) GetFindings(runID string) ([]Finding, error) {
	rows, err := db.Query(`
		SELECT kind, COALESCE(content_type, ''), COALESCE(title, ''), COALESCE(slug, ''), COALESCE(ref, '')
		FROM findings WHERE run_id = ? ORDER BY finding_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get findings: %w", err)
	}
	defer rows.Close()

	var out []Finding
	for rows.Next() {
		var f Finding
		if err := rows.Scan(&f.Kind, &f.ContentType, &f.Title, &f.Slug, &f.Ref); err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// NewNullString converts empty strings to SQL NULL.
func NewNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
