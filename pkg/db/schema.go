package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- Runs table: one row per taxonomy/verify/check/audit invocation
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,          -- UUID
    kind TEXT NOT NULL,               -- taxonomy, verify, check, audit
    started_at TEXT NOT NULL,         -- UTC, fixed-width so it sorts as text
    export_path TEXT,
    export_sha256 TEXT,

    original_posts INTEGER DEFAULT 0,
    original_pages INTEGER DEFAULT 0,
    migrated_posts INTEGER DEFAULT 0,
    migrated_pages INTEGER DEFAULT 0,

    missing_count INTEGER DEFAULT 0,
    extra_count INTEGER DEFAULT 0,
    error_count INTEGER DEFAULT 0,

    -- Taxonomy pass output sizes
    category_count INTEGER DEFAULT 0,
    tag_count INTEGER DEFAULT 0,
    post_count INTEGER DEFAULT 0,

    ready BOOLEAN DEFAULT 0,
    outcome TEXT NOT NULL             -- ready, not ready, failed
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
CREATE INDEX IF NOT EXISTS idx_runs_kind ON runs(kind);

-- Findings: missing/extra items and file errors recorded per run
CREATE TABLE IF NOT EXISTS findings (
    finding_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    kind TEXT NOT NULL,               -- missing, extra, error
    content_type TEXT,
    title TEXT,
    slug TEXT,
    ref TEXT,                         -- export id for missing, file for extra, message for error
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_findings_run ON findings(run_id);
`
