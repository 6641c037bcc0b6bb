package db

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	dbpkg "github.com/dtnitsch/wp-migrate/pkg/db"
)

func TestPrintRuns(t *testing.T) {
	run := dbpkg.NewRun(dbpkg.KindVerify, time.Now().Add(-2*time.Hour))
	run.OriginalPosts = 1200
	run.MigratedPosts = 1199
	run.Missing = 1
	run.Outcome = dbpkg.OutcomeNotReady

	var buf bytes.Buffer
	PrintRuns(&buf, []dbpkg.Run{run})
	out := buf.String()

	assert.Contains(t, out, run.ID[:shortIDLen])
	assert.NotContains(t, out, run.ID)
	assert.Contains(t, out, "2 hours ago")
	assert.Contains(t, out, "1,200")
	assert.Contains(t, out, "not ready")
}

func TestPrintRun(t *testing.T) {
	run := dbpkg.NewRun(dbpkg.KindVerify, time.Now())
	findings := []dbpkg.Finding{
		{Kind: dbpkg.FindingMissing, ContentType: "post", Title: "Intro", Slug: "intro", Ref: "11"},
		{Kind: dbpkg.FindingError, Ref: "Error reading bad.mdx: boom"},
	}

	var buf bytes.Buffer
	PrintRun(&buf, run, findings)
	out := buf.String()

	assert.Contains(t, out, "Run "+run.ID)
	assert.Contains(t, out, "Missing (1):")
	assert.Contains(t, out, "[post] Intro (11)")
	assert.Contains(t, out, "Error (1):")
	assert.Contains(t, out, "Error reading bad.mdx: boom")
	assert.NotContains(t, out, "Extra (")
	assert.NotContains(t, out, "Export:")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abc", shortID("abc"))
	assert.Equal(t, "01234567", shortID("0123456789"))
}
