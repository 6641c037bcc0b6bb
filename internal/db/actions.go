package db

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wp-migrate/internal/common"
	dbpkg "github.com/dtnitsch/wp-migrate/pkg/db"
)

const shortIDLen = 8

func openLedger(c *cli.Context) (*dbpkg.DB, error) {
	env, err := common.NewEnv(c)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	database, err := dbpkg.Open(env.Config.LedgerPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}

func RunsAction(c *cli.Context) error {
	database, err := openLedger(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	PrintRuns(os.Stdout, runs)
	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'wp-migrate runs show <id>' to see details\n")
	return nil
}

// PrintRuns renders runs as a table, newest first.
func PrintRuns(w io.Writer, runs []dbpkg.Run) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Kind", "Started", "Original", "Migrated", "Missing", "Extra", "Errors", "Outcome"})
	for _, r := range runs {
		t.AppendRow(table.Row{
			shortID(r.ID),
			r.Kind,
			humanize.Time(r.StartedAt),
			humanize.Comma(int64(r.OriginalTotal())),
			humanize.Comma(int64(r.MigratedTotal())),
			r.Missing,
			r.Extra,
			r.Errors,
			r.Outcome,
		})
	}
	t.Render()
}

// RunAction shows one run and its findings.
func RunAction(c *cli.Context) error {
	database, err := openLedger(c)
	if err != nil {
		return err
	}
	defer database.Close()

	run, err := RunOrLatest(c, database)
	if err != nil {
		return err
	}

	findings, err := database.GetFindings(run.ID)
	if err != nil {
		return fmt.Errorf("failed to get findings: %w", err)
	}

	PrintRun(os.Stdout, run, findings)
	return nil
}

// PrintRun writes run details followed by its findings grouped by kind.
func PrintRun(w io.Writer, r dbpkg.Run, findings []dbpkg.Finding) {
	fmt.Fprintf(w, "Run %s\n", r.ID)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Kind:        %s\n", r.Kind)
	fmt.Fprintf(w, "Started:     %s (%s)\n", r.StartedAt.Format("2006-01-02 15:04:05"), humanize.Time(r.StartedAt))
	if r.ExportPath != "" {
		fmt.Fprintf(w, "Export:      %s\n", r.ExportPath)
		fmt.Fprintf(w, "SHA-256:     %s\n", r.ExportSHA256)
	}
	fmt.Fprintf(w, "Original:    %d posts, %d pages\n", r.OriginalPosts, r.OriginalPages)
	fmt.Fprintf(w, "Migrated:    %d posts, %d pages\n", r.MigratedPosts, r.MigratedPages)
	if r.Categories+r.Tags+r.Posts > 0 {
		fmt.Fprintf(w, "Taxonomy:    %d categories, %d tags, %d posts\n", r.Categories, r.Tags, r.Posts)
	}
	fmt.Fprintf(w, "Findings:    %d missing, %d extra, %d errors\n", r.Missing, r.Extra, r.Errors)
	fmt.Fprintf(w, "Outcome:     %s\n", r.Outcome)

	for _, kind := range []string{dbpkg.FindingMissing, dbpkg.FindingExtra, dbpkg.FindingError} {
		var group []dbpkg.Finding
		for _, f := range findings {
			if f.Kind == kind {
				group = append(group, f)
			}
		}
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s (%d):\n", strings.ToUpper(kind[:1])+kind[1:], len(group))
		fmt.Fprintln(w, strings.Repeat("-", 60))
		for i, f := range group {
			if kind == dbpkg.FindingError {
				fmt.Fprintf(w, "%2d. %s\n", i+1, f.Ref)
				continue
			}
			fmt.Fprintf(w, "%2d. [%s] %s (%s)\n", i+1, f.ContentType, f.Title, f.Ref)
		}
	}
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

// ledgerError turns lookup errors into operator-facing messages.
func ledgerError(arg string, err error) error {
	switch {
	case errors.Is(err, dbpkg.ErrRunNotFound):
		return fmt.Errorf("no run matches %q", arg)
	case errors.Is(err, dbpkg.ErrAmbiguousRun):
		return fmt.Errorf("%q matches more than one run, use a longer prefix", arg)
	}
	return fmt.Errorf("failed to get run: %w", err)
}
