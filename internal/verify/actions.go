package verify

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wp-migrate/internal/common"
	"github.com/dtnitsch/wp-migrate/models"
	"github.com/dtnitsch/wp-migrate/pkg/db"
	"github.com/dtnitsch/wp-migrate/pkg/manifest"
	"github.com/dtnitsch/wp-migrate/pkg/reconcile"
	"github.com/dtnitsch/wp-migrate/pkg/scanner"
)

// Extra files are listed one by one only below this many.
const extraListLimit = 10

// Outcome of a reconciliation pass.
type Outcome struct {
	Export    *common.Export
	Result    models.ReconciliationResult
	Readiness models.Readiness
	MatchRate float64
	URLs      []manifest.URLEntry
}

// Verify runs the reconciliation pass: parse the export, scan the blog and
// pages directories, compare them and write the report and URL list.
func Verify(env *common.Env, runID string) (*Outcome, error) {
	cfg := env.Config

	export, err := env.LoadExport()
	if err != nil {
		return nil, err
	}

	posts, err := scanner.Scan(env.Store, cfg.BlogDir, cfg.ContentPattern, models.TypePost)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", cfg.BlogDir, err)
	}
	pages, err := scanner.Scan(env.Store, cfg.PagesDir, cfg.ContentPattern, models.TypePage)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", cfg.PagesDir, err)
	}
	env.Logger.Info("Scanned migrated content",
		"posts", len(posts.Records), "pages", len(pages.Records),
		"errors", len(posts.Errors)+len(pages.Errors))

	migrated := append(append([]models.MigratedContentRecord{}, posts.Records...), pages.Records...)
	scanErrors := append(append([]string{}, posts.Errors...), pages.Errors...)

	out := &Outcome{Export: export}
	out.Result = reconcile.Reconcile(export.Published, migrated, scanErrors)
	out.Readiness = reconcile.Assess(out.Result)
	out.MatchRate = reconcile.MatchRate(out.Result)

	origPosts, origPages := reconcile.SourceByType(export.Published)
	report := manifest.VerificationReport{
		ReconciliationResult: out.Result,
		Readiness:            out.Readiness,
		MatchRate:            out.MatchRate,
		OriginalPosts:        origPosts,
		OriginalPages:        origPages,
		MigratedPosts:        posts.Records,
		MigratedPages:        pages.Records,
		XMLPath:              export.Path,
		RunID:                runID,
		VerificationDate:     manifest.Timestamp(env.Now()),
	}
	if err := manifest.WriteReport(env.Store, cfg.ReportPath, report); err != nil {
		return nil, err
	}

	out.URLs = manifest.BuildURLList(posts.Records, pages.Records, cfg.BlogURLPrefix, cfg.PageURLPrefix)
	if err := manifest.WriteURLList(env.Store, cfg.URLListPath, out.URLs); err != nil {
		return nil, err
	}
	return out, nil
}

// Record fills the ledger fields of a run and returns its findings.
func (o *Outcome) Record(run *db.Run) []db.Finding {
	run.ExportPath = o.Export.Path
	run.ExportSHA256 = o.Export.SHA256
	run.ApplyReconciliation(o.Result, o.Readiness)
	return db.FindingsFrom(o.Result)
}

func VerifyAction(c *cli.Context) error {
	env, err := common.NewEnv(c)
	if err != nil {
		return common.Fail("failed to load config: %v", err)
	}

	run := db.NewRun(db.KindVerify, env.Now())
	out, err := Verify(env, run.ID)
	if err != nil {
		env.Logger.Error("Verification failed", "error", err)
		env.RecordRun(run, []db.Finding{{Kind: db.FindingError, Ref: err.Error()}})
		return common.Fail("verification failed: %v", err)
	}

	Print(os.Stdout, out, env.Config)
	env.RecordRun(run, out.Record(&run))

	if !out.Readiness.Ready {
		return common.Fail("migration is not ready for deployment")
	}
	return nil
}

// Print writes the human-readable verification summary.
func Print(w io.Writer, out *Outcome, cfg models.Config) {
	res := out.Result

	fmt.Fprintln(w, "--- Migration Verification ---")
	fmt.Fprintf(w, "Export: %s\n\n", out.Export.Path)
	fmt.Fprintf(w, "Original: %d posts, %d pages (%d total)\n", res.Original.Posts, res.Original.Pages, res.Original.Total)
	fmt.Fprintf(w, "Migrated: %d posts, %d pages (%d total)\n", res.Migrated.Posts, res.Migrated.Pages, res.Migrated.Total)
	fmt.Fprintf(w, "Match rate: %.1f%%\n\n", out.MatchRate)

	if len(res.Missing) > 0 {
		fmt.Fprintf(w, "Missing content (%d):\n", len(res.Missing))
		for _, m := range res.Missing {
			fmt.Fprintf(w, "  - [%s] %s (%s)\n", m.Type, m.Title, m.Slug)
		}
		fmt.Fprintln(w)
	}

	if len(res.Extra) > 0 {
		fmt.Fprintf(w, "Extra content (%d):\n", len(res.Extra))
		if len(res.Extra) < extraListLimit {
			for _, e := range res.Extra {
				fmt.Fprintf(w, "  - [%s] %s (%s)\n", e.Type, e.Title, e.File)
			}
		} else {
			fmt.Fprintf(w, "  see %s for the full list\n", cfg.ReportPath)
		}
		fmt.Fprintln(w)
	}

	if len(res.Errors) > 0 {
		fmt.Fprintf(w, "Errors (%d):\n", len(res.Errors))
		for _, e := range res.Errors {
			fmt.Fprintf(w, "  - %s\n", e)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Readiness:")
	fmt.Fprintf(w, "  [%s] content counts match\n", common.Mark(out.Readiness.CountsMatch))
	fmt.Fprintf(w, "  [%s] no missing content\n", common.Mark(out.Readiness.NoMissing))
	fmt.Fprintf(w, "  [%s] no file errors\n", common.Mark(out.Readiness.NoErrors))
	fmt.Fprintf(w, "\nReport: %s\n", cfg.ReportPath)
	fmt.Fprintf(w, "URL list: %s (%d urls)\n", cfg.URLListPath, len(out.URLs))
	fmt.Fprintf(w, "Ready for deployment: %s\n", common.YesNo(out.Readiness.Ready))
}
