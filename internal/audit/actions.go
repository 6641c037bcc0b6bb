package audit

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wp-migrate/internal/common"
	auditpkg "github.com/dtnitsch/wp-migrate/pkg/audit"
	"github.com/dtnitsch/wp-migrate/pkg/db"
)

func AuditAction(c *cli.Context) error {
	env, err := common.NewEnv(c)
	if err != nil {
		return common.Fail("failed to load config: %v", err)
	}
	cfg := env.Config

	run := db.NewRun(db.KindAudit, env.Now())
	report, err := auditpkg.Run(env.Store, auditpkg.Options{
		BlogDir:       cfg.BlogDir,
		PagesDir:      cfg.PagesDir,
		Pattern:       cfg.ContentPattern,
		BlogURLPrefix: cfg.BlogURLPrefix,
		PageURLPrefix: cfg.PageURLPrefix,
	})
	if err != nil {
		env.Logger.Error("Audit failed", "error", err)
		env.RecordRun(run, []db.Finding{{Kind: db.FindingError, Ref: err.Error()}})
		return common.Fail("audit failed: %v", err)
	}

	auditpkg.Print(os.Stdout, report)

	run.MigratedPosts = len(report.Posts)
	run.MigratedPages = len(report.Pages)
	run.Errors = len(report.Errors)
	run.Ready = report.Ready()
	run.Outcome = db.OutcomeNotReady
	if run.Ready {
		run.Outcome = db.OutcomeReady
	}
	findings := make([]db.Finding, 0, len(report.Errors))
	for _, e := range report.Errors {
		findings = append(findings, db.Finding{Kind: db.FindingError, Ref: e})
	}
	env.RecordRun(run, findings)

	if !run.Ready {
		return common.Fail("migration audit found blocking issues")
	}
	return nil
}
