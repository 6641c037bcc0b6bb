package check

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wp-migrate/internal/common"
	"github.com/dtnitsch/wp-migrate/internal/taxonomy"
	"github.com/dtnitsch/wp-migrate/internal/verify"
	"github.com/dtnitsch/wp-migrate/pkg/db"
	"github.com/dtnitsch/wp-migrate/pkg/manifest"
	"github.com/dtnitsch/wp-migrate/pkg/storage"
)

// TaxonomyReady reports whether every taxonomy data file is present.
func TaxonomyReady(store *storage.Storage, dataDir string) bool {
	for _, p := range manifest.TaxonomyPaths(dataDir) {
		if !store.HasFile(p) {
			return false
		}
	}
	return true
}

// CheckAction runs extraction, then verification, then confirms the
// taxonomy files exist. A failed extraction leaves taxonomy not ready but
// verification still runs.
func CheckAction(c *cli.Context) error {
	env, err := common.NewEnv(c)
	if err != nil {
		return common.Fail("failed to load config: %v", err)
	}

	run := db.NewRun(db.KindCheck, env.Now())
	var findings []db.Finding

	extracted, err := taxonomy.Extract(env)
	if err != nil {
		env.Logger.Error("Taxonomy extraction failed", "error", err)
		findings = append(findings, db.Finding{Kind: db.FindingError, Ref: err.Error()})
	} else {
		taxonomy.Print(os.Stdout, extracted)
		extracted.Record(&run)
		fmt.Println()
	}

	verified, err := verify.Verify(env, run.ID)
	if err != nil {
		env.Logger.Error("Verification failed", "error", err)
		findings = append(findings, db.Finding{Kind: db.FindingError, Ref: err.Error()})
		env.RecordRun(run, findings)
		return common.Fail("verification failed: %v", err)
	}
	verify.Print(os.Stdout, verified, env.Config)
	findings = append(findings, verified.Record(&run)...)

	taxonomyReady := extracted != nil && TaxonomyReady(env.Store, env.Config.DataDir)
	ready := verified.Readiness.Ready && taxonomyReady
	run.Ready = ready
	run.Outcome = db.OutcomeNotReady
	if ready {
		run.Outcome = db.OutcomeReady
	}
	env.RecordRun(run, findings)

	PrintSummary(os.Stdout, verified.Readiness.Ready, taxonomyReady)
	if !ready {
		return common.Fail("migration is not ready for deployment")
	}
	return nil
}

// PrintSummary writes the combined verdict.
func PrintSummary(w io.Writer, verifyReady, taxonomyReady bool) {
	fmt.Fprintln(w, "\n--- Enhanced Verification ---")
	fmt.Fprintf(w, "  [%s] content verification\n", common.Mark(verifyReady))
	fmt.Fprintf(w, "  [%s] taxonomy data files\n", common.Mark(taxonomyReady))
	fmt.Fprintf(w, "Overall ready: %s\n", common.YesNo(verifyReady && taxonomyReady))
}
