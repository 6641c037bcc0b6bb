package taxonomy

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wp-migrate/internal/common"
	"github.com/dtnitsch/wp-migrate/models"
	"github.com/dtnitsch/wp-migrate/pkg/annotate"
	"github.com/dtnitsch/wp-migrate/pkg/db"
	"github.com/dtnitsch/wp-migrate/pkg/manifest"
	taxpkg "github.com/dtnitsch/wp-migrate/pkg/taxonomy"
	"github.com/dtnitsch/wp-migrate/pkg/wxr"
)

const (
	topCategories = 10
	topTags       = 15
)

// Outcome of an extraction pass.
type Outcome struct {
	Export    *common.Export
	Stats     wxr.Stats
	Indexes   taxpkg.Indexes
	Files     []string
	Annotated annotate.Result
	BlogFound bool
}

// Extract runs the extraction pass: parse the export, build the indexes,
// write the data files and annotate post front matter. A parse failure
// returns before anything is written.
func Extract(env *common.Env) (*Outcome, error) {
	cfg := env.Config

	export, err := env.LoadExport()
	if err != nil {
		return nil, err
	}

	out := &Outcome{
		Export:  export,
		Stats:   wxr.Summarize(export.Items),
		Indexes: taxpkg.Extract(export.Published),
	}
	if err := out.Indexes.Validate(); err != nil {
		return nil, fmt.Errorf("taxonomy indexes are inconsistent: %w", err)
	}

	out.Files, err = manifest.WriteTaxonomy(env.Store, cfg.DataDir, out.Indexes, env.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to write taxonomy files: %w", err)
	}

	out.BlogFound = env.Store.HasDir(cfg.BlogDir)
	if !out.BlogFound {
		env.Logger.Warn("Blog directory not found, skipping annotation", "path", cfg.BlogDir)
		return out, nil
	}
	out.Annotated = annotate.Apply(env.Logger, env.Store, cfg.BlogDir, cfg.ContentExt(), out.Indexes.Posts)
	return out, nil
}

// Record fills the ledger fields of a run from the outcome.
func (o *Outcome) Record(run *db.Run) {
	run.ExportPath = o.Export.Path
	run.ExportSHA256 = o.Export.SHA256
	run.Categories = len(o.Indexes.Categories)
	run.Tags = len(o.Indexes.Tags)
	run.Posts = len(o.Indexes.Posts)
}

func TaxonomyAction(c *cli.Context) error {
	env, err := common.NewEnv(c)
	if err != nil {
		return common.Fail("failed to load config: %v", err)
	}

	run := db.NewRun(db.KindTaxonomy, env.Now())
	out, err := Extract(env)
	if err != nil {
		env.Logger.Error("Taxonomy extraction failed", "error", err)
		env.RecordRun(run, []db.Finding{{Kind: db.FindingError, Ref: err.Error()}})
		return common.Fail("taxonomy extraction failed: %v", err)
	}

	Print(os.Stdout, out)

	out.Record(&run)
	run.Errors = out.Annotated.Failed
	run.Ready = true
	run.Outcome = db.OutcomeReady
	findings := make([]db.Finding, 0, len(out.Annotated.Failures))
	for _, f := range out.Annotated.Failures {
		findings = append(findings, db.Finding{Kind: db.FindingError, ContentType: models.TypePost, Ref: f})
	}
	env.RecordRun(run, findings)
	return nil
}

// Print writes the human-readable extraction summary.
func Print(w io.Writer, out *Outcome) {
	fmt.Fprintln(w, "--- WordPress Taxonomy Extraction ---")
	fmt.Fprintf(w, "Export: %s\n", out.Export.Path)
	fmt.Fprintf(w, "Items in export: %d (%d published)\n", out.Stats.Items, out.Stats.Published)
	fmt.Fprintf(w, "Categories: %d\n", len(out.Indexes.Categories))
	fmt.Fprintf(w, "Tags: %d\n", len(out.Indexes.Tags))
	fmt.Fprintf(w, "Posts with taxonomies: %d\n\n", len(out.Indexes.Posts))

	if len(out.Indexes.Categories) > 0 {
		taxpkg.PrintTop(w, "Top categories", out.Indexes.Categories, topCategories)
		fmt.Fprintln(w)
	}
	if len(out.Indexes.Tags) > 0 {
		taxpkg.PrintTop(w, "Top tags", out.Indexes.Tags, topTags)
		fmt.Fprintln(w)
	}

	for _, f := range out.Files {
		fmt.Fprintf(w, "Generated %s\n", f)
	}
	if !out.BlogFound {
		fmt.Fprintln(w, "Blog directory not found; no content files annotated")
		return
	}
	fmt.Fprintf(w, "Updated %d content files with taxonomy data (%d without a file, %d failed)\n",
		out.Annotated.Updated, out.Annotated.Skipped, out.Annotated.Failed)
}
