package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wp-migrate/internal/audit"
	"github.com/dtnitsch/wp-migrate/internal/check"
	"github.com/dtnitsch/wp-migrate/internal/db"
	"github.com/dtnitsch/wp-migrate/internal/related"
	"github.com/dtnitsch/wp-migrate/internal/taxonomy"
	"github.com/dtnitsch/wp-migrate/internal/verify"
	"github.com/dtnitsch/wp-migrate/models"
	"github.com/dtnitsch/wp-migrate/pkg/help"
)

func main() {
	app := &cli.App{
		Name:  "wp-migrate",
		Usage: "Extract taxonomies from a WordPress export and verify a static site migration",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   fmt.Sprintf("YAML config file (default %s, if present)", models.DefaultConfigFile),
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only log errors",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "taxonomy",
				Usage:  "Build category, tag and post taxonomy files and annotate post front matter",
				Action: taxonomy.TaxonomyAction,
			},
			{
				Name:   "verify",
				Usage:  "Compare migrated content against the export and write the verification report",
				Action: verify.VerifyAction,
			},
			{
				Name:   "check",
				Usage:  "Run taxonomy and verify, then confirm the taxonomy files exist",
				Action: check.CheckAction,
			},
			{
				Name:   "audit",
				Usage:  "Inventory migrated content and print the pre-deployment checklist",
				Action: audit.AuditAction,
			},
			{
				Name:   "related",
				Usage:  "Generate related posts from the post taxonomy mapping",
				Action: related.RelatedAction,
			},
			{
				Name:  "runs",
				Usage: "List recorded runs",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Value: 20,
						Usage: "Number of runs to show",
					},
				},
				Action: db.RunsAction,
				Subcommands: []*cli.Command{
					{
						Name:      "show",
						Usage:     "Show a run and its findings (latest if no id)",
						ArgsUsage: "[id or id prefix]",
						Action:    db.RunAction,
					},
				},
			},
			{
				Name:  "quickstart",
				Usage: "Print a quick start guide",
				Action: func(c *cli.Context) error {
					fmt.Print(help.QuickstartYAML)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
