// Package common holds the wiring shared by every command.
package common

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wp-migrate/models"
	"github.com/dtnitsch/wp-migrate/pkg/db"
	"github.com/dtnitsch/wp-migrate/pkg/storage"
)

// Env is what an action needs to run a pass.
type Env struct {
	Config models.Config
	Store  *storage.Storage
	Logger *slog.Logger
	Now    func() time.Time
}

// NewEnv loads configuration from the global flags. An explicit --config
// must exist; the default file is optional.
func NewEnv(c *cli.Context) (*Env, error) {
	path := c.String("config")
	required := c.IsSet("config")
	if path == "" {
		path = models.DefaultConfigFile
	}

	cfg, err := models.LoadConfig(path, required)
	if err != nil {
		return nil, err
	}

	return &Env{
		Config: cfg,
		Store:  storage.NewOS(),
		Logger: NewLogger(c.Bool("quiet")),
		Now:    time.Now,
	}, nil
}

// RecordRun writes a run to the ledger. Ledger problems are logged and
// never change the outcome of a pass.
func (e *Env) RecordRun(run db.Run, findings []db.Finding) {
	database, err := db.Open(e.Config.LedgerPath)
	if err != nil {
		e.Logger.Warn("Failed to open run ledger", "path", e.Config.LedgerPath, "error", err)
		return
	}
	defer database.Close()

	if err := database.RecordRun(run, findings); err != nil {
		e.Logger.Warn("Failed to record run", "run_id", run.ID, "error", err)
		return
	}
	e.Logger.Info("Recorded run", "run_id", run.ID, "kind", run.Kind, "outcome", run.Outcome)
}

// Fail is the exit error for a failed or not-ready pass.
func Fail(format string, args ...any) error {
	return cli.Exit(fmt.Sprintf(format, args...), 1)
}
