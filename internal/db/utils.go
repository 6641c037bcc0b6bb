package db

import (
	"fmt"

	dbpkg "github.com/dtnitsch/wp-migrate/pkg/db"
	"github.com/urfave/cli/v2"
)

// RunOrLatest returns the run named by the first argument (full id or
// prefix), or the latest run if none is given.
func RunOrLatest(c *cli.Context, database *dbpkg.DB) (dbpkg.Run, error) {
	if c.NArg() == 0 {
		runs, err := database.ListRuns(1)
		if err != nil {
			return dbpkg.Run{}, fmt.Errorf("failed to get latest run: %w", err)
		}
		if len(runs) == 0 {
			return dbpkg.Run{}, fmt.Errorf("no runs found. Run 'wp-migrate verify' first")
		}
		return runs[0], nil
	}

	arg := c.Args().First()
	run, err := database.GetRun(arg)
	if err != nil {
		return dbpkg.Run{}, ledgerError(arg, err)
	}
	return run, nil
}
