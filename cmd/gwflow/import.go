package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hydrostat/gwflow/internal/config"
	"github.com/hydrostat/gwflow/internal/database"
	"github.com/hydrostat/gwflow/internal/log"
)

// NewImportCmd creates the import command.
func NewImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <csv-file>",
		Short: "Import well observations from a CSV export",
		Long: `Import loads well observations from a provider CSV export into the local
well database. The expected header is:

  well_id,x,y,head,aquifer,observed_on

with coordinates already projected to planar meters and observation dates
as integer YYYYMMDD. Imports are additive; rerunning with the same file
stores the rows again.`,
		Args: cobra.ExactArgs(1),
		RunE: runImportCmd,
	}

	cmd.Flags().String("db-dir", "",
		"Well database directory (default: XDG data directory)")

	return cmd
}

// runImportCmd executes the import command.
func runImportCmd(cmd *cobra.Command, args []string) error {
	logger := log.NewAnalysisLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.NewConfig().DBDir
	}

	f, err := os.Open(args[0]) //nolint:gosec // User-provided import path is intentional
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() { _ = f.Close() }()

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open well database: %w", err)
	}
	defer func() { _ = db.Close() }()

	n, err := db.ImportCSV(cmd.Context(), f)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	total, err := db.Count(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to count observations: %w", err)
	}

	logger.Info("import complete",
		"file", args[0],
		"imported", n,
		"total", total,
		"database", db.Path(),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d observations (%d total) into %s\n", n, total, db.Path())
	return nil
}
