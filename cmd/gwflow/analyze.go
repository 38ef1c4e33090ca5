package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hydrostat/gwflow/internal/analysis"
	"github.com/hydrostat/gwflow/internal/config"
	"github.com/hydrostat/gwflow/internal/database"
	"github.com/hydrostat/gwflow/internal/log"
	"github.com/hydrostat/gwflow/internal/model"
	"github.com/hydrostat/gwflow/internal/report"
	"github.com/hydrostat/gwflow/internal/spatial"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <venue-name>",
		Short: "Analyze groundwater gradients across a venue",
		Long: `Analyze fits the local conic potential model at every grid node inside the
named venue, using the well observations previously loaded with the import
command, and reports gradient and flow-direction statistics per node.

Examples:
  # Analyze a venue with default parameters
  gwflow analyze north-basin

  # Narrow the fit to specific aquifers and a date range
  gwflow analyze north-basin -a UFA,LFA --date-from 20150101 --date-to 20241231

  # Ordinary least squares instead of the robust fit, finer grid
  gwflow analyze north-basin --method ols --spacing 500

  # Markdown report to a file
  gwflow analyze north-basin --markdown -o reports/north-basin.md

Configuration file (.gwflow) example:
  defaults:
    radius: 2000
    method: robust
  venues:
    north-basin:
      kind: polygon
      vertices: [[0, 0], [4000, 0], [4000, 4000], [0, 4000]]
    plant-site:
      kind: circle
      center: [1200, 800]
      radius: 1500`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyzeCmd,
	}

	// Fitting parameter flags
	cmd.Flags().Float64P("radius", "r", config.DefaultRadius,
		"Neighborhood search radius in meters")
	cmd.Flags().Float64P("spacing", "s", config.DefaultSpacing,
		"Grid spacing in meters on both axes")
	cmd.Flags().IntP("min-neighbors", "n", config.DefaultMinNeighbors,
		"Minimum neighbors required to fit a target")
	cmd.Flags().StringP("method", "m", string(model.MethodRobust),
		"Fitting method: ols or robust")

	// Observation filter flags
	cmd.Flags().StringP("aquifers", "a", "",
		"Comma-separated aquifer codes to include (default: all)")
	cmd.Flags().Int("date-from", 0,
		"Earliest observation date, inclusive (YYYYMMDD)")
	cmd.Flags().Int("date-to", 0,
		"Latest observation date, inclusive (YYYYMMDD)")

	// Execution flags
	cmd.Flags().IntP("workers", "w", 0,
		"Concurrent per-target workers (default: one per CPU)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .gwflow in current or home directory)")
	cmd.Flags().String("db-dir", "",
		"Well database directory (default: XDG data directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().Bool("markdown", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, venueFile, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewAnalysisLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runAnalyze(ctx, cfg, venueFile, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags and loads the venue
// file. The venue file is required: without it no venue can be resolved.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, *config.File, error) {
	cfg := config.NewConfig()
	cfg.VenueName = args[0]
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	if cfg.Parameters.Radius, err = cmd.Flags().GetFloat64("radius"); err != nil {
		return nil, nil, err
	}
	if cfg.Parameters.Spacing, err = cmd.Flags().GetFloat64("spacing"); err != nil {
		return nil, nil, err
	}
	if cfg.Parameters.MinNeighbors, err = cmd.Flags().GetInt("min-neighbors"); err != nil {
		return nil, nil, err
	}

	methodName, err := cmd.Flags().GetString("method")
	if err != nil {
		return nil, nil, err
	}
	if cfg.Parameters.Method, err = model.ParseMethod(methodName); err != nil {
		return nil, nil, err
	}

	aquifers, err := cmd.Flags().GetString("aquifers")
	if err != nil {
		return nil, nil, err
	}
	if aquifers != "" {
		cfg.Parameters.Aquifers = strings.Split(aquifers, ",")
		for i := range cfg.Parameters.Aquifers {
			cfg.Parameters.Aquifers[i] = strings.TrimSpace(cfg.Parameters.Aquifers[i])
		}
	}
	if cfg.Parameters.DateFrom, err = cmd.Flags().GetInt("date-from"); err != nil {
		return nil, nil, err
	}
	if cfg.Parameters.DateTo, err = cmd.Flags().GetInt("date-to"); err != nil {
		return nil, nil, err
	}

	if cfg.Workers, err = cmd.Flags().GetInt("workers"); err != nil {
		return nil, nil, err
	}
	if cfg.ConfigFilePath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, nil, err
	}
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, nil, err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, nil, err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return nil, nil, err
	}

	// The venue file is mandatory for analyze: it defines the venues.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath == "" {
		if cfg.ConfigFilePath != "" {
			return nil, nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
		}
		return nil, nil, fmt.Errorf("no %s configuration file found in current or home directory", config.DefaultConfigFile)
	}
	venueFile, err := config.LoadConfigFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}
	venueFile.ApplyDefaults(cfg)

	return cfg, venueFile, nil
}

// runAnalyze loads the observations, runs the analysis, and writes the report.
func runAnalyze(ctx context.Context, cfg *config.Config, venueFile *config.File, logger *slog.Logger) error {
	venue, err := venueFile.Venue(cfg.VenueName)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DBDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("failed to open well database: %w", err)
	}
	defer func() { _ = db.Close() }()

	observations, err := db.Observations(ctx)
	if err != nil {
		return fmt.Errorf("failed to load observations: %w", err)
	}
	if len(observations) == 0 {
		return fmt.Errorf("well database %s is empty (run the import command first)", db.Path())
	}
	logger.Info("observations loaded", "count", len(observations))

	index := spatial.Build(observations)
	analyzer := analysis.New(index,
		analysis.WithLogger(logger),
		analysis.WithWorkers(cfg.Workers),
	)

	run, err := analyzer.Run(ctx, venue, cfg.Parameters)
	if err != nil {
		return err
	}
	return writeReport(cfg, run)
}

// writeReport renders the run in the configured format and destination.
func writeReport(cfg *config.Config, run *model.AnalysisRun) error {
	var output io.Writer
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
	_, err := writer.Write(run)
	return err
}
