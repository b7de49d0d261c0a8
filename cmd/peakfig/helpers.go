package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/peakfig/peakfig/internal/common"
	"github.com/peakfig/peakfig/internal/config"
	"github.com/peakfig/peakfig/internal/extract"
	"github.com/peakfig/peakfig/internal/storage"
)

// initStorage initializes the run-history storage with proper path expansion.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	} else {
		dbPath = config.ExpandPath(dbPath)
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, common.NewUserError("failed to open scan history database", err)
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, common.NewUserError("failed to migrate scan history database", err)
	}

	return store, nil
}

// addExtractionFlags registers the flags shared by every command that runs
// the extraction pipeline.
func addExtractionFlags(cmd *cobra.Command) {
	cmd.Flags().Int("start-page", 1, "first page to scan (1-based)")
	cmd.Flags().Int("end-page", 0, "last page to scan (0 for all pages)")
	cmd.Flags().Bool("no-scaling", false, "disable scale phrase detection (e.g., 'Dollars in Millions')")
	cmd.Flags().Float64("min-scaled", 0, "minimum scaled value to include in results")
	cmd.Flags().Float64("max-scaled", 0, "maximum scaled value to include in results")
	cmd.Flags().Float64("x-tolerance", 1.0, "horizontal tolerance for merging glyph runs")
	cmd.Flags().Float64("y-tolerance", 1.0, "vertical tolerance for merging glyph runs")
}

// optionsFromFlags builds extraction options from a command's flags.
// Threshold flags only take effect when the user actually set them.
func optionsFromFlags(cmd *cobra.Command) (extract.Options, error) {
	opts := extract.DefaultOptions()

	var err error
	if opts.StartPage, err = cmd.Flags().GetInt("start-page"); err != nil {
		return opts, err
	}
	if opts.EndPage, err = cmd.Flags().GetInt("end-page"); err != nil {
		return opts, err
	}

	noScaling, err := cmd.Flags().GetBool("no-scaling")
	if err != nil {
		return opts, err
	}
	opts.ApplyScaling = !noScaling

	if opts.XTolerance, err = cmd.Flags().GetFloat64("x-tolerance"); err != nil {
		return opts, err
	}
	if opts.YTolerance, err = cmd.Flags().GetFloat64("y-tolerance"); err != nil {
		return opts, err
	}

	if cmd.Flags().Changed("min-scaled") {
		v, getErr := cmd.Flags().GetFloat64("min-scaled")
		if getErr != nil {
			return opts, getErr
		}
		opts.MinScaled = &v
	}
	if cmd.Flags().Changed("max-scaled") {
		v, getErr := cmd.Flags().GetFloat64("max-scaled")
		if getErr != nil {
			return opts, getErr
		}
		opts.MaxScaled = &v
	}

	return opts, nil
}
