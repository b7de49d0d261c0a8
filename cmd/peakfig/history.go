package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/peakfig/peakfig/internal/cli"
	"github.com/peakfig/peakfig/internal/common"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Review saved scan runs",
	}

	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyShowCmd())

	return cmd
}

func historyListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved scan runs, newest first",
		RunE:  runHistoryList,
	}

	cmd.Flags().Int("limit", 20, "maximum number of runs to show (0 for all)")

	return cmd
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			common.LogError(closeErr, "failed to close storage", nil)
		}
	}()

	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println(cli.FormatInfo("No saved runs. Use 'peakfig scan --save' to create one.")) //nolint:forbidigo // User-facing output
		return nil
	}

	fmt.Println(cli.FormatTitle("Scan history")) //nolint:forbidigo // User-facing output
	fmt.Println()                                //nolint:forbidigo // User-facing output

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			common.LogError(flushErr, "failed to flush table writer", nil)
		}
	}()

	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		cli.HeaderStyle.Render("ID"),
		cli.HeaderStyle.Render("Document"),
		cli.HeaderStyle.Render("Pages"),
		cli.HeaderStyle.Render("Hits"),
		cli.HeaderStyle.Render("When")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("─", 4),
		strings.Repeat("─", 30),
		strings.Repeat("─", 10),
		strings.Repeat("─", 6),
		strings.Repeat("─", 16)); err != nil {
		return fmt.Errorf("failed to write separator: %w", err)
	}

	for _, run := range runs {
		pages := "all"
		if run.EndPage > 0 {
			pages = fmt.Sprintf("%d-%d", run.StartPage, run.EndPage)
		} else if run.StartPage > 1 {
			pages = fmt.Sprintf("%d-end", run.StartPage)
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
			run.ID,
			run.PDFPath,
			pages,
			run.HitCount,
			run.CreatedAt.Local().Format("2006-01-02 15:04")); err != nil {
			return fmt.Errorf("failed to write run row: %w", err)
		}
	}

	return nil
}

func historyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Re-print the ranked results of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryShow,
	}
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	runID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q: %w", args[0], err)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			common.LogError(closeErr, "failed to close storage", nil)
		}
	}()

	run, err := store.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	hits, err := store.GetRunHits(ctx, runID)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("Run #%d - %s", run.ID, run.PDFPath))) //nolint:forbidigo // User-facing output
	fmt.Println(cli.SubtleStyle.Render(run.CreatedAt.Local().Format("2006-01-02 15:04"))) //nolint:forbidigo // User-facing output
	for i := range hits {
		fmt.Println(cli.FormatHitLine(i+1, &hits[i])) //nolint:forbidigo // User-facing output
	}

	return nil
}
