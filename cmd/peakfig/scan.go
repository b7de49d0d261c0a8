package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/peakfig/peakfig/internal/cli"
	"github.com/peakfig/peakfig/internal/common"
	"github.com/peakfig/peakfig/internal/extract"
	"github.com/peakfig/peakfig/internal/model"
	"github.com/peakfig/peakfig/internal/report"
	"github.com/peakfig/peakfig/internal/scale"
	"github.com/peakfig/peakfig/internal/storage"
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <pdf>",
		Short: "Rank every number found in a PDF by true magnitude",
		Long: `Scan a page range, resolve the unit scale that applies to each number
(table captions override page-level phrases), and print the results ranked
by scaled value. Percentages are excluded; headcount figures are never
scaled even when a monetary scale phrase covers the same table.`,
		Args: cobra.ExactArgs(1),
		RunE: runScan,
	}

	addExtractionFlags(cmd)
	cmd.Flags().Int("top", 10, "show top N results (0 for all)")
	cmd.Flags().Bool("json", false, "output results as JSON")
	cmd.Flags().Bool("save", false, "save this run to the history database")
	cmd.Flags().String("export", "", "also write the results to an XLSX workbook at this path")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	pdfPath := args[0]

	opts, err := optionsFromFlags(cmd)
	if err != nil {
		return err
	}
	if opts.TopN, err = cmd.Flags().GetInt("top"); err != nil {
		return err
	}
	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	save, err := cmd.Flags().GetBool("save")
	if err != nil {
		return err
	}
	exportPath, err := cmd.Flags().GetString("export")
	if err != nil {
		return err
	}

	provider, err := extract.OpenPDF(pdfPath)
	if err != nil {
		return common.NewUserError("failed to open document", err)
	}
	defer func() {
		if closeErr := provider.Close(); closeErr != nil {
			common.LogError(closeErr, "failed to close document", nil)
		}
	}()

	hits, err := scanPages(cmd, provider, opts, !jsonOut)
	if err != nil {
		return err
	}

	ranked := extract.Rank(hits, opts)
	if len(ranked) == 0 {
		fmt.Fprintln(os.Stderr, cli.FormatWarning("No numbers found in the PDF"))
		return nil
	}

	if save {
		if saveErr := saveRun(ctx, pdfPath, opts, ranked); saveErr != nil {
			return saveErr
		}
	}
	if exportPath != "" {
		if exportErr := report.WriteXLSX(exportPath, pdfPath, ranked); exportErr != nil {
			return fmt.Errorf("failed to export workbook: %w", exportErr)
		}
		fmt.Println(cli.FormatInfo("Exported " + exportPath)) //nolint:forbidigo // User-facing output
	}

	if jsonOut {
		return printJSON(ranked)
	}
	printRanked(ranked)
	return nil
}

// scanPages drives the extraction pipeline one page at a time so progress
// can be reported; pages are independent, so the result is identical to a
// single full-range pass.
func scanPages(cmd *cobra.Command, provider extract.Provider, opts extract.Options, showProgress bool) ([]model.NumberHit, error) {
	total := provider.PageCount()
	start := opts.StartPage
	if start < 1 {
		start = 1
	}
	end := opts.EndPage
	if end == 0 || end > total {
		end = total
	}
	if start > end {
		return nil, nil
	}

	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.NewOptions(end-start+1,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("[cyan][bold]Scanning pages...[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
		)
	}

	var hits []model.NumberHit
	for page := start; page <= end; page++ {
		pageOpts := opts
		pageOpts.StartPage = page
		pageOpts.EndPage = page

		pageHits, err := extract.Extract(cmd.Context(), provider, pageOpts)
		if err != nil {
			return nil, err
		}
		hits = append(hits, pageHits...)

		if bar != nil {
			_ = bar.Add(1)
		}
	}
	return hits, nil
}

func saveRun(ctx context.Context, pdfPath string, opts extract.Options, ranked []model.NumberHit) error {
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			common.LogError(closeErr, "failed to close storage", nil)
		}
	}()

	runID, err := store.SaveRun(ctx, storage.ScanRun{
		PDFPath:      pdfPath,
		StartPage:    opts.StartPage,
		EndPage:      opts.EndPage,
		ApplyScaling: opts.ApplyScaling,
		VocabVersion: scale.VocabVersion,
	}, ranked)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	fmt.Println(cli.FormatInfo(fmt.Sprintf("Saved as run #%d", runID))) //nolint:forbidigo // User-facing output
	return nil
}

func printRanked(ranked []model.NumberHit) {
	if len(ranked) == 1 {
		fmt.Println(cli.FormatLargest(&ranked[0])) //nolint:forbidigo // User-facing output
		return
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("Top %d numbers found", len(ranked)))) //nolint:forbidigo // User-facing output
	for i := range ranked {
		fmt.Println(cli.FormatHitLine(i+1, &ranked[i])) //nolint:forbidigo // User-facing output
	}
}

func printJSON(ranked []model.NumberHit) error {
	records := make([]model.Record, 0, len(ranked))
	for i := range ranked {
		records = append(records, ranked[i].ToRecord(i+1))
	}

	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	fmt.Println(string(out)) //nolint:forbidigo // User-facing output
	return nil
}
