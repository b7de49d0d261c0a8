package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/peakfig/peakfig/internal/cli"
	"github.com/peakfig/peakfig/internal/common"
	"github.com/peakfig/peakfig/internal/extract"
	"github.com/peakfig/peakfig/internal/report"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <pdf>",
		Short: "Write the full ranked results to an XLSX workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}

	addExtractionFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "path of the workbook to write (required)")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	opts, err := optionsFromFlags(cmd)
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	provider, err := extract.OpenPDF(args[0])
	if err != nil {
		return common.NewUserError("failed to open document", err)
	}
	defer func() {
		if closeErr := provider.Close(); closeErr != nil {
			common.LogError(closeErr, "failed to close document", nil)
		}
	}()

	hits, err := extract.Extract(cmd.Context(), provider, opts)
	if err != nil {
		return err
	}

	ranked := extract.Rank(hits, opts)
	if len(ranked) == 0 {
		fmt.Fprintln(os.Stderr, cli.FormatWarning("No numbers found in the PDF"))
		return nil
	}

	if err := report.WriteXLSX(output, args[0], ranked); err != nil {
		return fmt.Errorf("failed to export workbook: %w", err)
	}

	fmt.Println(cli.FormatInfo(fmt.Sprintf("Exported %d hits to %s", len(ranked), output))) //nolint:forbidigo // User-facing output
	return nil
}
