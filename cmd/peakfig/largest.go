package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/peakfig/peakfig/internal/cli"
	"github.com/peakfig/peakfig/internal/common"
	"github.com/peakfig/peakfig/internal/extract"
)

func largestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "largest <pdf>",
		Short: "Print the single largest number in a PDF",
		Long: `Find the one number with the greatest scaled magnitude in the document.
Equivalent to 'scan --top 1' but with a compact, single-answer output.`,
		Args: cobra.ExactArgs(1),
		RunE: runLargest,
	}

	addExtractionFlags(cmd)
	cmd.Flags().Bool("json", false, "output the result as JSON")

	return cmd
}

func runLargest(cmd *cobra.Command, args []string) error {
	opts, err := optionsFromFlags(cmd)
	if err != nil {
		return err
	}
	jsonOut, err := cmd.Flags().GetBool("json")
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

	hit, err := extract.FindLargest(cmd.Context(), provider, opts)
	if err != nil {
		return err
	}
	if hit == nil {
		fmt.Fprintln(os.Stderr, cli.FormatWarning("No numbers found in the PDF"))
		return nil
	}

	if jsonOut {
		out, marshalErr := json.MarshalIndent(hit.ToRecord(1), "", "  ")
		if marshalErr != nil {
			return fmt.Errorf("failed to marshal result: %w", marshalErr)
		}
		fmt.Println(string(out)) //nolint:forbidigo // User-facing output
		return nil
	}

	fmt.Println(cli.FormatLargest(hit)) //nolint:forbidigo // User-facing output
	return nil
}
