// Package report renders ranked hits into analyst-facing artifacts.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/peakfig/peakfig/internal/model"
)

// WriteXLSX writes the ranked hits to an XLSX workbook at path. One row per
// hit, in rank order, with the source document name recorded on every row
// so exported sheets from several reports can be combined.
func WriteXLSX(path, source string, hits []model.NumberHit) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Hits"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet: %w", err)
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	headers := []string{
		"Rank",
		"Scaled Value",
		"Raw Value",
		"Raw Text",
		"Page",
		"Units",
		"Scale",
		"Scale Phrase",
		"Source",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, h := range hits {
		row := i + 2
		write := func(col int, v any) error {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			return f.SetCellValue(sheet, cell, v)
		}

		scaleName := string(h.ScaleName)
		if scaleName == "" {
			scaleName = "none"
		}

		values := []any{
			i + 1,
			h.ScaledValue,
			h.RawValue,
			h.RawText,
			h.PageNum,
			string(h.Units),
			scaleName,
			h.ScalePhrase,
			source,
		}
		for col, v := range values {
			if err := write(col+1, v); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
