package cli

import (
	"fmt"
	"strings"

	"github.com/peakfig/peakfig/internal/model"
	"github.com/peakfig/peakfig/internal/parse"
)

// formatValue renders a scaled value with a currency marker for monetary
// hits only; headcounts and unknowns print bare.
func formatValue(hit *model.NumberHit) string {
	s := parse.Format(hit.ScaledValue)
	if hit.Units == model.UnitsMoney {
		return "$" + s
	}
	return s
}

// FormatLargest renders the single top hit in the multi-line human format.
func FormatLargest(hit *model.NumberHit) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n",
		InfoStyle.Render("Largest number:"),
		ValueStyle.Render(formatValue(hit)))
	fmt.Fprintf(&b, "  Raw value: %v (%q)\n", hit.RawValue, hit.RawText)
	fmt.Fprintf(&b, "  Page: %d\n", hit.PageNum)
	if hit.ScaleName != model.ScaleNone {
		fmt.Fprintf(&b, "  Scale: %s (%s)\n", hit.ScaleName, hit.ScalePhrase)
	} else {
		b.WriteString("  Scale: none\n")
	}
	fmt.Fprintf(&b, "  Units: %s", hit.Units)

	return b.String()
}

// FormatHitLine renders one ranked hit as a single list line.
func FormatHitLine(rank int, hit *model.NumberHit) string {
	scaleInfo := ""
	if hit.ScaleName != model.ScaleNone {
		scaleInfo = SubtleStyle.Render(fmt.Sprintf(" (scale: %s)", hit.ScaleName))
	}
	return fmt.Sprintf("  #%d: %s - %q on page %d%s",
		rank,
		ValueStyle.Render(formatValue(hit)),
		hit.RawText,
		hit.PageNum,
		scaleInfo)
}
