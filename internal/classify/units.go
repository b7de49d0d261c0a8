// Package classify assigns unit types to parsed numbers so that monetary
// scaling is never applied to headcount figures.
//
// A scale phrase like "Dollars in Millions" is page- or table-wide, but it
// semantically applies only to monetary columns. A personnel count sitting
// in the same table must keep its printed magnitude, so classification runs
// before scaling and headcount vocabulary takes priority over money hints.
package classify

import (
	"regexp"
	"strings"

	"github.com/peakfig/peakfig/internal/model"
)

// headcountRe matches row/column labels that denote counts of people or
// other non-monetary quantities.
var headcountRe = regexp.MustCompile(`(?i)\b(?:end\s*strength|work[-\s]*years?|workyears?|fte|headcount|person(?:n)?el|employees?|items\s*managed|quantity|issues|receipts|requisitions|contracts|units?)\b`)

// moneyRe matches currency markers and monetary-context vocabulary.
var moneyRe = regexp.MustCompile(`(?i)\$|\b(?:usd|dollars?|revenue|costs?|budget)\b|\(\s*\$?\s*(?:in\s+)?[KMBT]\s*\)`)

// Units classifies a number from the label text nearest to it, normally the
// words to its left on the same visual line. Headcount vocabulary wins over
// money hints; with no usable context the result is UnitsUnknown.
func Units(label string) model.Units {
	if strings.TrimSpace(label) == "" {
		return model.UnitsUnknown
	}
	if headcountRe.MatchString(label) {
		return model.UnitsPeople
	}
	if moneyRe.MatchString(label) {
		return model.UnitsMoney
	}
	return model.UnitsUnknown
}

// LeftContext joins the text of tokens on the same visual line that sit
// fully to the left of target, preserving reading order. A two-point gap
// keeps the target's own leading glyphs out of its context.
func LeftContext(lineTokens []model.Token, target model.Token) string {
	parts := make([]string, 0, len(lineTokens))
	for _, t := range lineTokens {
		if t.BBox.X1 <= target.BBox.X0-2.0 {
			parts = append(parts, t.Text)
		}
	}
	return strings.Join(parts, " ")
}
