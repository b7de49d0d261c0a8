// Package scale detects unit-scale phrases such as "Dollars in Millions"
// and maps them to multipliers.
//
// The phrase vocabulary is a static, versioned pattern table so detection
// can be unit-tested without any document. Matching is case-insensitive and
// tolerant of the punctuation variants that appear in real report headers:
// parentheses, leading dollar signs, and K/M/B/T abbreviations.
package scale

import (
	"regexp"
	"strings"

	"github.com/peakfig/peakfig/internal/model"
)

// VocabVersion identifies the phrase vocabulary. Bump when patterns change
// so stored results can be traced to the vocabulary that produced them.
const VocabVersion = 2

const nameAlts = `thousands|millions|billions|trillions`

// patterns, in priority order. Within a single line of text the first
// pattern that matches wins; across lines the earlier line wins.
var patterns = []*regexp.Regexp{
	// ($ in millions), (in millions)
	regexp.MustCompile(`(?i)\(\s*\$?\s*in\s*(` + nameAlts + `)\s*\)`),
	// amounts/figures/values in millions
	regexp.MustCompile(`(?i)\b(?:amounts?|figures?|values?)\s+in\s+(` + nameAlts + `)\b`),
	// in millions of dollars / reported in millions of USD
	regexp.MustCompile(`(?i)\b(?:in|reported\s+in)\s+(` + nameAlts + `)\s+of\s+(?:dollars|usd)\b`),
	// (Dollars in Millions)
	regexp.MustCompile(`(?i)\(\s*(?:dollars|usd)\s+in\s+(` + nameAlts + `)\s*\)`),
	// Dollars in Millions
	regexp.MustCompile(`(?i)\b(?:dollars|usd)\s+in\s+(` + nameAlts + `)\b`),
	// ($ millions), (millions)
	regexp.MustCompile(`(?i)\(\s*\$?\s*(` + nameAlts + `)\s*\)`),
	// bare "in millions"
	regexp.MustCompile(`(?i)\bin\s+(` + nameAlts + `)\b`),
	// ($ in M), ($M), (K)
	regexp.MustCompile(`(?i)\(\s*\$?\s*(?:in\s+)?(K|M|B|T)\s*\)`),
	// $K / $M column-header shorthand
	regexp.MustCompile(`(?i)\$\s*(K|M|B|T)\b`),
}

var abbrNames = map[string]model.Scale{
	"K": model.ScaleThousands,
	"M": model.ScaleMillions,
	"B": model.ScaleBillions,
	"T": model.ScaleTrillions,
}

// Match is one detected scale phrase.
type Match struct {
	Name   model.Scale
	Phrase string // the literal matched text
}

// Multiplier returns the factor the matched phrase asserts.
func (m Match) Multiplier() float64 {
	return m.Name.Multiplier()
}

// Detect scans text for a scale phrase and returns the strongest match.
// Text is scanned line by line in the order given, so when conflicting
// phrases appear the one on the earliest line wins; callers order lines by
// proximity (reading order for page scope, top-down from the caption for
// table scope) to get the deterministic closest-wins tie-break.
func Detect(text string) (Match, bool) {
	if text == "" {
		return Match{}, false
	}
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		for _, pat := range patterns {
			m := pat.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			return Match{Name: canonical(m[1]), Phrase: m[0]}, true
		}
	}
	return Match{}, false
}

func canonical(group string) model.Scale {
	if s, ok := abbrNames[strings.ToUpper(group)]; ok {
		return s
	}
	return model.Scale(strings.ToLower(group))
}
