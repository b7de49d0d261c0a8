// Package parse converts raw text tokens into typed numeric values.
//
// The accepted grammar covers Western financial formatting: an optional
// leading $ or parenthesis, digit groups separated by commas (or the NBSP
// and thin-space variants that show up in real reports), an optional
// fraction, an optional trailing percent sign or closing parenthesis, and trailing
// footnote markers. Parenthesized values are negative. Thousands-separator
// placement is deliberately not validated: real documents are not always
// perfectly formatted, so "1,23.4" parses as 123.4.
package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// groupSeps are the separators tolerated between digit groups: comma,
// non-breaking space, thin space.
const groupSeps = `,\x{00A0}\x{2009}`

// footnoteMarks are trailing markers stripped before parsing: asterisk,
// daggers, and superscript digits.
const footnoteMarks = `\*\x{2020}\x{2021}\x{00B9}\x{00B2}\x{00B3}\x{2070}-\x{2079}`

var numberRe = regexp.MustCompile(
	`^\s*([$(]?)\s*` +
		`((?:\d+(?:[` + groupSeps + `]\d+)*(?:\.\d+)?)|\.\d+)` +
		`\s*([%)]?)` +
		`[` + footnoteMarks + `]*\s*$`,
)

var sepReplacer = strings.NewReplacer(",", "", " ", "", " ", "")

// Result is a successfully parsed token.
type Result struct {
	Value   float64
	Percent bool
}

// Number parses a token into a signed decimal value. The second return
// value is false when the token is not decimal-like; callers treat that as
// "skip this token", never as an error. Percent tokens flow through with
// the Percent flag set so filtering can happen downstream.
func Number(token string) (Result, bool) {
	m := numberRe.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil {
		return Result{}, false
	}
	prefix, num, suffix := m[1], m[2], m[3]

	val, err := strconv.ParseFloat(sepReplacer.Replace(num), 64)
	if err != nil {
		return Result{}, false
	}

	if prefix == "(" && suffix == ")" {
		val = -val
	}

	return Result{Value: val, Percent: suffix == "%"}, true
}

// Format renders a value in canonical comma-grouped form, the inverse of
// Number for well-formed input: Format(1234.5) == "1,234.5".
func Format(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + frac
}
