package extract

import (
	"math"
	"sort"
	"strings"

	"github.com/peakfig/peakfig/internal/model"
)

// defaultLineBucket is the vertical quantization used to group tokens into
// visual lines. Coarser than the glyph-merge tolerance on purpose: it only
// needs to agree on "same line", not on exact baselines.
const defaultLineBucket = 10.0

func lineKey(top float64) float64 {
	return math.Round(top/defaultLineBucket) * defaultLineBucket
}

// groupLines buckets tokens into visual lines keyed by quantized top
// coordinate. Token order within a line follows the input order.
func groupLines(tokens []model.Token) map[float64][]model.Token {
	lines := make(map[float64][]model.Token)
	for _, t := range tokens {
		k := lineKey(t.BBox.Top)
		lines[k] = append(lines[k], t)
	}
	return lines
}

// sortReadingOrder orders tokens top-down, then left-to-right within a
// line.
func sortReadingOrder(tokens []model.Token) {
	sort.SliceStable(tokens, func(i, j int) bool {
		ki, kj := lineKey(tokens[i].BBox.Top), lineKey(tokens[j].BBox.Top)
		if ki != kj {
			return ki < kj
		}
		return tokens[i].BBox.X0 < tokens[j].BBox.X0
	})
}

// joinText reassembles tokens, which must already be in reading order, into
// text with one visual line per output line.
func joinText(tokens []model.Token) string {
	var b strings.Builder
	var prevKey float64
	for i, t := range tokens {
		if i > 0 {
			if k := lineKey(t.BBox.Top); k != prevKey {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		prevKey = lineKey(t.BBox.Top)
		b.WriteString(t.Text)
	}
	return b.String()
}
