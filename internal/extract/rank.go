package extract

import (
	"sort"

	"github.com/peakfig/peakfig/internal/model"
)

// Rank filters and orders hits by scaled magnitude. Percentage hits are
// dropped, as are hits outside the [MinScaled, MaxScaled] bounds when
// supplied. The remaining hits are stable-sorted descending by scaled
// value, with ties broken by earlier page then earlier reading-order
// position, and truncated to TopN when it is positive. The input slice is
// not modified.
func Rank(hits []model.NumberHit, opts Options) []model.NumberHit {
	out := make([]model.NumberHit, 0, len(hits))
	for _, h := range hits {
		if h.Percent {
			continue
		}
		if opts.MinScaled != nil && h.ScaledValue < *opts.MinScaled {
			continue
		}
		if opts.MaxScaled != nil && h.ScaledValue > *opts.MaxScaled {
			continue
		}
		out = append(out, h)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ScaledValue != out[j].ScaledValue {
			return out[i].ScaledValue > out[j].ScaledValue
		}
		if out[i].PageNum != out[j].PageNum {
			return out[i].PageNum < out[j].PageNum
		}
		return out[i].Order < out[j].Order
	})

	if opts.TopN > 0 && len(out) > opts.TopN {
		out = out[:opts.TopN]
	}
	return out
}
