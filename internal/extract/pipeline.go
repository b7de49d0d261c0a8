package extract

import (
	"context"

	"github.com/peakfig/peakfig/internal/classify"
	"github.com/peakfig/peakfig/internal/common"
	"github.com/peakfig/peakfig/internal/model"
	"github.com/peakfig/peakfig/internal/parse"
)

// Options configures extraction and ranking. The zero value is not useful;
// start from DefaultOptions.
type Options struct {
	StartPage    int      // 1-based, inclusive
	EndPage      int      // 1-based, inclusive; 0 means the last page
	TopN         int      // 0 means all
	ApplyScaling bool     // apply scale-phrase multipliers to monetary hits
	XTolerance   float64  // glyph-run merge tolerance, horizontal
	YTolerance   float64  // glyph-run merge tolerance, vertical
	MinScaled    *float64 // drop hits below this scaled value
	MaxScaled    *float64 // drop hits above this scaled value
}

// DefaultOptions returns the options used when the caller has no opinion:
// all pages, scaling on, one-point merge tolerances.
func DefaultOptions() Options {
	return Options{
		StartPage:    1,
		ApplyScaling: true,
		XTolerance:   1.0,
		YTolerance:   1.0,
	}
}

// Extract walks the requested page range and emits one NumberHit per
// parsable token. The range is clamped to document bounds, so an
// out-of-range request yields fewer (or zero) hits rather than an error.
// Each page is processed independently from document state alone; no
// mutable state crosses page boundaries.
func Extract(ctx context.Context, p Provider, opts Options) ([]model.NumberHit, error) {
	total := p.PageCount()
	start := opts.StartPage
	if start < 1 {
		start = 1
	}
	end := opts.EndPage
	if end == 0 || end > total {
		end = total
	}

	var hits []model.NumberHit
	for pageNum := start; pageNum <= end; pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		hits = append(hits, extractPage(p, pageNum, opts)...)
	}
	return hits, nil
}

// extractPage produces the hits of a single page. Malformed tokens are
// skipped; a hit is only constructed after successful parse and
// classification, so no partial hit is ever emitted.
func extractPage(p Provider, pageNum int, opts Options) []model.NumberHit {
	tokens := p.Tokens(pageNum, opts.XTolerance, opts.YTolerance)
	if len(tokens) == 0 {
		return nil
	}

	pageCtx, scopes := resolveScopes(p, pageNum, tokens, opts)
	lines := groupLines(tokens)

	var hits []model.NumberHit
	for i, tok := range tokens {
		res, ok := parse.Number(tok.Text)
		if !ok {
			continue
		}

		sctx := scopeFor(tok, pageCtx, scopes)
		units := classify.Units(classify.LeftContext(lines[lineKey(tok.BBox.Top)], tok))

		// Scale phrases are table- or page-wide but semantically apply
		// only to monetary columns; a headcount next to a "Dollars in
		// Millions" caption keeps its printed magnitude.
		scaled := res.Value
		if opts.ApplyScaling && units == model.UnitsMoney {
			scaled = res.Value * sctx.Factor()
		}

		hits = append(hits, model.NumberHit{
			RawText:     tok.Text,
			RawValue:    res.Value,
			ScaledValue: scaled,
			PageNum:     pageNum,
			Units:       units,
			ScaleName:   sctx.Name,
			ScalePhrase: sctx.Phrase,
			Percent:     res.Percent,
			BBox:        tok.BBox,
			Order:       i,
		})
	}

	common.LogDebug("page extracted", common.Fields{
		"page":       pageNum,
		"tokens":     len(tokens),
		"hits":       len(hits),
		"tables":     len(scopes),
		"page_scale": string(pageCtx.Name),
	})
	return hits
}

// FindLargest returns the single top-ranked hit, or nil when the document
// contains no rankable numbers.
func FindLargest(ctx context.Context, p Provider, opts Options) (*model.NumberHit, error) {
	hits, err := Extract(ctx, p, opts)
	if err != nil {
		return nil, err
	}

	top := opts
	top.TopN = 1
	ranked := Rank(hits, top)
	if len(ranked) == 0 {
		return nil, nil
	}
	return &ranked[0], nil
}
