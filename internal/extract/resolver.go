package extract

import (
	"github.com/peakfig/peakfig/internal/model"
	"github.com/peakfig/peakfig/internal/scale"
)

// ScaleContext associates a resolved scale with a spatial scope: a table
// region or the whole page. Contexts live for the duration of one page and
// are discarded after that page's hits are emitted.
type ScaleContext struct {
	Name   model.Scale
	Phrase string
}

// Factor returns the multiplier asserted by the context; 1 when no scale
// was resolved.
func (c ScaleContext) Factor() float64 {
	return c.Name.Multiplier()
}

const (
	// captionMargin is how far above a table's top edge the resolver looks
	// for a caption line such as "(Dollars in Millions)".
	captionMargin = 24.0

	// containTol is the slack allowed when testing whether a token lies
	// inside a table region. Boundary ties favor inclusion.
	containTol = 0.5
)

// tableScope is one table region with its resolved scale context.
type tableScope struct {
	bbox model.BBox
	ctx  ScaleContext
	own  bool // table produced its own scale context
}

// resolveScopes computes the page-level scale context and one scope per
// table. The page context comes from the first matching phrase in reading
// order; each table's context comes from its caption band and header area,
// scanned top-down so the phrase closest to the table's top edge wins when
// phrases conflict.
func resolveScopes(p Provider, pageNum int, tokens []model.Token, opts Options) (ScaleContext, []tableScope) {
	var pageCtx ScaleContext
	if m, ok := scale.Detect(joinText(tokens)); ok {
		pageCtx = ScaleContext{Name: m.Name, Phrase: m.Phrase}
	}

	boxes := p.TableBoxes(pageNum)
	scopes := make([]tableScope, 0, len(boxes))
	for _, tb := range boxes {
		sc := tableScope{bbox: tb}
		region := model.BBox{
			X0:     tb.X0,
			Top:    tb.Top - captionMargin,
			X1:     tb.X1,
			Bottom: tb.Bottom,
		}
		if m, ok := scale.Detect(p.TextInRegion(pageNum, region, opts.XTolerance, opts.YTolerance)); ok {
			sc.ctx = ScaleContext{Name: m.Name, Phrase: m.Phrase}
			sc.own = true
		}
		scopes = append(scopes, sc)
	}
	return pageCtx, scopes
}

// scopeFor binds a token to exactly one scale context: the containing
// table's own context when that table resolved one, otherwise the page
// context. Tokens outside every table always use the page context.
func scopeFor(tok model.Token, pageCtx ScaleContext, scopes []tableScope) ScaleContext {
	for _, sc := range scopes {
		if sc.bbox.ContainsBox(tok.BBox, containTol) {
			if sc.own {
				return sc.ctx
			}
			return pageCtx
		}
	}
	return pageCtx
}
