package extract

import (
	"fmt"
	"strings"

	"github.com/tsawler/tabula"
	tmodel "github.com/tsawler/tabula/model"

	"github.com/peakfig/peakfig/internal/common"
	"github.com/peakfig/peakfig/internal/model"
)

// TabulaProvider adapts a tabula-extracted document to the Provider
// interface. The whole document is materialized at open time; after that
// every method is a pure read, so a provider can drive any number of
// extraction passes.
type TabulaProvider struct {
	doc  *tmodel.Document
	path string
}

// OpenPDF parses the PDF at path into page geometry. Failure to open or
// parse the document is the one fatal error in the system and wraps
// common.ErrDocumentUnreadable.
func OpenPDF(path string) (*TabulaProvider, error) {
	doc, warnings, err := tabula.Open(path).Document()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrDocumentUnreadable, path, err)
	}
	if len(warnings) > 0 {
		common.LogDebug("pdf extraction warnings", common.Fields{
			"path":     path,
			"warnings": len(warnings),
		})
	}
	return &TabulaProvider{doc: doc, path: path}, nil
}

// PageCount returns the number of pages in the document.
func (p *TabulaProvider) PageCount() int {
	return p.doc.PageCount()
}

// Tokens returns the page's text tokens in reading order. Fragments whose
// horizontal gap on the same line is within xTol are merged back into one
// token, which repairs numbers the PDF stores as separate glyph runs.
func (p *TabulaProvider) Tokens(pageNum int, xTol, yTol float64) []model.Token {
	page := p.doc.GetPage(pageNum)
	if page == nil {
		return nil
	}

	tokens := make([]model.Token, 0, len(page.RawText))
	for _, frag := range page.RawText {
		text := strings.TrimSpace(frag.Text)
		if text == "" {
			continue
		}
		tokens = append(tokens, model.Token{
			Text: text,
			BBox: fromTabula(frag.BBox, page.Height),
		})
	}

	sortReadingOrder(tokens)
	return mergeRuns(tokens, xTol, yTol)
}

// TableBoxes returns the boundary boxes of tables detected on the page.
func (p *TabulaProvider) TableBoxes(pageNum int) []model.BBox {
	page := p.doc.GetPage(pageNum)
	if page == nil {
		return nil
	}

	tables := page.ExtractTables()
	boxes := make([]model.BBox, 0, len(tables))
	for _, t := range tables {
		boxes = append(boxes, fromTabula(t.BBox, page.Height))
	}
	return boxes
}

// TextInRegion returns the text of tokens contained in region, one visual
// line per output line. The same merge tolerances the caller uses for
// Tokens apply here, so a caption split into glyph runs is repaired the
// same way a number would be.
func (p *TabulaProvider) TextInRegion(pageNum int, region model.BBox, xTol, yTol float64) string {
	var inside []model.Token
	for _, t := range p.Tokens(pageNum, xTol, yTol) {
		if region.ContainsBox(t.BBox, containTol) {
			inside = append(inside, t)
		}
	}
	return joinText(inside)
}

// Close releases provider resources. The underlying file handle is already
// released once the document is materialized, so this never fails; it
// exists so callers can treat all providers as scoped resources.
func (p *TabulaProvider) Close() error {
	return nil
}

// defaultMergeTol is the glyph-run merge tolerance used when the caller's
// tolerances are not in play (region text extraction).
const defaultMergeTol = 1.0

// fromTabula converts a tabula rectangle (bottom-left origin, y up) to a
// page-relative top-left origin box.
func fromTabula(b tmodel.BBox, pageHeight float64) model.BBox {
	return model.BBox{
		X0:     b.X,
		Top:    pageHeight - (b.Y + b.Height),
		X1:     b.X + b.Width,
		Bottom: pageHeight - b.Y,
	}
}

// mergeRuns joins consecutive tokens on the same visual line whose
// horizontal gap is within xTol. Tokens must be in reading order.
func mergeRuns(tokens []model.Token, xTol, yTol float64) []model.Token {
	if len(tokens) == 0 {
		return tokens
	}
	if yTol <= 0 {
		yTol = defaultMergeTol
	}

	merged := make([]model.Token, 0, len(tokens))
	cur := tokens[0]
	for _, t := range tokens[1:] {
		sameLine := abs(t.BBox.Top-cur.BBox.Top) <= yTol
		gap := t.BBox.X0 - cur.BBox.X1
		if sameLine && gap >= 0 && gap <= xTol {
			cur = model.Token{
				Text: cur.Text + t.Text,
				BBox: cur.BBox.Union(t.BBox),
			}
			continue
		}
		merged = append(merged, cur)
		cur = t
	}
	return append(merged, cur)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
