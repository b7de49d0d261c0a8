// Package extract locates numeric values in positioned document text and
// resolves the unit scale that applies to each one.
//
// The heavy lifting of PDF parsing lives behind the Provider interface; the
// production implementation wraps the tabula document-layout library. The
// pipeline here owns the ambiguous part: deciding, per physical table
// region, which scale multiplier and unit type applies to every number.
package extract

import "github.com/peakfig/peakfig/internal/model"

// Provider supplies page geometry: positioned text tokens and table
// boundary boxes. Implementations are read-only after construction and per
// page; no state crosses page boundaries.
type Provider interface {
	// PageCount returns the number of pages in the document.
	PageCount() int

	// Tokens returns the positioned text tokens of a 1-based page in
	// reading order. Tolerances control how aggressively adjacent glyph
	// runs are merged into single tokens. Unknown pages yield nil.
	Tokens(pageNum int, xTol, yTol float64) []model.Token

	// TableBoxes returns the boundary boxes of detected tables on a page.
	// May be empty.
	TableBoxes(pageNum int) []model.BBox

	// TextInRegion returns the text confined to a region of a page, one
	// visual line per output line, top-down. Tolerances have the same
	// glyph-run merge meaning as in Tokens, so region text and page tokens
	// are reassembled identically.
	TextInRegion(pageNum int, region model.BBox, xTol, yTol float64) string

	// Close releases any resources held by the provider.
	Close() error
}
