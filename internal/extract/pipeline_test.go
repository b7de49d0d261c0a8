package extract

import (
	"context"
	"testing"

	"github.com/peakfig/peakfig/internal/model"
)

// fakePage is the geometry of one in-memory page.
type fakePage struct {
	tokens []model.Token
	tables []model.BBox
}

// fakeProvider serves hand-built geometry, standing in for the PDF layout
// library.
type fakeProvider struct {
	pages []fakePage
}

func (f *fakeProvider) PageCount() int { return len(f.pages) }

func (f *fakeProvider) Tokens(pageNum int, _, _ float64) []model.Token {
	if pageNum < 1 || pageNum > len(f.pages) {
		return nil
	}
	return f.pages[pageNum-1].tokens
}

func (f *fakeProvider) TableBoxes(pageNum int) []model.BBox {
	if pageNum < 1 || pageNum > len(f.pages) {
		return nil
	}
	return f.pages[pageNum-1].tables
}

func (f *fakeProvider) TextInRegion(pageNum int, region model.BBox, xTol, yTol float64) string {
	var inside []model.Token
	for _, t := range f.Tokens(pageNum, xTol, yTol) {
		if region.ContainsBox(t.BBox, containTol) {
			inside = append(inside, t)
		}
	}
	return joinText(inside)
}

func (f *fakeProvider) Close() error { return nil }

// tok builds a token one line high at the given coordinates.
func tok(text string, x0, top, x1 float64) model.Token {
	return model.Token{Text: text, BBox: model.BBox{X0: x0, Top: top, X1: x1, Bottom: top + 10}}
}

func findHit(t *testing.T, hits []model.NumberHit, rawText string) model.NumberHit {
	t.Helper()
	for _, h := range hits {
		if h.RawText == rawText {
			return h
		}
	}
	t.Fatalf("no hit with raw text %q in %d hits", rawText, len(hits))
	return model.NumberHit{}
}

func TestExtractTableScaleApplied(t *testing.T) {
	// A table whose caption reads "(Dollars in Millions)" scales a money
	// token to its true magnitude.
	p := &fakeProvider{pages: []fakePage{{
		tokens: []model.Token{
			tok("(Dollars", 50, 90, 100),
			tok("in", 105, 90, 115),
			tok("Millions)", 120, 90, 170),
			tok("Procurement", 55, 150, 120),
			tok("Cost", 125, 150, 150),
			tok("($)", 155, 150, 170),
			tok("30,704.1", 300, 150, 360),
		},
		tables: []model.BBox{{X0: 50, Top: 110, X1: 400, Bottom: 300}},
	}}}

	hits, err := Extract(context.Background(), p, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	hit := findHit(t, hits, "30,704.1")
	if hit.RawValue != 30704.1 {
		t.Errorf("raw value = %v, want 30704.1", hit.RawValue)
	}
	if hit.Units != model.UnitsMoney {
		t.Errorf("units = %q, want money", hit.Units)
	}
	if hit.ScaleName != model.ScaleMillions {
		t.Errorf("scale = %q, want millions", hit.ScaleName)
	}
	if want := 30704.1 * 1_000_000; hit.ScaledValue != want {
		t.Errorf("scaled = %v, want %v", hit.ScaledValue, want)
	}
	if err := hit.Validate(); err != nil {
		t.Errorf("hit failed validation: %v", err)
	}
}

func TestExtractPeopleNeverScaled(t *testing.T) {
	// A headcount under a page-wide "Dollars in Millions" phrase keeps its
	// printed magnitude.
	p := &fakeProvider{pages: []fakePage{{
		tokens: []model.Token{
			tok("Dollars", 50, 40, 95),
			tok("in", 100, 40, 110),
			tok("Millions", 115, 40, 160),
			tok("Personnel", 50, 200, 110),
			tok("Headcount", 115, 200, 175),
			tok("450", 300, 200, 325),
		},
	}}}

	hits, err := Extract(context.Background(), p, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	hit := findHit(t, hits, "450")
	if hit.Units != model.UnitsPeople {
		t.Errorf("units = %q, want people", hit.Units)
	}
	if hit.ScaledValue != 450 {
		t.Errorf("scaled = %v, want 450 (scale must not apply)", hit.ScaledValue)
	}
	if hit.ScaleName != model.ScaleMillions {
		t.Errorf("scale context = %q, want millions recorded for audit", hit.ScaleName)
	}
}

func TestExtractTwoTablesDifferentScales(t *testing.T) {
	// Identical tokens in two tables with different captions must scale
	// differently.
	p := &fakeProvider{pages: []fakePage{{
		tokens: []model.Token{
			// Table A and its caption.
			tok("($", 50, 95, 65),
			tok("in", 70, 95, 80),
			tok("millions)", 85, 95, 135),
			tok("Cost", 55, 150, 85),
			tok("($)", 90, 150, 105),
			tok("30.0", 300, 150, 330),
			// Table B and its caption.
			tok("($", 50, 395, 65),
			tok("in", 70, 395, 80),
			tok("thousands)", 85, 395, 145),
			tok("Cost", 55, 450, 85),
			tok("($)", 90, 450, 105),
			tok("30.0", 300, 450, 330),
		},
		tables: []model.BBox{
			{X0: 50, Top: 110, X1: 400, Bottom: 300},
			{X0: 50, Top: 410, X1: 400, Bottom: 600},
		},
	}}}

	hits, err := Extract(context.Background(), p, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	var scaled []float64
	for _, h := range hits {
		if h.RawText == "30.0" {
			scaled = append(scaled, h.ScaledValue)
		}
	}
	if len(scaled) != 2 {
		t.Fatalf("got %d hits for 30.0, want 2", len(scaled))
	}
	if scaled[0] != 30_000_000 {
		t.Errorf("first table scaled = %v, want 30000000", scaled[0])
	}
	if scaled[1] != 30_000 {
		t.Errorf("second table scaled = %v, want 30000", scaled[1])
	}
}

func TestExtractTableFallsBackToPageScale(t *testing.T) {
	// A table without its own caption inherits the page-level phrase.
	p := &fakeProvider{pages: []fakePage{{
		tokens: []model.Token{
			tok("(Dollars", 50, 20, 100),
			tok("in", 105, 20, 115),
			tok("Thousands)", 120, 20, 180),
			tok("Budget", 55, 150, 95),
			tok("5.0", 300, 150, 320),
		},
		tables: []model.BBox{{X0: 50, Top: 110, X1: 400, Bottom: 300}},
	}}}

	hits, err := Extract(context.Background(), p, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	hit := findHit(t, hits, "5.0")
	if hit.ScaleName != model.ScaleThousands {
		t.Errorf("scale = %q, want thousands from page fallback", hit.ScaleName)
	}
	if hit.ScaledValue != 5000 {
		t.Errorf("scaled = %v, want 5000", hit.ScaledValue)
	}
}

func TestExtractNoScalingOption(t *testing.T) {
	p := &fakeProvider{pages: []fakePage{{
		tokens: []model.Token{
			tok("(Dollars", 50, 20, 100),
			tok("in", 105, 20, 115),
			tok("Millions)", 120, 20, 175),
			tok("Cost", 55, 150, 85),
			tok("($)", 90, 150, 105),
			tok("7.5", 300, 150, 320),
		},
	}}}

	opts := DefaultOptions()
	opts.ApplyScaling = false

	hits, err := Extract(context.Background(), p, opts)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	hit := findHit(t, hits, "7.5")
	if hit.ScaledValue != 7.5 {
		t.Errorf("scaled = %v, want raw 7.5 with scaling disabled", hit.ScaledValue)
	}
}

func TestExtractMalformedTokensSkipped(t *testing.T) {
	p := &fakeProvider{pages: []fakePage{{
		tokens: []model.Token{
			tok("Total", 50, 100, 90),
			tok("n/a", 100, 100, 120),
			tok("1,200", 300, 100, 335),
		},
	}}}

	hits, err := Extract(context.Background(), p, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1 (non-numeric tokens skipped)", len(hits))
	}
	if hits[0].RawText != "1,200" {
		t.Errorf("hit = %q, want 1,200", hits[0].RawText)
	}
}

func TestExtractOutOfRangePagesClamped(t *testing.T) {
	p := &fakeProvider{pages: []fakePage{{
		tokens: []model.Token{tok("42", 50, 100, 70)},
	}}}

	opts := DefaultOptions()
	opts.StartPage = 200
	opts.EndPage = 250

	hits, err := Extract(context.Background(), p, opts)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("got %d hits, want 0 for out-of-range request", len(hits))
	}
}

func TestExtractCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &fakeProvider{pages: []fakePage{{
		tokens: []model.Token{tok("42", 50, 100, 70)},
	}}}

	if _, err := Extract(ctx, p, DefaultOptions()); err == nil {
		t.Error("expected error from canceled context")
	}
}

func TestFindLargest(t *testing.T) {
	p := &fakeProvider{pages: []fakePage{
		{tokens: []model.Token{
			tok("Revenue", 50, 100, 100),
			tok("9,000", 300, 100, 335),
		}},
		{tokens: []model.Token{
			tok("Cost", 50, 100, 80),
			tok("1,000,000", 300, 100, 360),
		}},
	}}

	hit, err := FindLargest(context.Background(), p, DefaultOptions())
	if err != nil {
		t.Fatalf("FindLargest: %v", err)
	}
	if hit == nil {
		t.Fatal("expected a hit")
	}
	if hit.RawText != "1,000,000" || hit.PageNum != 2 {
		t.Errorf("largest = %q on page %d, want 1,000,000 on page 2", hit.RawText, hit.PageNum)
	}
}

func TestFindLargestEmptyDocument(t *testing.T) {
	p := &fakeProvider{pages: []fakePage{{
		tokens: []model.Token{tok("no", 50, 100, 70), tok("numbers", 80, 100, 130)},
	}}}

	hit, err := FindLargest(context.Background(), p, DefaultOptions())
	if err != nil {
		t.Fatalf("FindLargest: %v", err)
	}
	if hit != nil {
		t.Errorf("expected nil hit, got %+v", hit)
	}
}
