package scale

import (
	"testing"

	"github.com/peakfig/peakfig/internal/model"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantName   model.Scale
		wantPhrase string
		wantOK     bool
	}{
		{
			name:       "parenthesized dollars in millions",
			text:       "Procurement Summary (Dollars in Millions)",
			wantName:   model.ScaleMillions,
			wantPhrase: "(Dollars in Millions)",
			wantOK:     true,
		},
		{
			name:       "bare dollars in millions",
			text:       "Dollars in Millions",
			wantName:   model.ScaleMillions,
			wantPhrase: "Dollars in Millions",
			wantOK:     true,
		},
		{
			name:       "dollar sign in thousands",
			text:       "($ in thousands)",
			wantName:   model.ScaleThousands,
			wantPhrase: "($ in thousands)",
			wantOK:     true,
		},
		{
			name:     "amounts in billions",
			text:     "All amounts in billions unless noted",
			wantName: model.ScaleBillions,
			wantOK:   true,
		},
		{
			name:     "reported in millions of dollars",
			text:     "reported in millions of dollars",
			wantName: model.ScaleMillions,
			wantOK:   true,
		},
		{
			name:     "short parenthesized name",
			text:     "FY25 Budget (Millions)",
			wantName: model.ScaleMillions,
			wantOK:   true,
		},
		{
			name:       "abbreviation M",
			text:       "Total Obligations ($M)",
			wantName:   model.ScaleMillions,
			wantPhrase: "($M)",
			wantOK:     true,
		},
		{
			name:     "abbreviation in K with spaces",
			text:     "( $ in K )",
			wantName: model.ScaleThousands,
			wantOK:   true,
		},
		{
			name:       "column header shorthand",
			text:       "FY24 $K",
			wantName:   model.ScaleThousands,
			wantPhrase: "$K",
			wantOK:     true,
		},
		{
			name:     "trillions",
			text:     "National debt, in trillions",
			wantName: model.ScaleTrillions,
			wantOK:   true,
		},
		{
			name:     "case insensitive",
			text:     "DOLLARS IN THOUSANDS",
			wantName: model.ScaleThousands,
			wantOK:   true,
		},
		{
			name:   "no scale phrase",
			text:   "Exhibit P-40, Budget Item Justification",
			wantOK: false,
		},
		{
			name:   "empty text",
			text:   "",
			wantOK: false,
		},
		{
			name:   "millions alone is not a phrase",
			text:   "millions",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Detect(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("Detect(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Name != tt.wantName {
				t.Errorf("Detect(%q) name = %q, want %q", tt.text, got.Name, tt.wantName)
			}
			if tt.wantPhrase != "" && got.Phrase != tt.wantPhrase {
				t.Errorf("Detect(%q) phrase = %q, want %q", tt.text, got.Phrase, tt.wantPhrase)
			}
		})
	}
}

// Conflicting phrases on different lines resolve to the earliest line, which
// callers order by proximity.
func TestDetectLineOrderWins(t *testing.T) {
	text := "(Dollars in Thousands)\n(Dollars in Millions)"
	got, ok := Detect(text)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.Name != model.ScaleThousands {
		t.Errorf("got %q, want thousands from the earlier line", got.Name)
	}
}

func TestMatchMultiplier(t *testing.T) {
	tests := []struct {
		scale model.Scale
		want  float64
	}{
		{model.ScaleNone, 1},
		{model.ScaleThousands, 1_000},
		{model.ScaleMillions, 1_000_000},
		{model.ScaleBillions, 1_000_000_000},
		{model.ScaleTrillions, 1_000_000_000_000},
	}
	for _, tt := range tests {
		m := Match{Name: tt.scale}
		if got := m.Multiplier(); got != tt.want {
			t.Errorf("Multiplier(%q) = %v, want %v", tt.scale, got, tt.want)
		}
	}
}
