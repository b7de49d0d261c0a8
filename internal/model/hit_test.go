package model

import (
	"encoding/json"
	"testing"
)

func TestScaleMultiplier(t *testing.T) {
	tests := []struct {
		scale Scale
		want  float64
	}{
		{ScaleNone, 1},
		{ScaleThousands, 1_000},
		{ScaleMillions, 1_000_000},
		{ScaleBillions, 1_000_000_000},
		{ScaleTrillions, 1_000_000_000_000},
		{Scale("bogus"), 1},
	}
	for _, tt := range tests {
		if got := tt.scale.Multiplier(); got != tt.want {
			t.Errorf("Multiplier(%q) = %v, want %v", tt.scale, got, tt.want)
		}
	}
}

func TestNumberHitValidate(t *testing.T) {
	tests := []struct {
		name    string
		hit     NumberHit
		wantErr bool
	}{
		{
			name: "valid scaled money hit",
			hit: NumberHit{
				RawText:     "30,704.1",
				RawValue:    30704.1,
				ScaledValue: 30704.1 * 1_000_000,
				PageNum:     3,
				Units:       UnitsMoney,
				ScaleName:   ScaleMillions,
				ScalePhrase: "(Dollars in Millions)",
			},
		},
		{
			name: "valid unscaled people hit",
			hit: NumberHit{
				RawText:     "450",
				RawValue:    450,
				ScaledValue: 450,
				PageNum:     1,
				Units:       UnitsPeople,
				ScaleName:   ScaleMillions,
				ScalePhrase: "in millions",
			},
		},
		{
			name: "zero page rejected",
			hit: NumberHit{
				RawValue:    1,
				ScaledValue: 1,
				Units:       UnitsUnknown,
			},
			wantErr: true,
		},
		{
			name: "invalid units rejected",
			hit: NumberHit{
				PageNum:     1,
				RawValue:    1,
				ScaledValue: 1,
				Units:       Units("currency"),
			},
			wantErr: true,
		},
		{
			name: "scaled people hit rejected",
			hit: NumberHit{
				PageNum:     1,
				RawValue:    450,
				ScaledValue: 450_000_000,
				Units:       UnitsPeople,
				ScaleName:   ScaleMillions,
			},
			wantErr: true,
		},
		{
			name: "scaling without scale name rejected",
			hit: NumberHit{
				PageNum:     1,
				RawValue:    5,
				ScaledValue: 5000,
				Units:       UnitsMoney,
			},
			wantErr: true,
		},
		{
			name: "phrase without scale name rejected",
			hit: NumberHit{
				PageNum:     1,
				RawValue:    5,
				ScaledValue: 5,
				Units:       UnitsMoney,
				ScalePhrase: "(in millions)",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.hit.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestToRecord(t *testing.T) {
	hit := NumberHit{
		RawText:     "30,704.1",
		RawValue:    30704.1,
		ScaledValue: 30704.1 * 1_000_000,
		PageNum:     7,
		Units:       UnitsMoney,
		ScaleName:   ScaleMillions,
		ScalePhrase: "(Dollars in Millions)",
		BBox:        BBox{X0: 10, Top: 20, X1: 60, Bottom: 30},
	}

	rec := hit.ToRecord(2)
	if rec.Rank != 2 {
		t.Errorf("rank = %d, want 2", rec.Rank)
	}
	if rec.Page != 7 || rec.RawText != "30,704.1" || rec.Units != "money" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.BBox != [4]float64{10, 20, 60, 30} {
		t.Errorf("bbox = %v", rec.BBox)
	}

	// The flat record is the external presentation; its field names are
	// part of the contract.
	out, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var flat map[string]any
	if err := json.Unmarshal(out, &flat); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{
		"rank", "scaled_value", "raw_value", "raw_text", "page",
		"units", "scale_name", "scale_phrase", "percent", "bbox",
	} {
		if _, ok := flat[key]; !ok {
			t.Errorf("record is missing %q", key)
		}
	}
}

func TestBBoxContainsBox(t *testing.T) {
	table := BBox{X0: 50, Top: 100, X1: 400, Bottom: 300}

	tests := []struct {
		name  string
		inner BBox
		want  bool
	}{
		{"fully inside", BBox{X0: 60, Top: 110, X1: 100, Bottom: 120}, true},
		{"exactly on edge", BBox{X0: 50, Top: 100, X1: 400, Bottom: 300}, true},
		{"straddling within tolerance", BBox{X0: 49.7, Top: 100, X1: 100, Bottom: 120}, true},
		{"beyond tolerance", BBox{X0: 40, Top: 110, X1: 100, Bottom: 120}, false},
		{"outside", BBox{X0: 60, Top: 400, X1: 100, Bottom: 410}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.ContainsBox(tt.inner, 0.5); got != tt.want {
				t.Errorf("ContainsBox(%+v) = %v, want %v", tt.inner, got, tt.want)
			}
		})
	}
}
