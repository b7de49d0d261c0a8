// Package model defines the core domain types used throughout the application.
package model

import "fmt"

// Units classifies what a number counts.
type Units string

// Unit classification constants.
const (
	UnitsMoney   Units = "money"
	UnitsPeople  Units = "people"
	UnitsUnknown Units = "unknown"
)

// Scale names the magnitude asserted by a scale phrase such as
// "Dollars in Millions".
type Scale string

// Scale name constants. ScaleNone means no phrase applied.
const (
	ScaleNone      Scale = ""
	ScaleThousands Scale = "thousands"
	ScaleMillions  Scale = "millions"
	ScaleBillions  Scale = "billions"
	ScaleTrillions Scale = "trillions"
)

// Multiplier returns the numeric factor the scale asserts. Unrecognized
// scales multiply by 1.
func (s Scale) Multiplier() float64 {
	switch s {
	case ScaleThousands:
		return 1_000
	case ScaleMillions:
		return 1_000_000
	case ScaleBillions:
		return 1_000_000_000
	case ScaleTrillions:
		return 1_000_000_000_000
	default:
		return 1
	}
}

// Token is one positioned text token supplied by the page geometry provider,
// in reading order.
type Token struct {
	Text string
	BBox BBox
}

// NumberHit is one successfully parsed, classified numeric token. A hit is
// constructed once by the extraction pipeline and never mutated; ranking
// only selects, sorts, and discards.
type NumberHit struct {
	RawText     string
	RawValue    float64
	ScaledValue float64
	PageNum     int
	Units       Units
	ScaleName   Scale
	ScalePhrase string
	Percent     bool
	BBox        BBox
	// Order is the token's position in the page's reading order. It carries
	// no semantic weight; ranking uses it only to break ties.
	Order int
}

// Validate checks the hit's internal invariants.
func (h *NumberHit) Validate() error {
	if h.PageNum < 1 {
		return fmt.Errorf("page number must be positive, got %d", h.PageNum)
	}
	switch h.Units {
	case UnitsMoney, UnitsPeople, UnitsUnknown:
	default:
		return fmt.Errorf("invalid units: %q", h.Units)
	}
	if h.Units != UnitsMoney && h.ScaledValue != h.RawValue {
		return fmt.Errorf("scaling applied to non-monetary value %q", h.RawText)
	}
	if h.ScaleName == ScaleNone && h.ScaledValue != h.RawValue {
		return fmt.Errorf("scaled value %v differs from raw %v with no scale", h.ScaledValue, h.RawValue)
	}
	if h.ScaleName == ScaleNone && h.ScalePhrase != "" {
		return fmt.Errorf("scale phrase %q present with no scale name", h.ScalePhrase)
	}
	return nil
}

// Record is the flat serializable form of a ranked hit.
type Record struct {
	Rank        int        `json:"rank"`
	ScaledValue float64    `json:"scaled_value"`
	RawValue    float64    `json:"raw_value"`
	RawText     string     `json:"raw_text"`
	Page        int        `json:"page"`
	Units       string     `json:"units"`
	ScaleName   string     `json:"scale_name"`
	ScalePhrase string     `json:"scale_phrase"`
	Percent     bool       `json:"percent"`
	BBox        [4]float64 `json:"bbox"`
}

// ToRecord flattens the hit for external presentation. Rank is 1-based.
func (h *NumberHit) ToRecord(rank int) Record {
	return Record{
		Rank:        rank,
		ScaledValue: h.ScaledValue,
		RawValue:    h.RawValue,
		RawText:     h.RawText,
		Page:        h.PageNum,
		Units:       string(h.Units),
		ScaleName:   string(h.ScaleName),
		ScalePhrase: h.ScalePhrase,
		Percent:     h.Percent,
		BBox:        h.BBox.Array(),
	}
}

func (h *NumberHit) String() string {
	scale := "none"
	if h.ScaleName != ScaleNone {
		scale = string(h.ScaleName)
	}
	return fmt.Sprintf("%.0f (raw: %v %q) page %d, scale: %s",
		h.ScaledValue, h.RawValue, h.RawText, h.PageNum, scale)
}
