package config

import (
	"fmt"

	"github.com/iburimskiy/blob-field/internal/blob"
)

// Control describes one slider of the parameter panel.
type Control struct {
	ID    string
	Label string
	Range Range
	get   func(*blob.Params) *float64
}

// Value reads the control's parameter from p.
func (c Control) Value(p blob.Params) float64 {
	return *c.get(&p)
}

// Set writes v, clamped to the control's range, into p.
func (c Control) Set(p *blob.Params, v float64) {
	*c.get(p) = c.Range.Clamp(v)
}

// Format renders the value the way the panel label shows it.
func (c Control) Format(v float64) string {
	if c.Range.Step >= 1 {
		return fmt.Sprintf("%.0f", v)
	}
	if c.Range.Step >= 0.1 {
		return fmt.Sprintf("%.1f", v)
	}
	if c.Range.Step >= 0.01 {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%.3f", v)
}

// Controls lists the sliders in panel order.
var Controls = []Control{
	{ID: "amount", Label: "Amount", Range: Range{0, blob.MaxBlobs, 1},
		get: func(p *blob.Params) *float64 { return &p.BlobCount }},
	{ID: "size", Label: "Size", Range: Range{0.1, 5, 0.1},
		get: func(p *blob.Params) *float64 { return &p.BlobSize }},
	{ID: "speed", Label: "Speed", Range: Range{0, 2, 0.01},
		get: func(p *blob.Params) *float64 { return &p.Speed }},
	{ID: "viscosity", Label: "Viscosity", Range: Range{0, 5, 0.1},
		get: func(p *blob.Params) *float64 { return &p.Viscosity }},
	{ID: "dissipation", Label: "Dissipation", Range: Range{0, 2, 0.01},
		get: func(p *blob.Params) *float64 { return &p.Dissipation }},
	{ID: "color", Label: "Color", Range: Range{0, 0.999, 0.001},
		get: func(p *blob.Params) *float64 { return &p.HueBase }},
	{ID: "range", Label: "Range", Range: Range{0, 1, 0.01},
		get: func(p *blob.Params) *float64 { return &p.HueRange }},
}

// Lookup finds a control by ID.
func Lookup(id string) (Control, bool) {
	for _, c := range Controls {
		if c.ID == id {
			return c, true
		}
	}
	return Control{}, false
}

// Defaults are the values the sliders start at.
func Defaults() blob.Params {
	return blob.Params{
		BlobCount:   5,
		BlobSize:    2.0,
		Speed:       0.1,
		Viscosity:   1.0,
		Dissipation: 0.0,
		HueBase:     0.356,
		HueRange:    0.0,
	}
}
