package config

import "math"

const (
	WindowWidth  = 1024
	WindowHeight = 640

	// Software renderer evaluates one pixel per SoftwareScale x SoftwareScale block
	SoftwareScale = 4

	// Slider panel
	PanelX       = 16
	PanelY       = 32
	PanelWidth   = 220
	SliderHeight = 10
	SliderGap    = 30
	LabelOffset  = 14
	SwatchSize   = 14
)

// Range is the slider interval of one parameter.
type Range struct {
	Min, Max, Step float64
}

// Clamp limits v to the range and snaps it to Step when Step is set.
func (r Range) Clamp(v float64) float64 {
	if v < r.Min || math.IsNaN(v) {
		v = r.Min
	}
	if v > r.Max {
		v = r.Max
	}
	if r.Step > 0 {
		n := (v - r.Min) / r.Step
		v = r.Min + math.Round(n)*r.Step
		if v > r.Max {
			v = r.Max
		}
	}
	return v
}

// Fraction returns where v sits inside the range, in [0,1].
func (r Range) Fraction(v float64) float64 {
	if r.Max == r.Min {
		return 0
	}
	f := (v - r.Min) / (r.Max - r.Min)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// At maps a fraction of the range back to a clamped, snapped value.
func (r Range) At(f float64) float64 {
	return r.Clamp(r.Min + f*(r.Max-r.Min))
}
