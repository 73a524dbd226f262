package blob

import "math"

// HSV converts hue, saturation and value to RGB. Hue is in turns and wraps
// modulo 1, negative hues included.
func HSV(h, s, v float64) RGB {
	p := func(k float64) float64 {
		return clamp(math.Abs(fract(h+k)*6-3)-1, 0, 1)
	}
	return RGB{
		R: v * mix(1, p(1), s),
		G: v * mix(1, p(2.0/3), s),
		B: v * mix(1, p(1.0/3), s),
	}
}

func fract(x float64) float64 {
	return x - math.Floor(x)
}

func mix(x, y, a float64) float64 {
	return x*(1-a) + y*a
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}
