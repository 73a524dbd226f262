// Package blob evaluates the blob field: the color of one pixel given the
// frame clock, the pointer and the slider parameters.
//
// Evaluate is a pure function. It keeps no state between calls and may be
// invoked concurrently for every pixel of a frame.
package blob

import "math"

// MaxBlobs is the upper bound on rendered blobs regardless of BlobCount.
const MaxBlobs = 10

// Vec2 is a point in normalized viewport space, origin bottom-left.
type Vec2 struct {
	X, Y float64
}

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// RGB is an unclamped additive color.
type RGB struct {
	R, G, B float64
}

// Add returns c + o.
func (c RGB) Add(o RGB) RGB {
	return RGB{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Scale returns c * k.
func (c RGB) Scale(k float64) RGB {
	return RGB{c.R * k, c.G * k, c.B * k}
}

// Params are the user-adjustable knobs. They are read-only while a frame is
// evaluated.
type Params struct {
	BlobCount   float64
	BlobSize    float64
	Speed       float64
	Viscosity   float64
	Dissipation float64
	HueBase     float64
	HueRange    float64
}

// Pointer is the mouse or touch position normalized to the viewport.
type Pointer struct {
	X, Y   float64
	Active bool
}

// Pos returns the pointer position as a Vec2.
func (p Pointer) Pos() Vec2 {
	return Vec2{p.X, p.Y}
}

// Frame is supplied once per rendered frame.
type Frame struct {
	Elapsed float64 // seconds since start
	Width   int
	Height  int
}

// UV maps the pixel at column x and row y (row 0 at the top) to normalized
// coordinates sampled at the pixel center, with Y pointing up.
func (f Frame) UV(x, y int) Vec2 {
	return Vec2{
		X: (float64(x) + 0.5) / float64(f.Width),
		Y: 1 - (float64(y)+0.5)/float64(f.Height),
	}
}

// Count returns how many blobs are drawn for the given BlobCount. A
// fractional count truncates.
func Count(blobCount float64) int {
	if !(blobCount > 0) {
		return 0
	}
	if blobCount >= MaxBlobs {
		return MaxBlobs
	}
	return int(math.Floor(blobCount))
}

// Random is the shader hash: fract(sin(dot((x, y), (12.9898, 78.233))) * 43758.5453123).
func Random(x, y float64) float64 {
	return fract(math.Sin(x*12.9898+y*78.233) * 43758.5453123)
}

// Position returns the center of blob i at the speed-adjusted time t.
func Position(i int, t float64) Vec2 {
	fi := float64(i)
	px := t*(1+fi*0.5) + Random(fi, 0)*2*math.Pi
	py := t*(1+fi*0.7) + Random(fi, 1)*2*math.Pi
	// float64() rounds before the add: no fused multiply-add, same result
	// for every caller.
	return Vec2{
		X: float64(math.Sin(px)*0.5) + 0.5,
		Y: float64(math.Cos(py)*0.5) + 0.5,
	}
}

// Falloff is the brightness of a blob at size-relative distance d.
// It diverges to +Inf at d == 0.
func Falloff(d, viscosity, dissipation float64) float64 {
	b := 1 / (d * 20)
	b = math.Pow(b, 1+viscosity)
	return b * math.Exp(-d*dissipation*10)
}

// Glow is the brightness of the pointer halo at distance d.
func Glow(d, blobSize float64) float64 {
	return 1 / (d * (20 / blobSize))
}

// Evaluate returns the color of the pixel at uv.
//
// The result is not clamped. At the exact center of a blob or of the
// pointer the falloff diverges and the output holds +Inf or NaN channels.
func Evaluate(uv Vec2, frame Frame, pointer Pointer, params Params) RGB {
	var out RGB
	t := frame.Elapsed * params.Speed

	if pointer.Active {
		d := uv.Dist(pointer.Pos())
		out = out.Add(HSV(params.HueBase, 1, 1).Scale(Glow(d, params.BlobSize)))
	}

	n := Count(params.BlobCount)
	for i := 0; i < n; i++ {
		fi := float64(i)
		d := uv.Dist(Position(i, t)) / params.BlobSize
		b := Falloff(d, params.Viscosity, params.Dissipation)

		// n > 0 here, so BlobCount is non-zero.
		hue := params.HueBase + fi*params.HueRange/params.BlobCount
		out = out.Add(HSV(hue, 1, 1).Scale(b))
	}
	return out
}
