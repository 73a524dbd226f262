package raster

import (
	"fmt"
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/blob-field/internal/blob"
)

// Tonemap maps unbounded field colors into the displayable range.
type Tonemap int

const (
	// Clamp cuts every channel to [0,1], like a GPU writing to an 8-bit target.
	Clamp Tonemap = iota
	// Reinhard compresses with v/(1+v), keeping detail in the blob cores.
	Reinhard
)

// ParseTonemap resolves a command-line name.
func ParseTonemap(name string) (Tonemap, error) {
	switch name {
	case "clamp", "":
		return Clamp, nil
	case "reinhard":
		return Reinhard, nil
	}
	return Clamp, fmt.Errorf("unknown tonemap %q", name)
}

func (t Tonemap) String() string {
	if t == Reinhard {
		return "reinhard"
	}
	return "clamp"
}

// channel maps one raw channel to [0,1]. NaN, which only appears at a
// singular pixel, goes dark.
func (t Tonemap) channel(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if t == Reinhard {
		if math.IsInf(v, 1) {
			return 1
		}
		v = math.Max(v, 0)
		return v / (1 + v)
	}
	return clamp01(v)
}

// Display converts one raw color for an 8-bit surface.
func (t Tonemap) Display(c blob.RGB) colorful.Color {
	return colorful.Color{R: t.channel(c.R), G: t.channel(c.G), B: t.channel(c.B)}.Clamped()
}

// Image converts the field for display or encoding.
func (f *Field) Image(t Tonemap) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	f.WritePix(img.Pix, t)
	return img
}

// WritePix fills an RGBA8 buffer of len 4*Width*Height, opaque alpha.
func (f *Field) WritePix(pix []byte, t Tonemap) {
	for i, c := range f.Pix {
		r, g, b := t.Display(c).RGB255()
		pix[4*i] = r
		pix[4*i+1] = g
		pix[4*i+2] = b
		pix[4*i+3] = 0xff
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
