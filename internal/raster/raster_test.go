package raster

import (
	"context"
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/iburimskiy/blob-field/internal/blob"
)

var testParams = blob.Params{BlobCount: 6, BlobSize: 1.2, Speed: 0.4, Viscosity: 0.8, Dissipation: 0.3, HueBase: 0.2, HueRange: 0.6}

func sameColor(a, b blob.RGB) bool {
	eq := func(x, y float64) bool {
		return x == y || (math.IsNaN(x) && math.IsNaN(y))
	}
	return eq(a.R, b.R) && eq(a.G, b.G) && eq(a.B, b.B)
}

func TestRenderMatchesSequential(t *testing.T) {
	frame := blob.Frame{Elapsed: 4.2, Width: 37, Height: 23}
	pointer := blob.Pointer{X: 0.6, Y: 0.3, Active: true}

	tests := []struct {
		name string
		opts Options
	}{
		{"defaults", Options{}},
		{"single worker", Options{Workers: 1}},
		{"row per band", Options{Workers: 8, BandRows: 1}},
		{"band taller than frame", Options{Workers: 3, BandRows: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, err := Render(context.Background(), frame, pointer, testParams, tt.opts)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if field.Width != frame.Width || field.Height != frame.Height || len(field.Pix) != frame.Width*frame.Height {
				t.Fatalf("field %dx%d with %d pixels", field.Width, field.Height, len(field.Pix))
			}
			for y := 0; y < frame.Height; y++ {
				for x := 0; x < frame.Width; x++ {
					want := blob.Evaluate(frame.UV(x, y), frame, pointer, testParams)
					if got := field.At(x, y); !sameColor(got, want) {
						t.Fatalf("pixel (%d,%d) = %+v, want %+v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestRenderEmptyViewport(t *testing.T) {
	if _, err := Render(context.Background(), blob.Frame{Width: 0, Height: 10}, blob.Pointer{}, testParams, Options{}); err == nil {
		t.Error("expected an error for a zero-width frame")
	}
}

func TestRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Render(ctx, blob.Frame{Width: 64, Height: 64}, blob.Pointer{}, testParams, Options{Workers: 2, BandRows: 1})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestTonemapChannel(t *testing.T) {
	tests := []struct {
		name string
		tm   Tonemap
		in   float64
		want float64
	}{
		{"clamp low", Clamp, -0.5, 0},
		{"clamp mid", Clamp, 0.25, 0.25},
		{"clamp high", Clamp, 7, 1},
		{"clamp inf", Clamp, math.Inf(1), 1},
		{"clamp nan", Clamp, math.NaN(), 0},
		{"reinhard one", Reinhard, 1, 0.5},
		{"reinhard zero", Reinhard, 0, 0},
		{"reinhard negative", Reinhard, -3, 0},
		{"reinhard inf", Reinhard, math.Inf(1), 1},
		{"reinhard nan", Reinhard, math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tm.channel(tt.in); got != tt.want {
				t.Errorf("channel(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTonemap(t *testing.T) {
	for _, name := range []string{"clamp", "reinhard"} {
		tm, err := ParseTonemap(name)
		if err != nil {
			t.Fatalf("ParseTonemap(%q): %v", name, err)
		}
		if tm.String() != name {
			t.Errorf("round trip %q -> %q", name, tm.String())
		}
	}
	if _, err := ParseTonemap("aces"); err == nil {
		t.Error("expected an error for an unknown tonemap")
	}
}

func TestFieldImage(t *testing.T) {
	field := &Field{
		Width:  2,
		Height: 2,
		Pix: []blob.RGB{
			{R: 0, G: 0, B: 0},
			{R: 1, G: 0.5, B: 2},
			{R: math.Inf(1), G: math.NaN(), B: math.NaN()},
			{R: -1, G: 0.2, B: 1},
		},
	}

	img := field.Image(Clamp)
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Fatalf("bounds %v", img.Bounds())
	}

	tests := []struct {
		x, y       int
		r, g, b, a uint8
	}{
		{0, 0, 0, 0, 0, 255},
		{1, 0, 255, 128, 255, 255},
		{0, 1, 255, 0, 0, 255},
		{1, 1, 0, 51, 255, 255},
	}

	for _, tt := range tests {
		c := img.RGBAAt(tt.x, tt.y)
		if c.R != tt.r || c.G != tt.g || c.B != tt.b || c.A != tt.a {
			t.Errorf("pixel (%d,%d) = %v, want {%d %d %d %d}", tt.x, tt.y, c, tt.r, tt.g, tt.b, tt.a)
		}
	}
}

func BenchmarkRender(b *testing.B) {
	frame := blob.Frame{Elapsed: 1, Width: 256, Height: 160}
	for i := 0; i < b.N; i++ {
		if _, err := Render(context.Background(), frame, blob.Pointer{X: 0.5, Y: 0.5, Active: true}, testParams, Options{}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRenderSequential(b *testing.B) {
	frame := blob.Frame{Elapsed: 1, Width: 256, Height: 160}
	for i := 0; i < b.N; i++ {
		if _, err := Render(context.Background(), frame, blob.Pointer{X: 0.5, Y: 0.5, Active: true}, testParams, Options{Workers: 1, BandRows: frame.Height}); err != nil {
			b.Fatal(err)
		}
	}
}

func TestSavePNG(t *testing.T) {
	frame := blob.Frame{Elapsed: 2, Width: 24, Height: 16}
	field, err := Render(context.Background(), frame, blob.Pointer{}, testParams, Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := field.SavePNG(path, Reinhard); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != frame.Width || img.Bounds().Dy() != frame.Height {
		t.Errorf("decoded bounds %v", img.Bounds())
	}
	want := field.Image(Reinhard).RGBAAt(5, 7)
	r, g, b, _ := img.At(5, 7).RGBA()
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
		t.Errorf("pixel (5,7) = %d,%d,%d, want %v", r>>8, g>>8, b>>8, want)
	}
}

func TestSavePNGBadPath(t *testing.T) {
	field := &Field{Width: 1, Height: 1, Pix: make([]blob.RGB, 1)}
	if err := field.SavePNG(filepath.Join(t.TempDir(), "missing", "frame.png"), Clamp); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
