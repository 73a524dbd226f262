// Package raster evaluates the blob field for every pixel of a frame on the
// CPU. Rows are split into bands that render concurrently; each pixel only
// reads the frame snapshot, so the result matches a sequential pass.
package raster

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/iburimskiy/blob-field/internal/blob"
)

// Options tune the rasterizer. The zero value is usable.
type Options struct {
	// Workers bounds concurrent bands. Zero means GOMAXPROCS.
	Workers int
	// BandRows is the height of one unit of work. Zero picks a size that
	// gives every worker a few bands.
	BandRows int
}

// Field is the raw, unclamped color of every pixel, row 0 at the top.
type Field struct {
	Width, Height int
	Pix           []blob.RGB
}

// At returns the color of pixel (x, y).
func (f *Field) At(x, y int) blob.RGB {
	return f.Pix[y*f.Width+x]
}

// Render evaluates the frame. It returns ctx.Err() if the context is
// cancelled before all bands finish.
func Render(ctx context.Context, frame blob.Frame, pointer blob.Pointer, params blob.Params, opts Options) (*Field, error) {
	if frame.Width <= 0 || frame.Height <= 0 {
		return nil, fmt.Errorf("render %dx%d: empty viewport", frame.Width, frame.Height)
	}

	field := &Field{
		Width:  frame.Width,
		Height: frame.Height,
		Pix:    make([]blob.RGB, frame.Width*frame.Height),
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	band := opts.BandRows
	if band <= 0 {
		band = frame.Height / (workers * 4)
		if band < 1 {
			band = 1
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for y0 := 0; y0 < frame.Height; y0 += band {
		if gctx.Err() != nil {
			break
		}
		y0 := y0 // per-iteration copy (pre-Go 1.22 loop semantics)
		y1 := min(y0+band, frame.Height)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			renderRows(field, y0, y1, frame, pointer, params)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// A cancel between the last Go and Wait leaves unscheduled bands.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return field, nil
}

func renderRows(field *Field, y0, y1 int, frame blob.Frame, pointer blob.Pointer, params blob.Params) {
	for y := y0; y < y1; y++ {
		row := field.Pix[y*field.Width : (y+1)*field.Width]
		for x := range row {
			row[x] = blob.Evaluate(frame.UV(x, y), frame, pointer, params)
		}
	}
}
