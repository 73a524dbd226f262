package raster

import (
	"fmt"
	"image/png"
	"io"
	"os"
)

// EncodePNG writes the field as an opaque PNG.
func (f *Field) EncodePNG(w io.Writer, t Tonemap) error {
	if err := png.Encode(w, f.Image(t)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes the field to path, replacing any existing file.
func (f *Field) SavePNG(path string, t Tonemap) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := f.EncodePNG(out, t); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
