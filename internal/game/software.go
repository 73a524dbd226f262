package game

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/blob-field/internal/blob"
	"github.com/iburimskiy/blob-field/internal/config"
	"github.com/iburimskiy/blob-field/internal/raster"
)

// softwareRenderer evaluates the field on the CPU at a reduced resolution
// and stretches it over the screen.
type softwareRenderer struct {
	img     *ebiten.Image
	pix     []byte
	tonemap raster.Tonemap
}

// scaledFrame is the frame the CPU actually evaluates. uv is normalized, so
// the picture matches the full-size one.
func scaledFrame(frame blob.Frame, scale int) blob.Frame {
	frame.Width = max(1, frame.Width/scale)
	frame.Height = max(1, frame.Height/scale)
	return frame
}

func (r *softwareRenderer) draw(ctx context.Context, screen *ebiten.Image, frame blob.Frame, pointer blob.Pointer, params blob.Params) error {
	lo := scaledFrame(frame, config.SoftwareScale)

	field, err := raster.Render(ctx, lo, pointer, params, raster.Options{})
	if err != nil {
		return fmt.Errorf("software render: %w", err)
	}

	if r.img == nil || r.img.Bounds().Dx() != lo.Width || r.img.Bounds().Dy() != lo.Height {
		if r.img != nil {
			r.img.Deallocate()
		}
		r.img = ebiten.NewImage(lo.Width, lo.Height)
		r.pix = make([]byte, 4*lo.Width*lo.Height)
	}
	field.WritePix(r.pix, r.tonemap)
	r.img.WritePixels(r.pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(frame.Width)/float64(lo.Width), float64(frame.Height)/float64(lo.Height))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(r.img, op)
	return nil
}
