package game

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/blob-field/internal/blob"
	"github.com/iburimskiy/blob-field/internal/config"
)

// panel is the slider column in the top-left corner, one slider per
// config.Controls entry.
type panel struct {
	visible  bool
	dragging int // index into config.Controls, -1 when idle
}

func newPanel() *panel {
	return &panel{visible: true, dragging: -1}
}

// track returns the clickable bar of slider i.
func (p *panel) track(i int) image.Rectangle {
	y := config.PanelY + i*config.SliderGap + config.LabelOffset
	return image.Rect(config.PanelX, y, config.PanelX+config.PanelWidth, y+config.SliderHeight)
}

// hit returns the slider under pos. The label row above a track counts too.
func (p *panel) hit(pos image.Point) int {
	for i := range config.Controls {
		r := p.track(i)
		r.Min.Y -= config.LabelOffset
		if pos.In(r) {
			return i
		}
	}
	return -1
}

// bounds covers the whole panel background.
func (p *panel) bounds() image.Rectangle {
	last := p.track(len(config.Controls) - 1)
	return image.Rect(config.PanelX-8, config.PanelY-8, config.PanelX+config.PanelWidth+8, last.Max.Y+8)
}

// update handles a tick of input and reports whether the panel owns the
// current press.
func (p *panel) update(in inputState, store *paramStore) bool {
	if !p.visible {
		p.dragging = -1
		return false
	}

	pos, pressed, justPressed, justReleased := in.primary()
	captured := false
	if justPressed {
		p.dragging = p.hit(pos)
		captured = pos.In(p.bounds())
	}
	if p.dragging >= 0 {
		captured = true
		if pressed {
			c := config.Controls[p.dragging]
			f := float64(pos.X-config.PanelX) / float64(config.PanelWidth)
			store.update(func(params *blob.Params) {
				c.Set(params, c.Range.At(f))
			})
		}
		if justReleased || !pressed {
			p.dragging = -1
		}
	}
	return captured
}

var (
	panelBg     = color.RGBA{R: 10, G: 12, B: 20, A: 170}
	trackColor  = color.RGBA{R: 40, G: 45, B: 60, A: 255}
	fillColor   = color.RGBA{R: 100, G: 120, B: 160, A: 255}
	activeColor = color.RGBA{R: 150, G: 170, B: 200, A: 255}
	knobColor   = color.RGBA{R: 230, G: 235, B: 245, A: 255}
)

// swatch is the preview of the base hue, hsl(hue*360, 100%, 50%).
func swatch(hue float64) colorful.Color {
	return colorful.Hsl(hue*360, 1, 0.5).Clamped()
}

func (p *panel) draw(screen *ebiten.Image, params blob.Params) {
	if !p.visible {
		return
	}

	b := p.bounds()
	vector.DrawFilledRect(screen, float32(b.Min.X), float32(b.Min.Y), float32(b.Dx()), float32(b.Dy()), panelBg, false)

	for i, c := range config.Controls {
		v := c.Value(params)
		r := p.track(i)
		label := fmt.Sprintf("%s: %s", c.Label, c.Format(v))
		ebitenutil.DebugPrintAt(screen, label, r.Min.X, r.Min.Y-config.LabelOffset)

		if c.ID == "color" {
			x := float32(r.Max.X - config.SwatchSize)
			y := float32(r.Min.Y - config.LabelOffset)
			vector.DrawFilledRect(screen, x, y, config.SwatchSize, config.SwatchSize-2, swatch(v), false)
		}

		fill := fillColor
		if i == p.dragging {
			fill = activeColor
		}
		w := float32(c.Range.Fraction(v) * float64(r.Dx()))
		vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), trackColor, false)
		vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), w, float32(r.Dy()), fill, false)
		vector.DrawFilledCircle(screen, float32(r.Min.X)+w, float32(r.Min.Y)+float32(r.Dy())/2, float32(r.Dy())/2+1, knobColor, true)
	}
}
