package game

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/blob-field/internal/blob"
)

// inputState is one tick of mouse and touch input, read from ebiten once so
// the pointer and panel logic stay testable.
type inputState struct {
	cursor       image.Point
	pressed      bool
	justPressed  bool
	justReleased bool

	// touches holds the active touch positions, primary first.
	touches      []image.Point
	touchStarted bool
}

// primary returns the position and button state the panel should react to:
// the first touch if any, otherwise the mouse.
func (in inputState) primary() (pos image.Point, pressed, justPressed, justReleased bool) {
	if len(in.touches) > 0 {
		return in.touches[0], true, in.touchStarted, false
	}
	return in.cursor, in.pressed, in.justPressed, in.justReleased
}

// inputReader polls ebiten, reusing its touch ID buffers between ticks.
type inputReader struct {
	touchIDs    []ebiten.TouchID
	justTouched []ebiten.TouchID
}

func (r *inputReader) read() inputState {
	var in inputState
	x, y := ebiten.CursorPosition()
	in.cursor = image.Pt(x, y)
	in.pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.justPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	in.justReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)

	r.touchIDs = ebiten.AppendTouchIDs(r.touchIDs[:0])
	for _, id := range r.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		in.touches = append(in.touches, image.Pt(tx, ty))
	}
	r.justTouched = inpututil.AppendJustPressedTouchIDs(r.justTouched[:0])
	in.touchStarted = len(r.justTouched) > 0

	return in
}

// pointerTracker turns raw input into the glow pointer: position follows the
// cursor, a press inside the viewport lights it, and release, leaving the
// window or lifting the last finger puts it out.
type pointerTracker struct {
	state    blob.Pointer
	touching bool
}

func newPointerTracker() pointerTracker {
	return pointerTracker{state: blob.Pointer{X: 0.5, Y: 0.5}}
}

// normalize maps a screen pixel to viewport space with Y pointing up.
func normalize(p image.Point, w, h int) (float64, float64) {
	return clampUnit(float64(p.X) / float64(w)), clampUnit(1 - float64(p.Y)/float64(h))
}

// update advances the tracker. captured reports that the press belongs to
// the slider panel and must not light the glow.
func (t *pointerTracker) update(in inputState, w, h int, captured bool) {
	if w <= 0 || h <= 0 {
		return
	}

	if len(in.touches) > 0 {
		t.state.X, t.state.Y = normalize(in.touches[0], w, h)
		if in.touchStarted && !captured {
			t.state.Active = true
		}
		t.touching = true
		return
	}
	if t.touching {
		t.touching = false
		t.state.Active = false
		return
	}

	inside := in.cursor.X >= 0 && in.cursor.Y >= 0 && in.cursor.X < w && in.cursor.Y < h
	if !inside {
		t.state.Active = false
		return
	}
	t.state.X, t.state.Y = normalize(in.cursor, w, h)
	if in.justPressed && !captured {
		t.state.Active = true
	}
	if in.justReleased || !in.pressed {
		t.state.Active = false
	}
}

func (t *pointerTracker) pointer() blob.Pointer {
	return t.state
}
