// Package game runs the interactive window: it owns the slider values and
// the pointer, advances the clock and draws the blob field every frame with
// the GPU shader or the CPU rasterizer.
package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/blob-field/internal/blob"
	"github.com/iburimskiy/blob-field/internal/config"
	"github.com/iburimskiy/blob-field/internal/raster"
)

type Game struct {
	store   *paramStore
	pointer pointerTracker
	input   inputReader
	panel   *panel

	gpu      *shaderRenderer // nil when the shader failed to compile
	cpu      softwareRenderer
	software bool

	// viewport follows the window
	w, h int

	elapsed float64
	paused  bool

	ctx    context.Context
	cancel context.CancelFunc

	// written by the snapshot goroutine
	mu      sync.Mutex
	saving  bool
	status  string
	lastErr error
}

// New builds the game. A shader that does not compile is not fatal: the
// game falls back to the CPU renderer and shows one diagnostic.
func New(opts config.Options) *Game {
	ctx, cancel := context.WithCancel(context.Background())
	g := &Game{
		store:    newParamStore(opts.Params),
		pointer:  newPointerTracker(),
		panel:    newPanel(),
		software: opts.Software,
		w:        config.WindowWidth,
		h:        config.WindowHeight,
		ctx:      ctx,
		cancel:   cancel,
	}
	if tm, err := raster.ParseTonemap(opts.Tonemap); err == nil {
		g.cpu.tonemap = tm
	}

	shader, err := loadShader()
	if err != nil {
		reportError(fmt.Sprintf("GPU rendering is unavailable, using the CPU renderer.\n\n%v", err))
		g.software = true
	} else {
		g.gpu = &shaderRenderer{shader: shader}
	}
	return g
}

// Run opens the window and blocks until it is closed.
func Run(opts config.Options) error {
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(appTitle + " - Space: pause, Tab: renderer, S: snapshot, H: panel, R: reset, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := New(opts)
	defer g.cancel()

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.cancel()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.panel.visible = !g.panel.visible
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.store.reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.toggleRenderer()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.startSnapshot()
	}

	in := g.input.read()
	captured := g.panel.update(in, g.store)
	g.pointer.update(in, g.w, g.h, captured)

	if !g.paused {
		g.elapsed += 1 / float64(ebiten.TPS())
	}
	return nil
}

func (g *Game) toggleRenderer() {
	if g.gpu == nil {
		g.setStatus("shader unavailable, staying on CPU", nil)
		return
	}
	g.software = !g.software
}

func (g *Game) frame() blob.Frame {
	return blob.Frame{Elapsed: g.elapsed, Width: g.w, Height: g.h}
}

func (g *Game) startSnapshot() {
	g.mu.Lock()
	if g.saving {
		g.mu.Unlock()
		return
	}
	g.saving = true
	g.mu.Unlock()

	req := snapshotRequest{
		frame:   g.frame(),
		pointer: g.pointer.pointer(),
		params:  g.store.snapshot(),
		tonemap: g.cpu.tonemap,
	}
	go func() {
		path, err := saveSnapshot(g.ctx, req)
		g.mu.Lock()
		g.saving = false
		g.mu.Unlock()
		switch {
		case err != nil:
			log.Printf("snapshot: %v", err)
			g.setStatus("", err)
		case path != "":
			g.setStatus("saved "+path, nil)
		}
	}()
}

func (g *Game) setStatus(msg string, err error) {
	g.mu.Lock()
	g.status = msg
	g.lastErr = err
	g.mu.Unlock()
}

func (g *Game) Draw(screen *ebiten.Image) {
	frame := g.frame()
	pointer := g.pointer.pointer()
	params := g.store.snapshot()

	if g.software || g.gpu == nil {
		if err := g.cpu.draw(g.ctx, screen, frame, pointer, params); err != nil && !errors.Is(err, context.Canceled) {
			g.setStatus("", err)
		}
	} else {
		g.gpu.draw(screen, frame, pointer, params)
	}

	g.panel.draw(screen, params)
	ebitenutil.DebugPrintAt(screen, g.statusLine(), 12, g.h-20)
}

func (g *Game) statusLine() string {
	mode := "GPU"
	if g.software || g.gpu == nil {
		mode = "CPU"
	}
	status := fmt.Sprintf("%s %s  %.0f FPS", mode, formatDuration(seconds(g.elapsed)), ebiten.ActualFPS())
	if g.paused {
		status += "  paused"
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.saving {
		status += "  saving..."
	}
	if g.status != "" {
		status += "  " + g.status
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	return status
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.w = max(1, outsideWidth)
	g.h = max(1, outsideHeight)
	return g.w, g.h
}
