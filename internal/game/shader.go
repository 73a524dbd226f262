package game

import (
	_ "embed"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/blob-field/internal/blob"
)

//go:embed shaders/blobfield.kage
var blobShaderSrc []byte

func loadShader() (*ebiten.Shader, error) {
	s, err := ebiten.NewShader(blobShaderSrc)
	if err != nil {
		return nil, fmt.Errorf("compile blob shader: %w", err)
	}
	return s, nil
}

// uniforms binds one frame's inputs to the shader variables.
func uniforms(frame blob.Frame, pointer blob.Pointer, params blob.Params) map[string]any {
	down := float32(0)
	if pointer.Active {
		down = 1
	}
	return map[string]any{
		"Time":        float32(frame.Elapsed),
		"Resolution":  []float32{float32(frame.Width), float32(frame.Height)},
		"Mouse":       []float32{float32(pointer.X), float32(pointer.Y)},
		"MouseDown":   down,
		"Amount":      float32(params.BlobCount),
		"Size":        float32(params.BlobSize),
		"Speed":       float32(params.Speed),
		"Viscosity":   float32(params.Viscosity),
		"Dissipation": float32(params.Dissipation),
		"ColorValue":  float32(params.HueBase),
		"ColorRange":  float32(params.HueRange),
	}
}

// shaderRenderer draws the field on the GPU.
type shaderRenderer struct {
	shader *ebiten.Shader
	opts   ebiten.DrawRectShaderOptions
}

func (r *shaderRenderer) draw(screen *ebiten.Image, frame blob.Frame, pointer blob.Pointer, params blob.Params) {
	r.opts.Uniforms = uniforms(frame, pointer, params)
	screen.DrawRectShader(frame.Width, frame.Height, r.shader, &r.opts)
}
