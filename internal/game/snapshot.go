package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/blob-field/internal/blob"
	"github.com/iburimskiy/blob-field/internal/raster"
)

const appTitle = "Blob Field"

// snapshotRequest freezes the inputs of one frame so the save can finish
// after the live view has moved on.
type snapshotRequest struct {
	frame   blob.Frame
	pointer blob.Pointer
	params  blob.Params
	tonemap raster.Tonemap
}

// saveSnapshot asks for a path and writes the frame there at full
// resolution. It blocks on the dialog and is meant to run off the game loop.
func saveSnapshot(ctx context.Context, req snapshotRequest) (string, error) {
	filename, err := zenity.SelectFileSave(
		zenity.Title("Save Snapshot"),
		zenity.ConfirmOverwrite(),
		zenity.Filename("blobfield.png"),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", fmt.Errorf("save dialog: %w", err)
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".png") {
		filename += ".png"
	}

	field, err := raster.Render(ctx, req.frame, req.pointer, req.params, raster.Options{})
	if err != nil {
		return "", err
	}
	if err := field.SavePNG(filename, req.tonemap); err != nil {
		return "", err
	}
	log.Printf("snapshot: saved %dx%d frame to %s", req.frame.Width, req.frame.Height, filename)
	return filename, nil
}

// reportError shows a single error dialog. Failures of the dialog itself
// only reach the log.
func reportError(msg string) {
	log.Printf("error: %s", msg)
	if err := zenity.Error(msg, zenity.Title(appTitle), zenity.ErrorIcon); err != nil && !errors.Is(err, zenity.ErrCanceled) {
		log.Printf("error dialog: %v", err)
	}
}
