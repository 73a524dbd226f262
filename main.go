package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/iburimskiy/blob-field/internal/blob"
	"github.com/iburimskiy/blob-field/internal/config"
	"github.com/iburimskiy/blob-field/internal/game"
	"github.com/iburimskiy/blob-field/internal/raster"
)

func main() {
	log.SetPrefix("blobfield: ")
	log.SetFlags(0)

	opts, err := config.Parse(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}

	if opts.Snapshot != "" {
		if err := snapshot(opts); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := game.Run(opts); err != nil {
		log.Fatal(err)
	}
}

// snapshot renders one frame without opening a window.
func snapshot(opts config.Options) error {
	tm, err := raster.ParseTonemap(opts.Tonemap)
	if err != nil {
		return err
	}
	frame := blob.Frame{Elapsed: opts.Time, Width: opts.Width, Height: opts.Height}

	field, err := raster.Render(context.Background(), frame, opts.Pointer, opts.Params, raster.Options{})
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := field.SavePNG(opts.Snapshot, tm); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	log.Printf("wrote %dx%d frame at t=%gs to %s", frame.Width, frame.Height, frame.Elapsed, opts.Snapshot)
	return nil
}
