package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/iburimskiy/blob-field/internal/blob"
)

// ErrInvalid is returned for command-line values outside their range.
var ErrInvalid = errors.New("invalid option")

// Options is the parsed command line.
type Options struct {
	Params blob.Params

	// Software forces the CPU renderer instead of the shader.
	Software bool

	// Snapshot, when set, renders one frame to this PNG path and exits.
	Snapshot string
	Width    int
	Height   int
	Time     float64
	Pointer  blob.Pointer
	Tonemap  string
}

// Parse reads args (without the program name). Parameter flags are checked
// against the slider ranges rather than silently clamped.
func Parse(args []string, output io.Writer) (Options, error) {
	opts := Options{
		Params: Defaults(),
		Width:  WindowWidth,
		Height: WindowHeight,
	}

	fs := flag.NewFlagSet("blobfield", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.BoolVar(&opts.Software, "software", false, "Render on the CPU instead of the GPU shader")
	fs.StringVar(&opts.Snapshot, "snapshot", "", "Render a single frame to this PNG file and exit")
	fs.IntVar(&opts.Width, "width", WindowWidth, "Snapshot width in pixels")
	fs.IntVar(&opts.Height, "height", WindowHeight, "Snapshot height in pixels")
	fs.Float64Var(&opts.Time, "time", 0, "Snapshot clock in seconds")
	fs.StringVar(&opts.Tonemap, "tonemap", "clamp", "Snapshot tone mapping: clamp or reinhard")
	pointer := fs.String("pointer", "", "Snapshot pointer glow position as x,y in [0,1] (y up)")

	values := make(map[string]*float64, len(Controls))
	for _, c := range Controls {
		v := c.Value(opts.Params)
		values[c.ID] = &v
		fs.Float64Var(values[c.ID], c.ID, v, fmt.Sprintf("%s in [%g, %g]", c.Label, c.Range.Min, c.Range.Max))
	}

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	if fs.NArg() > 0 {
		return Options{}, fmt.Errorf("%w: unknown arguments %v", ErrInvalid, fs.Args())
	}

	for _, c := range Controls {
		v := *values[c.ID]
		if v < c.Range.Min || v > c.Range.Max || math.IsNaN(v) {
			return Options{}, fmt.Errorf("%w: -%s=%g outside [%g, %g]", ErrInvalid, c.ID, v, c.Range.Min, c.Range.Max)
		}
		*c.get(&opts.Params) = v
	}

	if opts.Width <= 0 || opts.Height <= 0 {
		return Options{}, fmt.Errorf("%w: size %dx%d", ErrInvalid, opts.Width, opts.Height)
	}
	if opts.Time < 0 {
		return Options{}, fmt.Errorf("%w: -time=%g is negative", ErrInvalid, opts.Time)
	}
	switch opts.Tonemap {
	case "clamp", "reinhard":
	default:
		return Options{}, fmt.Errorf("%w: -tonemap=%q", ErrInvalid, opts.Tonemap)
	}

	if *pointer != "" {
		p, err := ParsePointer(*pointer)
		if err != nil {
			return Options{}, err
		}
		opts.Pointer = p
	}

	return opts, nil
}

// ParsePointer reads "x,y" into an active pointer.
func ParsePointer(s string) (blob.Pointer, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return blob.Pointer{}, fmt.Errorf("%w: pointer %q, want x,y", ErrInvalid, s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return blob.Pointer{}, fmt.Errorf("%w: pointer x: %v", ErrInvalid, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return blob.Pointer{}, fmt.Errorf("%w: pointer y: %v", ErrInvalid, err)
	}
	if x < 0 || x > 1 || y < 0 || y > 1 {
		return blob.Pointer{}, fmt.Errorf("%w: pointer %g,%g outside [0,1]", ErrInvalid, x, y)
	}
	return blob.Pointer{X: x, Y: y, Active: true}, nil
}
