// terraintool is a CLI utility for inspecting, generating and exporting
// spline terrain levels.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/spline-terrain/internal/assets"
	"github.com/Faultbox/spline-terrain/internal/config"
	"github.com/Faultbox/spline-terrain/internal/engine/terrain"
	"github.com/Faultbox/spline-terrain/internal/levelgen"
	"github.com/Faultbox/spline-terrain/internal/logger"
)

const defaultSlices = 16

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if lvl := os.Getenv("TERRAINTOOL_LOG"); lvl != "" {
		if err := logger.Init(lvl, ""); err != nil {
			fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
			os.Exit(1)
		}
	}

	err := run(os.Args[1], os.Args[2:], os.Stdout)
	if err != nil {
		logger.Error("command failed", zap.String("command", os.Args[1]), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	logger.Sync()

	if errors.Is(err, errUnknownCommand) {
		printUsage(os.Stderr)
	}
	if err != nil {
		os.Exit(1)
	}
}

var errUnknownCommand = errors.New("unknown command")

// run executes one command, writing its report to out. Deferred cleanup in
// the commands has finished by the time it returns.
func run(command string, args []string, out io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch command {
	case "info":
		return cmdInfo(ctx, args, out)
	case "altitude", "alt":
		return cmdAltitude(ctx, args, out)
	case "export":
		return cmdExport(ctx, args, out)
	case "gen", "generate":
		return cmdGen(args, out)
	case "fetch":
		return cmdFetch(ctx, args, out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		return fmt.Errorf("%w: %s", errUnknownCommand, command)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `terraintool - spline terrain level utility

Usage:
  terraintool <command> [options]

Commands:
  info [-slices N] <level>             Show level and mesh information
  altitude [-slices N] <level> <x> <z> Print the surface height at (x, z)
  export [-slices N] <level> <out.obj> Export the tessellated mesh as OBJ
  gen [options] <out.json>             Generate a Perlin noise level
  fetch [-dir D] <source>              Download a level into the cache

Levels may be local paths or go-getter sources (https://, git::, s3::).
Set TERRAINTOOL_LOG=debug for logging.

Examples:
  terraintool info level.json
  terraintool altitude level.json 2.5 3
  terraintool export -slices 8 level.json level.obj
  terraintool gen -width 32 -depth 24 -seed 7 hills.json
  terraintool fetch https://example.com/levels/alps.json`)
}

func usageError(usage string) error {
	return fmt.Errorf("usage: terraintool %s", usage)
}

// loadTerrain parses the shared -slices flag, loads the first positional
// argument as a level and builds its terrain.
func loadTerrain(ctx context.Context, name string, args []string, usage string) (*terrain.Terrain, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	slices := fs.Int("slices", defaultSlices, "Tessellation slices per grid cell")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	if fs.NArg() < 1 {
		return nil, nil, usageError(usage)
	}

	mgr := assets.NewManager(filepath.Join(config.ConfigDir(), "levels"))
	defer mgr.Close()

	lvl, err := mgr.Load(ctx, fs.Arg(0))
	if err != nil {
		return nil, nil, err
	}
	tr, err := terrain.FromLevel(lvl, *slices)
	if err != nil {
		return nil, nil, err
	}
	return tr, fs.Args()[1:], nil
}

func cmdInfo(ctx context.Context, args []string, out io.Writer) error {
	tr, _, err := loadTerrain(ctx, "info", args, "info [-slices N] <level>")
	if err != nil {
		return err
	}
	mesh := tr.Mesh()
	w, d := tr.Size()
	maxX, maxZ := tr.Extent()

	fmt.Fprintf(out, "Grid:      %d x %d control points\n", w, d)
	fmt.Fprintf(out, "Extent:    x 0..%g, z 0..%g\n", maxX, maxZ)
	fmt.Fprintf(out, "Slices:    %d x %d\n", mesh.Columns, mesh.Rows)
	fmt.Fprintf(out, "Vertices:  %d (limit %d)\n", len(mesh.Vertices), terrain.MaxVertices)
	fmt.Fprintf(out, "Triangles: %d\n", len(mesh.Indices)/3)
	fmt.Fprintf(out, "Bounds:    min %v\n", mesh.Bounds.Min)
	fmt.Fprintf(out, "           max %v\n", mesh.Bounds.Max)
	return nil
}

func cmdAltitude(ctx context.Context, args []string, out io.Writer) error {
	usage := "altitude [-slices N] <level> <x> <z>"
	tr, rest, err := loadTerrain(ctx, "altitude", args, usage)
	if err != nil {
		return err
	}
	if len(rest) < 2 {
		return usageError(usage)
	}

	x, err := strconv.ParseFloat(rest[0], 32)
	if err != nil {
		return fmt.Errorf("invalid x %q: %w", rest[0], err)
	}
	z, err := strconv.ParseFloat(rest[1], 32)
	if err != nil {
		return fmt.Errorf("invalid z %q: %w", rest[1], err)
	}

	s, t := tr.Mesh().Locate(float32(x), float32(z))
	fmt.Fprintf(out, "s=%g t=%g altitude=%g\n", s, t, tr.Altitude(float32(x), float32(z)))
	return nil
}

func cmdExport(ctx context.Context, args []string, out io.Writer) error {
	usage := "export [-slices N] <level> <out.obj>"
	tr, rest, err := loadTerrain(ctx, "export", args, usage)
	if err != nil {
		return err
	}
	if len(rest) < 1 {
		return usageError(usage)
	}

	path := rest[0]
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if err := tr.Mesh().WriteOBJ(f, name); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Fprintf(out, "Wrote %s (%d vertices, %d triangles)\n", path, len(tr.Mesh().Vertices), len(tr.Mesh().Indices)/3)
	return nil
}

func cmdGen(args []string, out io.Writer) error {
	def := levelgen.DefaultOptions()

	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	width := fs.Int("width", def.Width, "Grid width in control points")
	depth := fs.Int("depth", def.Depth, "Grid depth in control points")
	seed := fs.Int64("seed", def.Seed, "Noise seed")
	amplitude := fs.Float64("amplitude", float64(def.Amplitude), "Peak height")
	frequency := fs.Float64("frequency", def.Frequency, "Noise frequency per grid step")
	octaves := fs.Int("octaves", def.Octaves, "Noise octaves")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return usageError("gen [options] <out.json>")
	}

	lvl, err := levelgen.Generate(levelgen.Options{
		Width:     *width,
		Depth:     *depth,
		Seed:      *seed,
		Amplitude: float32(*amplitude),
		Frequency: *frequency,
		Octaves:   *octaves,
	})
	if err != nil {
		return err
	}

	path := fs.Arg(0)
	if err := lvl.SaveLevel(path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s (%d x %d)\n", path, lvl.Width, lvl.Depth)
	return nil
}

func cmdFetch(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	dir := fs.String("dir", filepath.Join(config.ConfigDir(), "levels"), "Cache directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return usageError("fetch [-dir D] <source>")
	}

	mgr := assets.NewManager(*dir)
	defer mgr.Close()

	path, err := mgr.Fetch(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, path)
	return nil
}
