package terrain

import (
	"fmt"

	"github.com/Faultbox/spline-terrain/pkg/formats"
	"github.com/Faultbox/spline-terrain/pkg/math"
)

// Grid is the control grid: Width x Depth height samples.
// The sample for column i, row j is At(i, j).
type Grid struct {
	Width   int
	Depth   int
	heights []float32
}

// NewGrid validates the dimensions and copies the samples.
func NewGrid(width, depth int, heights []float32) (*Grid, error) {
	if width < MinGridSize || depth < MinGridSize {
		return nil, fmt.Errorf("%w: %dx%d (minimum %d)", ErrGridTooSmall, width, depth, MinGridSize)
	}
	if len(heights) != width*depth {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrHeightCount, len(heights), width*depth)
	}

	return &Grid{
		Width:   width,
		Depth:   depth,
		heights: append([]float32(nil), heights...),
	}, nil
}

// GridFromLevel builds a grid from a parsed level file.
func GridFromLevel(lvl *formats.Level) (*Grid, error) {
	return NewGrid(int(lvl.Width), int(lvl.Depth), lvl.Altitude)
}

// At returns the height sample at column i, row j.
func (g *Grid) At(i, j int) float32 {
	return g.heights[i*g.Depth+j]
}

// ControlPoint returns the 3D control point for column i, row j. Grid indices
// double as world x and z.
func (g *Grid) ControlPoint(i, j int) math.Vec3 {
	return math.Vec3{X: float32(i), Y: g.At(i, j), Z: float32(j)}
}

// Extent returns the largest world x and z covered by the grid.
func (g *Grid) Extent() (maxX, maxZ float32) {
	return float32(g.Width - 1), float32(g.Depth - 1)
}
