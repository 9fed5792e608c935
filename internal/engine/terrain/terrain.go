package terrain

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/spline-terrain/internal/logger"
	"github.com/Faultbox/spline-terrain/pkg/formats"
)

// Terrain is a fully built surface: control grid, spline surface and its
// tessellated mesh. It is immutable once New returns and may be queried from
// several goroutines.
type Terrain struct {
	surface *Surface
	mesh    *Mesh
}

// New builds the surface and tessellates it. It either returns a complete
// terrain or an error; there is no partially initialized state.
func New(grid *Grid, slicesPerTile int) (*Terrain, error) {
	start := time.Now()

	surface := NewSurface(grid)
	mesh, err := Tessellate(surface, slicesPerTile)
	if err != nil {
		return nil, err
	}

	logger.Named("terrain").Debug("terrain built",
		zap.Int("width", grid.Width),
		zap.Int("depth", grid.Depth),
		zap.Int("slices_per_tile", slicesPerTile),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", len(mesh.Indices)/3),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &Terrain{surface: surface, mesh: mesh}, nil
}

// FromLevel validates a level and builds its terrain.
func FromLevel(lvl *formats.Level, slicesPerTile int) (*Terrain, error) {
	grid, err := GridFromLevel(lvl)
	if err != nil {
		return nil, fmt.Errorf("building grid: %w", err)
	}
	return New(grid, slicesPerTile)
}

// Altitude returns the surface height at world (x, z). Positions outside the
// grid are clamped to its edge.
func (tr *Terrain) Altitude(x, z float32) float32 {
	s, t := tr.mesh.Locate(x, z)
	return tr.surface.Height(s, t)
}

// Size returns the grid dimensions.
func (tr *Terrain) Size() (width, depth int) {
	return tr.surface.grid.Width, tr.surface.grid.Depth
}

// Extent returns the largest world x and z covered by the terrain.
func (tr *Terrain) Extent() (maxX, maxZ float32) {
	return tr.surface.grid.Extent()
}

// Mesh returns the tessellated mesh. Callers must not modify it.
func (tr *Terrain) Mesh() *Mesh {
	return tr.mesh
}

// Surface returns the spline surface.
func (tr *Terrain) Surface() *Surface {
	return tr.surface
}
