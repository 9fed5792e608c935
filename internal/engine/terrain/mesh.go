package terrain

import (
	"fmt"

	"github.com/Faultbox/spline-terrain/pkg/math"
)

// Tessellate samples the surface on a regular parametric lattice with
// slicesPerTile subdivisions per grid cell and builds a triangle mesh.
//
// Vertices are emitted column by column, all rows of a column before the next
// column, so the sequence is ordered by x then z. Each cell gets two
// counter-clockwise (seen from +Y) triangles.
func Tessellate(sf *Surface, slicesPerTile int) (*Mesh, error) {
	if slicesPerTile < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSlices, slicesPerTile)
	}

	grid := sf.Grid()
	if grid.Width*grid.Depth > MaxVertices {
		return nil, fmt.Errorf("%w: grid has %d control points", ErrTooManyVertices, grid.Width*grid.Depth)
	}

	cols := (grid.Width - 1) * slicesPerTile
	rows := (grid.Depth - 1) * slicesPerTile

	if count := (cols + 1) * (rows + 1); count > MaxVertices {
		return nil, fmt.Errorf("%w: %d vertices for %dx%d grid at %d slices per tile",
			ErrTooManyVertices, count, grid.Width, grid.Depth, slicesPerTile)
	}

	mesh := &Mesh{
		Vertices: make([]Vertex, 0, (cols+1)*(rows+1)),
		Indices:  make([]uint16, 0, cols*rows*6),
		Columns:  cols,
		Rows:     rows,
		Bounds: Bounds{
			Min: [3]float32{1e10, 1e10, 1e10},
			Max: [3]float32{-1e10, -1e10, -1e10},
		},
	}

	texScaleS := float32(grid.Width - 1)
	texScaleT := float32(grid.Depth - 1)

	// Vertices, including both ends
	for c := 0; c <= cols; c++ {
		s := float32(c) / float32(cols)
		for r := 0; r <= rows; r++ {
			t := float32(r) / float32(rows)

			sample := sf.Evaluate(s, t)
			pos := sample.Position.Array()

			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: pos,
				Normal:   surfaceNormal(sample).Array(),
				TexCoord: [2]float32{s * texScaleS, t * texScaleT},
			})
			updateBounds(&mesh.Bounds, pos)
		}
	}

	// Indices, excluding the last column and row
	perCol := rows + 1
	for c := range cols {
		for r := range rows {
			a := uint16(c*perCol + r)
			b := uint16(c*perCol + r + 1)
			cc := uint16((c+1)*perCol + r)
			d := uint16((c+1)*perCol + r + 1)

			mesh.Indices = append(mesh.Indices,
				a, b, cc,
				d, cc, b,
			)
		}
	}

	return mesh, nil
}

// surfaceNormal returns the unit normal of a sample. s runs along +X and t
// along +Z, so TangentT x TangentS points up on an unfolded surface.
func surfaceNormal(sample Sample) math.Vec3 {
	return sample.TangentT.Cross(sample.TangentS).NormalizeOr(math.Up, tangentEpsilon)
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := range 3 {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
}
