package terrain

import (
	"sort"

	"github.com/chewxy/math32"

	"github.com/Faultbox/spline-terrain/pkg/math"
)

// positionTolerance is how close two coordinates must be to compare equal
// while searching the lattice.
const positionTolerance = 1e-5

// Locate maps a world (x, z) position to the approximate parametric (s, t)
// that generated the nearest lattice point.
//
// The column-major vertex sequence is binary searched for the first vertex
// not less than (x, z), ordering by x then z. The search starts at column 1
// and the row is refined within the found column over rows 1..Rows, so the
// found vertex always has a predecessor column and row to interpolate from.
// Positions outside the lattice are clamped: the result never leaves [0,1]².
func (m *Mesh) Locate(x, z float32) (s, t float32) {
	perCol := m.PerColumn()
	n := len(m.Vertices)

	// Lower bound over the flattened sequence, skipping column 0.
	lo := perCol
	k := lo + sort.Search(n-lo, func(i int) bool {
		return !lessXZ(m.Vertices[lo+i].Position, x, z)
	})
	if k >= n {
		k = n - 1
	}

	col := k / perCol

	// Lower bound on z within the column, rows 1..Rows.
	base := col * perCol
	row := 1 + sort.Search(m.Rows, func(i int) bool {
		return !less(m.Vertices[base+1+i].Position[2], z)
	})
	if row > m.Rows {
		row = m.Rows
	}

	incS := 1 / float32(m.Columns)
	incT := 1 / float32(m.Rows)

	current := m.At(col, row).Position
	previous := m.At(col-1, row-1).Position

	st := math.Vec2{
		X: float32(col-1)*incS + lerpFraction(x, previous[0], current[0])*incS,
		Y: float32(row-1)*incT + lerpFraction(z, previous[2], current[2])*incT,
	}.Clamp(0, 1)

	return st.X, st.Y
}

// lessXZ orders a position before (x, z) by x, then by z when x ties.
func lessXZ(p [3]float32, x, z float32) bool {
	if different(p[0], x) {
		return p[0] < x
	}
	return less(p[2], z)
}

func less(a, b float32) bool {
	return different(a, b) && a < b
}

func different(a, b float32) bool {
	return math32.Abs(a-b) > positionTolerance
}

// lerpFraction returns where v sits between lo and hi, as a fraction of the
// span. The span is never zero on a valid lattice; a zero span yields 0.
func lerpFraction(v, lo, hi float32) float32 {
	span := hi - lo
	if span == 0 {
		return 0
	}
	return (v - lo) / span
}
