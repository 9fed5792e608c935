package terrain

import (
	gomath "math"
	"sync"

	"github.com/Faultbox/spline-terrain/pkg/math"
	"github.com/Faultbox/spline-terrain/pkg/spline"
)

const (
	// paramEpsilon replaces parameters at or below zero; the degree-0 basis
	// span is open at its lower knot.
	paramEpsilon = 1e-10

	// tangentEpsilon is the length below which a tangent is treated as
	// degenerate and replaced by its axis direction.
	tangentEpsilon = 1e-9
)

// Surface is a clamped cubic tensor-product B-spline over a Grid.
type Surface struct {
	grid   *Grid
	knotsW spline.Knots
	knotsD spline.Knots

	scratch sync.Pool // *basisRows
}

// basisRows holds the basis and derivative values along each axis for one
// evaluation.
type basisRows struct {
	bs, ds []float64
	bt, dt []float64
}

// NewSurface builds the knot vectors for both grid axes.
func NewSurface(grid *Grid) *Surface {
	return &Surface{
		grid:   grid,
		knotsW: spline.ClampedKnots(grid.Width, spline.Degree),
		knotsD: spline.ClampedKnots(grid.Depth, spline.Degree),
	}
}

// Grid returns the control grid.
func (sf *Surface) Grid() *Grid {
	return sf.grid
}

// Knots returns the knot vectors along the width (s) and depth (t) axes.
func (sf *Surface) Knots() (width, depth spline.Knots) {
	return sf.knotsW, sf.knotsD
}

// Evaluate returns position and unit tangents at parametric (s, t) in [0,1]².
// Parameters at or below zero are nudged to a small epsilon and parameters
// above one are clamped.
func (sf *Surface) Evaluate(s, t float32) Sample {
	ps := clampParam(float64(s))
	pt := clampParam(float64(t))

	rows := sf.rows()
	defer sf.scratch.Put(rows)

	rows.bs = spline.Weights(rows.bs, spline.Degree, ps, sf.knotsW)
	rows.ds = spline.DerivativeWeights(rows.ds, spline.Degree, ps, sf.knotsW)
	rows.bt = spline.Weights(rows.bt, spline.Degree, pt, sf.knotsD)
	rows.dt = spline.DerivativeWeights(rows.dt, spline.Degree, pt, sf.knotsD)
	bs, ds, bt, dt := rows.bs, rows.ds, rows.bt, rows.dt

	var pos, tanS, tanT [3]float64

	for i := range sf.grid.Width {
		if bs[i] == 0 && ds[i] == 0 {
			continue
		}
		for j := range sf.grid.Depth {
			if bt[j] == 0 && dt[j] == 0 {
				continue
			}
			cp := [3]float64{float64(i), float64(sf.grid.At(i, j)), float64(j)}

			wp := bs[i] * bt[j]
			ws := ds[i] * bt[j]
			wt := bs[i] * dt[j]

			for k := range 3 {
				pos[k] += wp * cp[k]
				tanS[k] += ws * cp[k]
				tanT[k] += wt * cp[k]
			}
		}
	}

	return Sample{
		Position: toVec3(pos),
		TangentS: unitOr(tanS, math.Vec3{X: 1}),
		TangentT: unitOr(tanT, math.Vec3{Z: 1}),
	}
}

// Height returns the surface height at parametric (s, t).
func (sf *Surface) Height(s, t float32) float32 {
	return sf.Evaluate(s, t).Position.Y
}

func (sf *Surface) rows() *basisRows {
	if r, ok := sf.scratch.Get().(*basisRows); ok {
		return r
	}
	return &basisRows{
		bs: make([]float64, sf.grid.Width),
		ds: make([]float64, sf.grid.Width),
		bt: make([]float64, sf.grid.Depth),
		dt: make([]float64, sf.grid.Depth),
	}
}

func clampParam(p float64) float64 {
	if p <= 0 {
		return paramEpsilon
	}
	if p > 1 {
		return 1
	}
	return p
}

// unitOr normalizes v in double precision, returning fallback for degenerate
// or non-finite input.
func unitOr(v [3]float64, fallback math.Vec3) math.Vec3 {
	l := gomath.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l < tangentEpsilon || gomath.IsNaN(l) || gomath.IsInf(l, 0) {
		return fallback
	}
	return math.Vec3{X: float32(v[0] / l), Y: float32(v[1] / l), Z: float32(v[2] / l)}
}

func toVec3(v [3]float64) math.Vec3 {
	return math.Vec3{X: float32(v[0]), Y: float32(v[1]), Z: float32(v[2])}
}
