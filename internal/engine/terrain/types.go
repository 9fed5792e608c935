// Package terrain builds a smooth B-spline terrain surface from a height grid,
// tessellates it into a renderable mesh and answers height queries at
// arbitrary world positions.
package terrain

import (
	"errors"

	"github.com/Faultbox/spline-terrain/pkg/math"
)

// MinGridSize is the smallest grid width or depth a cubic surface accepts.
const MinGridSize = 5

// MaxVertices is the largest vertex count addressable by 16-bit indices.
const MaxVertices = 1<<16 - 1

// Construction errors.
var (
	ErrGridTooSmall    = errors.New("grid dimensions below minimum")
	ErrHeightCount     = errors.New("height sample count does not match grid dimensions")
	ErrInvalidSlices   = errors.New("slices per tile must be positive")
	ErrTooManyVertices = errors.New("vertex count exceeds 16-bit index range")
)

// Vertex is a tessellated surface vertex, laid out for GPU upload.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Sample is the surface evaluated at one parametric coordinate.
// Tangents are unit length.
type Sample struct {
	Position math.Vec3
	TangentS math.Vec3
	TangentT math.Vec3
}

// Mesh holds the tessellated surface ready for GPU upload.
//
// Vertices are stored column-major: the vertex for tessellation column c and
// row r lives at index c*(Rows+1)+r. Because surface x grows with the column
// and z with the row, the slice is sorted by x then z, which Locate relies on.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint16
	Columns  int // slices along x
	Rows     int // slices along z
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// PerColumn returns the number of vertices in one tessellation column.
func (m *Mesh) PerColumn() int {
	return m.Rows + 1
}

// At returns the vertex at tessellation column c, row r.
func (m *Mesh) At(c, r int) *Vertex {
	return &m.Vertices[c*m.PerColumn()+r]
}
