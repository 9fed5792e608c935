// Package spline provides clamped B-spline knot vectors and basis functions.
package spline

// Degree is the polynomial degree used for terrain surfaces (cubic).
const Degree = 3

// Knots is a non-decreasing sequence of parameter values.
type Knots []float64

// ClampedKnots builds a clamped, uniformly spaced knot vector for count
// control points. The result has count+degree+1 entries; the first and last
// degree+1 entries are 0 and 1 respectively.
func ClampedKnots(count, degree int) Knots {
	knots := make(Knots, 0, count+degree+1)
	for range degree {
		knots = append(knots, 0)
	}
	span := float64(count - degree)
	for k := degree; k <= count; k++ {
		knots = append(knots, float64(k-degree)/span)
	}
	for range degree {
		knots = append(knots, 1)
	}
	return knots
}

// Valid reports whether the vector is non-decreasing and clamped for the
// given degree.
func (k Knots) Valid(degree int) bool {
	if len(k) < 2*(degree+1) {
		return false
	}
	for i := 1; i < len(k); i++ {
		if k[i] < k[i-1] {
			return false
		}
	}
	first, last := k[0], k[len(k)-1]
	for i := 0; i <= degree; i++ {
		if k[i] != first || k[len(k)-1-i] != last {
			return false
		}
	}
	return true
}

// Count returns the number of basis functions (control points) the vector
// supports at the given degree.
func (k Knots) Count(degree int) int {
	return len(k) - degree - 1
}
