package spline

// Basis evaluates the Cox–de Boor basis function N(k, m) at t.
//
// Degree 0 uses the half-open span (knots[k], knots[k+1]], so t must be
// strictly greater than the first knot to receive any weight. Terms whose
// knot span is zero (repeated knots at the clamped ends) contribute 0.
func Basis(m, k int, t float64, knots Knots) float64 {
	if m == 0 {
		if knots[k] < t && t <= knots[k+1] {
			return 1
		}
		return 0
	}

	var sum float64

	if den := knots[m+k] - knots[k]; den != 0 {
		sum += (t - knots[k]) / den * Basis(m-1, k, t, knots)
	}
	if den := knots[m+k+1] - knots[k+1]; den != 0 {
		sum += (knots[m+k+1] - t) / den * Basis(m-1, k+1, t, knots)
	}

	return sum
}

// BasisDerivative evaluates dN(k, m)/dt at t.
func BasisDerivative(m, k int, t float64, knots Knots) float64 {
	if m == 0 {
		return 0
	}

	var d float64

	if den := knots[m+k] - knots[k]; den != 0 {
		d += float64(m) / den * Basis(m-1, k, t, knots)
	}
	if den := knots[m+k+1] - knots[k+1]; den != 0 {
		d -= float64(m) / den * Basis(m-1, k+1, t, knots)
	}

	return d
}

// Weights fills dst with Basis(degree, k, t) for every k and returns it.
// dst is grown as needed.
func Weights(dst []float64, degree int, t float64, knots Knots) []float64 {
	n := knots.Count(degree)
	dst = grow(dst, n)
	for k := range n {
		dst[k] = Basis(degree, k, t, knots)
	}
	return dst
}

// DerivativeWeights fills dst with BasisDerivative(degree, k, t) for every k.
func DerivativeWeights(dst []float64, degree int, t float64, knots Knots) []float64 {
	n := knots.Count(degree)
	dst = grow(dst, n)
	for k := range n {
		dst[k] = BasisDerivative(degree, k, t, knots)
	}
	return dst
}

func grow(s []float64, n int) []float64 {
	if cap(s) < n {
		return make([]float64, n)
	}
	return s[:n]
}
