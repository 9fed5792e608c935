// Package levelgen generates heightfield levels from Perlin noise.
package levelgen

import (
	"fmt"

	"github.com/aquilax/go-perlin"

	"github.com/Faultbox/spline-terrain/pkg/formats"
)

// Noise shape. Alpha is the per-octave amplitude falloff, beta the frequency
// multiplier.
const (
	alpha = 2.0
	beta  = 2.0
)

// Options controls the generated level.
type Options struct {
	Width     int
	Depth     int
	Seed      int64
	Amplitude float32 // peak height above or below zero
	Frequency float64 // noise frequency per grid step
	Octaves   int
}

// DefaultOptions returns a small rolling landscape.
func DefaultOptions() Options {
	return Options{
		Width:     16,
		Depth:     16,
		Seed:      1,
		Amplitude: 1.5,
		Frequency: 0.15,
		Octaves:   3,
	}
}

// Generate builds a level. The same options always give the same level.
func Generate(opts Options) (*formats.Level, error) {
	if opts.Width < formats.MinLevelSize || opts.Depth < formats.MinLevelSize {
		return nil, fmt.Errorf("%w: %dx%d (minimum %d)",
			formats.ErrLevelTooSmall, opts.Width, opts.Depth, formats.MinLevelSize)
	}
	if opts.Octaves < 1 {
		return nil, fmt.Errorf("octaves must be at least 1, got %d", opts.Octaves)
	}
	if opts.Frequency <= 0 {
		return nil, fmt.Errorf("frequency must be positive, got %v", opts.Frequency)
	}

	noise := perlin.NewPerlin(alpha, beta, opts.Octaves, opts.Seed)

	lvl := &formats.Level{
		Width:    uint32(opts.Width),
		Depth:    uint32(opts.Depth),
		Altitude: make([]float32, opts.Width*opts.Depth),
	}

	// Half-step offset keeps samples off the integer lattice, where
	// Perlin noise is zero.
	for i := range opts.Width {
		for j := range opts.Depth {
			x := (float64(i) + 0.5) * opts.Frequency
			z := (float64(j) + 0.5) * opts.Frequency
			lvl.Altitude[i*opts.Depth+j] = float32(noise.Noise2D(x, z)) * opts.Amplitude
		}
	}

	return lvl, lvl.Validate()
}
