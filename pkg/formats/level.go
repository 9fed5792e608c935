// Package formats provides parsers for terrain level files.
package formats

import (
	"errors"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
)

// MinLevelSize is the smallest width or depth a level may declare.
// A clamped cubic spline needs at least degree+2 control points per axis.
const MinLevelSize = 5

// Level format errors.
var (
	ErrInvalidLevel  = errors.New("invalid level data")
	ErrLevelTooSmall = errors.New("level dimensions below minimum")
	ErrAltitudeCount = errors.New("altitude sample count does not match dimensions")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Level is a heightfield level description.
//
// Altitude holds Width*Depth samples; the sample for grid column i and row j
// is Altitude[i*Depth+j].
type Level struct {
	Width    uint32    `json:"width"`
	Depth    uint32    `json:"depth"`
	Altitude []float32 `json:"altitude"`
}

// At returns the altitude sample at column i, row j.
func (l *Level) At(i, j int) float32 {
	return l.Altitude[i*int(l.Depth)+j]
}

// Validate checks dimensions and sample count.
func (l *Level) Validate() error {
	if l.Width < MinLevelSize || l.Depth < MinLevelSize {
		return fmt.Errorf("%w: %dx%d (minimum %d)", ErrLevelTooSmall, l.Width, l.Depth, MinLevelSize)
	}
	if want := uint64(l.Width) * uint64(l.Depth); uint64(len(l.Altitude)) != want {
		return fmt.Errorf("%w: got %d, want %d", ErrAltitudeCount, len(l.Altitude), want)
	}
	return nil
}

// ParseLevel parses and validates a level from raw JSON bytes.
func ParseLevel(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// LoadLevel reads and parses a level file.
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level: %w", err)
	}
	lvl, err := ParseLevel(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lvl, nil
}

// Encode serialises the level as indented JSON.
func (l *Level) Encode() ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// SaveLevel writes the level to path.
func (l *Level) SaveLevel(path string) error {
	data, err := l.Encode()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
