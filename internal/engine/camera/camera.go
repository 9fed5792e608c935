// Package camera provides a first-person camera that walks on the terrain.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/spline-terrain/pkg/math"
)

// Direction is a movement direction relative to where the camera looks.
type Direction int

const (
	Forward Direction = iota
	Back
	Left
	Right
)

// AltitudeFunc returns the ground height at world (x, z).
type AltitudeFunc func(x, z float32) float32

// Default tuning values.
const (
	DefaultEyeHeight = 0.5
	DefaultMoveSpeed = 1
	DefaultTurnSpeed = 0.1

	maxPitch = 89
)

// WalkCamera follows the ground at a fixed eye height.
// Yaw and pitch are in degrees.
type WalkCamera struct {
	Position math.Vec3
	Yaw      float32
	Pitch    float32

	EyeHeight float32
	MoveSpeed float32 // world units per second
	TurnSpeed float32 // degrees per unit of mouse motion

	// Movement is clamped to [0, MaxX] x [0, MaxZ].
	MaxX, MaxZ float32

	front math.Vec3
	right math.Vec3
	up    math.Vec3
}

// NewWalkCamera creates a camera at the origin looking 45 degrees between +X and +Z.
func NewWalkCamera() *WalkCamera {
	c := &WalkCamera{
		Yaw:       45,
		EyeHeight: DefaultEyeHeight,
		MoveSpeed: DefaultMoveSpeed,
		TurnSpeed: DefaultTurnSpeed,
	}
	c.updateVectors()
	return c
}

// SetBounds sets the largest x and z the camera may walk to.
func (c *WalkCamera) SetBounds(maxX, maxZ float32) {
	c.MaxX = maxX
	c.MaxZ = maxZ
}

// Move walks the camera in direction d for dt seconds and puts the eye
// EyeHeight above the ground. A nil altitude keeps the ground at zero.
func (c *WalkCamera) Move(d Direction, dt float32, altitude AltitudeFunc) {
	velocity := c.MoveSpeed * dt

	switch d {
	case Forward:
		c.Position = c.Position.Add(c.front.Scale(velocity))
	case Back:
		c.Position = c.Position.Sub(c.front.Scale(velocity))
	case Right:
		c.Position = c.Position.Add(c.right.Scale(velocity))
	case Left:
		c.Position = c.Position.Sub(c.right.Scale(velocity))
	}

	c.Place(c.Position.X, c.Position.Z, altitude)
}

// Place puts the camera at (x, z), clamped to the bounds, at eye height above
// the ground.
func (c *WalkCamera) Place(x, z float32, altitude AltitudeFunc) {
	c.Position.X = math.Clamp(x, 0, c.MaxX)
	c.Position.Z = math.Clamp(z, 0, c.MaxZ)

	var ground float32
	if altitude != nil {
		ground = altitude(c.Position.X, c.Position.Z)
	}
	c.Position.Y = ground + c.EyeHeight
}

// Tilt turns the camera by a mouse delta. Pitch stops short of straight up or down.
func (c *WalkCamera) Tilt(dx, dy float32) {
	c.Yaw += dx * c.TurnSpeed
	c.Pitch = math.Clamp(c.Pitch+dy*c.TurnSpeed, -maxPitch, maxPitch)
	c.updateVectors()
}

// Front returns the unit view direction.
func (c *WalkCamera) Front() math.Vec3 {
	return c.front
}

// ViewMatrix returns the view matrix for the current position and orientation.
func (c *WalkCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.front), c.up)
}

func (c *WalkCamera) updateVectors() {
	yaw := math.Radians(c.Yaw)
	pitch := math.Radians(c.Pitch)

	c.front = math.Vec3{
		X: math32.Cos(yaw) * math32.Cos(pitch),
		Y: math32.Sin(pitch),
		Z: math32.Sin(yaw) * math32.Cos(pitch),
	}.Normalize()
	c.right = c.front.Cross(math.Up).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}
