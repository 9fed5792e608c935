// Package scene renders a terrain with a walk camera view.
package scene

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/spline-terrain/internal/engine/terrain"
	"github.com/Faultbox/spline-terrain/pkg/math"
)

// Config contains scene configuration options.
type Config struct {
	Width  int32
	Height int32
	FOV    float32 // vertical, degrees
	Near   float32
	Far    float32
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		Width:  640,
		Height: 480,
		FOV:    60,
		Near:   0.1,
		Far:    20,
	}
}

// Projection returns the perspective matrix for cfg.
func (cfg Config) Projection() math.Mat4 {
	aspect := float32(1)
	if cfg.Height > 0 {
		aspect = float32(cfg.Width) / float32(cfg.Height)
	}
	return math.Perspective(math.Radians(cfg.FOV), aspect, cfg.Near, cfg.Far)
}

// DefaultLighting returns a warm sun from the upper left with distance fog
// starting halfway to the far plane.
func DefaultLighting(cfg Config) Lighting {
	return Lighting{
		LightDir: math.Vec3{X: -0.4, Y: -1, Z: -0.3}.Normalize(),
		Ambient:  math.Vec3{X: 0.35, Y: 0.35, Z: 0.4},
		Diffuse:  math.Vec3{X: 0.75, Y: 0.7, Z: 0.6},
		FogColor: ClearColor,
		FogNear:  cfg.Far * 0.5,
		FogFar:   cfg.Far,
	}
}

// ClearColor is the sky color.
var ClearColor = math.Vec3{X: 0.2, Y: 0.3, Z: 0.3}

// Scene draws into the default framebuffer.
type Scene struct {
	config  Config
	terrain *TerrainRenderer

	Lighting Lighting
}

// New creates a scene. A GL context must be current.
func New(cfg Config) (*Scene, error) {
	tr, err := NewTerrainRenderer()
	if err != nil {
		return nil, err
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	s := &Scene{
		config:   cfg,
		terrain:  tr,
		Lighting: DefaultLighting(cfg),
	}
	gl.Viewport(0, 0, cfg.Width, cfg.Height)
	return s, nil
}

// LoadTerrain uploads a terrain mesh and its texture.
func (s *Scene) LoadTerrain(mesh *terrain.Mesh, tex *image.RGBA) error {
	if err := s.terrain.Upload(mesh, tex); err != nil {
		return fmt.Errorf("uploading terrain: %w", err)
	}
	return nil
}

// Render clears the frame and draws the terrain from view.
func (s *Scene) Render(view math.Mat4) {
	gl.ClearColor(ClearColor.X, ClearColor.Y, ClearColor.Z, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	viewProj := s.config.Projection().Mul(view)
	s.terrain.Render(viewProj, s.Lighting)
}

// Resize updates the viewport and projection.
func (s *Scene) Resize(width, height int32) {
	if width == s.config.Width && height == s.config.Height {
		return
	}
	s.config.Width = width
	s.config.Height = height
	gl.Viewport(0, 0, width, height)
}

// ReadPixels returns the current frame as bottom-up RGBA rows.
func (s *Scene) ReadPixels() (pixels []byte, width, height int) {
	width, height = int(s.config.Width), int(s.config.Height)
	pixels = make([]byte, width*height*4)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

// Destroy releases all resources.
func (s *Scene) Destroy() {
	if s.terrain != nil {
		s.terrain.Destroy()
	}
}
