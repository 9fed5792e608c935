// Package viewer runs the interactive terrain walk-through.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/spline-terrain/internal/assets"
	"github.com/Faultbox/spline-terrain/internal/config"
	"github.com/Faultbox/spline-terrain/internal/engine/camera"
	"github.com/Faultbox/spline-terrain/internal/engine/debug"
	"github.com/Faultbox/spline-terrain/internal/engine/input"
	"github.com/Faultbox/spline-terrain/internal/engine/scene"
	"github.com/Faultbox/spline-terrain/internal/engine/terrain"
	"github.com/Faultbox/spline-terrain/internal/engine/texture"
	"github.com/Faultbox/spline-terrain/internal/engine/window"
	"github.com/Faultbox/spline-terrain/internal/logger"
)

// maxFrameTime caps dt so a stall does not launch the camera across the map.
const maxFrameTime = 0.1

// Viewer owns the window, scene and the terrain being walked.
type Viewer struct {
	cfg     *config.Config
	running bool
	log     *zap.Logger

	window  *window.Window
	scene   *scene.Scene
	input   *input.Input
	camera  *camera.WalkCamera
	terrain *terrain.Terrain
	shots   *debug.ScreenshotCapture
}

// New loads the level, builds its terrain and opens the window.
func New(ctx context.Context, cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg: cfg,
		log: logger.Named("viewer"),
	}

	tr, err := LoadTerrain(ctx, cfg)
	if err != nil {
		return nil, err
	}
	v.terrain = tr

	// Window before scene: the GL context must exist
	v.window, err = window.New(window.Config{
		Title:        "Spline Terrain",
		Width:        cfg.Graphics.Width,
		Height:       cfg.Graphics.Height,
		Fullscreen:   cfg.Graphics.Fullscreen,
		VSync:        cfg.Graphics.VSync,
		CaptureMouse: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	fbWidth, fbHeight := v.window.DrawableSize()
	v.scene, err = scene.New(scene.Config{
		Width:  fbWidth,
		Height: fbHeight,
		FOV:    cfg.Camera.FOV,
		Near:   cfg.Camera.Near,
		Far:    cfg.Camera.Far,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	if err := v.scene.LoadTerrain(tr.Mesh(), loadGroundTexture(cfg.Terrain.Texture, v.log)); err != nil {
		v.Close()
		return nil, err
	}

	v.camera = NewCamera(cfg, tr)
	v.input = input.New()
	v.shots = debug.NewScreenshotCapture("screenshots", "terrain")

	v.log.Info("viewer initialized")
	return v, nil
}

// LoadTerrain resolves the configured level and builds its terrain.
func LoadTerrain(ctx context.Context, cfg *config.Config) (*terrain.Terrain, error) {
	mgr := assets.NewManager(cfg.Terrain.CacheDir)
	defer mgr.Close()

	lvl, err := mgr.Load(ctx, cfg.Terrain.Level)
	if err != nil {
		return nil, err
	}

	tr, err := terrain.FromLevel(lvl, cfg.Terrain.SlicesPerTile)
	if err != nil {
		return nil, fmt.Errorf("building terrain for %s: %w", cfg.Terrain.Level, err)
	}
	return tr, nil
}

// NewCamera places a walk camera at the terrain origin, standing on the ground.
func NewCamera(cfg *config.Config, tr *terrain.Terrain) *camera.WalkCamera {
	cam := camera.NewWalkCamera()
	cam.EyeHeight = cfg.Camera.EyeHeight
	cam.MoveSpeed = cfg.Camera.MoveSpeed
	cam.TurnSpeed = cfg.Camera.TurnSpeed
	cam.SetBounds(tr.Extent())
	cam.Place(0, 0, tr.Altitude)
	return cam
}

func loadGroundTexture(path string, log *zap.Logger) *image.RGBA {
	if path != "" {
		img, err := texture.Load(path)
		if err == nil {
			return img
		}
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("ground texture unusable, using checker", zap.String("path", path), zap.Error(err))
		}
	}
	return texture.Checker(256, 8,
		color.RGBA{R: 96, G: 140, B: 72, A: 255},
		color.RGBA{R: 120, G: 160, B: 88, A: 255})
}

// Run starts the main loop and returns when the window closes.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting main loop")

	for v.running {
		now := time.Now()
		dt := min(float32(now.Sub(lastTime).Seconds()), maxFrameTime)
		lastTime = now

		frame := v.input.Update()
		if frame.Quit {
			v.running = false
			break
		}
		if frame.Resized {
			v.scene.Resize(v.window.DrawableSize())
		}

		Step(v.camera, v.input.Directions(), dt, frame.MouseDX, frame.MouseDY, v.terrain.Altitude)

		v.scene.Render(v.camera.ViewMatrix())

		if frame.WasPressed(sdl.SCANCODE_F12) {
			v.screenshot()
		}

		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Float32("x", v.camera.Position.X),
				zap.Float32("z", v.camera.Position.Z),
			)
			v.window.SetTitle(fmt.Sprintf("Spline Terrain - %d fps", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Step applies one frame of movement and mouse look to cam.
func Step(cam *camera.WalkCamera, dirs []camera.Direction, dt, mouseDX, mouseDY float32, altitude camera.AltitudeFunc) {
	if mouseDX != 0 || mouseDY != 0 {
		cam.Tilt(mouseDX, mouseDY)
	}
	for _, d := range dirs {
		cam.Move(d, dt, altitude)
	}
}

func (v *Viewer) screenshot() {
	pixels, w, h := v.scene.ReadPixels()
	name, err := v.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("file", name))
}

// Close releases the scene and window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.scene != nil {
		v.scene.Destroy()
	}
	if v.window != nil {
		v.window.Close()
	}
}
