// Package input turns SDL2 events into per-frame walk input.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/spline-terrain/internal/engine/camera"
)

// Bindings maps held keys to camera movement.
var Bindings = map[sdl.Scancode]camera.Direction{
	sdl.SCANCODE_W:     camera.Forward,
	sdl.SCANCODE_UP:    camera.Forward,
	sdl.SCANCODE_S:     camera.Back,
	sdl.SCANCODE_DOWN:  camera.Back,
	sdl.SCANCODE_A:     camera.Left,
	sdl.SCANCODE_LEFT:  camera.Left,
	sdl.SCANCODE_D:     camera.Right,
	sdl.SCANCODE_RIGHT: camera.Right,
}

// Frame is the input gathered during one frame.
type Frame struct {
	Quit bool

	// Resized is set when the window changed size.
	Resized       bool
	Width, Height int32

	// Relative mouse motion, Y up.
	MouseDX, MouseDY float32

	// Keys pressed this frame, not held.
	Pressed []sdl.Scancode
}

// Input tracks held keys across frames.
type Input struct {
	held  map[sdl.Scancode]bool
	frame Frame
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		held: make(map[sdl.Scancode]bool),
	}
}

// Update drains pending SDL events and returns this frame's input.
func (i *Input) Update() *Frame {
	i.frame = Frame{Pressed: i.frame.Pressed[:0]}

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		i.handle(event)
	}
	return &i.frame
}

func (i *Input) handle(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.frame.Quit = true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			i.frame.Resized = true
			i.frame.Width = e.Data1
			i.frame.Height = e.Data2
		}

	case *sdl.KeyboardEvent:
		code := e.Keysym.Scancode
		switch e.Type {
		case sdl.KEYDOWN:
			if e.Repeat == 0 {
				i.frame.Pressed = append(i.frame.Pressed, code)
			}
			i.held[code] = true
			if code == sdl.SCANCODE_ESCAPE {
				i.frame.Quit = true
			}
		case sdl.KEYUP:
			delete(i.held, code)
		}

	case *sdl.MouseMotionEvent:
		i.frame.MouseDX += float32(e.XRel)
		i.frame.MouseDY -= float32(e.YRel)
	}
}

// Held reports whether a key is currently down.
func (i *Input) Held(code sdl.Scancode) bool {
	return i.held[code]
}

// Directions returns the movement directions of all held keys, once each,
// in Direction order.
func (i *Input) Directions() []camera.Direction {
	var held [4]bool
	for code := range i.held {
		if d, ok := Bindings[code]; ok {
			held[d] = true
		}
	}

	var dirs []camera.Direction
	for d, ok := range held {
		if ok {
			dirs = append(dirs, camera.Direction(d))
		}
	}
	return dirs
}

// WasPressed reports whether code went down this frame.
func (f *Frame) WasPressed(code sdl.Scancode) bool {
	for _, c := range f.Pressed {
		if c == code {
			return true
		}
	}
	return false
}
