package render

import (
	"errors"
	"image"
	"image/color"
)

// ErrQuit is returned from Game.Update to end the loop normally.
var ErrQuit = errors.New("quit requested")

// Surface is the drawing target the editor talks to. Coordinates use a
// bottom-left origin with y pointing up; implementations flip to their own
// screen space with FlipY.
type Surface interface {
	// SetPixel colors the pixel whose lower-left corner is (x, y).
	SetPixel(x, y float64, clr color.Color)

	// DrawLine strokes a one pixel wide segment from (x1, y1) to (x2, y2).
	DrawLine(x1, y1, x2, y2 float64, clr color.Color)
}

// Canvas is an offscreen Surface that is cleared and redrawn only when the
// scene changes, then composited onto the screen every frame.
type Canvas interface {
	Surface

	// Clear resets every pixel to bg.
	Clear(bg color.Color)

	// Size returns the canvas dimensions in pixels.
	Size() (width, height int)
}

// FlipY converts a y coordinate between a top-left origin space and the
// bottom-left origin space of the given height. The mapping is its own
// inverse, and a pixel row survives the round trip unchanged.
func FlipY(y float64, height int) float64 {
	return float64(height-1) - y
}

// Renderer is the main rendering interface that abstracts the underlying
// graphics backend. This allows swapping backends without changing
// editor logic.
type Renderer interface {
	// NewCanvas creates an offscreen canvas.
	NewCanvas(width, height int) Canvas

	// DrawCanvas composites the canvas onto the destination image.
	DrawCanvas(dst Image, c Canvas)

	// Text operations
	DrawText(dst Image, text string, x, y int, clr color.Color, scale float64)
	MeasureText(text string, scale float64) (width, height int)
}

// Image represents the screen surface handed to Game.Draw.
type Image interface {
	// Properties
	Bounds() image.Rectangle
	Size() (width, height int)

	// Fill operations
	Fill(clr color.Color)
	Clear()
}

// InputManager handles input from the user (keyboard, mouse, etc).
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
	GetCursorPosition() (x, y int)
	IsMouseButtonJustPressed(button MouseButton) bool
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the editor binds
const (
	KeyEscape Key = iota
	KeyC          // Clear the polygon
	KeyF          // Toggle fill algorithm
)

// MouseButton represents a mouse button.
type MouseButton int

// Mouse button constants
const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// Game represents the interface that the engine will call.
type Game interface {
	// Update handles input. It is called every tick (typically 60 times per second).
	Update() error

	// Draw draws the screen. It is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	// The logical screen size is used for rendering and input coordinates.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the backend that manages the loop and window.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetWindowResizable enables or disables window resizing.
	SetWindowResizable(resizable bool)

	// RunGame runs the loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}
