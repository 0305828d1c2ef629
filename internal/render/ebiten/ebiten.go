package ebiten

import (
	"errors"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"chosenoffset.com/convexpoly/internal/render"
)

// EbitenRenderer implements the Renderer interface using Ebiten.
type EbitenRenderer struct{}

// NewRenderer creates a new Ebiten-based renderer.
func NewRenderer() render.Renderer {
	return &EbitenRenderer{}
}

// NewCanvas creates an offscreen canvas backed by a CPU pixel buffer.
func (r *EbitenRenderer) NewCanvas(width, height int) render.Canvas {
	return &Canvas{
		img:    ebiten.NewImage(width, height),
		pix:    make([]byte, width*height*4),
		width:  width,
		height: height,
		dirty:  true,
	}
}

// DrawCanvas uploads any pending canvas changes and draws it onto dst.
func (r *EbitenRenderer) DrawCanvas(dst render.Image, c render.Canvas) {
	canvas := c.(*Canvas)
	canvas.flush()
	dst.(*EbitenImage).img.DrawImage(canvas.img, nil)
}

// DrawText draws text on the destination image using the default font.
// Note: Color parameter is currently ignored, text is always white, so it
// goes on a dark box to stay readable on light backgrounds.
func (r *EbitenRenderer) DrawText(dst render.Image, str string, x, y int, clr color.Color, scale float64) {
	ebitenImg := dst.(*EbitenImage).img
	w, h := r.MeasureText(str, scale)
	vector.DrawFilledRect(ebitenImg, float32(x), float32(y), float32(w+4), float32(h+2), color.RGBA{0, 0, 0, 160}, false)
	ebitenutil.DebugPrintAt(ebitenImg, str, x+2, y)
}

// MeasureText measures the width and height of text with the given scale.
// This is an approximation based on the debug font's character size.
func (r *EbitenRenderer) MeasureText(str string, scale float64) (width, height int) {
	// Debug font is approximately 6x13 pixels per character
	charWidth := 6.0
	charHeight := 13.0
	return int(float64(len(str)) * charWidth * scale), int(charHeight * scale)
}

type line struct {
	x1, y1, x2, y2 float32
	clr            color.Color
}

// Canvas collects pixels in a byte buffer and lines in a list, and only
// touches the GPU image when drawn. Lines are stroked over the pixels.
type Canvas struct {
	img           *ebiten.Image
	pix           []byte
	lines         []line
	width, height int
	dirty         bool
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Clear fills the pixel buffer with bg and drops pending lines.
func (c *Canvas) Clear(bg color.Color) {
	rgba := color.RGBAModel.Convert(bg).(color.RGBA)
	for i := 0; i < len(c.pix); i += 4 {
		c.pix[i] = rgba.R
		c.pix[i+1] = rgba.G
		c.pix[i+2] = rgba.B
		c.pix[i+3] = rgba.A
	}
	c.lines = c.lines[:0]
	c.dirty = true
}

// SetPixel writes one pixel; points outside the canvas are ignored.
func (c *Canvas) SetPixel(x, y float64, clr color.Color) {
	col := int(x)
	row := int(render.FlipY(y, c.height))
	if col < 0 || col >= c.width || row < 0 || row >= c.height {
		return
	}

	rgba := color.RGBAModel.Convert(clr).(color.RGBA)
	i := (row*c.width + col) * 4
	c.pix[i] = rgba.R
	c.pix[i+1] = rgba.G
	c.pix[i+2] = rgba.B
	c.pix[i+3] = rgba.A
	c.dirty = true
}

// DrawLine queues a line through the centers of its endpoint pixels.
func (c *Canvas) DrawLine(x1, y1, x2, y2 float64, clr color.Color) {
	c.lines = append(c.lines, line{
		x1:  float32(x1 + 0.5),
		y1:  float32(render.FlipY(y1, c.height) + 0.5),
		x2:  float32(x2 + 0.5),
		y2:  float32(render.FlipY(y2, c.height) + 0.5),
		clr: clr,
	})
	c.dirty = true
}

func (c *Canvas) flush() {
	if !c.dirty {
		return
	}
	c.img.WritePixels(c.pix)
	for _, l := range c.lines {
		vector.StrokeLine(c.img, l.x1, l.y1, l.x2, l.y2, 1, l.clr, false)
	}
	c.dirty = false
}

// EbitenImage wraps an ebiten.Image to implement the render.Image interface.
type EbitenImage struct {
	img *ebiten.Image
}

// Bounds returns the bounds of the image.
func (i *EbitenImage) Bounds() image.Rectangle {
	return i.img.Bounds()
}

// Size returns the width and height of the image.
func (i *EbitenImage) Size() (width, height int) {
	return i.img.Bounds().Dx(), i.img.Bounds().Dy()
}

// Fill fills the entire image with the given color.
func (i *EbitenImage) Fill(clr color.Color) {
	i.img.Fill(clr)
}

// Clear clears the image to transparent.
func (i *EbitenImage) Clear() {
	i.img.Clear()
}

// EbitenInputManager implements the InputManager interface using Ebiten.
type EbitenInputManager struct{}

// NewInputManager creates a new Ebiten-based input manager.
func NewInputManager() render.InputManager {
	return &EbitenInputManager{}
}

// IsKeyPressed returns whether the specified key is currently pressed.
func (m *EbitenInputManager) IsKeyPressed(key render.Key) bool {
	return ebiten.IsKeyPressed(keyToEbitenKey(key))
}

// IsKeyJustPressed returns whether the specified key was just pressed this frame.
func (m *EbitenInputManager) IsKeyJustPressed(key render.Key) bool {
	return inpututil.IsKeyJustPressed(keyToEbitenKey(key))
}

// GetCursorPosition returns the current cursor position.
func (m *EbitenInputManager) GetCursorPosition() (x, y int) {
	return ebiten.CursorPosition()
}

// IsMouseButtonJustPressed returns whether the specified mouse button went down this frame.
func (m *EbitenInputManager) IsMouseButtonJustPressed(button render.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(mouseButtonToEbiten(button))
}

// keyToEbitenKey converts a render.Key to an ebiten.Key.
func keyToEbitenKey(key render.Key) ebiten.Key {
	switch key {
	case render.KeyEscape:
		return ebiten.KeyEscape
	case render.KeyC:
		return ebiten.KeyC
	case render.KeyF:
		return ebiten.KeyF
	default:
		return 0
	}
}

// mouseButtonToEbiten converts a render.MouseButton to an ebiten.MouseButton.
func mouseButtonToEbiten(button render.MouseButton) ebiten.MouseButton {
	switch button {
	case render.MouseButtonLeft:
		return ebiten.MouseButtonLeft
	case render.MouseButtonRight:
		return ebiten.MouseButtonRight
	case render.MouseButtonMiddle:
		return ebiten.MouseButtonMiddle
	default:
		return ebiten.MouseButtonLeft
	}
}

// EbitenEngine implements the Engine interface using Ebiten.
type EbitenEngine struct{}

// NewEngine creates a new Ebiten-based engine.
func NewEngine() render.Engine {
	return &EbitenEngine{}
}

// SetWindowSize sets the window size in pixels.
func (e *EbitenEngine) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// SetWindowTitle sets the window title.
func (e *EbitenEngine) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// SetWindowResizable enables or disables window resizing.
func (e *EbitenEngine) SetWindowResizable(resizable bool) {
	if resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
}

// RunGame runs the loop with the provided game. A render.ErrQuit from
// Update ends the loop without an error.
func (e *EbitenEngine) RunGame(game render.Game) error {
	return ebiten.RunGame(&gameAdapter{game: game})
}

// gameAdapter adapts a render.Game to ebiten.Game interface.
type gameAdapter struct {
	game render.Game
}

// Update implements ebiten.Game.
func (a *gameAdapter) Update() error {
	err := a.game.Update()
	if errors.Is(err, render.ErrQuit) {
		return ebiten.Termination
	}
	return err
}

// Draw implements ebiten.Game.
func (a *gameAdapter) Draw(screen *ebiten.Image) {
	a.game.Draw(&EbitenImage{img: screen})
}

// Layout implements ebiten.Game.
func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}
