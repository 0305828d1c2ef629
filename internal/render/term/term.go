// Package term runs the editor inside a terminal. Every character cell is
// one pixel; the left mouse button places vertices.
package term

import (
	"errors"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/convexpoly/internal/render"
)

// Block is the rune drawn for a lit cell.
const Block = '█'

func toTcell(clr color.Color) tcell.Color {
	r, g, b, _ := clr.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

// TermRenderer implements render.Renderer on a tcell screen.
type TermRenderer struct {
	screen tcell.Screen
}

// NewRenderer creates a renderer drawing onto screen.
func NewRenderer(screen tcell.Screen) render.Renderer {
	return &TermRenderer{screen: screen}
}

// NewCanvas creates an offscreen cell buffer.
func (r *TermRenderer) NewCanvas(width, height int) render.Canvas {
	return &Canvas{
		cells:  make([]cell, width*height),
		width:  width,
		height: height,
	}
}

// DrawCanvas copies the canvas cells to the screen.
func (r *TermRenderer) DrawCanvas(dst render.Image, c render.Canvas) {
	canvas := c.(*Canvas)
	for row := 0; row < canvas.height; row++ {
		for col := 0; col < canvas.width; col++ {
			cl := canvas.cells[row*canvas.width+col]
			r.screen.SetContent(col, row, cl.r, nil, cl.style)
		}
	}
}

// DrawText writes text starting at cell (x, y).
func (r *TermRenderer) DrawText(dst render.Image, str string, x, y int, clr color.Color, scale float64) {
	style := tcell.StyleDefault.Foreground(toTcell(clr))
	for i, ch := range []rune(str) {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

// MeasureText returns the cell extent of text. Scale is ignored.
func (r *TermRenderer) MeasureText(str string, scale float64) (width, height int) {
	return len([]rune(str)), 1
}

type cell struct {
	r     rune
	style tcell.Style
}

// Canvas is a grid of cells addressed with a bottom-left origin.
type Canvas struct {
	cells         []cell
	width, height int
	bg            tcell.Color
}

// Size returns the canvas dimensions in cells.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Clear blanks every cell with bg as background.
func (c *Canvas) Clear(bg color.Color) {
	c.bg = toTcell(bg)
	blank := cell{r: ' ', style: tcell.StyleDefault.Background(c.bg)}
	for i := range c.cells {
		c.cells[i] = blank
	}
}

// At returns the rune at cell (x, y) in bottom-left coordinates.
func (c *Canvas) At(x, y int) rune {
	row := int(render.FlipY(float64(y), c.height))
	if x < 0 || x >= c.width || row < 0 || row >= c.height {
		return 0
	}
	return c.cells[row*c.width+x].r
}

func (c *Canvas) set(x, y int, clr color.Color) {
	row := int(render.FlipY(float64(y), c.height))
	if x < 0 || x >= c.width || row < 0 || row >= c.height {
		return
	}
	c.cells[row*c.width+x] = cell{
		r:     Block,
		style: tcell.StyleDefault.Foreground(toTcell(clr)).Background(c.bg),
	}
}

// SetPixel lights one cell.
func (c *Canvas) SetPixel(x, y float64, clr color.Color) {
	c.set(int(math.Floor(x)), int(math.Floor(y)), clr)
}

// DrawLine lights the cells along the segment, one per step of the major axis.
func (c *Canvas) DrawLine(x1, y1, x2, y2 float64, clr color.Color) {
	dx, dy := x2-x1, y2-y1
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		c.set(int(math.Round(x1)), int(math.Round(y1)), clr)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.set(int(math.Round(x1+dx*t)), int(math.Round(y1+dy*t)), clr)
	}
}

// TermImage is the tcell screen seen as a render.Image.
type TermImage struct {
	screen tcell.Screen
}

// Bounds returns the screen rectangle in cells.
func (i *TermImage) Bounds() image.Rectangle {
	w, h := i.screen.Size()
	return image.Rect(0, 0, w, h)
}

// Size returns the screen size in cells.
func (i *TermImage) Size() (width, height int) {
	return i.screen.Size()
}

// Fill paints every cell's background.
func (i *TermImage) Fill(clr color.Color) {
	style := tcell.StyleDefault.Background(toTcell(clr))
	w, h := i.screen.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// Clear blanks the screen.
func (i *TermImage) Clear() {
	i.screen.Clear()
}

// InputManager turns tcell events into per-tick input state. The engine
// feeds it events and ends the frame after each Update.
type InputManager struct {
	justPressed map[render.Key]bool
	clicked     map[render.MouseButton]bool
	buttons     tcell.ButtonMask
	x, y        int
}

// NewInputManager creates an input manager with no pending input.
func NewInputManager() *InputManager {
	return &InputManager{
		justPressed: make(map[render.Key]bool),
		clicked:     make(map[render.MouseButton]bool),
	}
}

// HandleEvent records a key or mouse event.
func (m *InputManager) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			m.justPressed[render.KeyEscape] = true
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'c', 'C':
				m.justPressed[render.KeyC] = true
			case 'f', 'F':
				m.justPressed[render.KeyF] = true
			case 'q', 'Q':
				m.justPressed[render.KeyEscape] = true
			}
		}
	case *tcell.EventMouse:
		m.x, m.y = ev.Position()
		buttons := ev.Buttons()
		pressed := buttons &^ m.buttons
		if pressed&tcell.Button1 != 0 {
			m.clicked[render.MouseButtonLeft] = true
		}
		if pressed&tcell.Button2 != 0 {
			m.clicked[render.MouseButtonRight] = true
		}
		if pressed&tcell.Button3 != 0 {
			m.clicked[render.MouseButtonMiddle] = true
		}
		m.buttons = buttons
	}
}

// EndFrame forgets the edge-triggered input of the finished tick.
func (m *InputManager) EndFrame() {
	clear(m.justPressed)
	clear(m.clicked)
}

// IsKeyPressed reports a key seen this tick; terminals send no key-up.
func (m *InputManager) IsKeyPressed(key render.Key) bool {
	return m.justPressed[key]
}

// IsKeyJustPressed reports a key seen this tick.
func (m *InputManager) IsKeyJustPressed(key render.Key) bool {
	return m.justPressed[key]
}

// GetCursorPosition returns the last mouse cell.
func (m *InputManager) GetCursorPosition() (x, y int) {
	return m.x, m.y
}

// IsMouseButtonJustPressed reports a button that went down this tick.
func (m *InputManager) IsMouseButtonJustPressed(button render.MouseButton) bool {
	return m.clicked[button]
}

// TermEngine implements render.Engine with a fixed tick loop.
type TermEngine struct {
	screen tcell.Screen
	input  *InputManager
	tick   time.Duration
}

// NewEngine creates an engine driving screen and feeding input.
func NewEngine(screen tcell.Screen, input *InputManager) *TermEngine {
	return &TermEngine{screen: screen, input: input, tick: time.Second / 30}
}

// SetWindowSize is a no-op; the terminal decides its size.
func (e *TermEngine) SetWindowSize(width, height int) {}

// SetWindowTitle is a no-op; the terminal keeps its own title.
func (e *TermEngine) SetWindowTitle(title string) {}

// SetWindowResizable is a no-op; terminals are always resizable.
func (e *TermEngine) SetWindowResizable(resizable bool) {}

// RunGame polls events on a separate goroutine and runs Update and Draw on
// the calling goroutine, so the game itself is only touched from one place.
func (e *TermEngine) RunGame(game render.Game) error {
	e.screen.EnableMouse()

	events := make(chan tcell.Event, 64)
	go func() {
		defer close(events)
		for {
			ev := e.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if _, resized := ev.(*tcell.EventResize); resized {
				e.screen.Sync()
			}
			e.input.HandleEvent(ev)
		case <-ticker.C:
			if err := e.step(game); err != nil {
				if errors.Is(err, render.ErrQuit) {
					return nil
				}
				return err
			}
		}
	}
}

// step runs one Update/Draw cycle.
func (e *TermEngine) step(game render.Game) error {
	w, h := e.screen.Size()
	game.Layout(w, h)

	err := game.Update()
	e.input.EndFrame()
	if err != nil {
		return err
	}

	game.Draw(&TermImage{screen: e.screen})
	e.screen.Show()
	return nil
}
