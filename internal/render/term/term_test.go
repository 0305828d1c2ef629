package term

import (
	"errors"
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/convexpoly/internal/render"
)

var blue = color.RGBA{0, 0, 255, 255}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func TestCanvasPixelsUseBottomLeftOrigin(t *testing.T) {
	screen := newScreen(t, 20, 10)
	r := NewRenderer(screen)
	canvas := r.NewCanvas(20, 10).(*Canvas)
	canvas.Clear(color.White)

	canvas.SetPixel(3, 0, blue)
	if canvas.At(3, 0) != Block {
		t.Errorf("Expected block at (3,0), got %q", canvas.At(3, 0))
	}
	if canvas.At(4, 0) != ' ' {
		t.Errorf("Expected blank at (4,0), got %q", canvas.At(4, 0))
	}

	r.DrawCanvas(&TermImage{screen: screen}, canvas)
	mainc, _, _, _ := screen.GetContent(3, 9)
	if mainc != Block {
		t.Errorf("Expected pixel (3,0) on the bottom row, got %q", mainc)
	}
}

func TestCanvasIgnoresOutOfRange(t *testing.T) {
	canvas := NewRenderer(newScreen(t, 5, 5)).NewCanvas(5, 5).(*Canvas)
	canvas.Clear(color.White)

	canvas.SetPixel(-1, 2, blue)
	canvas.SetPixel(2, 5, blue)
	canvas.SetPixel(5, 0, blue)

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if canvas.At(x, y) != ' ' {
				t.Errorf("Expected (%d,%d) untouched, got %q", x, y, canvas.At(x, y))
			}
		}
	}
}

func TestCanvasDrawLine(t *testing.T) {
	canvas := NewRenderer(newScreen(t, 10, 10)).NewCanvas(10, 10).(*Canvas)
	canvas.Clear(color.White)

	canvas.DrawLine(1, 2, 6, 2, blue)
	for x := 1; x <= 6; x++ {
		if canvas.At(x, 2) != Block {
			t.Errorf("Expected horizontal line cell (%d,2)", x)
		}
	}
	if canvas.At(0, 2) != ' ' || canvas.At(7, 2) != ' ' {
		t.Error("Expected line to stop at its endpoints")
	}

	canvas.DrawLine(0, 0, 4, 4, blue)
	for i := 0; i <= 4; i++ {
		if canvas.At(i, i) != Block {
			t.Errorf("Expected diagonal cell (%d,%d)", i, i)
		}
	}

	canvas.DrawLine(8, 8, 8, 8, blue)
	if canvas.At(8, 8) != Block {
		t.Error("Expected zero length line to light its cell")
	}
}

func TestInputManagerKeys(t *testing.T) {
	m := NewInputManager()

	m.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	m.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone))

	if !m.IsKeyJustPressed(render.KeyEscape) {
		t.Error("Expected escape to be pressed")
	}
	if !m.IsKeyJustPressed(render.KeyC) {
		t.Error("Expected C to be pressed")
	}
	if m.IsKeyJustPressed(render.KeyF) {
		t.Error("Expected F not to be pressed")
	}

	m.EndFrame()
	if m.IsKeyJustPressed(render.KeyEscape) || m.IsKeyPressed(render.KeyC) {
		t.Error("Expected keys to be forgotten after the frame ends")
	}
}

func TestInputManagerClickEdges(t *testing.T) {
	m := NewInputManager()

	m.HandleEvent(tcell.NewEventMouse(4, 7, tcell.Button1, tcell.ModNone))
	if !m.IsMouseButtonJustPressed(render.MouseButtonLeft) {
		t.Fatal("Expected a left click")
	}
	if x, y := m.GetCursorPosition(); x != 4 || y != 7 {
		t.Errorf("Expected cursor (4,7), got (%d,%d)", x, y)
	}
	m.EndFrame()

	// Dragging with the button held is not a new click.
	m.HandleEvent(tcell.NewEventMouse(5, 7, tcell.Button1, tcell.ModNone))
	if m.IsMouseButtonJustPressed(render.MouseButtonLeft) {
		t.Error("Expected held button not to count as a click")
	}

	m.HandleEvent(tcell.NewEventMouse(5, 7, tcell.ButtonNone, tcell.ModNone))
	m.HandleEvent(tcell.NewEventMouse(6, 2, tcell.Button1, tcell.ModNone))
	if !m.IsMouseButtonJustPressed(render.MouseButtonLeft) {
		t.Error("Expected release then press to count as a click")
	}
}

type scriptedGame struct {
	updates int
	draws   int
	quitAt  int
}

func (g *scriptedGame) Update() error {
	g.updates++
	if g.updates == g.quitAt {
		return render.ErrQuit
	}
	return nil
}

func (g *scriptedGame) Draw(screen render.Image)   { g.draws++ }
func (g *scriptedGame) Layout(w, h int) (int, int) { return w, h }

func TestEngineStep(t *testing.T) {
	screen := newScreen(t, 10, 5)
	input := NewInputManager()
	e := NewEngine(screen, input)
	game := &scriptedGame{quitAt: 2}

	input.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone))
	if err := e.step(game); err != nil {
		t.Fatalf("First step failed: %v", err)
	}
	if game.draws != 1 {
		t.Errorf("Expected one draw, got %d", game.draws)
	}
	if input.IsKeyJustPressed(render.KeyF) {
		t.Error("Expected input to be reset after the step")
	}

	if err := e.step(game); !errors.Is(err, render.ErrQuit) {
		t.Errorf("Expected ErrQuit from second step, got %v", err)
	}
	if game.draws != 1 {
		t.Errorf("Expected no draw after quitting, got %d draws", game.draws)
	}
}
