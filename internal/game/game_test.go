package game

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"chosenoffset.com/convexpoly/internal/core/geom"
	"chosenoffset.com/convexpoly/internal/editor"
	"chosenoffset.com/convexpoly/internal/render"
)

type fakeInput struct {
	keys   map[render.Key]bool
	click  bool
	cx, cy int
}

func (f *fakeInput) IsKeyPressed(key render.Key) bool     { return f.keys[key] }
func (f *fakeInput) IsKeyJustPressed(key render.Key) bool { return f.keys[key] }
func (f *fakeInput) GetCursorPosition() (int, int)        { return f.cx, f.cy }
func (f *fakeInput) IsMouseButtonJustPressed(b render.MouseButton) bool {
	return b == render.MouseButtonLeft && f.click
}

type fakeCanvas struct {
	render.Recorder
	w, h   int
	clears int
}

func (c *fakeCanvas) Clear(bg color.Color) {
	c.clears++
	c.Commands = nil
}

func (c *fakeCanvas) Size() (int, int) { return c.w, c.h }

type fakeRenderer struct {
	canvases []*fakeCanvas
	texts    []string
	drawn    int
}

func (r *fakeRenderer) NewCanvas(w, h int) render.Canvas {
	c := &fakeCanvas{w: w, h: h}
	r.canvases = append(r.canvases, c)
	return c
}

func (r *fakeRenderer) DrawCanvas(dst render.Image, c render.Canvas) { r.drawn++ }

func (r *fakeRenderer) DrawText(dst render.Image, text string, x, y int, clr color.Color, scale float64) {
	r.texts = append(r.texts, text)
}

func (r *fakeRenderer) MeasureText(text string, scale float64) (int, int) { return len(text), 1 }

type fakeImage struct{}

func (fakeImage) Bounds() image.Rectangle { return image.Rect(0, 0, 100, 100) }
func (fakeImage) Size() (int, int)        { return 100, 100 }
func (fakeImage) Fill(color.Color)        {}
func (fakeImage) Clear()                  {}

func newTestGame() (*Game, *fakeInput, *fakeRenderer) {
	input := &fakeInput{keys: make(map[render.Key]bool)}
	r := &fakeRenderer{}
	g := New(editor.New(editor.DefaultStyle(), nil), r, input, 100, 100)
	return g, input, r
}

func (f *fakeInput) clickAt(g *Game, x, y int) error {
	f.cx, f.cy, f.click = x, y, true
	defer func() { f.click = false }()
	return g.Update()
}

func TestClickFlipsToBottomLeftOrigin(t *testing.T) {
	g, input, _ := newTestGame()

	if err := input.clickAt(g, 10, 99); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	poly := g.Editor.Polygon()
	if len(poly) != 1 {
		t.Fatalf("Expected 1 vertex, got %d", len(poly))
	}
	if poly[0] != (geom.Point{X: 10, Y: 0}) {
		t.Errorf("Expected bottom row click to map to (10,0), got %v", poly[0])
	}
	if g.LastResult != "accepted" {
		t.Errorf("Expected last result 'accepted', got '%s'", g.LastResult)
	}
}

func TestRejectedClickReported(t *testing.T) {
	g, input, _ := newTestGame()
	// Screen coordinates of (0,0), (10,0), (10,10) after the flip.
	input.clickAt(g, 0, 99)
	input.clickAt(g, 10, 99)
	input.clickAt(g, 10, 89)

	// (7,3) in polygon space is inside the triangle.
	input.clickAt(g, 7, 96)

	if g.Editor.Len() != 3 {
		t.Errorf("Expected 3 vertices, got %d", g.Editor.Len())
	}
	if g.LastResult != "rejected" {
		t.Errorf("Expected last result 'rejected', got '%s'", g.LastResult)
	}
}

func TestEscapeQuits(t *testing.T) {
	g, input, _ := newTestGame()
	input.keys[render.KeyEscape] = true

	if err := g.Update(); !errors.Is(err, render.ErrQuit) {
		t.Errorf("Expected ErrQuit, got %v", err)
	}
}

func TestClearKeyResets(t *testing.T) {
	g, input, _ := newTestGame()
	input.clickAt(g, 0, 99)
	input.clickAt(g, 10, 99)

	input.keys[render.KeyC] = true
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if g.Editor.Len() != 0 {
		t.Errorf("Expected empty polygon after clear, got %d", g.Editor.Len())
	}
}

func TestFillKeyCyclesAlgorithms(t *testing.T) {
	g, input, _ := newTestGame()
	input.keys[render.KeyF] = true

	seen := []string{g.Algorithm}
	for i := 0; i < len(Algorithms); i++ {
		if err := g.Update(); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		seen = append(seen, g.Algorithm)
	}

	if seen[1] == seen[0] {
		t.Errorf("Expected F to change the algorithm, stayed on '%s'", seen[0])
	}
	if seen[len(seen)-1] != seen[0] {
		t.Errorf("Expected to cycle back to '%s', got '%s'", seen[0], seen[len(seen)-1])
	}
}

func TestDrawRedrawsOnlyOnChange(t *testing.T) {
	g, input, r := newTestGame()
	screen := fakeImage{}

	input.clickAt(g, 0, 99)
	input.clickAt(g, 10, 99)
	input.clickAt(g, 10, 89)

	g.Draw(screen)
	g.Draw(screen)

	if len(r.canvases) != 1 {
		t.Fatalf("Expected one canvas, got %d", len(r.canvases))
	}
	canvas := r.canvases[0]
	if canvas.clears != 1 {
		t.Errorf("Expected one redraw for an unchanged polygon, got %d", canvas.clears)
	}
	if r.drawn != 2 {
		t.Errorf("Expected the canvas composited every frame, got %d", r.drawn)
	}
	if len(canvas.Commands) == 0 {
		t.Error("Expected the triangle to be drawn on the canvas")
	}

	input.clickAt(g, 0, 89)
	g.Draw(screen)
	if canvas.clears != 2 {
		t.Errorf("Expected a redraw after an accepted click, got %d", canvas.clears)
	}
}

func TestLayoutResizesCanvas(t *testing.T) {
	g, _, r := newTestGame()
	g.Resizable = true

	g.Draw(fakeImage{})
	if w, h := g.Layout(40, 30); w != 40 || h != 30 {
		t.Fatalf("Expected 40x30 layout, got %dx%d", w, h)
	}
	g.Draw(fakeImage{})

	if len(r.canvases) != 2 {
		t.Fatalf("Expected a new canvas after resize, got %d canvases", len(r.canvases))
	}
	if w, h := r.canvases[1].Size(); w != 40 || h != 30 {
		t.Errorf("Expected 40x30 canvas, got %dx%d", w, h)
	}

	g.Resizable = false
	if w, h := g.Layout(800, 600); w != 40 || h != 30 {
		t.Errorf("Expected fixed layout to keep 40x30, got %dx%d", w, h)
	}
}

func TestStatusLine(t *testing.T) {
	g, input, r := newTestGame()
	input.clickAt(g, 0, 99)
	input.clickAt(g, 10, 99)
	input.clickAt(g, 10, 89)

	g.Draw(fakeImage{})
	if len(r.texts) != 1 {
		t.Fatalf("Expected one HUD line, got %d", len(r.texts))
	}
	want := "vertices: 3  convex, ccw  fill: dense  last click: accepted"
	if r.texts[0] != want {
		t.Errorf("Expected HUD '%s', got '%s'", want, r.texts[0])
	}
}
