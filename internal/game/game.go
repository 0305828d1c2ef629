package game

import (
	"fmt"
	"image/color"
	"log"

	"chosenoffset.com/convexpoly/internal/core/geom"
	"chosenoffset.com/convexpoly/internal/core/raster"
	"chosenoffset.com/convexpoly/internal/editor"
	"chosenoffset.com/convexpoly/internal/render"
)

// Algorithms lists the fill implementations the F key cycles through.
var Algorithms = []string{raster.Dense, raster.Spans}

// Game connects the editor to a backend: clicks go in, the polygon comes out.
type Game struct {
	ScreenWidth  int
	ScreenHeight int
	Resizable    bool // follow the outside size instead of the fixed one

	Editor     *editor.Editor
	Renderer   render.Renderer
	InputMgr   render.InputManager
	Background color.Color
	TextColor  color.Color

	// Offscreen copy of the last frame
	Canvas    render.Canvas
	canvasRev uint64
	drawn     bool

	// Fill algorithm currently in use
	Algorithm string

	// UI state
	LastResult string
	ShowHUD    bool

	// Debug
	Debug bool
}

// New creates a game around an existing editor.
func New(ed *editor.Editor, r render.Renderer, input render.InputManager, width, height int) *Game {
	return &Game{
		ScreenWidth:  width,
		ScreenHeight: height,
		Editor:       ed,
		Renderer:     r,
		InputMgr:     input,
		Background:   color.White,
		TextColor:    color.Black,
		Algorithm:    raster.Dense,
		ShowHUD:      true,
	}
}

// Update handles one tick of input.
func (g *Game) Update() error {
	if g.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		return render.ErrQuit
	}

	if g.InputMgr.IsKeyJustPressed(render.KeyC) {
		g.Editor.Reset()
		g.LastResult = "cleared"
		if g.Debug {
			log.Println("Polygon cleared")
		}
	}

	if g.InputMgr.IsKeyJustPressed(render.KeyF) {
		if err := g.cycleAlgorithm(); err != nil {
			return err
		}
	}

	if g.InputMgr.IsMouseButtonJustPressed(render.MouseButtonLeft) {
		x, y := g.InputMgr.GetCursorPosition()
		p := geom.Point{X: float64(x), Y: render.FlipY(float64(y), g.ScreenHeight)}

		result := g.Editor.Click(p)
		g.LastResult = result.String()
		if g.Debug {
			log.Printf("Click at (%.0f, %.0f) %s, %d vertices", p.X, p.Y, result, g.Editor.Len())
		}
	}

	return nil
}

// cycleAlgorithm switches the editor to the next fill implementation.
func (g *Game) cycleAlgorithm() error {
	next := Algorithms[0]
	for i, name := range Algorithms {
		if name == g.Algorithm {
			next = Algorithms[(i+1)%len(Algorithms)]
			break
		}
	}

	fill, err := raster.Lookup(next)
	if err != nil {
		return fmt.Errorf("failed to switch fill algorithm: %w", err)
	}
	g.Editor.SetFill(fill)
	g.Algorithm = next
	if g.Debug {
		log.Printf("Fill algorithm: %s", next)
	}
	return nil
}

// Draw redraws the canvas if the polygon changed, then puts it on screen.
func (g *Game) Draw(screen render.Image) {
	if g.Canvas != nil {
		if w, h := g.Canvas.Size(); w != g.ScreenWidth || h != g.ScreenHeight {
			g.Canvas = nil
		}
	}
	if g.Canvas == nil {
		g.Canvas = g.Renderer.NewCanvas(g.ScreenWidth, g.ScreenHeight)
		g.drawn = false
	}

	if !g.drawn || g.canvasRev != g.Editor.Revision() {
		g.Canvas.Clear(g.Background)
		render.Replay(g.Canvas, g.Editor.Frame())
		g.canvasRev = g.Editor.Revision()
		g.drawn = true
	}

	g.Renderer.DrawCanvas(screen, g.Canvas)

	if g.ShowHUD {
		g.Renderer.DrawText(screen, g.statusLine(), 0, 0, g.TextColor, 1)
	}
}

// statusLine summarises the polygon for the HUD.
func (g *Game) statusLine() string {
	state := "outline only"
	if g.Editor.Convex() {
		state = "convex, " + g.Editor.Orientation().String()
	}
	line := fmt.Sprintf("vertices: %d  %s  fill: %s", g.Editor.Len(), state, g.Algorithm)
	if g.LastResult != "" {
		line += "  last click: " + g.LastResult
	}
	return line
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.Resizable && outsideWidth > 0 && outsideHeight > 0 {
		g.ScreenWidth, g.ScreenHeight = outsideWidth, outsideHeight
	}
	return g.ScreenWidth, g.ScreenHeight
}
