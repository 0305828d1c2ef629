// Package editor accumulates polygon vertices from clicks, keeps the polygon
// convex, and turns it into drawing commands.
package editor

import (
	"image/color"

	"chosenoffset.com/convexpoly/internal/core/geom"
	"chosenoffset.com/convexpoly/internal/core/raster"
	"chosenoffset.com/convexpoly/internal/render"
)

// Result is the outcome of a click.
type Result int

const (
	// Accepted means the point was appended.
	Accepted Result = iota
	// Rejected means the point would have made the polygon non-convex and
	// the polygon is unchanged.
	Rejected
)

func (r Result) String() string {
	if r == Rejected {
		return "rejected"
	}
	return "accepted"
}

// Style holds the colors forwarded to the drawing calls.
type Style struct {
	Outline color.Color
	Fill    color.Color
}

// DefaultStyle draws and fills in blue.
func DefaultStyle() Style {
	blue := color.RGBA{0, 0, 255, 255}
	return Style{Outline: blue, Fill: blue}
}

// Editor owns the polygon being built. It is not safe for concurrent use;
// callers mutate and redraw from a single goroutine.
type Editor struct {
	poly  geom.Polygon
	style Style
	fill  raster.FillFunc

	// revision increments on every change that affects the frame.
	revision  uint64
	frame     []render.Command
	frameRev  uint64
	haveFrame bool
}

// New creates an empty editor. A nil fill selects raster.Fill.
func New(style Style, fill raster.FillFunc) *Editor {
	if fill == nil {
		fill = raster.Fill
	}
	return &Editor{style: style, fill: fill}
}

// Click proposes p as the next vertex. The first three points are always
// taken; from the fourth on, the point is taken only if the polygon with it
// appended is still convex and p actually turns between its neighbours.
func (e *Editor) Click(p geom.Point) Result {
	if len(e.poly) < 3 {
		e.poly = append(e.poly, p)
		e.revision++
		return Accepted
	}

	candidate := e.poly.With(p)
	if !geom.IsConvex(candidate) {
		return Rejected
	}
	// A new vertex with no turn sits on the closing edge (or repeats an
	// endpoint) and leaves the shape as it was.
	if geom.Turn(e.poly[len(e.poly)-1], p, e.poly[0]) == 0 {
		return Rejected
	}

	e.poly = candidate
	e.revision++
	return Accepted
}

// Polygon returns a copy of the current vertices.
func (e *Editor) Polygon() geom.Polygon {
	out := make(geom.Polygon, len(e.poly))
	copy(out, e.poly)
	return out
}

// Len returns the number of committed vertices.
func (e *Editor) Len() int {
	return len(e.poly)
}

// Convex reports whether the current polygon is convex.
func (e *Editor) Convex() bool {
	return geom.IsConvex(e.poly)
}

// Orientation reports the winding of the current polygon.
func (e *Editor) Orientation() geom.Orientation {
	return geom.Classify(e.poly)
}

// Revision changes whenever the frame would change.
func (e *Editor) Revision() uint64 {
	return e.revision
}

// Reset discards every vertex.
func (e *Editor) Reset() {
	e.Replace(nil)
}

// Replace swaps in a new polygon wholesale. The vertices are copied and not
// checked for convexity; a non-convex polygon is outlined but never filled.
func (e *Editor) Replace(poly geom.Polygon) {
	e.poly = make(geom.Polygon, len(poly))
	copy(e.poly, poly)
	e.revision++
}

// SetFill switches the fill implementation.
func (e *Editor) SetFill(fill raster.FillFunc) {
	if fill == nil {
		fill = raster.Fill
	}
	e.fill = fill
	e.revision++
}

// Frame returns the drawing commands for the current polygon: the outline,
// then the interior pixels when the polygon is convex. The slice is cached
// until the next change and must not be modified.
func (e *Editor) Frame() []render.Command {
	if e.haveFrame && e.frameRev == e.revision {
		return e.frame
	}

	rec := &render.Recorder{}
	e.Draw(rec)

	e.frame = rec.Commands
	e.frameRev = e.revision
	e.haveFrame = true
	return e.frame
}

// Draw issues the outline and, when convex, the fill directly to s.
func (e *Editor) Draw(s render.Surface) {
	n := len(e.poly)
	switch {
	case n == 0:
		return
	case n == 1:
		p := e.poly[0]
		s.SetPixel(p.X, p.Y, e.style.Outline)
		return
	case n == 2:
		a, b := e.poly[0], e.poly[1]
		s.DrawLine(a.X, a.Y, b.X, b.Y, e.style.Outline)
		return
	}

	for i := 0; i < n; i++ {
		a, b := e.poly.Edge(i)
		s.DrawLine(a.X, a.Y, b.X, b.Y, e.style.Outline)
	}

	if !geom.IsConvex(e.poly) {
		return
	}
	e.fill(e.poly, e.style.Fill, func(x, y int, clr color.Color) {
		s.SetPixel(float64(x), float64(y), clr)
	})
}
