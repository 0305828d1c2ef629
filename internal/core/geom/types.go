// Package geom holds the 2D point and polygon types shared by the editor
// and the fill engine, plus the convexity classifier.
package geom

import "gonum.org/v1/gonum/spatial/r2"

// Point represents a 2D point in space
type Point struct {
	X, Y float64
}

// Vec returns the point as a gonum vector.
func (p Point) Vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// Polygon is an ordered list of vertices. The edge from the last vertex back
// to the first is implicit.
type Polygon []Point

// Orientation is the turning direction of a polygon boundary.
type Orientation int

const (
	// Degenerate means every consecutive triple is collinear (or there are
	// fewer than 3 vertices).
	Degenerate Orientation = iota
	// CounterClockwise means every turn is to the left (y axis pointing up).
	CounterClockwise
	// Clockwise means every turn is to the right (y axis pointing up).
	Clockwise
	// Mixed means the boundary turns both ways, so it is not convex.
	Mixed
)

func (o Orientation) String() string {
	switch o {
	case CounterClockwise:
		return "ccw"
	case Clockwise:
		return "cw"
	case Mixed:
		return "mixed"
	default:
		return "degenerate"
	}
}
