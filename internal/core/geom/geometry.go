package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Turn returns the z component of the cross product of (b-a) and (c-b).
// Positive is a left turn, negative a right turn, zero collinear.
func Turn(a, b, c Point) float64 {
	return r2.Cross(r2.Sub(b.Vec(), a.Vec()), r2.Sub(c.Vec(), b.Vec()))
}

// Classify scans every vertex of the closed boundary once as the pivot of a
// consecutive triple and reports the turning direction. It stops at the first
// sign change and returns Mixed.
func Classify(points []Point) Orientation {
	n := len(points)
	if n < 3 {
		return Degenerate
	}

	left, right := false, false
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		k := (i + 2) % n

		cross := Turn(points[i], points[j], points[k])
		if cross > 0 {
			left = true
		} else if cross < 0 {
			right = true
		}

		if left && right {
			return Mixed
		}
	}

	switch {
	case left:
		return CounterClockwise
	case right:
		return Clockwise
	default:
		return Degenerate
	}
}

// IsConvex reports whether the closed point sequence turns consistently in
// one direction. Fewer than 3 points and fully collinear input are not convex.
// Self-intersecting input whose turns all agree (a pentagram, say) is
// reported as convex.
func IsConvex(points []Point) bool {
	o := Classify(points)
	return o == CounterClockwise || o == Clockwise
}

// Edge returns the endpoints of edge i, wrapping the last edge back to the
// first vertex.
func (p Polygon) Edge(i int) (Point, Point) {
	return p[i], p[(i+1)%len(p)]
}

// With returns a new polygon with pt appended. The receiver is not modified.
func (p Polygon) With(pt Point) Polygon {
	out := make(Polygon, len(p), len(p)+1)
	copy(out, p)
	return append(out, pt)
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (p Polygon) Bounds() r2.Box {
	if len(p) == 0 {
		return r2.Box{}
	}
	box := r2.Box{Min: p[0].Vec(), Max: p[0].Vec()}
	for _, pt := range p[1:] {
		box.Min.X = math.Min(box.Min.X, pt.X)
		box.Min.Y = math.Min(box.Min.Y, pt.Y)
		box.Max.X = math.Max(box.Max.X, pt.X)
		box.Max.Y = math.Max(box.Max.Y, pt.Y)
	}
	return box
}

// Crossing reports whether the horizontal line at height y crosses the edge
// a-b and where. The test is half-open: one endpoint must be at or below y
// and the other strictly above, so horizontal edges never cross and a shared
// vertex is counted for only one of its two edges.
func Crossing(a, b Point, y float64) (float64, bool) {
	if (a.Y <= y && b.Y > y) || (b.Y <= y && a.Y > y) {
		return (b.X-a.X)*(y-a.Y)/(b.Y-a.Y) + a.X, true
	}
	return 0, false
}

// Contains reports whether pt is inside the polygon by the even-odd rule.
// A crossing counts when it lies at or to the right of pt.
func (p Polygon) Contains(pt Point) bool {
	if len(p) < 3 {
		return false
	}
	crossings := 0
	for i := range p {
		a, b := p.Edge(i)
		if xi, ok := Crossing(a, b, pt.Y); ok && pt.X <= xi {
			crossings++
		}
	}
	return crossings%2 == 1
}
