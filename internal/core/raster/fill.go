// Package raster enumerates the interior pixels of a polygon using the
// even-odd rule on integer scanlines.
package raster

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"

	"chosenoffset.com/convexpoly/internal/core/geom"
)

// ErrUnknownAlgorithm is returned by Lookup for an unrecognised name.
var ErrUnknownAlgorithm = errors.New("unknown fill algorithm")

// PixelFunc receives one interior pixel.
type PixelFunc func(x, y int, clr color.Color)

// FillFunc fills a polygon by emitting its interior pixels.
type FillFunc func(poly geom.Polygon, clr color.Color, emit PixelFunc)

// Algorithm names accepted by Lookup.
const (
	Dense = "dense"
	Spans = "spans"
)

// Lookup returns the fill implementation registered under name.
func Lookup(name string) (FillFunc, error) {
	switch name {
	case Dense, "":
		return Fill, nil
	case Spans:
		return FillSpans, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// scanRange returns the integer rows and columns covering the polygon's
// bounding box, inclusive at both ends.
func scanRange(poly geom.Polygon) (x0, x1, y0, y1 int) {
	box := poly.Bounds()
	return int(math.Floor(box.Min.X)), int(math.Ceil(box.Max.X)),
		int(math.Floor(box.Min.Y)), int(math.Ceil(box.Max.Y))
}

// Fill tests every pixel of the bounding box against every edge and emits
// those with an odd number of crossings at or to their right. Rows are
// visited bottom to top, columns left to right.
//
// Convexity is not checked here; callers decide when to fill.
func Fill(poly geom.Polygon, clr color.Color, emit PixelFunc) {
	if len(poly) < 3 {
		return
	}

	x0, x1, y0, y1 := scanRange(poly)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if poly.Contains(geom.Point{X: float64(x), Y: float64(y)}) {
				emit(x, y, clr)
			}
		}
	}
}

// FillSpans produces exactly the pixels of Fill, in the same order, but
// computes each row's edge crossings once and walks them sorted instead of
// re-testing every edge per pixel.
func FillSpans(poly geom.Polygon, clr color.Color, emit PixelFunc) {
	if len(poly) < 3 {
		return
	}

	x0, x1, y0, y1 := scanRange(poly)
	xs := make([]float64, 0, len(poly))
	for y := y0; y <= y1; y++ {
		xs = xs[:0]
		for i := range poly {
			a, b := poly.Edge(i)
			if xi, ok := geom.Crossing(a, b, float64(y)); ok {
				xs = append(xs, xi)
			}
		}
		if len(xs) == 0 {
			continue
		}
		sort.Float64s(xs)

		// next is the first crossing with xi >= x; every crossing from
		// there on is counted for pixel x.
		next := 0
		for x := x0; x <= x1; x++ {
			fx := float64(x)
			for next < len(xs) && xs[next] < fx {
				next++
			}
			if next == len(xs) {
				break
			}
			if (len(xs)-next)%2 == 1 {
				emit(x, y, clr)
			}
		}
	}
}
