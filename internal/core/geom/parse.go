package geom

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePoints reads whitespace separated "x,y" pairs.
func ParsePoints(s string) ([]Point, error) {
	var pts []Point
	for _, field := range strings.Fields(s) {
		xs, ys, ok := strings.Cut(field, ",")
		if !ok {
			return nil, fmt.Errorf("point %q: expected x,y", field)
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", field, err)
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", field, err)
		}
		pts = append(pts, Point{X: x, Y: y})
	}
	return pts, nil
}
