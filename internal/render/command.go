package render

import "image/color"

// Op identifies a drawing primitive.
type Op int

const (
	OpLine Op = iota
	OpPixel
)

// Command is one recorded drawing primitive. Pixel commands use X1 and Y1.
type Command struct {
	Op             Op
	X1, Y1, X2, Y2 float64
	Color          color.Color
}

// Line records a segment.
func Line(x1, y1, x2, y2 float64, clr color.Color) Command {
	return Command{Op: OpLine, X1: x1, Y1: y1, X2: x2, Y2: y2, Color: clr}
}

// Pixel records a single pixel.
func Pixel(x, y float64, clr color.Color) Command {
	return Command{Op: OpPixel, X1: x, Y1: y, Color: clr}
}

// Replay issues the commands against s in order.
func Replay(s Surface, cmds []Command) {
	for _, c := range cmds {
		switch c.Op {
		case OpLine:
			s.DrawLine(c.X1, c.Y1, c.X2, c.Y2, c.Color)
		case OpPixel:
			s.SetPixel(c.X1, c.Y1, c.Color)
		}
	}
}

// Recorder is a Surface that stores every call as a Command.
type Recorder struct {
	Commands []Command
}

// SetPixel records a pixel command.
func (r *Recorder) SetPixel(x, y float64, clr color.Color) {
	r.Commands = append(r.Commands, Pixel(x, y, clr))
}

// DrawLine records a line command.
func (r *Recorder) DrawLine(x1, y1, x2, y2 float64, clr color.Color) {
	r.Commands = append(r.Commands, Line(x1, y1, x2, y2, clr))
}
