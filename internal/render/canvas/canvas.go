// Package canvas is a headless render.Canvas backed by a gg software
// context. It is used to export the editor's output as an image file.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"chosenoffset.com/convexpoly/internal/render"
)

// Export formats.
const (
	FormatPNG  = "png"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
)

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown image format")

// Canvas draws into a gg context. Pixels are written straight into the
// pixmap; lines are stroked by gg as they arrive.
type Canvas struct {
	dc            *gg.Context
	width, height int
	err           error
}

// New creates a transparent canvas of the given size.
func New(width, height int) *Canvas {
	dc := gg.NewContext(width, height)
	dc.SetLineWidth(1)
	return &Canvas{dc: dc, width: width, height: height}
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Clear fills the canvas with bg.
func (c *Canvas) Clear(bg color.Color) {
	c.dc.ClearWithColor(gg.FromColor(bg))
}

// SetPixel writes one pixel; out of range pixels are dropped by gg.
func (c *Canvas) SetPixel(x, y float64, clr color.Color) {
	c.dc.SetPixel(int(x), int(render.FlipY(y, c.height)), gg.FromColor(clr))
}

// DrawLine strokes a segment through the centers of its endpoint pixels.
// The first stroke error is kept and reported by Err.
func (c *Canvas) DrawLine(x1, y1, x2, y2 float64, clr color.Color) {
	c.dc.SetColor(clr)
	c.dc.DrawLine(x1+0.5, render.FlipY(y1, c.height)+0.5, x2+0.5, render.FlipY(y2, c.height)+0.5)
	if err := c.dc.Stroke(); err != nil && c.err == nil {
		c.err = fmt.Errorf("failed to stroke line: %w", err)
	}
}

// Err returns the first drawing error, if any.
func (c *Canvas) Err() error {
	return c.err
}

// Image returns a snapshot of the canvas in top-left origin image space.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// Encode writes the canvas in the given format.
func (c *Canvas) Encode(w io.Writer, format string) error {
	var err error
	switch format {
	case FormatPNG:
		err = c.dc.EncodePNG(w)
	case FormatBMP:
		err = bmp.Encode(w, c.dc.Image())
	case FormatTIFF:
		err = tiff.Encode(w, c.dc.Image(), &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

// Close releases the gg context.
func (c *Canvas) Close() error {
	return c.dc.Close()
}

// FormatFromPath picks the export format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}
