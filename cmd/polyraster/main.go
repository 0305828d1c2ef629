// Command polyraster builds a polygon from a list of clicks, using the same
// acceptance rules as the interactive editor, and writes the rendered result
// to an image file.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"chosenoffset.com/convexpoly/internal/config"
	"chosenoffset.com/convexpoly/internal/core/geom"
	"chosenoffset.com/convexpoly/internal/core/raster"
	"chosenoffset.com/convexpoly/internal/editor"
	"chosenoffset.com/convexpoly/internal/render"
	"chosenoffset.com/convexpoly/internal/render/canvas"
)

func main() {
	configPath := flag.String("config", "convexpoly.json", "Config file for size and colors (missing file uses defaults)")
	points := flag.String("points", "", `Clicks in polygon space, e.g. "100,100 300,100 300,300"`)
	out := flag.String("out", "polygon.png", "Output file (.png, .bmp, .tif)")
	fillAlg := flag.String("fill", "", "Fill algorithm: dense or spans (overrides config)")
	width := flag.Int("width", 0, "Image width (overrides config)")
	height := flag.Int("height", 0, "Image height (overrides config)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *fillAlg != "" {
		cfg.Fill.Algorithm = *fillAlg
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	clicks, err := geom.ParsePoints(*points)
	if err != nil {
		log.Fatalf("Failed to parse points: %v", err)
	}

	if err := rasterize(cfg, clicks, *out); err != nil {
		log.Fatal(err)
	}
}

func rasterize(cfg *config.Config, clicks []geom.Point, out string) error {
	format, err := canvas.FormatFromPath(out)
	if err != nil {
		return err
	}
	bg, outline, fillColor, err := cfg.Style.Colors()
	if err != nil {
		return err
	}
	fill, err := raster.Lookup(cfg.Fill.Algorithm)
	if err != nil {
		return err
	}

	ed := editor.New(editor.Style{Outline: outline, Fill: fillColor}, fill)
	for _, p := range clicks {
		if result := ed.Click(p); result == editor.Rejected {
			log.Printf("Rejected (%g, %g): polygon would not stay convex", p.X, p.Y)
		}
	}

	c := canvas.New(cfg.Window.Width, cfg.Window.Height)
	defer c.Close()
	c.Clear(bg)
	render.Replay(c, ed.Frame())
	if err := c.Err(); err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := c.Encode(f, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	log.Printf("Wrote %s: %d vertices, convex: %v", out, ed.Len(), ed.Convex())
	return nil
}
