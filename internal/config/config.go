// Package config provides the editor's window, style and fill settings.
// Settings are loaded from a JSON file layered over the defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"

	"chosenoffset.com/convexpoly/internal/core/raster"
)

// Backend names.
const (
	BackendEbiten = "ebiten"
	BackendTerm   = "term"
)

// ErrUnknownBackend is returned by Validate for an unrecognised backend.
var ErrUnknownBackend = errors.New("unknown backend")

// Config holds all editor settings
type Config struct {
	Window  WindowConfig `json:"window"`
	Style   StyleConfig  `json:"style"`
	Fill    FillConfig   `json:"fill"`
	Backend string       `json:"backend"` // "ebiten" or "term"
	Debug   bool         `json:"debug"`   // Log every click result
}

// WindowConfig describes the window the ebiten backend opens
type WindowConfig struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Title     string `json:"title"`
	Resizable bool   `json:"resizable"`
}

// StyleConfig holds hex colors such as "#0000ff"
type StyleConfig struct {
	Background string `json:"background"`
	Outline    string `json:"outline"`
	Fill       string `json:"fill"`
}

// FillConfig selects the fill implementation
type FillConfig struct {
	Algorithm string `json:"algorithm"` // "dense" or "spans"
}

// DefaultConfig returns an 800x600 white window with a blue polygon
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "Convex Polygon",
		},
		Style: StyleConfig{
			Background: "#ffffff",
			Outline:    "#0000ff",
			Fill:       "#0000ff",
		},
		Fill: FillConfig{
			Algorithm: raster.Dense,
		},
		Backend: BackendEbiten,
	}
}

// LoadConfig loads config from a JSON file
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// Validate checks the settings that can't be caught by the JSON decoder
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Backend != BackendEbiten && c.Backend != BackendTerm {
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
	if _, err := raster.Lookup(c.Fill.Algorithm); err != nil {
		return err
	}
	if _, _, _, err := c.Style.Colors(); err != nil {
		return err
	}
	return nil
}

// Colors parses the background, outline and fill colors.
func (s StyleConfig) Colors() (bg, outline, fill color.RGBA, err error) {
	if bg, err = ParseColor(s.Background); err != nil {
		return bg, outline, fill, fmt.Errorf("background: %w", err)
	}
	if outline, err = ParseColor(s.Outline); err != nil {
		return bg, outline, fill, fmt.Errorf("outline: %w", err)
	}
	if fill, err = ParseColor(s.Fill); err != nil {
		return bg, outline, fill, fmt.Errorf("fill: %w", err)
	}
	return bg, outline, fill, nil
}

// ParseColor converts a "#rrggbb" string to an opaque color.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
