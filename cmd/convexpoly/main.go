package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/convexpoly/internal/config"
	"chosenoffset.com/convexpoly/internal/core/raster"
	"chosenoffset.com/convexpoly/internal/editor"
	"chosenoffset.com/convexpoly/internal/game"
	"chosenoffset.com/convexpoly/internal/render"
	ebitenrender "chosenoffset.com/convexpoly/internal/render/ebiten"
	termrender "chosenoffset.com/convexpoly/internal/render/term"
)

func main() {
	// Command-line flags
	configPath := flag.String("config", "convexpoly.json", "Config file (missing file uses defaults)")
	backend := flag.String("backend", "", "Backend: ebiten or term (overrides config)")
	fillAlg := flag.String("fill", "", "Fill algorithm: dense or spans (overrides config)")
	width := flag.Int("width", 0, "Window width (overrides config)")
	height := flag.Int("height", 0, "Window height (overrides config)")
	debug := flag.Bool("debug", false, "Log every click")
	logPath := flag.String("log", "", "Write log output to this file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *backend != "" {
		cfg.Backend = *backend
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
	if *debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else if cfg.Backend == config.BackendTerm {
		// Anything written to stderr would land on top of the drawing.
		log.SetOutput(io.Discard)
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *config.Config) error {
	bg, outline, fillColor, err := cfg.Style.Colors()
	if err != nil {
		return err
	}
	if cfg.Fill.Algorithm == "" {
		cfg.Fill.Algorithm = raster.Dense
	}
	fill, err := raster.Lookup(cfg.Fill.Algorithm)
	if err != nil {
		return err
	}
	ed := editor.New(editor.Style{Outline: outline, Fill: fillColor}, fill)

	var (
		renderer render.Renderer
		input    render.InputManager
		engine   render.Engine
	)
	screenWidth, screenHeight := cfg.Window.Width, cfg.Window.Height
	resizable := cfg.Window.Resizable

	switch cfg.Backend {
	case config.BackendTerm:
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to create terminal screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("failed to init terminal screen: %w", err)
		}
		defer screen.Fini()

		termInput := termrender.NewInputManager()
		renderer = termrender.NewRenderer(screen)
		input = termInput
		engine = termrender.NewEngine(screen, termInput)
		screenWidth, screenHeight = screen.Size()
		resizable = true
	default:
		renderer = ebitenrender.NewRenderer()
		input = ebitenrender.NewInputManager()
		engine = ebitenrender.NewEngine()
	}

	g := game.New(ed, renderer, input, screenWidth, screenHeight)
	g.Background = bg
	g.Algorithm = cfg.Fill.Algorithm
	g.Resizable = resizable
	g.Debug = cfg.Debug

	engine.SetWindowSize(screenWidth, screenHeight)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(resizable)

	log.Printf("Starting %s backend (%dx%d, fill: %s)", cfg.Backend, screenWidth, screenHeight, cfg.Fill.Algorithm)
	if err := engine.RunGame(g); err != nil {
		return fmt.Errorf("game loop failed: %w", err)
	}
	log.Println("Exited")
	return nil
}
