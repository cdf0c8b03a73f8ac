// Package game implements the main loop: it owns the window and renderer
// and drives the harness once per frame.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/cglearn/internal/app"
	"github.com/Faultbox/cglearn/internal/config"
	"github.com/Faultbox/cglearn/internal/engine/debug"
	"github.com/Faultbox/cglearn/internal/engine/input"
	"github.com/Faultbox/cglearn/internal/engine/renderer"
	"github.com/Faultbox/cglearn/internal/engine/window"
	"github.com/Faultbox/cglearn/internal/logger"

	// Bundled exercises register themselves.
	_ "github.com/Faultbox/cglearn/internal/exercises"
)

// Game is the main harness instance.
type Game struct {
	config     *config.Config
	running    bool
	window     *window.Window
	renderer   *renderer.Renderer
	input      *input.Queue
	app        *app.App
	screenshot *debug.ScreenshotCapture
}

// New creates a new harness instance.
func New(cfg *config.Config) (*Game, error) {
	logger.Info("initializing",
		zap.String("config", cfg.Path),
		zap.String("callback", cfg.Scene.Callback),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	geometry, err := app.LoadGeometry(cfg.Scene.ObjFiles)
	if err != nil {
		return nil, err
	}

	g := &Game{
		config:     cfg,
		input:      input.NewQueue(),
		screenshot: debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "cglearn"),
	}

	// Create window (this also creates OpenGL context)
	g.window, err = window.New(window.Config{
		Title:  cfg.Graphics.Title,
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
		VSync:  cfg.Graphics.VSync,
		Depth:  cfg.Scene.Depth,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	fbWidth, fbHeight := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:  fbWidth,
		Height: fbHeight,
		Depth:  cfg.Scene.Depth,
	})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.app, err = app.New(cfg, geometry, window.TickClock{})
	if err != nil {
		g.Close()
		return nil, err
	}
	g.app.Resize(g.window.GetSize())

	logger.Info("initialized successfully", zap.Strings("objects", geometry.ObjectNames()))
	return g, nil
}

// Run starts the main loop. It returns when the window is closed, Escape
// is pressed or drawing fails.
func (g *Game) Run() error {
	g.running = true

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting main loop")

	for g.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		// 1. Process input
		g.window.PollEvents(g.input)
		for _, event := range g.input.Events() {
			if event.Type == input.EventWindowResize {
				g.renderer.Resize(g.window.DrawableSize())
			}
			g.app.HandleEvent(event)
		}
		if g.app.Quit() {
			g.running = false
			break
		}

		// 2. Render
		g.renderer.Clear(g.app.ClearColor())
		if err := g.app.Frame(g.renderer); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		g.renderer.Flush()

		if g.app.TakeScreenshotRequest() {
			g.capture()
		}

		// 3. Present (swap buffers)
		g.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", dt))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (g *Game) capture() {
	pixels, width, height := g.renderer.ReadPixels()
	if pixels == nil {
		return
	}
	path, err := g.screenshot.CaptureFromPixels(pixels, width, height)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up resources.
func (g *Game) Close() {
	logger.Info("closing")
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
