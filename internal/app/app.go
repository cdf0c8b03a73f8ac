// Package app holds the per-frame logic of the harness: the drawing
// sequence, key and mouse bindings, and the animated display toggles.
// It has no window or GL dependencies; internal/game drives it.
package app

import (
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Faultbox/cglearn/internal/config"
	"github.com/Faultbox/cglearn/internal/engine/camera"
	"github.com/Faultbox/cglearn/internal/engine/debug"
	"github.com/Faultbox/cglearn/internal/engine/input"
	"github.com/Faultbox/cglearn/internal/engine/model"
	"github.com/Faultbox/cglearn/internal/logger"
	"github.com/Faultbox/cglearn/internal/scene"
	"github.com/Faultbox/cglearn/pkg/math"
	"github.com/Faultbox/cglearn/pkg/timing"
)

// Fill opacities of the fill toggle.
const (
	VisibleOpacity = 1.0
	HiddenOpacity  = 0.1
)

// BaseColor is the color exercises start drawing with.
var BaseColor = [4]float32{1, 1, 1, 1}

// App is the harness state shared by every frame.
type App struct {
	cfg      *config.Config
	geometry *model.Geometry
	store    *timing.Store
	viewport *camera.Viewport
	ctx      *scene.Context
	exercise scene.Exercise

	showFill      bool
	showWireframe bool
	showPoints    bool
	showBounds    bool

	bounds     model.Bounds
	quit       bool
	screenshot bool
}

// New creates the harness for a loaded geometry. The exercise is looked up
// by cfg.Scene.Callback; an empty or unknown name draws every object.
func New(cfg *config.Config, g *model.Geometry, clock timing.Clock) (*App, error) {
	a := &App{
		cfg:      cfg,
		geometry: g,
		store:    timing.NewStore(clock),
		viewport: camera.NewViewport(cfg.Graphics.Width, cfg.Graphics.Height),
		showFill: true,
	}

	colors := cfg.Colors
	a.store.Set(scene.KeyMainOpacity, timing.Scalar(VisibleOpacity), 0)
	a.store.Set(scene.KeyMainWireframeColor, timing.Color(colors.Wireframe.Hidden()), 0)
	a.store.Set(scene.KeyPointBorderColor, timing.Color(colors.PointBorder.Hidden()), 0)
	a.store.Set(scene.KeyPointFillColor, timing.Color(colors.PointFill.Hidden()), 0)
	a.store.Set(scene.KeyTargetWireframeColor, timing.Color(colors.Target.RGBA()), 0)

	a.ctx = scene.NewContext(g, a.store, a.viewport, scene.Options{
		DefaultObject: cfg.Scene.DefaultObject,
		Phases:        cfg.Scene.Phases,
	})
	a.exercise = resolveExercise(cfg.Scene.Callback)

	if err := a.fit(); err != nil {
		return nil, err
	}
	return a, nil
}

// LoadGeometry loads the configured meshes in order. A later file
// replaces what earlier files loaded.
func LoadGeometry(files []string) (*model.Geometry, error) {
	g := model.NewGeometry()
	if len(files) > 1 {
		logger.Warn("several obj_files configured, only the last one stays loaded",
			zap.Strings("files", files))
	}
	for _, path := range files {
		if err := g.Load(path); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}
	return g, nil
}

func resolveExercise(name string) scene.Exercise {
	if name == "" {
		return scene.DrawAll{}
	}
	factory, ok := scene.Lookup(name)
	if !ok {
		logger.Warn("exercise not found, drawing all objects",
			zap.String("callback", name),
			zap.Strings("available", scene.Names()))
		return scene.DrawAll{}
	}
	logger.Info("exercise selected", zap.String("callback", name))
	return factory()
}

// fit frames the configured bounds, or the bounds of the fit objects.
func (a *App) fit() error {
	b, err := a.geometry.Bounds(a.cfg.Scene.FitObjects...)
	if err != nil {
		return fmt.Errorf("fit objects: %w", err)
	}
	a.bounds = b

	lo, hi := b.Min, b.Max
	if r := a.cfg.Scene.Bounds; r != nil {
		lo = [3]float32{r.Min.X, r.Min.Y, 0}
		hi = [3]float32{r.Max.X, r.Max.Y, 0}
	}

	var center *math.Vec2
	if c := a.cfg.Scene.Center; c != nil {
		center = &math.Vec2{X: c.X, Y: c.Y}
	}
	a.viewport.Fit(lo, hi, center)

	logger.Debug("view fitted",
		zap.Float32("zoom", a.viewport.ZoomFactor()),
		zap.Float32("centerX", a.viewport.Center().X),
		zap.Float32("centerY", a.viewport.Center().Y))
	return nil
}

// Viewport returns the scene viewport.
func (a *App) Viewport() *camera.Viewport {
	return a.viewport
}

// Store returns the display state store.
func (a *App) Store() *timing.Store {
	return a.store
}

// Context returns the exercise context.
func (a *App) Context() *scene.Context {
	return a.ctx
}

// ClearColor returns the background color.
func (a *App) ClearColor() [4]float32 {
	return a.cfg.Colors.Background.RGBA()
}

// Quit reports whether the user asked to leave.
func (a *App) Quit() bool {
	return a.quit
}

// TakeScreenshotRequest reports and clears a pending screenshot request.
func (a *App) TakeScreenshotRequest() bool {
	req := a.screenshot
	a.screenshot = false
	return req
}

// Resize updates the viewport to a new window size.
func (a *App) Resize(width, height int) {
	a.viewport.Resize(width, height)
}

// HandleEvent applies one input event.
func (a *App) HandleEvent(e input.Event) {
	switch e.Type {
	case input.EventQuit:
		a.quit = true

	case input.EventWindowResize:
		a.Resize(e.Width, e.Height)

	case input.EventKeyDown:
		switch e.Key {
		case input.KeyEscape:
			a.quit = true
		case input.KeyF12:
			a.screenshot = true
		}

	case input.EventText:
		for s := e.Text; s != ""; {
			r, size := utf8.DecodeRuneInString(s)
			a.HandleKey(string(r))
			s = s[size:]
		}

	case input.EventMouseDown:
		if e.Button == input.ButtonLeft {
			a.viewport.StartDrag(float32(e.MouseX), float32(e.MouseY))
		}

	case input.EventMouseUp:
		if e.Button == input.ButtonLeft {
			a.viewport.FinishDrag()
		}

	case input.EventMouseMove:
		a.viewport.UpdateDrag(float32(e.MouseX), float32(e.MouseY))

	case input.EventMouseWheel:
		switch {
		case e.WheelY > 0:
			a.viewport.ZoomIn()
		case e.WheelY < 0:
			a.viewport.ZoomOut()
		}
	}
}

// HandleKey applies a printable key. Keys the harness does not bind are
// passed to the exercise.
func (a *App) HandleKey(key string) {
	switch key {
	case "+", "=":
		a.viewport.ZoomIn()
	case "-":
		a.viewport.ZoomOut()
	case "f", "F":
		a.toggleFill(a.transition(key))
	case "w", "W":
		a.toggleWireframe(a.transition(key))
	case "p", "P":
		a.togglePoints(a.transition(key))
	case "b":
		a.showBounds = !a.showBounds
	case "[":
		a.ctx.PrevPhase()
	case "]":
		a.ctx.NextPhase()
	case "{":
		a.ctx.FirstPhase()
	case "}":
		a.ctx.LastPhase()
	default:
		if h, ok := a.exercise.(scene.KeyHandler); ok {
			h.HandleKey(key)
		}
	}
}

// transition picks the fast duration for upper case toggle keys.
func (a *App) transition(key string) time.Duration {
	if key >= "A" && key <= "Z" {
		return a.cfg.Transitions.Fast
	}
	return a.cfg.Transitions.Slow
}

func (a *App) toggleFill(d time.Duration) {
	a.showFill = !a.showFill
	opacity := HiddenOpacity
	if a.showFill {
		opacity = VisibleOpacity
	}
	a.store.Set(scene.KeyMainOpacity, timing.Scalar(opacity), d)
}

func (a *App) toggleWireframe(d time.Duration) {
	a.showWireframe = !a.showWireframe
	a.store.Set(scene.KeyMainWireframeColor, visibility(a.cfg.Colors.Wireframe, a.showWireframe), d)
}

func (a *App) togglePoints(d time.Duration) {
	a.showPoints = !a.showPoints
	a.store.Set(scene.KeyPointBorderColor, visibility(a.cfg.Colors.PointBorder, a.showPoints), d)
	a.store.Set(scene.KeyPointFillColor, visibility(a.cfg.Colors.PointFill, a.showPoints), d)
}

func visibility(c config.Color, visible bool) timing.Value {
	if visible {
		return timing.Color(c.RGBA())
	}
	return timing.Color(c.Hidden())
}

// Frame draws one frame on canvas: the grid, then each instruction of the
// sequence starting from the same scene matrices, then overlays. The
// caller clears the canvas beforehand and presents it afterwards.
func (a *App) Frame(canvas scene.Canvas) error {
	a.store.UpdateTime()

	proj, mv := canvas.ProjectionStack(), canvas.ModelViewStack()
	proj.Load(a.viewport.Projection())
	mv.Load(math.Identity())
	sceneProj, sceneMV := proj.Top(), mv.Top()

	grid := debug.GenerateGrid(debug.VisibleExtent(sceneMV, sceneProj), a.cfg.Graphics.GridSpacing)
	debug.DrawSegments(canvas, grid)

	a.ctx.Bind(canvas)
	for _, in := range a.cfg.Scene.Sequence {
		proj.Load(sceneProj)
		mv.Load(sceneMV)

		switch in.Command {
		case config.CmdUserCallback:
			canvas.SetColor(BaseColor)
			a.exercise.Compose(a.ctx)
			if err := a.ctx.Err(); err != nil {
				return fmt.Errorf("exercise: %w", err)
			}
		case config.CmdOutline:
			canvas.SetColor(a.store.RGBA(scene.KeyTargetWireframeColor))
			if err := a.geometry.DrawWireframe(in.Object, canvas); err != nil {
				return fmt.Errorf("outline: %w", err)
			}
		case config.CmdFill:
			if err := a.geometry.Fill(in.Object, VisibleOpacity, canvas); err != nil {
				return fmt.Errorf("fill: %w", err)
			}
		}
	}

	if a.showBounds {
		proj.Load(sceneProj)
		mv.Load(sceneMV)
		debug.DrawSegments(canvas, debug.GenerateBoundsWireframe(a.bounds, 0, debug.BoundsColor))
	}
	return nil
}
