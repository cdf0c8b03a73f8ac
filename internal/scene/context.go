// Package scene is the surface exercises draw through: named objects from
// the loaded geometry, animated display state and a matrix stack.
package scene

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/cglearn/internal/engine/camera"
	"github.com/Faultbox/cglearn/internal/engine/debug"
	"github.com/Faultbox/cglearn/internal/engine/model"
	"github.com/Faultbox/cglearn/internal/engine/transform"
	"github.com/Faultbox/cglearn/internal/logger"
	"github.com/Faultbox/cglearn/pkg/math"
	"github.com/Faultbox/cglearn/pkg/timing"
)

// Store keys shared with the application.
const (
	KeyPhase                = "phase"
	KeyMainOpacity          = "main_opacity"
	KeyMainWireframeColor   = "main_wireframe_color"
	KeyPointBorderColor     = "point_border_color"
	KeyPointFillColor       = "point_fill_color"
	KeyTargetWireframeColor = "target_wireframe_color"
)

// Phase transition durations.
const (
	NextPhaseDuration = 1000 * time.Millisecond
	PrevPhaseDuration = 100 * time.Millisecond
)

// PointRadius is the on-screen radius of vertex markers in pixels.
const PointRadius = 5

// DefaultOutlineColor is used by Outline.
var DefaultOutlineColor = [4]float32{0.2, 0.6, 0.8, 1}

// ErrStackUnderflow is recorded when Pop is called without a matching Push.
var ErrStackUnderflow = errors.New("scene: matrix stack underflow")

// Canvas is what a Context draws on.
type Canvas interface {
	model.Surface
	ModelViewStack() *math.MatrixStack
	ProjectionStack() *math.MatrixStack
}

// Options configures a Context.
type Options struct {
	// DefaultObject is drawn when Draw or Outline get no names.
	DefaultObject string
	// Phases caps NextPhase and is the target of LastPhase. Nil means no cap.
	Phases *int
}

// Context is handed to exercises once per frame. Drawing errors do not
// interrupt the exercise; the first one is kept and reported by Err.
type Context struct {
	geometry *model.Geometry
	store    *timing.Store
	viewport *camera.Viewport
	canvas   Canvas
	opts     Options

	phase int
	err   error
}

// NewContext creates a context and resets the phase to 0.
func NewContext(g *model.Geometry, store *timing.Store, vp *camera.Viewport, opts Options) *Context {
	store.Set(KeyPhase, timing.Scalar(0), 0)
	return &Context{
		geometry: g,
		store:    store,
		viewport: vp,
		opts:     opts,
	}
}

// Bind sets the canvas for the coming frame.
func (c *Context) Bind(canvas Canvas) {
	c.canvas = canvas
}

// Err returns the first error recorded since the context was created.
func (c *Context) Err() error {
	return c.err
}

func (c *Context) fail(err error) {
	if c.err == nil {
		c.err = err
		logger.Error("scene error", zap.Error(err))
	}
}

// ObjectNames lists the loaded objects.
func (c *Context) ObjectNames() []string {
	return c.geometry.ObjectNames()
}

// Now returns the frame time.
func (c *Context) Now() time.Duration {
	return c.store.Now()
}

func (c *Context) names(names []string) []string {
	if len(names) == 0 {
		return []string{c.opts.DefaultObject}
	}
	return names
}

// Draw fills the named objects and overlays their wireframe and vertex
// markers using the animated display state. No names draws the default
// object.
func (c *Context) Draw(names ...string) {
	opacity := float32(c.store.Float(KeyMainOpacity))
	wire := c.store.RGBA(KeyMainWireframeColor)

	for _, name := range c.names(names) {
		if err := c.geometry.Fill(name, opacity, c.canvas); err != nil {
			c.fail(err)
			return
		}
		c.canvas.SetColor(wire)
		if err := c.geometry.DrawWireframe(name, c.canvas); err != nil {
			c.fail(err)
			return
		}
		c.drawPoints(name)
	}
}

// Outline draws the wireframe of the named objects in DefaultOutlineColor.
func (c *Context) Outline(names ...string) {
	c.OutlineWith(DefaultOutlineColor, names...)
}

// OutlineWith draws the wireframe of the named objects in color.
func (c *Context) OutlineWith(color [4]float32, names ...string) {
	c.canvas.SetColor(color)
	for _, name := range c.names(names) {
		if err := c.geometry.DrawWireframe(name, c.canvas); err != nil {
			c.fail(err)
			return
		}
	}
}

// drawPoints marks each vertex with a fixed-size circle in window space.
func (c *Context) drawPoints(name string) {
	fill := c.store.RGBA(KeyPointFillColor)
	border := c.store.RGBA(KeyPointBorderColor)
	if fill[3] <= 0 && border[3] <= 0 {
		return
	}

	points, err := c.geometry.Vertexes(name)
	if err != nil {
		c.fail(err)
		return
	}

	mv, proj := c.canvas.ModelViewStack(), c.canvas.ProjectionStack()
	vp := math.Viewport{0, 0, float32(c.viewport.Width), float32(c.viewport.Height)}
	window := make([][3]float32, len(points))
	for i, p := range points {
		w := math.Project(p, mv.Top(), proj.Top(), vp)
		window[i] = [3]float32{w[0], w[1], 0}
	}

	proj.Push()
	proj.Load(c.viewport.WindowProjection())
	mv.Push()
	mv.Load(math.Identity())

	if fill[3] > 0 {
		c.canvas.SetColor(fill)
		for _, p := range window {
			debug.FillCircle(c.canvas, PointRadius, p, debug.DefaultCircleSteps)
		}
	}
	if border[3] > 0 {
		c.canvas.SetColor(border)
		for _, p := range window {
			debug.DrawCircle(c.canvas, PointRadius, p, debug.DefaultCircleSteps)
		}
	}

	mv.Pop()
	proj.Pop()
}

// PhaseK returns how far the running phase has progressed through phase:
// 0 before it starts, 1 once it is complete.
func (c *Context) PhaseK(phase float64) float64 {
	running := c.store.Float(KeyPhase)
	switch {
	case running <= phase:
		return 0
	case running >= phase+1:
		return 1
	default:
		return running - phase
	}
}

// Phase returns the target phase.
func (c *Context) Phase() int {
	return c.phase
}

func (c *Context) setPhase(phase int, d time.Duration) {
	c.phase = phase
	c.store.Set(KeyPhase, timing.Scalar(float64(phase)), d)
	logger.Debug("phase changed", zap.Int("phase", phase), zap.Duration("transition", d))
}

func (c *Context) belowCap() bool {
	return c.opts.Phases == nil || c.phase < *c.opts.Phases
}

// FirstPhase jumps back to phase 0.
func (c *Context) FirstPhase() {
	if c.phase > 0 {
		c.setPhase(0, 0)
	}
}

// LastPhase jumps to the configured phase count. Without a cap it does
// nothing.
func (c *Context) LastPhase() {
	if c.opts.Phases == nil {
		return
	}
	if c.phase < *c.opts.Phases {
		c.setPhase(*c.opts.Phases, 0)
	}
}

// NextPhase animates to the following phase.
func (c *Context) NextPhase() {
	if c.belowCap() {
		c.setPhase(c.phase+1, NextPhaseDuration)
	}
}

// PrevPhase animates back to the previous phase.
func (c *Context) PrevPhase() {
	if c.phase > 0 {
		c.setPhase(c.phase-1, PrevPhaseDuration)
	}
}

// Push saves the current modelview matrix.
func (c *Context) Push() {
	c.canvas.ModelViewStack().Push()
}

// Pop restores the last saved modelview matrix.
func (c *Context) Pop() {
	if !c.canvas.ModelViewStack().Pop() {
		c.fail(ErrStackUnderflow)
	}
}

// Translate moves subsequent drawing by (dx, dy, dz).
func (c *Context) Translate(dx, dy, dz float32) {
	c.canvas.ModelViewStack().Mul(math.Translate(dx, dy, dz))
}

// Rotate turns subsequent drawing by angle degrees about (x, y, z).
func (c *Context) Rotate(angle, x, y, z float32) {
	c.canvas.ModelViewStack().Mul(math.Rotate(angle, x, y, z))
}

// Scale scales subsequent drawing. A factor of -1 mirrors.
func (c *Context) Scale(sx, sy, sz float32) {
	c.canvas.ModelViewStack().Mul(math.Scale(sx, sy, sz))
}

// Transform applies tr eased to time. It does nothing before tr starts.
func (c *Context) Transform(tr transform.Transformation, time float32) {
	if m, ok := transform.Apply(tr, time); ok {
		c.canvas.ModelViewStack().Mul(m)
	}
}

// TransformSequence applies every started element of seq at time.
func (c *Context) TransformSequence(seq transform.Sequence, time float32) {
	c.canvas.ModelViewStack().Mul(seq.At(time))
}

