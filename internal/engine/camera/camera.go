// Package camera provides the 2D orthographic viewport used to look at
// exercise scenes.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/cglearn/pkg/math"
)

// ZoomBase is the scale change of one zoom step.
const ZoomBase = 1.2

// Extent is the visible scene rectangle.
type Extent struct {
	MinX, MaxX float32
	MinY, MaxY float32
}

// Width returns MaxX - MinX.
func (e Extent) Width() float32 { return e.MaxX - e.MinX }

// Height returns MaxY - MinY.
func (e Extent) Height() float32 { return e.MaxY - e.MinY }

// Viewport maps a window onto a region of the XY plane. The shorter window
// side always spans 2 * ZoomBase^ZoomExponent scene units.
type Viewport struct {
	// Window size in pixels
	Width, Height int

	// Zoom level; larger values show more of the scene
	ZoomExponent float32

	fixedCenter math.Vec2

	// Drag state
	dragging  bool
	dragStart math.Vec2
	dragDelta math.Vec2
}

// NewViewport creates a viewport for a window of the given size.
func NewViewport(width, height int) *Viewport {
	return &Viewport{Width: width, Height: height}
}

// Resize updates the window size.
func (v *Viewport) Resize(width, height int) {
	v.Width = width
	v.Height = height
}

// ZoomFactor returns ZoomBase^ZoomExponent.
func (v *Viewport) ZoomFactor() float32 {
	return math32.Pow(ZoomBase, v.ZoomExponent)
}

// ZoomIn shows less of the scene.
func (v *Viewport) ZoomIn() {
	v.ZoomExponent--
}

// ZoomOut shows more of the scene.
func (v *Viewport) ZoomOut() {
	v.ZoomExponent++
}

// SetCenter moves the resting center of the view.
func (v *Viewport) SetCenter(x, y float32) {
	v.fixedCenter = math.Vec2{X: x, Y: y}
}

// Center returns the view center, following an active drag.
func (v *Viewport) Center() math.Vec2 {
	if v.dragging {
		return v.fixedCenter.Sub(v.dragDelta)
	}
	return v.fixedCenter
}

// Dragging reports whether a drag is in progress.
func (v *Viewport) Dragging() bool {
	return v.dragging
}

// Extent returns the visible scene rectangle.
func (v *Viewport) Extent() Extent {
	return v.extentAt(v.Center())
}

func (v *Viewport) extentAt(center math.Vec2) Extent {
	w, h := float32(max(v.Width, 1)), float32(max(v.Height, 1))
	dx, dy := float32(1), float32(1)
	if w > h {
		dx = w / h
	} else {
		dy = h / w
	}

	zoom := v.ZoomFactor()
	return Extent{
		MinX: center.X - dx*zoom,
		MaxX: center.X + dx*zoom,
		MinY: center.Y - dy*zoom,
		MaxY: center.Y + dy*zoom,
	}
}

// Projection returns the scene projection with depth range [-1, 1].
func (v *Viewport) Projection() math.Mat4 {
	e := v.Extent()
	return math.Ortho(e.MinX, e.MaxX, e.MinY, e.MaxY, -1, 1)
}

// WindowProjection maps window pixels with the origin at the bottom left.
func (v *Viewport) WindowProjection() math.Mat4 {
	return math.Ortho(0, float32(v.Width), 0, float32(v.Height), -1, 1)
}

// WindowToScene converts a window position (origin top left, y down) to
// scene coordinates.
func (v *Viewport) WindowToScene(x, y float32) math.Vec2 {
	return v.windowToScene(v.Extent(), x, y)
}

func (v *Viewport) windowToScene(e Extent, x, y float32) math.Vec2 {
	u := x / float32(max(v.Width, 1))
	w := 1 - y/float32(max(v.Height, 1))
	return math.Vec2{
		X: e.MinX + u*e.Width(),
		Y: e.MinY + w*e.Height(),
	}
}

// StartDrag begins panning at a window position.
func (v *Viewport) StartDrag(x, y float32) {
	v.dragging = true
	v.dragStart = v.windowToScene(v.extentAt(v.fixedCenter), x, y)
	v.dragDelta = math.Vec2{}
}

// UpdateDrag moves the view so the point under the cursor at StartDrag
// stays under the cursor.
func (v *Viewport) UpdateDrag(x, y float32) {
	if !v.dragging {
		return
	}
	current := v.windowToScene(v.extentAt(v.fixedCenter), x, y)
	v.dragDelta = current.Sub(v.dragStart)
}

// FinishDrag keeps the panned center.
func (v *Viewport) FinishDrag() {
	if !v.dragging {
		return
	}
	v.fixedCenter = v.Center()
	v.dragging = false
}

// CancelDrag drops the pan and restores the resting center.
func (v *Viewport) CancelDrag() {
	v.dragging = false
	v.dragDelta = math.Vec2{}
}

// Fit zooms so the XY extent of the box [lo, hi] is visible. center
// overrides the box midpoint when non-nil.
func (v *Viewport) Fit(lo, hi [3]float32, center *math.Vec2) {
	dx := hi[0] - lo[0]
	dy := hi[1] - lo[1]

	exp := math32.Max(math32.Log(dx/2), math32.Log(dy/2)) / math32.Log(ZoomBase)
	if math32.IsInf(exp, 0) || math32.IsNaN(exp) {
		exp = 0
	}
	v.ZoomExponent = exp + 1

	if center != nil {
		v.fixedCenter = *center
	} else {
		v.fixedCenter = math.Vec2{X: lo[0] + dx/2, Y: lo[1] + dy/2}
	}
}
