package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/cglearn/pkg/math"
)

func approx(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-4
}

func TestExtentAspect(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          Extent
	}{
		{"square", 400, 400, Extent{-1, 1, -1, 1}},
		{"wide", 800, 400, Extent{-2, 2, -1, 1}},
		{"tall", 400, 800, Extent{-1, 1, -2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewport(tt.width, tt.height)
			if got := v.Extent(); got != tt.want {
				t.Errorf("Extent() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestZoom(t *testing.T) {
	v := NewViewport(100, 100)
	v.ZoomOut()
	if !approx(v.Extent().MaxX, 1.2) {
		t.Errorf("after ZoomOut MaxX = %v, want 1.2", v.Extent().MaxX)
	}
	v.ZoomIn()
	v.ZoomIn()
	if !approx(v.Extent().MaxX, 1/1.2) {
		t.Errorf("after ZoomIn MaxX = %v, want %v", v.Extent().MaxX, 1/1.2)
	}
}

func TestWindowToScene(t *testing.T) {
	v := NewViewport(200, 100)
	v.SetCenter(10, 5)

	tests := []struct {
		x, y float32
		want math.Vec2
	}{
		{0, 0, math.Vec2{X: 8, Y: 6}},
		{200, 100, math.Vec2{X: 12, Y: 4}},
		{100, 50, math.Vec2{X: 10, Y: 5}},
	}
	for _, tt := range tests {
		got := v.WindowToScene(tt.x, tt.y)
		if !approx(got.X, tt.want.X) || !approx(got.Y, tt.want.Y) {
			t.Errorf("WindowToScene(%v, %v) = %+v, want %+v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDragKeepsPointUnderCursor(t *testing.T) {
	v := NewViewport(100, 100)
	v.StartDrag(50, 50)
	v.UpdateDrag(75, 40)

	if !v.Dragging() {
		t.Fatal("expected drag in progress")
	}
	got := v.WindowToScene(75, 40)
	if !approx(got.X, 0) || !approx(got.Y, 0) {
		t.Errorf("grabbed point moved to %+v, want origin", got)
	}

	v.FinishDrag()
	if v.Dragging() {
		t.Error("drag should be finished")
	}
	c := v.Center()
	if !approx(c.X, -0.5) || !approx(c.Y, -0.2) {
		t.Errorf("Center() after drag = %+v, want (-0.5, -0.2)", c)
	}

	// Ignored without an active drag.
	v.UpdateDrag(0, 0)
	v.FinishDrag()
	if c2 := v.Center(); c2 != c {
		t.Errorf("center changed without a drag: %+v", c2)
	}
}

func TestCancelDrag(t *testing.T) {
	v := NewViewport(100, 100)
	v.SetCenter(3, 4)
	v.StartDrag(0, 0)
	v.UpdateDrag(100, 100)
	v.CancelDrag()

	if c := v.Center(); c != (math.Vec2{X: 3, Y: 4}) {
		t.Errorf("Center() after cancel = %+v, want (3, 4)", c)
	}
}

func TestFit(t *testing.T) {
	v := NewViewport(400, 400)
	v.Fit([3]float32{0, 0, 0}, [3]float32{4, 2, 0}, nil)

	if !approx(v.ZoomFactor(), 2.4) {
		t.Errorf("ZoomFactor() = %v, want 2.4", v.ZoomFactor())
	}
	e := v.Extent()
	if !approx(e.MinX, -0.4) || !approx(e.MaxX, 4.4) || !approx(e.MinY, -1.4) || !approx(e.MaxY, 3.4) {
		t.Errorf("Extent() = %+v", e)
	}

	center := math.Vec2{X: 1, Y: 1}
	v.Fit([3]float32{0, 0, 0}, [3]float32{4, 2, 0}, &center)
	if v.Center() != center {
		t.Errorf("Center() = %+v, want %+v", v.Center(), center)
	}
}

func TestFitDegenerate(t *testing.T) {
	v := NewViewport(100, 100)
	v.Fit([3]float32{1, 1, 0}, [3]float32{1, 1, 0}, nil)
	if v.ZoomExponent != 1 {
		t.Errorf("ZoomExponent = %v, want 1", v.ZoomExponent)
	}
}

func TestProjectionMapsExtentToClip(t *testing.T) {
	v := NewViewport(200, 100)
	v.SetCenter(1, 1)
	p := v.Projection().TransformPoint([3]float32{3, 2, 0})
	if !approx(p[0], 1) || !approx(p[1], 1) {
		t.Errorf("top right corner maps to %v, want (1, 1)", p)
	}

	w := v.WindowProjection().TransformPoint([3]float32{200, 0, 0})
	if !approx(w[0], 1) || !approx(w[1], -1) {
		t.Errorf("window corner maps to %v, want (1, -1)", w)
	}
}
