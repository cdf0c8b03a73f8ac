// Package transform provides eased affine transformations for animating
// exercise objects over a normalized time.
package transform

import (
	"github.com/Faultbox/cglearn/pkg/math"
	"github.com/Faultbox/cglearn/pkg/timing"
)

// Transformation produces a matrix for a linear progress t in [0, 1].
type Transformation interface {
	Matrix(t float32) math.Mat4
}

// Apply evaluates tr at the given time. Negative time means the
// transformation has not started and nothing is applied. Time past 1 holds
// the final pose; values in between are eased.
func Apply(tr Transformation, time float32) (math.Mat4, bool) {
	if time < 0 {
		return math.Identity(), false
	}
	t := float32(1)
	if time < 1 {
		t = float32(timing.Ease(float64(time)))
	}
	return tr.Matrix(t), true
}

// Translation moves by (DX, DY, DZ) at full progress.
type Translation struct {
	DX, DY, DZ float32
}

// Matrix implements Transformation.
func (tr Translation) Matrix(t float32) math.Mat4 {
	return math.Translate(t*tr.DX, t*tr.DY, t*tr.DZ)
}

// Rotation turns by Angle degrees about Axis at full progress.
type Rotation struct {
	Angle float32
	Axis  [3]float32
}

// Matrix implements Transformation.
func (r Rotation) Matrix(t float32) math.Mat4 {
	return math.Rotate(t*r.Angle, r.Axis[0], r.Axis[1], r.Axis[2])
}

// Scale scales by (SX, SY, SZ) at full progress and by 1 at zero progress.
type Scale struct {
	SX, SY, SZ float32
}

// NewScale builds a Scale. Missing factors repeat the previous one, so
// NewScale(2) is uniform and NewScale(2, 3) scales z by 3.
func NewScale(sx float32, rest ...float32) Scale {
	s := Scale{SX: sx, SY: sx, SZ: sx}
	if len(rest) > 0 {
		s.SY, s.SZ = rest[0], rest[0]
	}
	if len(rest) > 1 {
		s.SZ = rest[1]
	}
	return s
}

// Matrix implements Transformation.
func (s Scale) Matrix(t float32) math.Mat4 {
	return math.Scale(1+t*(s.SX-1), 1+t*(s.SY-1), 1+t*(s.SZ-1))
}

// Sequence chains transformations one time unit apart: element i runs
// while time goes from i to i+1.
type Sequence []Transformation

// At composes every started element at its own local time. Elements are
// applied in order, so earlier ones act in the outer frame.
func (seq Sequence) At(time float32) math.Mat4 {
	m := math.Identity()
	for i, tr := range seq {
		local, ok := Apply(tr, time-float32(i))
		if !ok {
			break
		}
		m = m.Mul(local)
	}
	return m
}

// Duration is the time at which the last element completes.
func (seq Sequence) Duration() float32 {
	return float32(len(seq))
}
