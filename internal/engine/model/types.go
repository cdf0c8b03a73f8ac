// Package model holds loaded mesh geometry and emits it to a drawing surface.
package model

import "errors"

// ErrUnknownObject is returned when a name does not match any loaded object.
var ErrUnknownObject = errors.New("unknown object")

// Mode is the primitive assembly mode passed to Surface.Begin.
type Mode int

const (
	Lines Mode = iota
	LineLoop
	Triangles
	Quads
	TriangleFan
)

func (m Mode) String() string {
	switch m {
	case Lines:
		return "Lines"
	case LineLoop:
		return "LineLoop"
	case Triangles:
		return "Triangles"
	case Quads:
		return "Quads"
	case TriangleFan:
		return "TriangleFan"
	default:
		return "Mode(?)"
	}
}

// Surface receives immediate-mode style drawing calls. Every Begin is
// closed by exactly one End.
type Surface interface {
	SetColor(rgba [4]float32)
	Begin(mode Mode)
	Normal(n [3]float32)
	Vertex(v [3]float32)
	End()
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the midpoint of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}
