// Package timing provides a store of named values that animate between
// targets over wall-clock time windows.
package timing

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is either a scalar or a fixed-length tuple of values.
// Tuples nest, so colors (4-tuples) and coordinates interpolate component-wise.
type Value struct {
	scalar float64
	elems  []Value // nil for scalars
}

// Scalar returns a scalar value.
func Scalar(f float64) Value {
	return Value{scalar: f}
}

// Tuple returns a tuple holding copies of vs.
func Tuple(vs ...Value) Value {
	elems := make([]Value, len(vs))
	copy(elems, vs)
	return Value{elems: elems}
}

// Vector returns a tuple of scalars.
func Vector(fs ...float64) Value {
	elems := make([]Value, len(fs))
	for i, f := range fs {
		elems[i] = Scalar(f)
	}
	return Value{elems: elems}
}

// Color returns an RGBA 4-tuple.
func Color(rgba [4]float32) Value {
	return Vector(float64(rgba[0]), float64(rgba[1]), float64(rgba[2]), float64(rgba[3]))
}

// IsScalar reports whether v is a scalar.
func (v Value) IsScalar() bool {
	return v.elems == nil
}

// Float returns the scalar. Tuples return 0.
func (v Value) Float() float64 {
	return v.scalar
}

// Len returns the number of tuple elements, or 0 for scalars.
func (v Value) Len() int {
	return len(v.elems)
}

// At returns the i-th tuple element.
func (v Value) At(i int) Value {
	return v.elems[i]
}

// Floats flattens v depth-first into a slice of scalars.
func (v Value) Floats() []float64 {
	if v.IsScalar() {
		return []float64{v.scalar}
	}
	var out []float64
	for _, e := range v.elems {
		out = append(out, e.Floats()...)
	}
	return out
}

// RGBA interprets v as a color. Missing channels are 0 except alpha, which
// defaults to 1; a scalar becomes a gray level.
func (v Value) RGBA() [4]float32 {
	c := [4]float32{0, 0, 0, 1}
	if v.IsScalar() {
		g := float32(v.scalar)
		return [4]float32{g, g, g, 1}
	}
	fs := v.Floats()
	for i := 0; i < len(fs) && i < 4; i++ {
		c[i] = float32(fs[i])
	}
	return c
}

// SameShape reports whether v and other have identical nesting and lengths.
func (v Value) SameShape(other Value) bool {
	if v.IsScalar() || other.IsScalar() {
		return v.IsScalar() == other.IsScalar()
	}
	if len(v.elems) != len(other.elems) {
		return false
	}
	for i := range v.elems {
		if !v.elems[i].SameShape(other.elems[i]) {
			return false
		}
	}
	return true
}

// Equal reports exact equality of shape and components.
func (v Value) Equal(other Value) bool {
	if !v.SameShape(other) {
		return false
	}
	if v.IsScalar() {
		return v.scalar == other.scalar
	}
	for i := range v.elems {
		if !v.elems[i].Equal(other.elems[i]) {
			return false
		}
	}
	return true
}

// String formats scalars as numbers and tuples as (a, b, ...).
func (v Value) String() string {
	if v.IsScalar() {
		return strconv.FormatFloat(v.scalar, 'g', -1, 64)
	}
	parts := make([]string, len(v.elems))
	for i, e := range v.elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Lerp returns (1-t)*a + t*b, applied element-wise to tuples.
// It panics if a and b differ in shape.
func Lerp(a, b Value, t float64) Value {
	if a.IsScalar() && b.IsScalar() {
		return Scalar((1.0-t)*a.scalar + t*b.scalar)
	}
	if a.IsScalar() != b.IsScalar() || len(a.elems) != len(b.elems) {
		panic(fmt.Sprintf("timing: cannot interpolate %v and %v", a, b))
	}
	elems := make([]Value, len(a.elems))
	for i := range a.elems {
		elems[i] = Lerp(a.elems[i], b.elems[i], t)
	}
	return Value{elems: elems}
}
