package transform

import (
	"math"
	"testing"

	cgmath "github.com/Faultbox/cglearn/pkg/math"
)

func near(a, b [3]float32) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-5 {
			return false
		}
	}
	return true
}

func TestApply(t *testing.T) {
	tr := Translation{DX: 4, DY: -2}

	tests := []struct {
		name    string
		time    float32
		applied bool
		want    [3]float32
	}{
		{"not started", -0.1, false, [3]float32{0, 0, 0}},
		{"start", 0, true, [3]float32{0, 0, 0}},
		{"half", 0.5, true, [3]float32{2, -1, 0}},
		{"end", 1, true, [3]float32{4, -2, 0}},
		{"past end", 7, true, [3]float32{4, -2, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := Apply(tr, tt.time)
			if ok != tt.applied {
				t.Fatalf("Apply(%v) applied = %v, want %v", tt.time, ok, tt.applied)
			}
			if got := m.TransformPoint([3]float32{}); !near(got, tt.want) {
				t.Errorf("Apply(%v) moves origin to %v, want %v", tt.time, got, tt.want)
			}
		})
	}
}

func TestApplyIsEased(t *testing.T) {
	m, _ := Apply(Translation{DX: 1}, 0.25)
	x := m.TransformPoint([3]float32{})[0]
	want := float32(0.5 - 0.5*math.Cos(math.Pi*0.25))
	if math.Abs(float64(x-want)) > 1e-5 {
		t.Errorf("eased x = %v, want %v", x, want)
	}
	if x >= 0.25 {
		t.Errorf("ease should start slow: %v >= 0.25", x)
	}
}

func TestRotationKeepsAxis(t *testing.T) {
	r := Rotation{Angle: 90, Axis: [3]float32{0, 0, 1}}

	// Half progress turns 45 degrees about the full z axis.
	got := r.Matrix(0.5).TransformPoint([3]float32{1, 0, 0})
	s := float32(math.Sqrt2 / 2)
	if !near(got, [3]float32{s, s, 0}) {
		t.Errorf("half rotation = %v, want (%v, %v, 0)", got, s, s)
	}
}

func TestScale(t *testing.T) {
	tests := []struct {
		name string
		s    Scale
		want Scale
	}{
		{"uniform", NewScale(2), Scale{2, 2, 2}},
		{"xy", NewScale(2, 3), Scale{2, 3, 3}},
		{"xyz", NewScale(2, 3, 4), Scale{2, 3, 4}},
	}
	for _, tt := range tests {
		if tt.s != tt.want {
			t.Errorf("%s: got %+v, want %+v", tt.name, tt.s, tt.want)
		}
	}

	p := [3]float32{1, 1, 1}
	if got := NewScale(3).Matrix(0).TransformPoint(p); !near(got, p) {
		t.Errorf("zero progress should be identity, got %v", got)
	}
	if got := NewScale(3).Matrix(0.5).TransformPoint(p); !near(got, [3]float32{2, 2, 2}) {
		t.Errorf("half progress = %v, want (2, 2, 2)", got)
	}
}

func TestSequence(t *testing.T) {
	seq := Sequence{
		Translation{DX: 1},
		Rotation{Angle: 90, Axis: [3]float32{0, 0, 1}},
	}
	if seq.Duration() != 2 {
		t.Errorf("Duration() = %v, want 2", seq.Duration())
	}

	p := [3]float32{1, 0, 0}
	tests := []struct {
		time float32
		want [3]float32
	}{
		{-1, [3]float32{1, 0, 0}},
		{0.5, [3]float32{1.5, 0, 0}},
		{1, [3]float32{2, 0, 0}},
		{2, [3]float32{1, 1, 0}},
		{10, [3]float32{1, 1, 0}},
	}
	for _, tt := range tests {
		if got := seq.At(tt.time).TransformPoint(p); !near(got, tt.want) {
			t.Errorf("At(%v) maps %v to %v, want %v", tt.time, p, got, tt.want)
		}
	}

	var empty Sequence
	if empty.At(3) != cgmath.Identity() {
		t.Error("empty sequence should be identity")
	}
}
