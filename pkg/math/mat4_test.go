package math

import (
	"math"
	"testing"
)

const epsilon = 1e-5

func approx3(a, b [3]float32) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > epsilon {
			return false
		}
	}
	return true
}

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		p    [3]float32
		want [3]float32
	}{
		{"translate", Translate(10, 20, 30), [3]float32{1, 2, 3}, [3]float32{11, 22, 33}},
		{"scale", Scale(2, 3, 4), [3]float32{1, 1, 1}, [3]float32{2, 3, 4}},
		{"rotate z 90", Rotate(90, 0, 0, 1), [3]float32{1, 0, 0}, [3]float32{0, 1, 0}},
		{"rotate unnormalized axis", Rotate(90, 0, 0, 5), [3]float32{1, 0, 0}, [3]float32{0, 1, 0}},
		{"rotate x 90", Rotate(90, 1, 0, 0), [3]float32{0, 1, 0}, [3]float32{0, 0, 1}},
		{"zero axis", Rotate(45, 0, 0, 0), [3]float32{1, 2, 3}, [3]float32{1, 2, 3}},
		{"translate then rotate", Translate(1, 0, 0).Mul(Rotate(180, 0, 0, 1)), [3]float32{1, 0, 0}, [3]float32{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.p)
			if !approx3(got, tt.want) {
				t.Errorf("TransformPoint(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestOrtho(t *testing.T) {
	m := Ortho(-2, 2, -1, 1, -1, 1)

	corners := []struct {
		in, want [3]float32
	}{
		{[3]float32{-2, -1, 0}, [3]float32{-1, -1, 0}},
		{[3]float32{2, 1, 0}, [3]float32{1, 1, 0}},
		{[3]float32{0, 0, 0}, [3]float32{0, 0, 0}},
	}
	for _, c := range corners {
		if got := m.TransformPoint(c.in); !approx3(got, c.want) {
			t.Errorf("Ortho maps %v to %v, want %v", c.in, got, c.want)
		}
	}
}

func TestInverse(t *testing.T) {
	m := Translate(3, -2, 1).Mul(Rotate(30, 0, 0, 1)).Mul(Scale(2, 2, 2))
	result := m.Mul(m.Inverse())
	id := Identity()
	for i := range result {
		if math.Abs(float64(result[i]-id[i])) > epsilon {
			t.Fatalf("M * M^-1 element %d = %f, want %f", i, result[i], id[i])
		}
	}
}

func TestInverseSingular(t *testing.T) {
	if got := Scale(0, 1, 1).Inverse(); got != Identity() {
		t.Errorf("singular inverse should be identity, got %v", got)
	}
}

func TestProjectUnproject(t *testing.T) {
	proj := Ortho(-10, 10, -5, 5, -1, 1)
	mv := Translate(1, 1, 0)
	vp := Viewport{0, 0, 800, 400}

	p := [3]float32{-1, -1, 0}
	win := Project(p, mv, proj, vp)
	if !approx3(win, [3]float32{400, 200, 0.5}) {
		t.Errorf("Project(%v) = %v, want window center", p, win)
	}

	ndc := [3]float32{win[0]/vp[2]*2 - 1, win[1]/vp[3]*2 - 1, 0}
	if back := Unproject(ndc, mv, proj); !approx3(back, p) {
		t.Errorf("Unproject round trip = %v, want %v", back, p)
	}
}
