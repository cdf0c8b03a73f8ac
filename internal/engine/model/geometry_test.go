package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/cglearn/pkg/formats"
)

// recorder captures Surface calls as strings.
type recorder struct {
	calls []string
	open  bool
}

func (r *recorder) SetColor(c [4]float32) {
	r.calls = append(r.calls, fmt.Sprintf("color %g %g %g %g", c[0], c[1], c[2], c[3]))
}

func (r *recorder) Begin(m Mode) {
	if r.open {
		r.calls = append(r.calls, "nested begin")
	}
	r.open = true
	r.calls = append(r.calls, "begin "+m.String())
}

func (r *recorder) Normal(n [3]float32) {
	r.calls = append(r.calls, fmt.Sprintf("normal %g %g %g", n[0], n[1], n[2]))
}

func (r *recorder) Vertex(v [3]float32) {
	r.calls = append(r.calls, fmt.Sprintf("vertex %g %g %g", v[0], v[1], v[2]))
}

func (r *recorder) End() {
	r.open = false
	r.calls = append(r.calls, "end")
}

func load(t *testing.T, src string) *Geometry {
	t.Helper()
	g := NewGeometry()
	if err := g.LoadReader(strings.NewReader(src), t.TempDir()); err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	return g
}

func equalCalls(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d calls, want %d:\n%s", len(got), len(want), strings.Join(got, "\n"))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, got[i], want[i])
		}
	}
}

const triangleSrc = `v 0 0 0
v 1 0 0
v 1 1 0
f 1 2 3
`

func TestBoundsUnnamedTriangle(t *testing.T) {
	g := load(t, triangleSrc)

	names := g.ObjectNames()
	if len(names) != 1 || names[0] != "" {
		t.Fatalf("ObjectNames() = %q, want [\"\"]", names)
	}

	b, err := g.Bounds()
	if err != nil {
		t.Fatalf("Bounds: %v", err)
	}
	want := Bounds{Min: [3]float32{0, 0, -0.5}, Max: [3]float32{1, 1, 0.5}}
	if b != want {
		t.Errorf("Bounds() = %+v, want %+v", b, want)
	}
}

func TestBoundsTriangleAndQuad(t *testing.T) {
	g := load(t, `v -2 0 1
v 3 0 1
v 3 4 -1
v -2 4 5
v 9 9 9
f 1/ 2/ 3/
f 1 2 3 4
`)
	b, err := g.Bounds()
	if err != nil {
		t.Fatalf("Bounds: %v", err)
	}
	// Vertex 5 is not referenced.
	want := Bounds{Min: [3]float32{-2, 0, -1}, Max: [3]float32{3, 4, 5}}
	if b != want {
		t.Errorf("Bounds() = %+v, want %+v", b, want)
	}
}

func TestBoundsSinglePoint(t *testing.T) {
	g := load(t, "v 2 3 4\nl 1 1\n")
	b, err := g.Bounds()
	if err != nil {
		t.Fatalf("Bounds: %v", err)
	}
	want := Bounds{Min: [3]float32{1.5, 2.5, 3.5}, Max: [3]float32{2.5, 3.5, 4.5}}
	if b != want {
		t.Errorf("Bounds() = %+v, want %+v", b, want)
	}
}

func TestBoundsFarFromOrigin(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Bounds
	}{
		{
			name: "large positive",
			src:  "v 2e30 2e30 2e30\nv 3e30 3e30 2e30\nv 3e30 2e30 2e30\nf 1 2 3\n",
			// 0.5 of padding vanishes at this magnitude.
			want: Bounds{Min: [3]float32{2e30, 2e30, 2e30}, Max: [3]float32{3e30, 3e30, 2e30}},
		},
		{
			name: "large negative",
			src:  "v -4e31 -2e31 7\nv -3e31 -5e31 7\nl 1 2\n",
			want: Bounds{Min: [3]float32{-4e31, -5e31, 6.5}, Max: [3]float32{-3e31, -2e31, 7.5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := load(t, tt.src).Bounds()
			if err != nil {
				t.Fatalf("Bounds: %v", err)
			}
			if b != tt.want {
				t.Errorf("Bounds() = %+v, want %+v", b, tt.want)
			}
		})
	}
}

func TestBoundsEmpty(t *testing.T) {
	g := NewGeometry()
	b, err := g.Bounds()
	if err != nil {
		t.Fatalf("Bounds: %v", err)
	}
	want := Bounds{Min: [3]float32{-1, -1, -1}, Max: [3]float32{1, 1, 1}}
	if b != want {
		t.Errorf("Bounds() = %+v, want %+v", b, want)
	}
	if c := b.Center(); c != [3]float32{} {
		t.Errorf("Center() = %v, want origin", c)
	}
}

func TestBoundsSubset(t *testing.T) {
	g := load(t, `v 0 0 0
v 1 0 0
v 5 5 5
v 6 5 5
o a
l 1 2
o b
l 3 4
`)
	b, err := g.Bounds("b")
	if err != nil {
		t.Fatalf("Bounds: %v", err)
	}
	if b.Min != [3]float32{5, 4.5, 4.5} || b.Max != [3]float32{6, 5.5, 5.5} {
		t.Errorf("Bounds(b) = %+v", b)
	}

	if _, err := g.Bounds("a", "missing"); !errors.Is(err, ErrUnknownObject) {
		t.Errorf("expected ErrUnknownObject, got %v", err)
	}
}

func TestFailedLoadKeepsState(t *testing.T) {
	g := load(t, triangleSrc)

	err := g.LoadReader(strings.NewReader("v 0 0 0\no broken\nf 1 1 1 1 1\n"), t.TempDir())
	if !errors.Is(err, formats.ErrPrimitiveArity) {
		t.Fatalf("expected ErrPrimitiveArity, got %v", err)
	}

	names := g.ObjectNames()
	if len(names) != 1 || names[0] != "" {
		t.Errorf("state changed after failed load: %q", names)
	}
	if _, err := g.Object("broken"); !errors.Is(err, ErrUnknownObject) {
		t.Errorf("partial object leaked into state: %v", err)
	}
}

func TestLoadReplaces(t *testing.T) {
	g := load(t, triangleSrc)
	if err := g.LoadReader(strings.NewReader("v 0 0 0\nv 1 1 1\no seg\nl 1 2\n"), ""); err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	names := g.ObjectNames()
	if len(names) != 1 || names[0] != "seg" {
		t.Errorf("ObjectNames() = %q, want [seg]", names)
	}
}

func TestLoadResolvesLibraryNextToMesh(t *testing.T) {
	dir := t.TempDir()
	meshPath := filepath.Join(dir, "tri.obj")
	if err := os.WriteFile(meshPath, []byte("mtllib tri.mtl\nusemtl green\n"+triangleSrc), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tri.mtl"), []byte("newmtl green\nKd 0 1 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	g := NewGeometry()
	if err := g.Load(meshPath); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if g.Material("green") == nil {
		t.Error("material green not loaded")
	}

	if err := g.Load(filepath.Join(dir, "missing.obj")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFill(t *testing.T) {
	g := load(t, `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
o sq
l 1 3
usemtl nope
f 1//1 2//1 3//1 4//1
f 1 2 3
`)
	g.mesh.Materials["red"] = &formats.Material{Name: "red", Diffuse: []float32{1, 0, 0}}
	g.mesh.Objects[0].Primitives[2].Material = "red"

	rec := &recorder{}
	if err := g.Fill("sq", 0.5, rec); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	equalCalls(t, rec.calls, []string{
		"color 0.9 0.7 0.4 0.5",
		"begin Quads",
		"normal 0 0 1", "vertex 0 0 0",
		"normal 0 0 1", "vertex 1 0 0",
		"normal 0 0 1", "vertex 1 1 0",
		"normal 0 0 1", "vertex 0 1 0",
		"end",
		"color 1 0 0 0.5",
		"begin Triangles",
		"vertex 0 0 0", "vertex 1 0 0", "vertex 1 1 0",
		"end",
	})
}

func TestDrawWireframe(t *testing.T) {
	g := load(t, `v 0 0 0
v 1 0 0
v 1 1 0
vn 0 1 0
o w
f 1 2 3
l 1//1 3//1
`)
	rec := &recorder{}
	if err := g.DrawWireframe("w", rec); err != nil {
		t.Fatalf("DrawWireframe: %v", err)
	}
	equalCalls(t, rec.calls, []string{
		"begin LineLoop",
		"vertex 0 0 0", "vertex 1 0 0", "vertex 1 1 0",
		"end",
		"begin Lines",
		"normal 0 1 0", "vertex 0 0 0",
		"normal 0 1 0", "vertex 1 1 0",
		"end",
	})
}

func TestUnknownObject(t *testing.T) {
	g := load(t, triangleSrc)
	rec := &recorder{}

	checks := map[string]error{}
	checks["Fill"] = g.Fill("ghost", 1, rec)
	checks["DrawWireframe"] = g.DrawWireframe("ghost", rec)
	_, checks["Vertexes"] = g.Vertexes("ghost")
	_, checks["Object"] = g.Object("ghost")

	for op, err := range checks {
		if !errors.Is(err, ErrUnknownObject) {
			t.Errorf("%s: expected ErrUnknownObject, got %v", op, err)
		}
	}
	if len(rec.calls) != 0 {
		t.Errorf("unknown object emitted draw calls: %v", rec.calls)
	}
}

func TestVertexesDeduplicated(t *testing.T) {
	g := load(t, `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3
f 1 3 4
`)
	verts, err := g.Vertexes("")
	if err != nil {
		t.Fatalf("Vertexes: %v", err)
	}
	want := [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	if len(verts) != len(want) {
		t.Fatalf("got %d vertices, want %d", len(verts), len(want))
	}
	for i := range want {
		if verts[i] != want[i] {
			t.Errorf("vertex %d = %v, want %v", i, verts[i], want[i])
		}
	}
}
