package formats

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const squareOBJ = `# unit square with a diagonal
mtllib square.mtl
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1

o square
usemtl red
f 1//1 2//1 3//1 4//1

o diagonal
l 1 3
`

const squareMTL = `newmtl red
Kd 1 0 0
`

func openerFor(files map[string]string) MaterialOpener {
	return func(name string) (io.ReadCloser, error) {
		content, ok := files[name]
		if !ok {
			return nil, os.ErrNotExist
		}
		return io.NopCloser(strings.NewReader(content)), nil
	}
}

func TestParseOBJ_Square(t *testing.T) {
	obj, err := ParseOBJ(strings.NewReader(squareOBJ), openerFor(map[string]string{"square.mtl": squareMTL}))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}

	if len(obj.Vertices) != 4 {
		t.Errorf("expected 4 vertices, got %d", len(obj.Vertices))
	}
	if len(obj.Normals) != 1 {
		t.Errorf("expected 1 normal, got %d", len(obj.Normals))
	}
	if got := obj.ObjectNames(); len(got) != 2 || got[0] != "square" || got[1] != "diagonal" {
		t.Errorf("ObjectNames() = %v, want [square diagonal]", got)
	}
	if obj.GetTotalPrimitiveCount() != 2 {
		t.Errorf("expected 2 primitives, got %d", obj.GetTotalPrimitiveCount())
	}

	square := obj.Object("square")
	if square == nil {
		t.Fatal("object square not found")
	}
	quad := square.Primitives[0]
	if quad.Kind != PrimitiveQuad {
		t.Errorf("expected Quadrangle, got %s", quad.Kind)
	}
	if quad.Material != "red" {
		t.Errorf("expected material red, got %q", quad.Material)
	}
	for i, idx := range quad.Indices {
		if idx.Vertex != i {
			t.Errorf("index %d: vertex %d, want %d", i, idx.Vertex, i)
		}
		if idx.Material != NoIndex {
			t.Errorf("index %d: material %d, want NoIndex", i, idx.Material)
		}
		if idx.Normal != 0 {
			t.Errorf("index %d: normal %d, want 0", i, idx.Normal)
		}
	}

	line := obj.Object("diagonal").Primitives[0]
	if line.Kind != PrimitiveLine {
		t.Errorf("expected Line, got %s", line.Kind)
	}
	// usemtl persists across o directives.
	if line.Material != "red" {
		t.Errorf("expected material to carry over, got %q", line.Material)
	}

	if _, ok := obj.Materials["red"]; !ok {
		t.Error("material red not loaded from mtllib")
	}
}

func TestParseOBJ_DefaultObjectName(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 1 1 0\nf 1 2 3\n"
	obj, err := ParseOBJ(strings.NewReader(src), nil)
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	names := obj.ObjectNames()
	if len(names) != 1 || names[0] != "" {
		t.Errorf("ObjectNames() = %q, want [\"\"]", names)
	}
}

func TestParseOBJ_ObjectReopened(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 1 1 0
o a
f 1 2 3
o b
l 1 2
o a
l 2 3
`
	obj, err := ParseOBJ(strings.NewReader(src), nil)
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if len(obj.Objects) != 2 {
		t.Fatalf("expected 2 distinct objects, got %d", len(obj.Objects))
	}
	a := obj.Object("a")
	if len(a.Primitives) != 2 {
		t.Fatalf("object a: expected 2 primitives, got %d", len(a.Primitives))
	}
	if a.Primitives[0].Kind != PrimitiveTriangle || a.Primitives[1].Kind != PrimitiveLine {
		t.Errorf("object a: primitive order not preserved: %s, %s", a.Primitives[0].Kind, a.Primitives[1].Kind)
	}
}

func TestParseOBJ_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{
			name:    "face with 5 indices",
			src:     "v 0 0 0\nf 1 1 1 1 1\n",
			wantErr: ErrPrimitiveArity,
		},
		{
			name:    "face with 2 indices",
			src:     "v 0 0 0\nf 1 1\n",
			wantErr: ErrPrimitiveArity,
		},
		{
			name:    "line with 3 indices",
			src:     "v 0 0 0\nl 1 1 1\n",
			wantErr: ErrPrimitiveArity,
		},
		{
			name:    "zero index",
			src:     "v 0 0 0\nl 0 1\n",
			wantErr: ErrIndexTriple,
		},
		{
			name:    "non-numeric index",
			src:     "v 0 0 0\nl a 1\n",
			wantErr: ErrIndexTriple,
		},
		{
			name:    "too many slashes",
			src:     "v 0 0 0\nl 1/1/1/1 1\n",
			wantErr: ErrIndexTriple,
		},
		{
			name:    "vertex out of range",
			src:     "v 0 0 0\nl 1 2\n",
			wantErr: ErrIndexRange,
		},
		{
			name:    "normal out of range",
			src:     "v 0 0 0\nl 1//1 1\n",
			wantErr: ErrIndexRange,
		},
		{
			name:    "short vertex",
			src:     "v 0 0\n",
			wantErr: ErrMalformedDirective,
		},
		{
			name:    "object without name",
			src:     "o\n",
			wantErr: ErrMalformedDirective,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tt.src), nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseOBJ_ErrorHasLineNumber(t *testing.T) {
	src := "# header\n\nv 0 0 0\nf 1 1 1 1 1\n"
	_, err := ParseOBJ(strings.NewReader(src), nil)
	if err == nil || !strings.Contains(err.Error(), "line 4") {
		t.Errorf("expected error mentioning line 4, got %v", err)
	}
}

func TestParseOBJ_MissingLibrary(t *testing.T) {
	_, err := ParseOBJ(strings.NewReader("mtllib nope.mtl\n"), openerFor(nil))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestParseIndexTriple(t *testing.T) {
	tests := []struct {
		in   string
		want IndexTriple
	}{
		{"1", IndexTriple{0, NoIndex, NoIndex}},
		{"2/", IndexTriple{1, NoIndex, NoIndex}},
		{"3/4", IndexTriple{2, 3, NoIndex}},
		{"3/4/", IndexTriple{2, 3, NoIndex}},
		{"5//6", IndexTriple{4, NoIndex, 5}},
		{"7/8/9", IndexTriple{6, 7, 8}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseIndexTriple(tt.in)
			if err != nil {
				t.Fatalf("ParseIndexTriple(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseIndexTriple(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}

	for _, bad := range []string{"", "/1", "-1", "1/x", "1/2/y", "0"} {
		if _, err := ParseIndexTriple(bad); !errors.Is(err, ErrIndexTriple) {
			t.Errorf("ParseIndexTriple(%q): expected ErrIndexTriple, got %v", bad, err)
		}
	}
}

func TestParseOBJ_Testdata(t *testing.T) {
	path := filepath.Join("testdata", "gears.obj")
	f, err := os.Open(path)
	if err != nil {
		t.Skipf("testdata not available: %v", err)
	}
	defer f.Close()

	obj, err := ParseOBJ(f, func(name string) (io.ReadCloser, error) {
		return os.Open(filepath.Join("testdata", name))
	})
	if err != nil {
		t.Fatalf("ParseOBJ(%s): %v", path, err)
	}
	if len(obj.Objects) == 0 {
		t.Error("expected at least one object")
	}
	for _, o := range obj.Objects {
		for _, p := range o.Primitives {
			if p.Material != "" {
				if _, ok := obj.Materials[p.Material]; !ok {
					t.Errorf("object %q uses undefined material %q", o.Name, p.Material)
				}
			}
		}
	}
}
