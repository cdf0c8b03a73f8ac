package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrPrimitiveArity = errors.New("invalid number of parameters")
	ErrIndexTriple    = errors.New("invalid index triple")
	ErrIndexRange     = errors.New("index out of range")
)

// PrimitiveKind identifies the shape of a primitive.
type PrimitiveKind int

const (
	PrimitiveLine     PrimitiveKind = 2 // l with 2 indices
	PrimitiveTriangle PrimitiveKind = 3 // f with 3 indices
	PrimitiveQuad     PrimitiveKind = 4 // f with 4 indices
)

// String returns a human-readable kind name.
func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveLine:
		return "Line"
	case PrimitiveTriangle:
		return "Triangle"
	case PrimitiveQuad:
		return "Quadrangle"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// NoIndex marks an absent material or normal index.
const NoIndex = -1

// IndexTriple references shared arrays with 0-based indices.
type IndexTriple struct {
	Vertex   int
	Material int // NoIndex when absent; parsed but not used for drawing
	Normal   int // NoIndex when absent
}

// Primitive is a line, triangle or quadrangle.
type Primitive struct {
	Kind     PrimitiveKind
	Indices  []IndexTriple
	Material string // usemtl name in effect, empty for none
}

// Object is a named, ordered list of primitives.
type Object struct {
	Name       string
	Primitives []Primitive
}

// OBJ represents a parsed OBJ file. Vertex and normal arrays are shared by
// all objects.
type OBJ struct {
	Vertices  [][3]float32
	Normals   [][3]float32
	Materials map[string]*Material
	Objects   []*Object // first-appearance order
}

// MaterialOpener opens a material library referenced by mtllib.
type MaterialOpener func(name string) (io.ReadCloser, error)

// Object returns the object with the given name, or nil.
func (o *OBJ) Object(name string) *Object {
	for _, obj := range o.Objects {
		if obj.Name == name {
			return obj
		}
	}
	return nil
}

// ObjectNames returns the object names in first-appearance order.
func (o *OBJ) ObjectNames() []string {
	names := make([]string, len(o.Objects))
	for i, obj := range o.Objects {
		names[i] = obj.Name
	}
	return names
}

// GetTotalPrimitiveCount returns the number of primitives across all objects.
func (o *OBJ) GetTotalPrimitiveCount() int {
	total := 0
	for _, obj := range o.Objects {
		total += len(obj.Primitives)
	}
	return total
}

// objParser carries the directive state while reading one file.
type objParser struct {
	obj      *OBJ
	libs     MaterialOpener
	object   string
	material string
	index    map[string]*Object
}

// ParseOBJ parses an OBJ mesh. libs resolves mtllib references; if nil,
// mtllib directives are rejected.
func ParseOBJ(r io.Reader, libs MaterialOpener) (*OBJ, error) {
	p := &objParser{
		obj: &OBJ{
			Materials: make(map[string]*Material),
		},
		libs:  libs,
		index: make(map[string]*Object),
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if err := p.parseLine(fields[0], fields[1:]); err != nil {
			return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading obj: %w", err)
	}

	if err := p.obj.validate(); err != nil {
		return nil, err
	}
	return p.obj, nil
}

func (p *objParser) parseLine(command string, args []string) error {
	switch command {
	case "o":
		if len(args) != 1 {
			return fmt.Errorf("%w: o expects 1 name, got %d", ErrMalformedDirective, len(args))
		}
		p.object = args[0]

	case "mtllib":
		if len(args) != 1 {
			return fmt.Errorf("%w: mtllib expects 1 path, got %d", ErrMalformedDirective, len(args))
		}
		return p.loadLibrary(args[0])

	case "usemtl":
		if len(args) != 1 {
			return fmt.Errorf("%w: usemtl expects 1 name, got %d", ErrMalformedDirective, len(args))
		}
		p.material = args[0]

	case "v":
		v, err := parseVec3(args)
		if err != nil {
			return fmt.Errorf("v: %w", err)
		}
		p.obj.Vertices = append(p.obj.Vertices, v)

	case "vn":
		n, err := parseVec3(args)
		if err != nil {
			return fmt.Errorf("vn: %w", err)
		}
		p.obj.Normals = append(p.obj.Normals, n)

	case "l":
		if len(args) != 2 {
			return fmt.Errorf("%w: l expects 2 indices, got %d", ErrPrimitiveArity, len(args))
		}
		return p.addPrimitive(PrimitiveLine, args)

	case "f":
		switch len(args) {
		case 3:
			return p.addPrimitive(PrimitiveTriangle, args)
		case 4:
			return p.addPrimitive(PrimitiveQuad, args)
		default:
			return fmt.Errorf("%w: f expects 3 or 4 indices, got %d", ErrPrimitiveArity, len(args))
		}
	}

	// vt, g, s and anything else are not used.
	return nil
}

func (p *objParser) loadLibrary(name string) error {
	if p.libs == nil {
		return fmt.Errorf("mtllib %s: no material resolver", name)
	}
	rc, err := p.libs(name)
	if err != nil {
		return fmt.Errorf("mtllib %s: %w", name, err)
	}
	defer rc.Close()

	materials, err := ParseMTL(rc)
	if err != nil {
		return fmt.Errorf("mtllib %s: %w", name, err)
	}
	for k, m := range materials {
		p.obj.Materials[k] = m
	}
	return nil
}

func (p *objParser) addPrimitive(kind PrimitiveKind, args []string) error {
	prim := Primitive{
		Kind:     kind,
		Indices:  make([]IndexTriple, len(args)),
		Material: p.material,
	}
	for i, arg := range args {
		triple, err := ParseIndexTriple(arg)
		if err != nil {
			return err
		}
		prim.Indices[i] = triple
	}

	obj, ok := p.index[p.object]
	if !ok {
		obj = &Object{Name: p.object}
		p.index[p.object] = obj
		p.obj.Objects = append(p.obj.Objects, obj)
	}
	obj.Primitives = append(obj.Primitives, prim)
	return nil
}

// ParseIndexTriple parses vertex[/material][/normal] with 1-based indices
// and returns 0-based indices. Empty optional parts become NoIndex.
func ParseIndexTriple(s string) (IndexTriple, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return IndexTriple{}, fmt.Errorf("%w: %q", ErrIndexTriple, s)
	}

	triple := IndexTriple{Material: NoIndex, Normal: NoIndex}
	vertex, err := parseIndex(parts[0])
	if err != nil || vertex == NoIndex {
		return IndexTriple{}, fmt.Errorf("%w: %q", ErrIndexTriple, s)
	}
	triple.Vertex = vertex

	if len(parts) > 1 {
		if triple.Material, err = parseIndex(parts[1]); err != nil {
			return IndexTriple{}, fmt.Errorf("%w: %q", ErrIndexTriple, s)
		}
	}
	if len(parts) > 2 {
		if triple.Normal, err = parseIndex(parts[2]); err != nil {
			return IndexTriple{}, fmt.Errorf("%w: %q", ErrIndexTriple, s)
		}
	}
	return triple, nil
}

// parseIndex converts a 1-based index to 0-based. Empty input is NoIndex.
func parseIndex(s string) (int, error) {
	if s == "" {
		return NoIndex, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("index %d is not positive", n)
	}
	return n - 1, nil
}

func parseVec3(args []string) ([3]float32, error) {
	var v [3]float32
	if len(args) != 3 {
		return v, fmt.Errorf("%w: expected 3 coordinates, got %d", ErrMalformedDirective, len(args))
	}
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return v, err
		}
		v[i] = float32(f)
	}
	return v, nil
}

// validate checks every index against the shared arrays.
func (o *OBJ) validate() error {
	for _, obj := range o.Objects {
		for i, prim := range obj.Primitives {
			for _, idx := range prim.Indices {
				if idx.Vertex >= len(o.Vertices) {
					return fmt.Errorf("%w: object %q primitive %d references vertex %d of %d",
						ErrIndexRange, obj.Name, i, idx.Vertex+1, len(o.Vertices))
				}
				if idx.Normal != NoIndex && idx.Normal >= len(o.Normals) {
					return fmt.Errorf("%w: object %q primitive %d references normal %d of %d",
						ErrIndexRange, obj.Name, i, idx.Normal+1, len(o.Normals))
				}
			}
		}
	}
	return nil
}
