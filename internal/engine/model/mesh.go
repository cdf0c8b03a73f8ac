package model

import (
	"github.com/Faultbox/cglearn/pkg/formats"
)

// Fill emits the faces of the named object. Each triangle or quadrangle is
// drawn in its material color with alpha scaled by opacity. Lines are skipped.
func (g *Geometry) Fill(name string, opacity float32, s Surface) error {
	obj, err := g.Object(name)
	if err != nil {
		return err
	}

	for _, prim := range obj.Primitives {
		var mode Mode
		switch prim.Kind {
		case formats.PrimitiveTriangle:
			mode = Triangles
		case formats.PrimitiveQuad:
			mode = Quads
		default:
			continue
		}

		s.SetColor(g.materialColor(prim.Material, opacity))
		g.emit(s, mode, prim.Indices)
	}
	return nil
}

// DrawWireframe emits the edges of the named object in the current color.
// Faces become closed line loops; lines stay lines.
func (g *Geometry) DrawWireframe(name string, s Surface) error {
	obj, err := g.Object(name)
	if err != nil {
		return err
	}

	for _, prim := range obj.Primitives {
		mode := LineLoop
		if prim.Kind == formats.PrimitiveLine {
			mode = Lines
		}
		g.emit(s, mode, prim.Indices)
	}
	return nil
}

// emit wraps the indices of one primitive in Begin/End. A normal precedes
// its vertex whenever the index triple carries one.
func (g *Geometry) emit(s Surface, mode Mode, indices []formats.IndexTriple) {
	s.Begin(mode)
	for _, idx := range indices {
		if idx.Normal != formats.NoIndex {
			s.Normal(g.mesh.Normals[idx.Normal])
		}
		s.Vertex(g.mesh.Vertices[idx.Vertex])
	}
	s.End()
}

// materialColor resolves a usemtl name. Unknown or empty names fall back
// to the default diffuse color.
func (g *Geometry) materialColor(name string, opacity float32) [4]float32 {
	return g.mesh.Materials[name].Color(opacity)
}

// Vertexes returns the distinct vertex positions referenced by the named
// object in first-reference order.
func (g *Geometry) Vertexes(name string) ([][3]float32, error) {
	obj, err := g.Object(name)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	var out [][3]float32
	for _, prim := range obj.Primitives {
		for _, idx := range prim.Indices {
			if seen[idx.Vertex] {
				continue
			}
			seen[idx.Vertex] = true
			out = append(out, g.mesh.Vertices[idx.Vertex])
		}
	}
	return out, nil
}

// Bounds returns the bounding box of the vertices referenced by the named
// objects, or by every object when no names are given. An empty set yields
// the unit box around the origin. Axes with no extent are padded by 0.5 on
// each side.
func (g *Geometry) Bounds(names ...string) (Bounds, error) {
	if len(names) == 0 {
		names = g.ObjectNames()
	}

	var b Bounds
	empty := true
	for _, name := range names {
		verts, err := g.Vertexes(name)
		if err != nil {
			return Bounds{}, err
		}
		for _, v := range verts {
			if empty {
				b = Bounds{Min: v, Max: v}
				empty = false
				continue
			}
			updateBounds(&b, v)
		}
	}

	if empty {
		return Bounds{Min: [3]float32{-1, -1, -1}, Max: [3]float32{1, 1, 1}}, nil
	}
	for i := 0; i < 3; i++ {
		if b.Min[i] == b.Max[i] {
			b.Min[i] -= 0.5
			b.Max[i] += 0.5
		}
	}
	return b, nil
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
