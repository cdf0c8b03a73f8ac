package model

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/cglearn/internal/logger"
	"github.com/Faultbox/cglearn/pkg/formats"
)

// Geometry is the loaded mesh state: shared vertex and normal arrays,
// the material table and the named objects.
type Geometry struct {
	mesh *formats.OBJ
}

// NewGeometry returns an empty geometry with no objects.
func NewGeometry() *Geometry {
	return &Geometry{mesh: emptyMesh()}
}

func emptyMesh() *formats.OBJ {
	return &formats.OBJ{Materials: make(map[string]*formats.Material)}
}

// Load parses an OBJ file. mtllib references resolve relative to the
// file's directory. On success the previous contents are replaced; on
// failure they are left untouched.
func (g *Geometry) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open mesh: %w", err)
	}
	defer f.Close()

	if err := g.LoadReader(f, filepath.Dir(path)); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	logger.Info("mesh loaded",
		zap.String("path", path),
		zap.Strings("objects", g.ObjectNames()),
		zap.Int("vertices", len(g.mesh.Vertices)),
		zap.Int("primitives", g.mesh.GetTotalPrimitiveCount()))
	return nil
}

// LoadReader parses an OBJ stream, resolving mtllib names against dir.
func (g *Geometry) LoadReader(r io.Reader, dir string) error {
	mesh, err := formats.ParseOBJ(r, func(name string) (io.ReadCloser, error) {
		return os.Open(filepath.Join(dir, name))
	})
	if err != nil {
		return err
	}
	g.mesh = mesh
	return nil
}

// ObjectNames returns the distinct object names in first-appearance order.
func (g *Geometry) ObjectNames() []string {
	return g.mesh.ObjectNames()
}

// Object returns the named object.
func (g *Geometry) Object(name string) (*formats.Object, error) {
	obj := g.mesh.Object(name)
	if obj == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownObject, name)
	}
	return obj, nil
}

// Material returns the named material, or nil.
func (g *Geometry) Material(name string) *formats.Material {
	return g.mesh.Materials[name]
}
