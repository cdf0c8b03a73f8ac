package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MTL format errors.
var (
	ErrNoMaterial         = errors.New("material property before newmtl")
	ErrMalformedDirective = errors.New("malformed directive")
)

// DefaultDiffuse is the fill color of primitives without a usable material.
var DefaultDiffuse = [3]float32{0.9, 0.7, 0.4}

// Material is a named set of optional color channels.
// Nil slices mean the channel was not given.
type Material struct {
	Name     string
	Ambient  []float32 // Ka, 3 or 4 components
	Diffuse  []float32 // Kd, 3 or 4 components
	Specular []float32 // Ks, 3 or 4 components
	Dissolve *float32  // d, or 1-Tr
}

// Opacity returns the dissolve value, or 1 when unset.
func (m *Material) Opacity() float32 {
	if m == nil || m.Dissolve == nil {
		return 1
	}
	return *m.Dissolve
}

// Color resolves the fill color of m with opacity applied to alpha.
// A three-component diffuse takes its alpha from the dissolve value;
// a four-component diffuse keeps its own alpha. A nil material or one
// without Kd uses DefaultDiffuse.
func (m *Material) Color(opacity float32) [4]float32 {
	if m == nil || len(m.Diffuse) < 3 {
		return [4]float32{DefaultDiffuse[0], DefaultDiffuse[1], DefaultDiffuse[2], m.Opacity() * opacity}
	}
	c := [4]float32{m.Diffuse[0], m.Diffuse[1], m.Diffuse[2], m.Opacity()}
	if len(m.Diffuse) >= 4 {
		c[3] = m.Diffuse[3]
	}
	c[3] *= opacity
	return c
}

// ParseMTL parses a material library.
func ParseMTL(r io.Reader) (map[string]*Material, error) {
	materials := make(map[string]*Material)
	var current *Material

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		command, args := fields[0], fields[1:]
		if command != "newmtl" && isMaterialProperty(command) && current == nil {
			return nil, fmt.Errorf("mtl line %d: %w: %s", lineNo, ErrNoMaterial, command)
		}

		switch command {
		case "newmtl":
			if len(args) != 1 {
				return nil, fmt.Errorf("mtl line %d: %w: newmtl expects 1 name, got %d", lineNo, ErrMalformedDirective, len(args))
			}
			current = &Material{Name: args[0]}
			materials[current.Name] = current

		case "Ka", "Kd", "Ks":
			color, err := parseColor(args)
			if err != nil {
				return nil, fmt.Errorf("mtl line %d: %s: %w", lineNo, command, err)
			}
			switch command {
			case "Ka":
				current.Ambient = color
			case "Kd":
				current.Diffuse = color
			case "Ks":
				current.Specular = color
			}

		case "d", "Tr":
			if len(args) != 1 {
				return nil, fmt.Errorf("mtl line %d: %w: %s expects 1 value, got %d", lineNo, ErrMalformedDirective, command, len(args))
			}
			v, err := strconv.ParseFloat(args[0], 32)
			if err != nil {
				return nil, fmt.Errorf("mtl line %d: %s: %w", lineNo, command, err)
			}
			opacity := float32(v)
			if command == "Tr" {
				opacity = 1 - opacity
			}
			current.Dissolve = &opacity
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading mtl: %w", err)
	}

	return materials, nil
}

func isMaterialProperty(command string) bool {
	switch command {
	case "Ka", "Kd", "Ks", "d", "Tr":
		return true
	}
	return false
}

// parseColor parses 3 or 4 float components.
func parseColor(args []string) ([]float32, error) {
	if len(args) != 3 && len(args) != 4 {
		return nil, fmt.Errorf("%w: expected 3 or 4 components, got %d", ErrMalformedDirective, len(args))
	}
	color := make([]float32, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return nil, err
		}
		color[i] = float32(v)
	}
	return color, nil
}
