package config

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Sequence commands.
const (
	CmdUserCallback = "UserCallback"
	CmdOutline      = "Outline"
	CmdFill         = "Fill"
)

var (
	ErrInstruction = errors.New("invalid sequence instruction")
	ErrColor       = errors.New("invalid color")
	ErrPoint       = errors.New("invalid point")
	ErrRect        = errors.New("invalid bounds")
)

// Instruction is one per-frame drawing step. In YAML it is either a bare
// command (UserCallback) or a list of command and object name
// ([Outline, gear]).
type Instruction struct {
	Command string
	Object  string
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (in *Instruction) UnmarshalYAML(n *yaml.Node) error {
	var parts []string
	switch n.Kind {
	case yaml.ScalarNode:
		parts = []string{n.Value}
	case yaml.SequenceNode:
		if err := n.Decode(&parts); err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrInstruction, n.Line, err)
		}
	default:
		return fmt.Errorf("%w: line %d: expected a command or a list", ErrInstruction, n.Line)
	}

	if len(parts) == 0 {
		return fmt.Errorf("%w: line %d: empty instruction", ErrInstruction, n.Line)
	}
	parsed := Instruction{Command: parts[0]}
	switch parsed.Command {
	case CmdUserCallback:
		if len(parts) != 1 {
			return fmt.Errorf("%w: line %d: %s takes no arguments", ErrInstruction, n.Line, parsed.Command)
		}
	case CmdOutline, CmdFill:
		if len(parts) != 2 {
			return fmt.Errorf("%w: line %d: %s takes one object name", ErrInstruction, n.Line, parsed.Command)
		}
		parsed.Object = parts[1]
	default:
		return fmt.Errorf("%w: line %d: unknown command %q", ErrInstruction, n.Line, parsed.Command)
	}

	*in = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (in Instruction) MarshalYAML() (interface{}, error) {
	if in.Command == CmdUserCallback {
		return in.Command, nil
	}
	return []string{in.Command, in.Object}, nil
}

// Color is an RGBA color. In YAML it is a hex string ("#ffcc00"), a hex
// string with an alpha list ([ "#ffcc00", 0.5 ]) or a list of 3 or 4
// channels in [0, 1].
type Color [4]float32

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		return c.setHex(n.Value, 1, n.Line)

	case yaml.SequenceNode:
		if len(n.Content) == 2 && n.Content[0].ShortTag() == "!!str" {
			var alpha float32
			if err := n.Content[1].Decode(&alpha); err != nil {
				return fmt.Errorf("%w: line %d: alpha: %v", ErrColor, n.Line, err)
			}
			return c.setHex(n.Content[0].Value, alpha, n.Line)
		}

		var channels []float32
		if err := n.Decode(&channels); err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrColor, n.Line, err)
		}
		if len(channels) != 3 && len(channels) != 4 {
			return fmt.Errorf("%w: line %d: want 3 or 4 channels, got %d", ErrColor, n.Line, len(channels))
		}
		parsed := Color{0, 0, 0, 1}
		copy(parsed[:], channels)
		*c = parsed
		return nil
	}
	return fmt.Errorf("%w: line %d: expected a hex string or a list", ErrColor, n.Line)
}

func (c *Color) setHex(s string, alpha float32, line int) error {
	rgb, err := colorful.Hex(s)
	if err != nil {
		return fmt.Errorf("%w: line %d: %v", ErrColor, line, err)
	}
	*c = Color{float32(rgb.R), float32(rgb.G), float32(rgb.B), alpha}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (interface{}, error) {
	hex := colorful.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2])}.Hex()
	if c[3] == 1 {
		return hex, nil
	}
	return []interface{}{hex, c[3]}, nil
}

// RGBA returns the color as an array.
func (c Color) RGBA() [4]float32 {
	return [4]float32(c)
}

// Hidden returns the color with zero alpha.
func (c Color) Hidden() [4]float32 {
	return [4]float32{c[0], c[1], c[2], 0}
}

// Point is an XY scene position, written as [x, y].
type Point struct {
	X, Y float32
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Point) UnmarshalYAML(n *yaml.Node) error {
	var xy []float32
	if err := n.Decode(&xy); err != nil {
		return fmt.Errorf("%w: line %d: %v", ErrPoint, n.Line, err)
	}
	if len(xy) != 2 {
		return fmt.Errorf("%w: line %d: want [x, y], got %d values", ErrPoint, n.Line, len(xy))
	}
	*p = Point{X: xy[0], Y: xy[1]}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (p Point) MarshalYAML() (interface{}, error) {
	return []float32{p.X, p.Y}, nil
}

// Rect is an XY region, written as two opposite corners in any order.
// Decoding normalizes it so Min holds the smaller coordinates.
type Rect struct {
	Min, Max Point
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Rect) UnmarshalYAML(n *yaml.Node) error {
	var corners []Point
	if err := n.Decode(&corners); err != nil {
		return fmt.Errorf("%w: line %d: %v", ErrRect, n.Line, err)
	}
	if len(corners) != 2 {
		return fmt.Errorf("%w: line %d: want two corners, got %d", ErrRect, n.Line, len(corners))
	}
	a, b := corners[0], corners[1]
	*r = Rect{
		Min: Point{X: min(a.X, b.X), Y: min(a.Y, b.Y)},
		Max: Point{X: max(a.X, b.X), Y: max(a.Y, b.Y)},
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (r Rect) MarshalYAML() (interface{}, error) {
	return []Point{r.Min, r.Max}, nil
}
