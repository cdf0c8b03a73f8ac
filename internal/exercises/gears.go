// Package exercises holds the bundled scene exercises. Each registers
// itself with the scene registry under a short name.
package exercises

import (
	"time"

	"github.com/chewxy/math32"

	"github.com/Faultbox/cglearn/internal/scene"
)

func init() {
	scene.Register("gears", func() scene.Exercise { return &Gears{} })
}

// SpeedStep is the change of the driving gear speed per key press, in
// degrees per second.
const SpeedStep = 10

// Gear object names in gears.obj.
const (
	GearBlue   = "r1-12"
	GearRed    = "r2-24"
	GearGreen  = "r1-20"
	GearOrange = "r3-60"
)

// Gears drives a four-gear train from the blue gear. a and d speed the
// blue gear up in either direction and space stops it.
type Gears struct {
	started bool
	last    time.Duration

	blueSpeed float32

	// Accumulated rotation in degrees
	blue, orange, red, green float32
}

// HandleKey implements scene.KeyHandler.
func (g *Gears) HandleKey(key string) {
	switch key {
	case "a":
		g.blueSpeed += SpeedStep
	case "d":
		g.blueSpeed -= SpeedStep
	case " ":
		g.blueSpeed = 0
	}
}

// Speeds returns the angular speed of each gear in degrees per second.
// The orange gear shares the blue axle; the red and green gears mesh with
// the blue and orange gears respectively.
func (g *Gears) Speeds() (blue, orange, red, green float32) {
	blue = g.blueSpeed
	orange = blue
	red = blue * 0.5
	green = orange * 3
	return
}

func (g *Gears) advance(dt float32) {
	blue, orange, red, green := g.Speeds()
	g.blue += dt * blue
	g.orange += dt * orange
	g.red += dt * red
	g.green += dt * green
}

// Compose implements scene.Exercise.
func (g *Gears) Compose(c *scene.Context) {
	now := c.Now()
	if g.started {
		g.advance(float32((now - g.last).Seconds()))
	}
	g.started = true
	g.last = now

	c.Push()
	c.Rotate(g.blue, 0, 0, 1)
	c.Rotate(15, 0, 0, 1)
	c.Draw(GearBlue)
	c.Pop()

	c.Push()
	x, y := polar(3, 60)
	c.Translate(x, y, 0)
	c.Rotate(-g.red, 0, 0, 1)
	c.Draw(GearRed)
	c.Pop()

	c.Push()
	x, y = polar(4, 150)
	c.Translate(x, y, 0)
	c.Rotate(-g.green, 0, 0, 1)
	c.Rotate(6, 0, 0, 1)
	c.Draw(GearGreen)
	c.Pop()

	c.Push()
	c.Rotate(g.orange, 0, 0, 1)
	c.Rotate(3, 0, 0, 1)
	c.Draw(GearOrange)
	c.Pop()
}

func polar(radius, degrees float32) (float32, float32) {
	rad := degrees * math32.Pi / 180
	return radius * math32.Cos(rad), radius * math32.Sin(rad)
}
