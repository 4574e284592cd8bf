package live

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

// Orbiter is the example entity: a filled circle orbiting a fixed point.
// It exists to validate the entity contract, and to give an operator
// something worth poking at while the loop runs.
type Orbiter struct {
	*Sprite

	center image.Point
	angle  float64
	dist   float64
	vel    float64
	radius int
	color  color.Color
}

// NewOrbiter creates an orbiter around center, starting at the given angle
// (radians), at dist pixels from the center, advancing vel radians per
// frame, drawn as a circle of the given radius and color.
func NewOrbiter(center image.Point, angle, dist, vel float64, radius int, c color.Color) *Orbiter {
	o := &Orbiter{
		center: center,
		angle:  angle,
		dist:   dist,
		vel:    vel,
		radius: radius,
		color:  c,
	}
	o.Sprite = NewSprite(
		center.X+int(dist*math.Cos(angle))-radius,
		center.Y+int(dist*math.Sin(angle))-radius,
		radius*2,
		radius*2,
	)
	o.UpdateFunc = o.step
	o.RenderFunc = o.renderCircle
	return o
}

// step advances the orbit by one frame. The angle is wrapped into [0, 2π)
// with a single adjustment; per-frame velocities are assumed smaller than
// a full turn.
func (o *Orbiter) step() {
	a := o.angle + o.vel
	if a >= 2*math.Pi {
		a -= 2 * math.Pi
	} else if a < 0 {
		a += 2 * math.Pi
	}
	o.SetAngle(a)

	x := o.center.X + int(o.dist*math.Cos(o.angle)) - o.radius
	y := o.center.Y + int(o.dist*math.Sin(o.angle)) - o.radius
	o.SetBounds(image.Rect(x, y, x+o.radius*2, y+o.radius*2))
}

// renderCircle rasterizes the circle into a fresh square image.
func (o *Orbiter) renderCircle() {
	d := o.radius * 2
	dc := gg.NewContext(d, d)
	dc.SetColor(o.color)
	dc.DrawCircle(float64(o.radius), float64(o.radius), float64(o.radius))
	dc.Fill()
	o.SetCached(dc.Image())
}

// Center returns the orbit center.
func (o *Orbiter) Center() image.Point { return o.center }

// SetCenter moves the orbit center. Takes effect at the next update.
func (o *Orbiter) SetCenter(p image.Point) {
	o.center = p
	o.MarkDirty()
}

// Angle returns the current orbit phase in radians.
func (o *Orbiter) Angle() float64 { return o.angle }

// SetAngle sets the orbit phase. Values outside [0, 2π) are wrapped by the
// next update, not here.
func (o *Orbiter) SetAngle(a float64) {
	o.angle = a
	o.MarkDirty()
}

// Dist returns the orbit radius in pixels.
func (o *Orbiter) Dist() float64 { return o.dist }

// SetDist sets the orbit radius.
func (o *Orbiter) SetDist(d float64) {
	o.dist = d
	o.MarkDirty()
}

// Velocity returns the angular velocity in radians per frame.
func (o *Orbiter) Velocity() float64 { return o.vel }

// SetVelocity sets the angular velocity.
func (o *Orbiter) SetVelocity(v float64) {
	o.vel = v
	o.MarkDirty()
}

// Radius returns the circle radius in pixels.
func (o *Orbiter) Radius() int { return o.radius }

// SetRadius sets the circle radius.
func (o *Orbiter) SetRadius(r int) {
	o.radius = r
	o.MarkDirty()
}

// Color returns the fill color.
func (o *Orbiter) Color() color.Color { return o.color }

// SetColor sets the fill color.
func (o *Orbiter) SetColor(c color.Color) {
	o.color = c
	o.MarkDirty()
}
