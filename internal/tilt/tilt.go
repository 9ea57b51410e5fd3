// Package tilt computes the pointer-reactive card tilt. Transforms are derived
// from a single pointer event and element bounds, with no smoothing.
package tilt

import (
	"fmt"
	"math"
)

const (
	DefaultMaxAngle    = 30.0 // degrees at the element edge
	DefaultHoverScale  = 1.05
	DefaultPerspective = 1000.0 // px
)

// Bounds is an element's bounding box in pixels.
type Bounds struct {
	Left, Top, Width, Height float64
}

func (b Bounds) Center() (x, y float64) {
	return b.Left + b.Width/2, b.Top + b.Height/2
}

func (b Bounds) Contains(x, y float64) bool {
	return x >= b.Left && x <= b.Left+b.Width && y >= b.Top && y <= b.Top+b.Height
}

// Transform is a card's visual transform. Angles are in degrees.
type Transform struct {
	RotateX float64
	RotateY float64
	Scale   float64
}

// Neutral is the resting transform.
var Neutral = Transform{Scale: 1}

// CSS renders the transform for a style attribute.
func (t Transform) CSS(perspective float64) string {
	return fmt.Sprintf("perspective(%gpx) rotateX(%gdeg) rotateY(%gdeg) scale3d(%g, %g, %g)",
		perspective, t.RotateX, t.RotateY, t.Scale, t.Scale, t.Scale)
}

// Corners projects the transformed card outline to screen space the way a
// browser does for CSS: scale, then rotateY, then rotateX, then perspective
// about the card center. Order is top-left, top-right, bottom-right,
// bottom-left.
func (t Transform) Corners(b Bounds, perspective float64) [4][2]float64 {
	cx, cy := b.Center()
	rx, ry := t.RotateX*math.Pi/180, t.RotateY*math.Pi/180
	hw, hh := b.Width/2, b.Height/2
	local := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}

	var out [4][2]float64
	for i, p := range local {
		x, y := p[0]*t.Scale, p[1]*t.Scale
		x, z := x*math.Cos(ry), -x*math.Sin(ry)
		y, z = y*math.Cos(rx)-z*math.Sin(rx), y*math.Sin(rx)+z*math.Cos(rx)
		f := perspective / (perspective - z)
		out[i] = [2]float64{cx + x*f, cy + y*f}
	}
	return out
}

type Effect struct {
	MaxAngle   float64
	HoverScale float64
}

var Default = Effect{MaxAngle: DefaultMaxAngle, HoverScale: DefaultHoverScale}

// Compute maps a pointer position to a transform. A pointer on the top edge
// tilts the card toward the viewer by MaxAngle around the horizontal axis; a
// pointer on the left edge rotates it by -MaxAngle around the vertical axis.
func (e Effect) Compute(pointerX, pointerY float64, b Bounds) Transform {
	if b.Width <= 0 || b.Height <= 0 {
		return Neutral
	}
	cx, cy := b.Center()
	dx, dy := pointerX-cx, pointerY-cy
	return Transform{
		RotateX: -dy / (b.Height / 2) * e.MaxAngle,
		RotateY: dx / (b.Width / 2) * e.MaxAngle,
		Scale:   e.HoverScale,
	}
}

// Card holds the transform currently applied to one element.
type Card struct {
	Bounds    Bounds
	Transform Transform
	effect    Effect
}

func NewCard(b Bounds, e Effect) *Card {
	return &Card{Bounds: b, Transform: Neutral, effect: e}
}

// Move applies the transform for a pointer-move over the card.
func (c *Card) Move(pointerX, pointerY float64) {
	c.Transform = c.effect.Compute(pointerX, pointerY, c.Bounds)
}

// Leave resets rotation and scale in one step.
func (c *Card) Leave() { c.Transform = Neutral }

// Track routes a pointer position to Move or Leave depending on whether it is
// inside the card, and reports whether it was.
func (c *Card) Track(pointerX, pointerY float64) bool {
	if c.Bounds.Contains(pointerX, pointerY) {
		c.Move(pointerX, pointerY)
		return true
	}
	if c.Transform != Neutral {
		c.Leave()
	}
	return false
}
