package backdrop

import "math"

const (
	nearPlane = 0.1
	farPlane  = 1000.0
)

var worldUp = Vec3{Y: 1}

// Pointer is a pointer position normalized to [-1, 1] on both axes, Y up.
type Pointer struct {
	X, Y float64
}

// NormalizePointer maps client pixel coordinates within a viewport to a Pointer.
func NormalizePointer(clientX, clientY, width, height float64) Pointer {
	if width <= 0 || height <= 0 {
		return Pointer{}
	}
	return Pointer{
		X: clientX/width*2 - 1,
		Y: -(clientY/height)*2 + 1,
	}
}

// Camera is a perspective camera that eases toward the pointer and always
// looks at the origin.
type Camera struct {
	Position Vec3
	Aspect   float64

	pointer Pointer
	damping float64
	reach   float64
	fov     float64

	forward, right, up Vec3
}

func NewCamera(distance, fovDegrees, damping, reach float64) *Camera {
	c := &Camera{
		Position: Vec3{Z: distance},
		Aspect:   1,
		damping:  damping,
		reach:    reach,
		fov:      fovDegrees,
	}
	c.lookAtOrigin()
	return c
}

func (c *Camera) SetPointer(p Pointer) { c.pointer = p }
func (c *Camera) Pointer() Pointer     { return c.pointer }

// Target is the point in the XY plane the camera is easing toward.
func (c *Camera) Target() (x, y float64) {
	return c.pointer.X * c.reach, c.pointer.Y * c.reach
}

// Step moves the camera a fixed fraction of the remaining distance toward its
// target and re-aims it at the origin.
func (c *Camera) Step() {
	tx, ty := c.Target()
	c.Position.X += (tx - c.Position.X) * c.damping
	c.Position.Y += (ty - c.Position.Y) * c.damping
	c.lookAtOrigin()
}

// Resize recomputes the projection aspect ratio.
func (c *Camera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float64(width) / float64(height)
}

func (c *Camera) Forward() Vec3 { return c.forward }

func (c *Camera) lookAtOrigin() {
	c.forward = Vec3{}.Sub(c.Position).Normalize()
	c.right = c.forward.Cross(worldUp).Normalize()
	c.up = c.right.Cross(c.forward)
}

// Project maps a world point to screen pixels. ok is false when the point is
// outside the clip range. depth is the distance along the view direction.
func (c *Camera) Project(p Vec3, width, height float64) (sx, sy, depth float64, ok bool) {
	d := p.Sub(c.Position)
	z := d.Dot(c.forward)
	if z < nearPlane || z > farPlane {
		return 0, 0, z, false
	}
	focal := 1 / math.Tan(c.fov*math.Pi/360)
	nx := d.Dot(c.right) * focal / (c.Aspect * z)
	ny := d.Dot(c.up) * focal / z
	return (nx + 1) / 2 * width, (1 - ny) / 2 * height, z, true
}
