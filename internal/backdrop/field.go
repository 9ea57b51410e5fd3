package backdrop

import (
	"math"
	"math/rand/v2"
	"time"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Len() float64         { return math.Sqrt(v.Dot(v)) }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// ParticleField is a point cloud sampled once and rotated as a group.
type ParticleField struct {
	positions []float32 // x,y,z per particle
	rotation  Vec3
	rateX     float64
	rateY     float64
}

// NewParticleField samples count points uniformly from a cube of the given side
// length centered on the origin.
func NewParticleField(count int, extent float64, rateX, rateY float64, rng *rand.Rand) *ParticleField {
	pos := make([]float32, count*3)
	for i := range pos {
		pos[i] = float32((rng.Float64() - 0.5) * extent)
	}
	return &ParticleField{positions: pos, rateX: rateX, rateY: rateY}
}

func (f *ParticleField) Len() int { return len(f.positions) / 3 }

// Positions returns a copy of the flat position buffer.
func (f *ParticleField) Positions() []float32 {
	return append([]float32(nil), f.positions...)
}

// At returns the local (unrotated) position of particle i.
func (f *ParticleField) At(i int) Vec3 {
	j := i * 3
	return Vec3{float64(f.positions[j]), float64(f.positions[j+1]), float64(f.positions[j+2])}
}

func (f *ParticleField) Rotation() Vec3 { return f.rotation }

// Rotate sets the group rotation as a function of elapsed time.
func (f *ParticleField) Rotate(elapsed time.Duration) {
	t := elapsed.Seconds()
	f.rotation = Vec3{X: f.rateX * t, Y: f.rateY * t}
}

// World returns particle i after the group rotation (XYZ Euler order).
func (f *ParticleField) World(i int) Vec3 {
	return rotateXYZ(f.At(i), f.rotation)
}

func rotateXYZ(p, r Vec3) Vec3 {
	// Z first, then Y, then X: the composed matrix is Rx*Ry*Rz.
	sz, cz := math.Sincos(r.Z)
	p = Vec3{p.X*cz - p.Y*sz, p.X*sz + p.Y*cz, p.Z}
	sy, cy := math.Sincos(r.Y)
	p = Vec3{p.X*cy + p.Z*sy, p.Y, -p.X*sy + p.Z*cy}
	sx, cx := math.Sincos(r.X)
	return Vec3{p.X, p.Y*cx - p.Z*sx, p.Y*sx + p.Z*cx}
}
