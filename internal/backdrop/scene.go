// Package backdrop implements the animated particle background: a rotating
// point cloud recolored through a cyclic palette and viewed by a camera that
// drifts toward the pointer.
package backdrop

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

type State int

const (
	Uninitialized State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "uninitialized"
}

// Frame is the state handed to a Surface for one draw call.
type Frame struct {
	Seq      uint64
	Elapsed  time.Duration
	Color    colorful.Color
	Rotation Vec3
	Camera   Vec3
	Aspect   float64
}

// Surface is where a Scene draws. The scene is its only writer.
type Surface interface {
	Resize(width, height int)
	Draw(f Frame) error
}

type Option func(*Scene)

// WithRand seeds particle sampling.
func WithRand(r *rand.Rand) Option {
	return func(s *Scene) { s.rng = r }
}

// Scene owns every piece of animation state for one mounted background.
type Scene struct {
	cfg     Config
	surface Surface
	rng     *rand.Rand

	state  State
	active bool
	seq    uint64

	colors *ColorInterpolator
	field  *ParticleField
	camera *Camera
}

// New validates cfg and builds the palette. Setup failures are returned here;
// nothing after New can fail except the surface itself.
func New(cfg Config, surface Surface, opts ...Option) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if surface == nil {
		return nil, errors.New("backdrop: nil surface")
	}
	palette, err := NewPalette(cfg.Palette)
	if err != nil {
		return nil, err
	}
	s := &Scene{
		cfg:     cfg,
		surface: surface,
		colors:  NewColorInterpolator(palette, cfg.BlendFactor),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s, nil
}

// Start builds the particle field and camera and enters Running. Calling it
// again leaves the existing scene graph untouched.
func (s *Scene) Start() {
	if s.state == Running {
		return
	}
	s.field = NewParticleField(s.cfg.ParticleCount, s.cfg.Extent, s.cfg.RotationRateX, s.cfg.RotationRateY, s.rng)
	s.camera = NewCamera(s.cfg.CameraDistance, s.cfg.FieldOfView, s.cfg.CameraDamping, s.cfg.CameraReach)
	s.state = Running
	s.active = true
}

// Stop marks the scene inactive. Ticks after Stop do nothing.
func (s *Scene) Stop() { s.active = false }

func (s *Scene) State() State  { return s.state }
func (s *Scene) Active() bool  { return s.state == Running && s.active }
func (s *Scene) Config() Config { return s.cfg }

func (s *Scene) Field() *ParticleField      { return s.field }
func (s *Scene) Camera() *Camera            { return s.camera }
func (s *Scene) Colors() *ColorInterpolator { return s.colors }

// Tick runs one render tick: rotation, camera, color blend, draw.
func (s *Scene) Tick(elapsed time.Duration) error {
	if !s.Active() {
		return nil
	}
	s.field.Rotate(elapsed)
	s.camera.Step()
	s.colors.Step()
	s.seq++
	return s.surface.Draw(Frame{
		Seq:      s.seq,
		Elapsed:  elapsed,
		Color:    s.colors.Current(),
		Rotation: s.field.Rotation(),
		Camera:   s.camera.Position,
		Aspect:   s.camera.Aspect,
	})
}

// AdvancePalette is the periodic palette step.
func (s *Scene) AdvancePalette() {
	if !s.Active() {
		return
	}
	s.colors.Advance()
}

func (s *Scene) SetPointer(p Pointer) {
	if s.camera == nil {
		return
	}
	s.camera.SetPointer(p)
}

// Resize updates the projection aspect and the surface size. Safe to repeat.
func (s *Scene) Resize(width, height int) {
	if !s.Active() || width <= 0 || height <= 0 {
		return
	}
	s.camera.Resize(width, height)
	s.surface.Resize(width, height)
}
