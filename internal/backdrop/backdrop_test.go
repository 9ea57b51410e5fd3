package backdrop

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSurface struct {
	frames  []Frame
	resizes [][2]int
	err     error
}

func (r *recordingSurface) Resize(w, h int) { r.resizes = append(r.resizes, [2]int{w, h}) }

func (r *recordingSurface) Draw(f Frame) error {
	r.frames = append(r.frames, f)
	return r.err
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.ParticleCount = 200
	return cfg
}

func seeded() Option { return WithRand(rand.New(rand.NewPCG(1, 2))) }

func linearDistance(a, b colorful.Color) float64 {
	ar, ag, ab := a.LinearRgb()
	br, bg, bb := b.LinearRgb()
	return Vec3{ar - br, ag - bg, ab - bb}.Len()
}

func TestPaletteWraps(t *testing.T) {
	p, err := NewPalette(DefaultPalette)
	require.NoError(t, err)

	for i := 1; i <= 3*p.Len(); i++ {
		p.Advance()
		assert.Equal(t, i%p.Len(), p.Index())
		assert.Less(t, p.Index(), p.Len())
	}
	assert.Equal(t, "#5c67de", p.Current().Hex())
}

func TestPaletteRejectsBadInput(t *testing.T) {
	_, err := NewPalette(nil)
	assert.ErrorIs(t, err, ErrEmptyPalette)

	_, err = NewPalette([]string{"#5c67de", "chartreuse"})
	assert.Error(t, err)
}

func TestColorInterpolatorConverges(t *testing.T) {
	p, err := NewPalette([]string{"#000000", "#ff1493"})
	require.NoError(t, err)
	c := NewColorInterpolator(p, DefaultBlendFactor)

	c.Advance()
	require.Equal(t, "#ff1493", c.Target().Hex())

	prev := linearDistance(c.Current(), c.Target())
	for i := 0; i < 2000; i++ {
		c.Step()
		d := linearDistance(c.Current(), c.Target())
		if prev > 1e-9 {
			require.Less(t, d, prev, "tick %d", i)
		}
		prev = d
	}
	assert.Less(t, prev, 1e-6)
	assert.Equal(t, c.Target().Hex(), c.Current().Hex())
}

func TestColorInterpolatorStepMovesFixedFraction(t *testing.T) {
	p, err := NewPalette([]string{"#000000", "#ffffff"})
	require.NoError(t, err)
	c := NewColorInterpolator(p, 0.02)
	c.Advance()
	c.Step()

	r, g, b := c.Current().LinearRgb()
	assert.InDelta(t, 0.02, r, 1e-9)
	assert.InDelta(t, 0.02, g, 1e-9)
	assert.InDelta(t, 0.02, b, 1e-9)
}

func TestParticleFieldBounds(t *testing.T) {
	f := NewParticleField(5000, 10, 0.02, 0.05, rand.New(rand.NewPCG(7, 7)))
	require.Equal(t, 5000, f.Len())
	for _, v := range f.Positions() {
		assert.GreaterOrEqual(t, v, float32(-5))
		assert.LessOrEqual(t, v, float32(5))
	}
}

func TestParticlePositionsSurviveTicks(t *testing.T) {
	s, err := New(testConfig(), &recordingSurface{}, seeded())
	require.NoError(t, err)
	s.Start()

	before := s.Field().Positions()
	for i := 1; i <= 100; i++ {
		require.NoError(t, s.Tick(time.Duration(i)*16*time.Millisecond))
	}
	assert.Equal(t, before, s.Field().Positions())
	assert.NotEqual(t, Vec3{}, s.Field().Rotation())
}

func TestPositionsReturnsCopy(t *testing.T) {
	f := NewParticleField(3, 10, 0, 0, rand.New(rand.NewPCG(1, 1)))
	buf := f.Positions()
	buf[0] = 99
	assert.NotEqual(t, float32(99), f.Positions()[0])
}

func TestRotateUsesElapsedTime(t *testing.T) {
	f := NewParticleField(1, 10, 0.02, 0.05, rand.New(rand.NewPCG(1, 1)))
	f.Rotate(10 * time.Second)
	assert.InDelta(t, 0.2, f.Rotation().X, 1e-12)
	assert.InDelta(t, 0.5, f.Rotation().Y, 1e-12)

	// rotation preserves distance from the origin
	assert.InDelta(t, f.At(0).Len(), f.World(0).Len(), 1e-9)
}

func TestNormalizePointer(t *testing.T) {
	assert.Equal(t, Pointer{X: -1, Y: 1}, NormalizePointer(0, 0, 800, 600))
	assert.Equal(t, Pointer{X: 0, Y: 0}, NormalizePointer(400, 300, 800, 600))
	assert.Equal(t, Pointer{X: 1, Y: -1}, NormalizePointer(800, 600, 800, 600))
	assert.Equal(t, Pointer{}, NormalizePointer(10, 10, 0, 0))
}

func TestCameraCenteredPointerTargetsOrigin(t *testing.T) {
	c := NewCamera(5, 75, DefaultCameraDamping, DefaultCameraReach)
	c.Position.X, c.Position.Y = 0.4, -0.3
	c.SetPointer(Pointer{})

	x, y := c.Target()
	assert.Zero(t, x)
	assert.Zero(t, y)

	for i := 0; i < 1000; i++ {
		c.Step()
	}
	assert.InDelta(t, 0, c.Position.X, 1e-9)
	assert.InDelta(t, 0, c.Position.Y, 1e-9)
	assert.Equal(t, 5.0, c.Position.Z)
}

func TestCameraApproachesWithoutOvershoot(t *testing.T) {
	c := NewCamera(5, 75, DefaultCameraDamping, DefaultCameraReach)
	c.SetPointer(Pointer{X: 1, Y: 1})

	prev := 0.0
	for i := 0; i < 500; i++ {
		c.Step()
		require.Greater(t, c.Position.X, prev)
		require.LessOrEqual(t, c.Position.X, 0.5)
		prev = c.Position.X
	}
	assert.InDelta(t, 0.5, c.Position.Y, 1e-6)

	// re-aimed at the origin
	want := Vec3{}.Sub(c.Position).Normalize()
	assert.InDelta(t, want.X, c.Forward().X, 1e-12)
	assert.InDelta(t, want.Z, c.Forward().Z, 1e-12)
}

func TestCameraProjectsOriginToCenter(t *testing.T) {
	c := NewCamera(5, 75, DefaultCameraDamping, DefaultCameraReach)
	c.Resize(800, 600)

	x, y, depth, ok := c.Project(Vec3{}, 800, 600)
	require.True(t, ok)
	assert.InDelta(t, 400, x, 1e-9)
	assert.InDelta(t, 300, y, 1e-9)
	assert.InDelta(t, 5, depth, 1e-9)

	_, _, _, ok = c.Project(Vec3{Z: 6}, 800, 600)
	assert.False(t, ok, "behind the camera")
}

func TestNewFailsFast(t *testing.T) {
	cfg := testConfig()
	cfg.Palette = nil
	_, err := New(cfg, &recordingSurface{})
	assert.ErrorIs(t, err, ErrEmptyPalette)

	_, err = New(testConfig(), nil)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.CameraDamping = 1
	_, err = New(cfg, &recordingSurface{})
	assert.Error(t, err)
}

func TestSceneStartsOnce(t *testing.T) {
	surface := &recordingSurface{}
	s, err := New(testConfig(), surface, seeded())
	require.NoError(t, err)
	assert.Equal(t, Uninitialized, s.State())

	require.NoError(t, s.Tick(time.Second))
	assert.Empty(t, surface.frames, "no draws before start")

	s.Start()
	field := s.Field()
	s.Start()
	assert.Same(t, field, s.Field())
	assert.Equal(t, Running, s.State())
}

func TestTickOrder(t *testing.T) {
	surface := &recordingSurface{}
	s, err := New(testConfig(), surface, seeded())
	require.NoError(t, err)
	s.Start()
	s.SetPointer(Pointer{X: 1, Y: -1})
	s.AdvancePalette()

	require.NoError(t, s.Tick(2*time.Second))
	require.Len(t, surface.frames, 1)
	f := surface.frames[0]

	assert.Equal(t, uint64(1), f.Seq)
	assert.InDelta(t, 0.04, f.Rotation.X, 1e-12)
	assert.InDelta(t, 0.1, f.Rotation.Y, 1e-12)
	assert.InDelta(t, 0.025, f.Camera.X, 1e-12)
	assert.InDelta(t, -0.025, f.Camera.Y, 1e-12)
	// the frame carries the color after this tick's blend
	assert.Equal(t, s.Colors().Current(), f.Color)
	assert.NotEqual(t, s.Colors().Palette().At(0), f.Color)
}

func TestStopMakesTicksNoops(t *testing.T) {
	surface := &recordingSurface{}
	s, err := New(testConfig(), surface, seeded())
	require.NoError(t, err)
	s.Start()
	require.NoError(t, s.Tick(time.Millisecond))
	s.Stop()

	require.NoError(t, s.Tick(2*time.Millisecond))
	s.AdvancePalette()
	s.Resize(100, 100)
	assert.Len(t, surface.frames, 1)
	assert.Empty(t, surface.resizes)
	assert.Equal(t, 0, s.Colors().Palette().Index())
}

func TestResizeIsIdempotent(t *testing.T) {
	surface := &recordingSurface{}
	s, err := New(testConfig(), surface, seeded())
	require.NoError(t, err)
	s.Start()

	s.Resize(1600, 900)
	s.Resize(1600, 900)
	assert.InDelta(t, 16.0/9.0, s.Camera().Aspect, 1e-12)
	assert.Equal(t, [][2]int{{1600, 900}, {1600, 900}}, surface.resizes)

	s.Resize(0, 900)
	assert.Len(t, surface.resizes, 2)
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig()
	cfg.FPS = 200
	cfg.PaletteInterval = 5 * time.Millisecond
	surface := &recordingSurface{}
	s, err := New(cfg, surface, seeded())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan Event, 2)
	events <- ResizeEvent(640, 480)
	events <- PointerEvent(Pointer{X: 0.5, Y: 0.5})

	done := make(chan error, 1)
	go func() { done <- Run(ctx, s, events) }()

	time.Sleep(100 * time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	assert.NotEmpty(t, surface.frames)
	assert.Equal(t, [][2]int{{640, 480}}, surface.resizes)
	assert.Equal(t, Pointer{X: 0.5, Y: 0.5}, s.Camera().Pointer())
	assert.False(t, s.Active())

	n := len(surface.frames)
	require.NoError(t, s.Tick(time.Hour))
	assert.Len(t, surface.frames, n)
}

func TestRunReturnsSurfaceError(t *testing.T) {
	cfg := testConfig()
	cfg.FPS = 500
	boom := errors.New("surface gone")
	s, err := New(cfg, &recordingSurface{err: boom}, seeded())
	require.NoError(t, err)

	err = Run(context.Background(), s, make(chan Event))
	assert.ErrorIs(t, err, boom)
	assert.False(t, s.Active())
}
