package tilt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeAtCenterIsFlat(t *testing.T) {
	b := Bounds{Left: 10, Top: 20, Width: 200, Height: 100}
	got := Default.Compute(110, 70, b)
	assert.Zero(t, got.RotateX)
	assert.Zero(t, got.RotateY)
	assert.Equal(t, 1.05, got.Scale)
}

func TestComputeCorners(t *testing.T) {
	b := Bounds{Width: 200, Height: 100}

	tests := []struct {
		name   string
		x, y   float64
		rx, ry float64
	}{
		{"top-left", 0, 0, 30, -30},
		{"top-right", 200, 0, 30, 30},
		{"bottom-left", 0, 100, -30, -30},
		{"bottom-right", 200, 100, -30, 30},
		{"right-middle", 150, 50, 0, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Default.Compute(tt.x, tt.y, b)
			assert.InDelta(t, tt.rx, got.RotateX, 1e-12)
			assert.InDelta(t, tt.ry, got.RotateY, 1e-12)
		})
	}
}

func TestComputeDegenerateBounds(t *testing.T) {
	assert.Equal(t, Neutral, Default.Compute(5, 5, Bounds{Width: 0, Height: 10}))
}

func TestCardLeaveResets(t *testing.T) {
	c := NewCard(Bounds{Width: 200, Height: 100}, Default)
	c.Move(0, 0)
	assert.NotEqual(t, Neutral, c.Transform)

	c.Leave()
	assert.Equal(t, Transform{RotateX: 0, RotateY: 0, Scale: 1}, c.Transform)
}

func TestCardTrack(t *testing.T) {
	c := NewCard(Bounds{Left: 100, Top: 100, Width: 200, Height: 100}, Default)

	assert.True(t, c.Track(100, 100))
	assert.InDelta(t, 30, c.Transform.RotateX, 1e-12)

	assert.False(t, c.Track(50, 50))
	assert.Equal(t, Neutral, c.Transform)
}

func TestCSS(t *testing.T) {
	assert.Equal(t,
		"perspective(1000px) rotateX(0deg) rotateY(0deg) scale3d(1, 1, 1)",
		Neutral.CSS(DefaultPerspective))
	assert.Equal(t,
		"perspective(1000px) rotateX(30deg) rotateY(-30deg) scale3d(1.05, 1.05, 1.05)",
		Transform{RotateX: 30, RotateY: -30, Scale: 1.05}.CSS(DefaultPerspective))
}

func TestCornersNeutralMatchesBounds(t *testing.T) {
	b := Bounds{Left: 10, Top: 20, Width: 200, Height: 100}
	got := Neutral.Corners(b, DefaultPerspective)
	want := [4][2]float64{{10, 20}, {210, 20}, {210, 120}, {10, 120}}
	for i := range want {
		assert.InDelta(t, want[i][0], got[i][0], 1e-9)
		assert.InDelta(t, want[i][1], got[i][1], 1e-9)
	}
}

func TestCornersTopTiltsAway(t *testing.T) {
	b := Bounds{Width: 200, Height: 100}
	c := Transform{RotateX: 30, Scale: 1}.Corners(b, DefaultPerspective)
	top := c[1][0] - c[0][0]
	bottom := c[2][0] - c[3][0]
	assert.Less(t, top, 200.0)
	assert.Greater(t, bottom, 200.0)
}
