package backdrop

import (
	"errors"
	"fmt"
	"time"
)

// DefaultPalette is the cycle of particle colors.
var DefaultPalette = []string{"#5c67de", "#ff7f50", "#32cd32", "#8a2be2", "#00ced1", "#ff1493"}

const (
	DefaultParticleCount   = 5000
	DefaultExtent          = 10.0
	DefaultPointSize       = 0.015
	DefaultPaletteInterval = 5 * time.Second
	DefaultBlendFactor     = 0.02
	DefaultCameraDamping   = 0.05
	DefaultCameraReach     = 0.5
	DefaultCameraDistance  = 5.0
	DefaultFieldOfView     = 75.0
	DefaultRotationRateX   = 0.02
	DefaultRotationRateY   = 0.05
	DefaultFPS             = 60
)

var ErrEmptyPalette = errors.New("backdrop: palette is empty")

// Config holds the tuned constants of the background animation.
type Config struct {
	ParticleCount   int
	Extent          float64 // side length of the sampling cube
	PointSize       float64
	Palette         []string
	PaletteInterval time.Duration
	BlendFactor     float64
	CameraDamping   float64
	CameraReach     float64
	CameraDistance  float64
	FieldOfView     float64 // vertical, degrees
	RotationRateX   float64 // radians per second
	RotationRateY   float64
	FPS             int
}

func DefaultConfig() Config {
	return Config{
		ParticleCount:   DefaultParticleCount,
		Extent:          DefaultExtent,
		PointSize:       DefaultPointSize,
		Palette:         append([]string(nil), DefaultPalette...),
		PaletteInterval: DefaultPaletteInterval,
		BlendFactor:     DefaultBlendFactor,
		CameraDamping:   DefaultCameraDamping,
		CameraReach:     DefaultCameraReach,
		CameraDistance:  DefaultCameraDistance,
		FieldOfView:     DefaultFieldOfView,
		RotationRateX:   DefaultRotationRateX,
		RotationRateY:   DefaultRotationRateY,
		FPS:             DefaultFPS,
	}
}

// Validate reports the first precondition the config violates.
func (c Config) Validate() error {
	switch {
	case len(c.Palette) == 0:
		return ErrEmptyPalette
	case c.ParticleCount <= 0:
		return fmt.Errorf("backdrop: particle count must be positive, got %d", c.ParticleCount)
	case c.Extent <= 0:
		return fmt.Errorf("backdrop: extent must be positive, got %g", c.Extent)
	case c.PointSize <= 0:
		return fmt.Errorf("backdrop: point size must be positive, got %g", c.PointSize)
	case c.PaletteInterval <= 0:
		return fmt.Errorf("backdrop: palette interval must be positive, got %s", c.PaletteInterval)
	case c.BlendFactor <= 0 || c.BlendFactor >= 1:
		return fmt.Errorf("backdrop: blend factor must be in (0,1), got %g", c.BlendFactor)
	case c.CameraDamping <= 0 || c.CameraDamping >= 1:
		return fmt.Errorf("backdrop: camera damping must be in (0,1), got %g", c.CameraDamping)
	case c.CameraReach < 0:
		return fmt.Errorf("backdrop: camera reach must not be negative, got %g", c.CameraReach)
	case c.CameraDistance <= 0:
		return fmt.Errorf("backdrop: camera distance must be positive, got %g", c.CameraDistance)
	case c.FieldOfView <= 0 || c.FieldOfView >= 180:
		return fmt.Errorf("backdrop: field of view must be in (0,180), got %g", c.FieldOfView)
	case c.FPS <= 0:
		return fmt.Errorf("backdrop: fps must be positive, got %d", c.FPS)
	}
	return nil
}
