// Package config reads the site's settings from the environment (with .env
// support) and the backdrop tuning from an optional YAML file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Zachkp/portfolio/internal/backdrop"
	"github.com/Zachkp/portfolio/internal/mailer"
)

type Config struct {
	Port        string
	DBPath      string
	ContentPath string
	TuningPath  string

	SMTP      mailer.SMTPConfig
	ContactTo string

	ContactPerMinute float64
	ContactBurst     int
}

// Load reads the environment. Unset values fall back to development defaults.
func Load() Config {
	return Config{
		Port:        env("PORT", "8080"),
		DBPath:      env("DB_PATH", "portfolio.db"),
		ContentPath: env("CONTENT_PATH", "content.yaml"),
		TuningPath:  env("TUNING_PATH", "portfolio.yaml"),
		SMTP: mailer.SMTPConfig{
			Host: env("SMTP_HOST", "smtp.gmail.com"),
			Port: env("SMTP_PORT", "587"),
			User: os.Getenv("SMTP_USER"),
			Pass: os.Getenv("SMTP_PASS"),
		},
		ContactTo:        env("TO_EMAIL", "student@university.edu"),
		ContactPerMinute: envFloat("CONTACT_RATE_PER_MINUTE", 3),
		ContactBurst:     envInt("CONTACT_BURST", 3),
	}
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

// Tuning is the YAML form of the backdrop constants. Omitted keys keep the
// defaults; an explicit zero is applied as zero.
type Tuning struct {
	Backdrop struct {
		ParticleCount   *int           `yaml:"particle_count"`
		Extent          *float64       `yaml:"extent"`
		PointSize       *float64       `yaml:"point_size"`
		Palette         []string       `yaml:"palette"`
		PaletteInterval *time.Duration `yaml:"palette_interval"`
		BlendFactor     *float64       `yaml:"blend_factor"`
		CameraDamping   *float64       `yaml:"camera_damping"`
		CameraReach     *float64       `yaml:"camera_reach"`
		CameraDistance  *float64       `yaml:"camera_distance"`
		FieldOfView     *float64       `yaml:"field_of_view"`
		RotationRateX   *float64       `yaml:"rotation_rate_x"`
		RotationRateY   *float64       `yaml:"rotation_rate_y"`
		FPS             *int           `yaml:"fps"`
	} `yaml:"backdrop"`
}

// LoadTuning reads path. A missing file yields an empty Tuning.
func LoadTuning(path string) (*Tuning, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Tuning{}, nil
	}
	if err != nil {
		return nil, err
	}
	var t Tuning
	if err := yaml.Unmarshal(b, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Apply overlays the values present in the file on base.
func (t *Tuning) Apply(base backdrop.Config) backdrop.Config {
	b := t.Backdrop
	c := base
	set(&c.ParticleCount, b.ParticleCount)
	set(&c.Extent, b.Extent)
	set(&c.PointSize, b.PointSize)
	if len(b.Palette) > 0 {
		c.Palette = append([]string(nil), b.Palette...)
	}
	set(&c.PaletteInterval, b.PaletteInterval)
	set(&c.BlendFactor, b.BlendFactor)
	set(&c.CameraDamping, b.CameraDamping)
	set(&c.CameraReach, b.CameraReach)
	set(&c.CameraDistance, b.CameraDistance)
	set(&c.FieldOfView, b.FieldOfView)
	set(&c.RotationRateX, b.RotationRateX)
	set(&c.RotationRateY, b.RotationRateY)
	set(&c.FPS, b.FPS)
	return c
}

// BackdropConfig loads path and returns the validated backdrop config.
func BackdropConfig(path string) (backdrop.Config, error) {
	t, err := LoadTuning(path)
	if err != nil {
		return backdrop.Config{}, err
	}
	c := t.Apply(backdrop.DefaultConfig())
	if err := c.Validate(); err != nil {
		return backdrop.Config{}, err
	}
	return c, nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
