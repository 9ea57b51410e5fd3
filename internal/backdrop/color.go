package backdrop

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is a fixed cyclic sequence of colors.
type Palette struct {
	colors []colorful.Color
	index  int
}

// NewPalette parses hex colors. An empty list is a setup error.
func NewPalette(hex []string) (*Palette, error) {
	if len(hex) == 0 {
		return nil, ErrEmptyPalette
	}
	p := &Palette{colors: make([]colorful.Color, len(hex))}
	for i, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("backdrop: palette entry %d: %w", i, err)
		}
		p.colors[i] = c
	}
	return p, nil
}

func (p *Palette) Len() int                { return len(p.colors) }
func (p *Palette) Index() int              { return p.index }
func (p *Palette) At(i int) colorful.Color { return p.colors[i%len(p.colors)] }
func (p *Palette) Current() colorful.Color { return p.colors[p.index] }

// Advance moves to the next entry, wrapping after the last one.
func (p *Palette) Advance() colorful.Color {
	p.index = (p.index + 1) % len(p.colors)
	return p.colors[p.index]
}

// Hex returns the palette as hex strings in order.
func (p *Palette) Hex() []string {
	out := make([]string, len(p.colors))
	for i, c := range p.colors {
		out[i] = c.Hex()
	}
	return out
}

// ColorInterpolator eases the active color toward the palette's current target.
type ColorInterpolator struct {
	palette *Palette
	current colorful.Color
	target  colorful.Color
	blend   float64
}

func NewColorInterpolator(p *Palette, blend float64) *ColorInterpolator {
	start := p.Current()
	return &ColorInterpolator{palette: p, current: start, target: start, blend: blend}
}

// Advance is the timer step: the target jumps to the next palette entry.
func (c *ColorInterpolator) Advance() {
	c.target = c.palette.Advance()
}

// Step is the per-tick blend in linear RGB.
func (c *ColorInterpolator) Step() {
	c.current = c.current.BlendLinearRgb(c.target, c.blend)
}

func (c *ColorInterpolator) Current() colorful.Color { return c.current }
func (c *ColorInterpolator) Target() colorful.Color  { return c.target }
func (c *ColorInterpolator) Palette() *Palette       { return c.palette }
