// Command backdrop previews the particle backdrop and the skill card tilt in a
// desktop window, using the same scene the site streams to browsers.
package main

import (
	"errors"
	"flag"
	"image"
	"image/color"
	"math"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Zachkp/portfolio/internal/backdrop"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/tilt"
)

const (
	cardWidth  = 180
	cardHeight = 90
	cardGap    = 24
	maxCards   = 4
)

var (
	dot        = ebiten.NewImage(1, 1)
	whiteImage = ebiten.NewImage(3, 3)
	whitePixel = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	dot.Fill(color.White)
	whiteImage.Fill(color.White)
}

// window is the scene's surface: it keeps the last frame for Draw.
type window struct {
	frame         backdrop.Frame
	width, height int
}

func (w *window) Resize(width, height int) { w.width, w.height = width, height }

func (w *window) Draw(f backdrop.Frame) error {
	w.frame = f
	return nil
}

type skillCard struct {
	skill content.Skill
	card  *tilt.Card
}

type game struct {
	scene  *backdrop.Scene
	out    *window
	cards  []skillCard
	start  time.Time
	cycled time.Time
	width  int
	height int
}

func newGame(cfg backdrop.Config, skills []content.Skill) (*game, error) {
	out := &window{}
	scene, err := backdrop.New(cfg, out)
	if err != nil {
		return nil, err
	}
	scene.Start()

	g := &game{scene: scene, out: out, start: time.Now()}
	g.cycled = g.start
	for i, s := range skills {
		if i == maxCards {
			break
		}
		g.cards = append(g.cards, skillCard{skill: s, card: tilt.NewCard(tilt.Bounds{}, tilt.Default)})
	}
	return g, nil
}

func (g *game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		g.scene.Stop()
		return ebiten.Termination
	}

	now := time.Now()
	if now.Sub(g.cycled) >= g.scene.Config().PaletteInterval {
		g.scene.AdvancePalette()
		g.cycled = now
	}

	mx, my := ebiten.CursorPosition()
	if g.width > 0 && g.height > 0 {
		g.scene.SetPointer(backdrop.NormalizePointer(float64(mx), float64(my), float64(g.width), float64(g.height)))
	}
	for _, c := range g.cards {
		c.card.Track(float64(mx), float64(my))
	}

	return g.scene.Tick(now.Sub(g.start))
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 10, G: 10, B: 20, A: 255})
	g.drawParticles(screen)
	for _, c := range g.cards {
		drawCard(screen, c)
	}
	ebitenutil.DebugPrint(screen, "Esc/Q: quit")
}

func (g *game) drawParticles(screen *ebiten.Image) {
	field, cam := g.scene.Field(), g.scene.Camera()
	cfg := g.scene.Config()
	w, h := float64(g.width), float64(g.height)
	if w <= 0 || h <= 0 {
		return
	}
	pixelsPerUnit := h / (2 * math.Tan(cfg.FieldOfView*math.Pi/360))

	c := g.out.frame.Color.Clamped()
	op := &ebiten.DrawImageOptions{Blend: ebiten.BlendLighter}
	op.ColorScale.Scale(float32(c.R), float32(c.G), float32(c.B), 1)
	op.ColorScale.ScaleAlpha(0.8)

	for i := 0; i < field.Len(); i++ {
		sx, sy, depth, ok := cam.Project(field.World(i), w, h)
		if !ok || sx < 0 || sy < 0 || sx > w || sy > h {
			continue
		}
		size := math.Max(1, cfg.PointSize*pixelsPerUnit/depth)
		op.GeoM.Reset()
		op.GeoM.Scale(size, size)
		op.GeoM.Translate(sx-size/2, sy-size/2)
		screen.DrawImage(dot, op)
	}
}

func drawCard(screen *ebiten.Image, c skillCard) {
	corners := c.card.Transform.Corners(c.card.Bounds, tilt.DefaultPerspective)

	var path vector.Path
	path.MoveTo(float32(corners[0][0]), float32(corners[0][1]))
	for _, p := range corners[1:] {
		path.LineTo(float32(p[0]), float32(p[1]))
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = 0.15, 0.18, 0.3, 0.85
	}
	screen.DrawTriangles(vs, is, whitePixel, &ebiten.DrawTrianglesOptions{AntiAlias: true})

	b := c.card.Bounds
	ebitenutil.DebugPrintAt(screen, c.skill.Name, int(b.Left)+12, int(b.Top)+12)
	ebitenutil.DebugPrintAt(screen, c.skill.Category, int(b.Left)+12, int(b.Top)+32)
	vector.DrawFilledRect(screen, float32(b.Left)+12, float32(b.Top+b.Height)-20,
		float32((b.Width-24)*float64(c.skill.Proficiency)/10), 6, color.RGBA{R: 92, G: 103, B: 222, A: 255}, false)
}

// Layout resizes the scene and lays the cards out along the bottom edge.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.scene.Resize(outsideWidth, outsideHeight)

		total := len(g.cards)*cardWidth + (len(g.cards)-1)*cardGap
		left := float64(outsideWidth-total) / 2
		top := float64(outsideHeight - cardHeight - 2*cardGap)
		for i, c := range g.cards {
			c.card.Bounds = tilt.Bounds{
				Left:   left + float64(i*(cardWidth+cardGap)),
				Top:    top,
				Width:  cardWidth,
				Height: cardHeight,
			}
			c.card.Leave()
		}
	}
	return outsideWidth, outsideHeight
}

func main() {
	contentPath := flag.String("content", "content.yaml", "skills catalogue (YAML)")
	tuningPath := flag.String("config", "portfolio.yaml", "backdrop tuning (YAML)")
	width := flag.Int("width", 1280, "window width")
	height := flag.Int("height", 720, "window height")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg, err := config.BackdropConfig(*tuningPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *tuningPath).Msg("invalid backdrop tuning")
	}

	var skills []content.Skill
	if cat, err := content.Load(*contentPath); err != nil {
		log.Warn().Err(err).Str("path", *contentPath).Msg("no skill cards")
	} else {
		skills = cat.Skills
	}

	g, err := newGame(cfg, skills)
	if err != nil {
		log.Fatal().Err(err).Msg("backdrop setup failed")
	}

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("Portfolio Backdrop")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.FPS)

	log.Info().Int("particles", cfg.ParticleCount).Int("fps", cfg.FPS).Msg("backdrop preview running")
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal().Err(err).Msg("backdrop preview failed")
	}
}
