package backdrop

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

type EventKind int

const (
	PointerMoved EventKind = iota + 1
	Resized
)

// Event is a pointer or viewport change delivered to Run.
type Event struct {
	Kind          EventKind
	Pointer       Pointer
	Width, Height int
}

func PointerEvent(p Pointer) Event        { return Event{Kind: PointerMoved, Pointer: p} }
func ResizeEvent(width, height int) Event { return Event{Kind: Resized, Width: width, Height: height} }

// Run drives a scene from a single goroutine until ctx is done, the events
// channel closes, or the surface fails. Frame ticks, palette ticks, and events
// never run concurrently with one another.
func Run(ctx context.Context, s *Scene, events <-chan Event) error {
	cfg := s.Config()
	s.Start()
	defer s.Stop()

	frames := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer frames.Stop()
	palette := time.NewTicker(cfg.PaletteInterval)
	defer palette.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("backdrop loop stopped")
			return nil
		case <-palette.C:
			s.AdvancePalette()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev.Kind {
			case PointerMoved:
				s.SetPointer(ev.Pointer)
			case Resized:
				s.Resize(ev.Width, ev.Height)
			}
		case <-frames.C:
			if err := s.Tick(time.Since(start)); err != nil {
				return err
			}
		}
	}
}
