// Package stream serves the particle backdrop over a websocket. Each
// connection mounts its own scene; closing the connection unmounts it.
package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Zachkp/portfolio/internal/backdrop"
)

const (
	writeWait = 200 * time.Millisecond
	initWait  = 5 * time.Second
)

type initMessage struct {
	Type           string    `json:"type"`
	Particles      []float32 `json:"particles"`
	Palette        []string  `json:"palette"`
	PointSize      float64   `json:"point_size"`
	FieldOfView    float64   `json:"fov"`
	CameraDistance float64   `json:"camera_distance"`
}

type frameMessage struct {
	Type     string     `json:"type"`
	Seq      uint64     `json:"seq"`
	Elapsed  float64    `json:"t"`
	Color    [3]float64 `json:"color"`
	Rotation [3]float64 `json:"rotation"`
	Camera   [3]float64 `json:"camera"`
	Aspect   float64    `json:"aspect"`
}

type resizeMessage struct {
	Type   string `json:"type"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// clientMessage is sent by the page: pointer moves carry client coordinates
// and the viewport size, resizes carry the container size.
type clientMessage struct {
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Stats struct {
	Active int64  `json:"active"`
	Total  int64  `json:"total"`
	Frames uint64 `json:"frames"`
}

type Hub struct {
	config   func() backdrop.Config
	upgrader websocket.Upgrader

	active atomic.Int64
	total  atomic.Int64
	frames atomic.Uint64
}

// NewHub serves scenes built from the config returned by config at connect
// time, so tuning reloads apply to new visitors.
func NewHub(config func() backdrop.Config) *Hub {
	return &Hub{
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 16 * 1024,
		},
	}
}

func (h *Hub) Stats() Stats {
	return Stats{Active: h.active.Load(), Total: h.total.Load(), Frames: h.frames.Load()}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("backdrop upgrade")
		return
	}
	defer conn.Close()

	h.active.Add(1)
	h.total.Add(1)
	defer h.active.Add(-1)

	if err := h.serve(r.Context(), conn); err != nil {
		log.Debug().Err(err).Msg("backdrop session ended")
	}
}

func (h *Hub) serve(ctx context.Context, conn *websocket.Conn) error {
	cfg := h.config()
	scene, err := backdrop.New(cfg, &surface{conn: conn, hub: h})
	if err != nil {
		log.Error().Err(err).Msg("backdrop setup failed")
		msg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "backdrop unavailable")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		return err
	}
	scene.Start()

	if err := writeJSON(conn, initMessage{
		Type:           "init",
		Particles:      scene.Field().Positions(),
		Palette:        scene.Colors().Palette().Hex(),
		PointSize:      cfg.PointSize,
		FieldOfView:    cfg.FieldOfView,
		CameraDistance: cfg.CameraDistance,
	}, initWait); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan backdrop.Event, 16)
	go readEvents(ctx, cancel, conn, events)

	return backdrop.Run(ctx, scene, events)
}

// readEvents forwards client messages until the socket fails, then cancels
// the session.
func readEvents(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, events chan<- backdrop.Event) {
	defer cancel()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		ev, ok := msg.event()
		if !ok {
			continue
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// event converts a client message. Unknown types and pointer moves without a
// viewport size are dropped, so the camera keeps its last target.
func (m clientMessage) event() (backdrop.Event, bool) {
	switch m.Type {
	case "pointer":
		if m.Width <= 0 || m.Height <= 0 {
			return backdrop.Event{}, false
		}
		return backdrop.PointerEvent(backdrop.NormalizePointer(m.X, m.Y, m.Width, m.Height)), true
	case "resize":
		return backdrop.ResizeEvent(int(m.Width), int(m.Height)), true
	}
	return backdrop.Event{}, false
}

// surface writes frames to one websocket. Only the scene's loop goroutine
// writes after the init message.
type surface struct {
	conn *websocket.Conn
	hub  *Hub
}

func (s *surface) Resize(width, height int) {
	if err := writeJSON(s.conn, resizeMessage{Type: "resize", Width: width, Height: height}, writeWait); err != nil {
		log.Debug().Err(err).Msg("write resize")
	}
}

func (s *surface) Draw(f backdrop.Frame) error {
	c := f.Color.Clamped()
	err := writeJSON(s.conn, frameMessage{
		Type:     "frame",
		Seq:      f.Seq,
		Elapsed:  f.Elapsed.Seconds(),
		Color:    [3]float64{c.R, c.G, c.B},
		Rotation: [3]float64{f.Rotation.X, f.Rotation.Y, f.Rotation.Z},
		Camera:   [3]float64{f.Camera.X, f.Camera.Y, f.Camera.Z},
		Aspect:   f.Aspect,
	}, writeWait)
	if err == nil {
		s.hub.frames.Add(1)
	}
	return err
}

func writeJSON(conn *websocket.Conn, v any, wait time.Duration) error {
	conn.SetWriteDeadline(time.Now().Add(wait))
	return conn.WriteJSON(v)
}
