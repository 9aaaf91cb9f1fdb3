package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"route-planner-service/internal/api/dto"
	"route-planner-service/internal/platform/metrics"
	"route-planner-service/internal/platform/obs"
	"route-planner-service/internal/services"
	"route-planner-service/internal/simulation"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	simWriteWait   = 5 * time.Second
	simPongWait    = 60 * time.Second
	simPingPeriod  = 20 * time.Second
	simPlanTimeout = 30 * time.Second
)

// SimulationHandler streams a vehicle moving along a planned route over a
// websocket (GET /simulate). Each connection owns one clock at a time.
type SimulationHandler struct {
	Planner       *services.Planner
	FrameInterval time.Duration
	// Scheduler drives the clock; nil uses runtime timers.
	Scheduler simulation.Scheduler
	// AllowedOrigins lists browser origins admitted besides the server's own
	// host. "*" admits any origin.
	AllowedOrigins []string
}

// checkOrigin admits clients that send no Origin header, same-host origins
// and the configured allow list.
func (h *SimulationHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	for _, allowed := range h.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(strings.TrimRight(allowed, "/"), origin) {
			return true
		}
	}
	return false
}

// Stream upgrades the request and serves simulation commands until the
// client disconnects.
func (h *SimulationHandler) Stream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	upgrader := websocket.Upgrader{CheckOrigin: h.checkOrigin}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		obs.Logf(r.Context(), "simulation upgrade failed: %v", err)
		return
	}

	metrics.SimulationSessions.Inc()
	defer metrics.SimulationSessions.Dec()

	s := &simSession{conn: conn, handler: h}
	defer s.close()

	conn.SetReadLimit(maxBodyBytes)
	_ = conn.SetReadDeadline(time.Now().Add(simPongWait))
	conn.SetPongHandler(func(string) error { return conn.SetReadDeadline(time.Now().Add(simPongWait)) })

	done := make(chan struct{})
	defer close(done)
	go s.keepalive(done)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(simPongWait))
		s.handle(r.Context(), data)
	}
}

// simSession serializes writes from the read loop and from clock observers.
// Frames from a replaced clock, or older than the last one sent, are dropped.
type simSession struct {
	conn    *websocket.Conn
	handler *SimulationHandler

	// clock is only touched by the read loop.
	clock *simulation.Clock

	mu      sync.Mutex
	epoch   uint64
	lastSeq int64
	closed  bool
}

func (s *simSession) handle(ctx context.Context, data []byte) {
	var cmd dto.SimulationCommand
	if err := json.Unmarshal(data, &cmd); err != nil {
		s.writeError("invalid json message")
		return
	}
	if err := validate.Struct(&cmd); err != nil {
		s.writeError(validationMessage(err))
		return
	}

	if cmd.Type == "load" {
		s.load(ctx, cmd.Stops)
		return
	}

	if s.clock == nil {
		s.writeError("no route loaded")
		return
	}

	switch cmd.Type {
	case "play":
		s.clock.Play()
	case "pause":
		s.clock.Pause()
	case "reset":
		s.clock.Reset()
	case "speed", "seek":
		if cmd.Value == nil {
			s.writeError(cmd.Type + " requires a value")
			return
		}
		if cmd.Type == "speed" {
			s.clock.SetSpeed(*cmd.Value)
		} else {
			s.clock.SetProgress(*cmd.Value)
		}
	}
}

// load plans a route for stops and replaces the clock. The previous clock is
// reset first so its pending ticks die with it.
func (s *simSession) load(ctx context.Context, reqs []dto.StopRequest) {
	stops, err := toDomainStops(reqs)
	if err != nil {
		s.writeError(err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(ctx, simPlanTimeout)
	defer cancel()

	planned, err := s.handler.Planner.PlanRoute(ctx, stops)
	if err != nil {
		obs.Logf(ctx, "simulation plan route failed: %v", err)
		s.writeError("route planning failed")
		return
	}
	if planned == nil {
		s.writeError("at least two stops are required")
		return
	}

	if s.clock != nil {
		s.clock.Reset()
	}

	s.mu.Lock()
	s.epoch++
	s.lastSeq = -1
	epoch := s.epoch
	s.mu.Unlock()

	sched := s.handler.Scheduler
	if sched == nil {
		sched = simulation.TimerScheduler{}
	}
	s.clock = simulation.NewClock(*planned.RouteGeometry,
		simulation.WithScheduler(sched),
		simulation.WithFrameInterval(s.handler.FrameInterval),
		simulation.WithObserver(func(f simulation.Frame) { s.writeFrame(epoch, f) }),
	)

	s.write(dto.SimulationRouteMessage{
		Type:   "route",
		Route:  toRouteResponse(planned.RouteGeometry, planned.Source),
		Speeds: simulation.Speeds,
	})
	s.writeFrame(epoch, s.clock.Frame())
}

func (s *simSession) writeFrame(epoch uint64, f simulation.Frame) {
	traveled := make([][]float64, 0, len(f.Traveled))
	for _, c := range f.Traveled {
		traveled = append(traveled, c.CoordsToList())
	}
	msg := dto.SimulationFrameMessage{
		Type:     "frame",
		Seq:      f.Seq,
		Status:   string(f.Status),
		Progress: f.Progress,
		Speed:    f.Speed,
		Position: dto.PositionResponse{
			Lng:     f.Position.Coordinates.Lon,
			Lat:     f.Position.Coordinates.Lat,
			Bearing: f.Position.Bearing,
		},
		Traveled: traveled,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch || int64(f.Seq) <= s.lastSeq {
		return
	}
	s.lastSeq = int64(f.Seq)
	s.writeLocked(msg)
}

func (s *simSession) writeError(msg string) {
	s.write(dto.SimulationErrorMessage{Type: "error", Error: msg})
}

func (s *simSession) write(v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeLocked(v)
}

func (s *simSession) writeLocked(v any) {
	if s.closed {
		return
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(simWriteWait))
	if err := s.conn.WriteJSON(v); err != nil {
		s.closed = true
	}
}

func (s *simSession) keepalive(done <-chan struct{}) {
	ticker := time.NewTicker(simPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.mu.Lock()
			if !s.closed {
				_ = s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(simWriteWait))
			}
			s.mu.Unlock()
		}
	}
}

func (s *simSession) close() {
	if s.clock != nil {
		s.clock.Reset()
	}
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	_ = s.conn.Close()
}
