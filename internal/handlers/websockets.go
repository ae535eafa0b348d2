package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 1 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000
)

// wsEnvelope frames every message on the state stream.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origins for production
}

// wsSession is one subscriber of the heater state stream.
type wsSession struct {
	h    *Handler
	conn *websocket.Conn
	done chan struct{}
}

// wsConnect upgrades the request and pushes heater snapshots at the
// client's requested interval until either side goes away.
func (h *Handler) wsConnect(c *gin.Context) {
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}

	s := &wsSession{h: h, conn: conn, done: make(chan struct{})}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// drain control frames and detect disconnects
	go s.reader()

	s.run(c.Request.Context(), interval)
}

func (s *wsSession) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	// first snapshot goes out immediately, not after one interval
	if err := s.sendState(ctx); err != nil {
		s.h.logw("ws_write_failed_initial", err)
		return
	}

	for {
		select {
		case <-s.done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.h.logw("ws_ping_failed", err)
				return
			}
		case <-ticker.C:
			if err := s.sendState(ctx); err != nil {
				s.h.logw("ws_write_failed", err)
				return
			}
		}
	}
}

func (s *wsSession) reader() {
	defer close(s.done)
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			s.h.logw("ws_read_closed", err)
			return
		}
	}
}

// sendState fetches the latest snapshot and writes it with a deadline.
// A failed fetch is reported to the client before the session ends.
func (s *wsSession) sendState(ctx context.Context) error {
	st, err := s.h.services.Monitoring.GetState(ctx)
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err != nil {
		if s.h.log != nil {
			s.h.log.Errorw("ws_get_state_failed", "err", err)
		}
		_ = s.conn.WriteJSON(wsEnvelope{Type: "error", Error: "state unavailable"})
		return err
	}
	return s.conn.WriteJSON(wsEnvelope{Type: "state", Data: st})
}

// parseInterval reads ?interval=2s or ?interval_ms=2000, bounded to
// (0, 10s]. Anything else falls back to one second.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}
	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}
	return defaultInterval
}

// logw logs at info when a logger is wired.
func (h *Handler) logw(msg string, err error) {
	if h.log != nil {
		h.log.Infow(msg, "err", err)
	}
}
