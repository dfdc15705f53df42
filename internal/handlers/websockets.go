package handlers

import (
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"time"

	"heatman/internal/models"
	"heatman/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMsgSize     = 1 << 12 // 4 KB
	defaultPollGap = 1 * time.Second
	maxPollGap     = 10 * time.Second

	wsTypeSnapshot = "snapshot"
)

type wsEnvelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// The controller is meant for a trusted LAN, so any origin may subscribe.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// snapshotStream pushes the controller snapshot to one subscriber. A snapshot
// equal to the last one sent is skipped.
type snapshotStream struct {
	conn   *websocket.Conn
	source service.Controller
	last   *models.Snapshot
}

func (s *snapshotStream) push() error {
	snap := s.source.Snapshot()
	if s.last != nil && reflect.DeepEqual(*s.last, snap) {
		return nil
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(wsEnvelope{Type: wsTypeSnapshot, Data: snap}); err != nil {
		return err
	}
	s.last = &snap
	return nil
}

func (s *snapshotStream) ping() error {
	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// wsConnect streams the controller snapshot (config, availability and the
// last tick report). It reads shared state only and never polls the devices.
func (h *Handler) wsConnect(c *gin.Context) {
	gap := pollGap(c.Request.URL.Query())

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	closed := h.drain(conn)

	stream := &snapshotStream{conn: conn, source: h.services.Controller}
	poll := time.NewTicker(gap)
	keepalive := time.NewTicker(pingPeriod)
	defer poll.Stop()
	defer keepalive.Stop()

	err = stream.push()
	for err == nil {
		select {
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		case <-keepalive.C:
			err = stream.ping()
		case <-poll.C:
			err = stream.push()
		}
	}
	if h.log != nil {
		h.log.Infow("ws_write_failed", "err", err)
	}
}

// pollGap reads ?interval=2s or ?interval_ms=2000, ignoring values outside
// (0, 10s]. interval wins when both are valid.
func pollGap(q url.Values) time.Duration {
	if d, err := time.ParseDuration(q.Get("interval")); err == nil && d > 0 && d <= maxPollGap {
		return d
	}
	if ms, err := strconv.Atoi(q.Get("interval_ms")); err == nil && ms > 0 {
		if d := time.Duration(ms) * time.Millisecond; d <= maxPollGap {
			return d
		}
	}
	return defaultPollGap
}

// drain consumes client frames so control frames are handled; the returned
// channel closes when the client goes away.
func (h *Handler) drain(conn *websocket.Conn) <-chan struct{} {
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				if h.log != nil {
					h.log.Debugw("ws_read_closed", "err", err)
				}
				return
			}
		}
	}()
	return closed
}
