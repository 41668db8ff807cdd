package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pumpjack_simulator/internal/engine"
	"pumpjack_simulator/internal/models"

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

	msgTypeState = "state"
	msgTypeTags  = "tags"
)

// wsEnvelope is one message on /ws. "state" carries the stored snapshot,
// "tags" carries the requested fields as numbers.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Tick  uint64      `json:"tick,omitempty"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// streamOptions holds what a client asked for in the /ws query string.
type streamOptions struct {
	interval time.Duration
	fields   []string // empty: full state
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Live state stream
// @Description  WebSocket. Query: interval (e.g. 500ms) or interval_ms, and fields (comma separated snapshot keys).
// @Tags         pump
// @Param        interval     query  string  false  "Push period, max 10s"
// @Param        interval_ms  query  int     false  "Push period in ms, max 10000"
// @Param        fields       query  string  false  "Subset of snapshot fields, e.g. spm,motor_amps"
// @Failure      400  {object}  map[string]string
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	opts, err := parseStreamOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorw("ws_upgrade_failed", "err", err)
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.startReader(conn, done)

	h.stream(c.Request.Context(), conn, opts, done)
}

// stream pushes the first message immediately, then one per interval, with
// pings in between. It returns on the first write failure or disconnect.
func (h *Handler) stream(ctx context.Context, conn *websocket.Conn, opts streamOptions, done <-chan struct{}) {
	ticker := time.NewTicker(opts.interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	if err := h.push(ctx, conn, opts); err != nil {
		h.log.Infow("ws_write_failed_initial", "err", err)
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.log.Infow("ws_ping_failed", "err", err)
				return
			}
		case <-ticker.C:
			if err := h.push(ctx, conn, opts); err != nil {
				h.log.Infow("ws_write_failed", "err", err)
				return
			}
		}
	}
}

func parseStreamOptions(c *gin.Context) (streamOptions, error) {
	opts := streamOptions{interval: parseInterval(c)}

	raw := c.Query("fields")
	if raw == "" {
		return opts, nil
	}
	known := engine.Fields(models.PumpState{})
	for _, f := range strings.Split(raw, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		if _, ok := known[f]; !ok {
			return streamOptions{}, fmt.Errorf("unknown field %q", f)
		}
		opts.fields = append(opts.fields, f)
	}
	return opts, nil
}

// parseInterval reads ?interval=2s or ?interval_ms=2000, falling back to the
// default when missing or out of (0, 10s].
func parseInterval(c *gin.Context) time.Duration {
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

// startReader drains incoming frames so control messages are handled and a
// closed socket is noticed.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.log.Debugw("ws_read_closed", "err", err)
			return
		}
	}
}

func (h *Handler) push(ctx context.Context, conn *websocket.Conn, opts streamOptions) error {
	st, err := h.services.Monitoring.GetState(ctx)
	if err != nil {
		h.log.Errorw("ws_get_state_failed", "err", err)
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(h.envelope(st, opts.fields))
}

func (h *Handler) envelope(st models.StoredState, fields []string) wsEnvelope {
	if len(fields) == 0 {
		return wsEnvelope{Type: msgTypeState, Tick: st.Tick, Data: st}
	}
	all := engine.Fields(st.State)
	tags := make(map[string]float64, len(fields))
	for _, f := range fields {
		v, err := engine.FieldFloat(all[f])
		if err != nil {
			h.log.Errorw("ws_field_coerce_failed", "field", f, "err", err)
		}
		tags[f] = v
	}
	return wsEnvelope{Type: msgTypeTags, Tick: st.Tick, Data: tags}
}
