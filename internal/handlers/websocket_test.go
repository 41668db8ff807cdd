package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"pumpjack_simulator/internal/models"
	"pumpjack_simulator/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// --- parseInterval unit tests ---

func TestParseInterval(t *testing.T) {
	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", 1 * time.Second},
		{"interval_string_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/ws?interval=20s", 1 * time.Second},
		{"interval_ms_too_large", "/ws?interval_ms=20000", 1 * time.Second},
		{"interval_invalid_string", "/ws?interval=bogus", 1 * time.Second},
		{"interval_ms_invalid", "/ws?interval_ms=NaN", 1 * time.Second},
		{"both_present_interval_wins", "/ws?interval=2s&interval_ms=150", 2 * time.Second},
		{"both_present_invalid_interval_ms_used", "/ws?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.u, nil)
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			got := parseInterval(c)
			if got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

func TestParseStreamOptions_Fields(t *testing.T) {
	cases := []struct {
		name    string
		u       string
		want    []string
		wantErr bool
	}{
		{"none", "/ws", nil, false},
		{"normalized", "/ws?fields=SPM, motor_amps,,", []string{"spm", "motor_amps"}, false},
		{"bool field", "/ws?fields=high_rod_load", []string{"high_rod_load"}, false},
		{"unknown", "/ws?fields=spm,casing_pressure", nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, tc.u, nil)
			opts, err := parseStreamOptions(c)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err=%v, wantErr=%v", err, tc.wantErr)
			}
			if len(opts.fields) != len(tc.want) {
				t.Fatalf("fields=%v, want %v", opts.fields, tc.want)
			}
			for i := range tc.want {
				if opts.fields[i] != tc.want[i] {
					t.Fatalf("fields=%v, want %v", opts.fields, tc.want)
				}
			}
		})
	}
}

// --- websocket integration tests ---

// dialStream serves /ws backed by mon and dials it with the given raw query.
func dialStream(t *testing.T, mon *mockMonitoring, rawQuery string) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(&service.Service{Monitoring: mon}, nil, nil)
	r.GET("/ws", h.wsConnect)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"
	u.RawQuery = rawQuery

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

type testEnvelope struct {
	Type string          `json:"type"`
	Tick uint64          `json:"tick"`
	Data json.RawMessage `json:"data"`
}

func readEnvelope(t *testing.T, conn *websocket.Conn) testEnvelope {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	var env testEnvelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	return env
}

func TestWebSocket_StateStream_InitialAndPeriodic(t *testing.T) {
	mon := &mockMonitoring{state: models.StoredState{
		ID:    1,
		Tick:  42,
		State: models.PumpState{Status: true, SPM: 6.1, MotorAmps: 33.5, TargetSPM: 6},
	}}
	conn := dialStream(t, mon, "interval_ms=20")

	env := readEnvelope(t, conn)
	if env.Type != msgTypeState || env.Tick != 42 {
		t.Fatalf("bad envelope: %+v", env)
	}
	var st models.StoredState
	if err := json.Unmarshal(env.Data, &st); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if !st.State.Status || st.State.MotorAmps != 33.5 {
		t.Fatalf("unexpected state: %+v", st)
	}

	if env := readEnvelope(t, conn); env.Type != msgTypeState {
		t.Fatalf("expected a periodic state message, got %+v", env)
	}
}

func TestWebSocket_InitialGetStateError_Closes(t *testing.T) {
	conn := dialStream(t, &mockMonitoring{err: errors.New("boom")}, "")

	_ = conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	var raw json.RawMessage
	if err := conn.ReadJSON(&raw); err == nil {
		t.Fatalf("expected read error (closed), got message: %s", string(raw))
	}
}

func TestWebSocket_FieldSubset(t *testing.T) {
	mon := &mockMonitoring{state: models.StoredState{
		Tick:  7,
		State: models.PumpState{SPM: 5.5, HighRodLoad: true},
	}}
	conn := dialStream(t, mon, "fields=spm,high_rod_load")

	env := readEnvelope(t, conn)
	if env.Type != msgTypeTags || env.Tick != 7 {
		t.Fatalf("bad envelope: %+v", env)
	}
	var tags map[string]float64
	if err := json.Unmarshal(env.Data, &tags); err != nil {
		t.Fatalf("unmarshal tags: %v", err)
	}
	if len(tags) != 2 || tags["spm"] != 5.5 || tags["high_rod_load"] != 1 {
		t.Fatalf("unexpected tags: %v", tags)
	}
}

func TestWebSocket_UnknownFieldRejectedBeforeUpgrade(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(&service.Service{Monitoring: &mockMonitoring{}}, nil, nil)
	r.GET("/ws", h.wsConnect)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws?fields=bogus", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
