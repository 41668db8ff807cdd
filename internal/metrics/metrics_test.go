package metrics

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"pumpjack_simulator/internal/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestExporter_OnSnapshot(t *testing.T) {
	e := NewExporter(nil)

	st := models.NewPumpState()
	st.Status = true
	st.MotorAmps = 43.5
	st.HighMotorAmps = true
	st.OEE = 0.81

	e.OnSnapshot(context.Background(), st)
	e.OnSnapshot(context.Background(), st)

	if got := testutil.ToFloat64(e.readings.WithLabelValues("motor_amps")); got != 43.5 {
		t.Fatalf("motor_amps gauge = %v", got)
	}
	if got := testutil.ToFloat64(e.targets.WithLabelValues("target_spm")); got != models.DefaultTargetSPM {
		t.Fatalf("target_spm gauge = %v", got)
	}
	if got := testutil.ToFloat64(e.alarms.WithLabelValues("high_motor_amps")); got != 1 {
		t.Fatalf("high_motor_amps gauge = %v", got)
	}
	if got := testutil.ToFloat64(e.alarms.WithLabelValues("low_production")); got != 0 {
		t.Fatalf("low_production gauge = %v", got)
	}
	if got := testutil.ToFloat64(e.performance.WithLabelValues("oee")); got != 0.81 {
		t.Fatalf("oee gauge = %v", got)
	}
	if got := testutil.ToFloat64(e.running); got != 1 {
		t.Fatalf("running gauge = %v", got)
	}
	if got := testutil.ToFloat64(e.ticks); got != 2 {
		t.Fatalf("ticks counter = %v, want 2", got)
	}
	if n := testutil.CollectAndCount(e.readings); n != len(readingFields) {
		t.Fatalf("reading series = %d, want %d", n, len(readingFields))
	}
}

func TestExporter_Handler(t *testing.T) {
	e := NewExporter(nil)
	e.OnSnapshot(context.Background(), models.NewPumpState())

	rec := httptest.NewRecorder()
	e.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		`pumpjack_ticks_total 1`,
		`pumpjack_running 0`,
		`pumpjack_alarm_active{alarm="high_rod_load"} 0`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("metrics output missing %q", want)
		}
	}
}
