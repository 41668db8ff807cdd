package metrics

import (
	"context"
	"net/http"

	"pumpjack_simulator/internal/engine"
	"pumpjack_simulator/internal/logger"
	"pumpjack_simulator/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pumpjack"

// snapshot field groups, keyed by their Fields() name
var (
	readingFields     = []string{"runtime", "spm", "motor_amps", "motor_temp", "gearbox_temp", "crank_angle", "rod_load", "production_rate"}
	targetFields      = []string{"target_spm", "target_production", "target_runtime"}
	alarmFields       = []string{"high_motor_amps", "high_gearbox_temp", "high_rod_load", "low_production"}
	performanceFields = []string{"availability", "performance", "quality", "oee"}
)

// Exporter mirrors every tick snapshot into Prometheus gauges on its own registry.
type Exporter struct {
	registry    *prometheus.Registry
	readings    *prometheus.GaugeVec
	targets     *prometheus.GaugeVec
	alarms      *prometheus.GaugeVec
	performance *prometheus.GaugeVec
	running     prometheus.Gauge
	ticks       prometheus.Counter
	log         *logger.Logger
}

func NewExporter(log *logger.Logger) *Exporter {
	if log == nil {
		log = logger.Nop()
	}
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		readings: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reading",
			Help:      "Latest operational reading by field.",
		}, []string{"field"}),
		targets: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "target",
			Help:      "Current setpoint by field.",
		}, []string{"field"}),
		alarms: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "alarm_active",
			Help:      "1 while the alarm is raised.",
		}, []string{"alarm"}),
		performance: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "performance_ratio",
			Help:      "Last hourly rollup: availability, performance, quality and OEE.",
		}, []string{"metric"}),
		running: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "running",
			Help:      "1 while the pump is running.",
		}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Simulation ticks processed.",
		}),
		log: log,
	}

	e.registry.MustRegister(
		e.readings, e.targets, e.alarms, e.performance, e.running, e.ticks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return e
}

// OnSnapshot updates all gauges from one tick.
func (e *Exporter) OnSnapshot(_ context.Context, st models.PumpState) {
	fields := engine.Fields(st)

	e.setGroup(e.readings, readingFields, fields)
	e.setGroup(e.targets, targetFields, fields)
	e.setGroup(e.alarms, alarmFields, fields)
	e.setGroup(e.performance, performanceFields, fields)

	if st.Status {
		e.running.Set(1)
	} else {
		e.running.Set(0)
	}
	e.ticks.Inc()
}

func (e *Exporter) setGroup(vec *prometheus.GaugeVec, names []string, fields map[string]any) {
	for _, name := range names {
		v, err := engine.FieldFloat(fields[name])
		if err != nil {
			e.log.Errorw("metrics_coerce_failed", "field", name, "err", err)
		}
		vec.WithLabelValues(name).Set(v)
	}
}

// Handler serves the exporter's registry in the Prometheus text format.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{Registry: e.registry})
}
