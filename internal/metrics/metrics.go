// Package metrics exposes controller gauges and counters to Prometheus.
package metrics

import (
	"net/http"

	"heatman/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "heatman"

// Tick results used as label values.
const (
	TickOK      = "ok"
	TickSkipped = "skipped"
	TickFailed  = "failed"
)

type Recorder struct {
	registry *prometheus.Registry

	temperature prometheus.Gauge
	co2         prometheus.Gauge
	heaterOn    prometheus.Gauge
	desiredOn   prometheus.Gauge
	available   prometheus.Gauge
	ticks       *prometheus.CounterVec
	actuations  *prometheus.CounterVec
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		temperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "temperature_celsius",
			Help:      "Room temperature seen by the last tick.",
		}),
		co2: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "co2_ppm",
			Help:      "CO2 concentration seen by the last tick.",
		}),
		heaterOn: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "heater_on",
			Help:      "Heater output state after the last tick (1 = on).",
		}),
		desiredOn: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "heater_desired_on",
			Help:      "Heater state decided by the policy in the last tick (1 = on).",
		}),
		available: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "available",
			Help:      "Whether the last tick reached every remote (1 = yes).",
		}),
		ticks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Reconciliation ticks by result.",
		}, []string{"result"}),
		actuations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actuations_total",
			Help:      "Switch commands sent to the plug by target state.",
		}, []string{"state"}),
	}

	r.registry.MustRegister(
		r.temperature, r.co2, r.heaterOn, r.desiredOn, r.available, r.ticks, r.actuations,
		collectors.NewGoCollector(),
	)
	return r
}

// ObserveTick records the outcome of one tick.
func (r *Recorder) ObserveTick(rep models.TickReport) {
	switch {
	case rep.Failed:
		r.ticks.WithLabelValues(TickFailed).Inc()
	case rep.Skipped:
		r.ticks.WithLabelValues(TickSkipped).Inc()
	default:
		r.ticks.WithLabelValues(TickOK).Inc()
	}

	if rep.Reading != nil {
		r.temperature.Set(rep.Reading.Temperature)
		r.co2.Set(float64(rep.Reading.CO2))
	}
	if rep.Skipped || rep.Failed {
		return
	}
	r.desiredOn.Set(boolToFloat(rep.Desired))
	r.heaterOn.Set(boolToFloat(rep.Desired))
	if rep.Switched {
		r.actuations.WithLabelValues(onOff(rep.Desired)).Inc()
	}
}

// SetAvailable records the availability flag.
func (r *Recorder) SetAvailable(v bool) {
	r.available.Set(boolToFloat(v))
}

// Handler serves the registry in the exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
