package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ prometheus.Collector = &Metrics{}

// Metrics counts engine activity. Register it with a prometheus registry and
// feed it from the scheduler hooks.
type Metrics struct {
	ticks    *prometheus.CounterVec
	flushes  *prometheus.CounterVec
	switches *prometheus.CounterVec
	delay    prometheus.Gauge
}

func New() *Metrics {
	return &Metrics{
		ticks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ringlight_ticks_total",
				Help: "Ticks run, by scheduler state.",
			},
			[]string{"state"},
		),
		flushes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ringlight_flushes_total",
				Help: "Frames pushed to the driver, by result.",
			},
			[]string{"result"},
		),
		switches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ringlight_pattern_switches_total",
				Help: "Pattern selections, by pattern name.",
			},
			[]string{"pattern"},
		),
		delay: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ringlight_tick_delay_seconds",
			Help: "Current delay between ticks.",
		}),
	}
}

func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.ticks.Describe(ch)
	m.flushes.Describe(ch)
	m.switches.Describe(ch)
	m.delay.Describe(ch)
}

func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.ticks.Collect(ch)
	m.flushes.Collect(ch)
	m.switches.Collect(ch)
	m.delay.Collect(ch)
}

func (m *Metrics) Tick(state string) {
	m.ticks.WithLabelValues(state).Inc()
}

func (m *Metrics) Flush(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.flushes.WithLabelValues(result).Inc()
}

func (m *Metrics) Switch(pattern string) {
	m.switches.WithLabelValues(pattern).Inc()
}

func (m *Metrics) SetDelay(seconds float64) {
	m.delay.Set(seconds)
}

// Handler serves the registry in the prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
