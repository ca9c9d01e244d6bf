package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "getbot"

// Outcome labels recorded per /get invocation.
const (
	OutcomeSuccess  = "success"
	OutcomeOversize = "oversize"
)

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	invocations   *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	payloadBytes  prometheus.Histogram
	inFlight      prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invocations_total",
			Help:      "Completed /get invocations by terminal outcome.",
		}, []string{"outcome"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Time spent waiting on the download API.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 120, 180},
		}),
		payloadBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "payload_bytes",
			Help:      "Size of payloads returned by the download API.",
			Buckets:   prometheus.ExponentialBuckets(256*1024, 2, 9),
		}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "in_flight",
			Help:      "/get invocations currently running.",
		}),
	}
	reg.MustRegister(m.invocations, m.fetchDuration, m.payloadBytes, m.inFlight)
	return m
}

func (m *Metrics) Outcome(outcome string) {
	if m == nil {
		return
	}
	m.invocations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) FetchTook(d time.Duration) {
	if m == nil {
		return
	}
	m.fetchDuration.Observe(d.Seconds())
}

func (m *Metrics) Payload(n int) {
	if m == nil {
		return
	}
	m.payloadBytes.Observe(float64(n))
}

// Begin marks an invocation as running; call the returned func when it ends.
func (m *Metrics) Begin() func() {
	if m == nil {
		return func() {}
	}
	m.inFlight.Inc()
	return m.inFlight.Dec
}
