package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "player_scout"

// Recorder owns the service's Prometheus registry. A nil *Recorder is valid
// and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	upstreamRequests *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	snapshotRefresh  prometheus.Counter
	snapshotPlayers  prometheus.Gauge
	snapshotLatency  prometheus.Histogram
	searchResults    prometheus.Histogram
}

func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Player API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Player API request latency.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}, []string{"endpoint"}),
		snapshotRefresh: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "refresh_total",
			Help:      "Completed roster snapshot refreshes.",
		}),
		snapshotPlayers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "players",
			Help:      "Players held by the current roster snapshot.",
		}),
		snapshotLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "refresh_duration_seconds",
			Help:      "Time spent loading a full roster snapshot.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
		searchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "results",
			Help:      "Players matched per listing request before capping.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 7),
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.upstreamRequests,
		r.upstreamLatency,
		r.snapshotRefresh,
		r.snapshotPlayers,
		r.snapshotLatency,
		r.searchResults,
	)
	return r
}

func (r *Recorder) ObserveUpstream(endpoint, outcome string, took time.Duration) {
	if r == nil {
		return
	}
	r.upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	r.upstreamLatency.WithLabelValues(endpoint).Observe(took.Seconds())
}

func (r *Recorder) ObserveSnapshotRefresh(players int, took time.Duration) {
	if r == nil {
		return
	}
	r.snapshotRefresh.Inc()
	r.snapshotPlayers.Set(float64(players))
	r.snapshotLatency.Observe(took.Seconds())
}

func (r *Recorder) ObserveSearch(matched int) {
	if r == nil {
		return
	}
	r.searchResults.Observe(float64(matched))
}

func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the registry for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}
