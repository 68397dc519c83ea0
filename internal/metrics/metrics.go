package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upstream fetch outcomes.
const (
	OutcomeSuccess      = "success"
	OutcomeNetworkError = "network_error"
	OutcomeBadStatus    = "bad_status"
	OutcomeDecodeError  = "decode_error"
)

// Recorder is what the departures client and HTTP middleware report to.
type Recorder interface {
	RecordUpstreamFetch(outcome string, duration time.Duration, departures int)
	RecordHTTPRequest(method, route string, status int)
}

// Collector records Prometheus metrics.
type Collector struct {
	upstreamFetches    *prometheus.CounterVec
	upstreamLatency    prometheus.Histogram
	departuresReturned prometheus.Counter
	httpRequests       *prometheus.CounterVec
}

// NewCollector creates the metrics and registers them on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		upstreamFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transit_upstream_fetch_total",
			Help: "Departure monitor requests by outcome.",
		}, []string{"outcome"}),
		upstreamLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "transit_upstream_fetch_latency_seconds",
			Help:    "Departure monitor round trip time in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		departuresReturned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transit_departures_returned_total",
			Help: "Departures returned to callers after flattening.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transit_http_requests_total",
			Help: "Handled HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status_code"}),
	}

	reg.MustRegister(
		c.upstreamFetches,
		c.upstreamLatency,
		c.departuresReturned,
		c.httpRequests,
	)

	return c
}

// RecordUpstreamFetch records one monitor call.
func (c *Collector) RecordUpstreamFetch(outcome string, duration time.Duration, departures int) {
	c.upstreamFetches.WithLabelValues(outcome).Inc()
	c.upstreamLatency.Observe(duration.Seconds())
	c.departuresReturned.Add(float64(departures))
}

// RecordHTTPRequest records one handled request.
func (c *Collector) RecordHTTPRequest(method, route string, status int) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Handler serves the Prometheus exposition format for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordUpstreamFetch(string, time.Duration, int) {}
func (Nop) RecordHTTPRequest(string, string, int)          {}
