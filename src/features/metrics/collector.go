package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector exposes library gauges and operation counters to Prometheus.
// It doubles as the music.OperationRecorder handed to the features.
type Collector struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	requests   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

// NewCollector registers the songshelf metrics on a fresh registry.
func NewCollector(service *Service) *Collector {
	registry := prometheus.NewRegistry()
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "songshelf_operations_total",
		Help: "Catalog operations by outcome.",
	}, []string{"operation", "result"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "songshelf_http_requests_total",
		Help: "HTTP requests by feature, client kind and status class.",
	}, []string{"feature", "client", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "songshelf_http_request_duration_seconds",
		Help:    "HTTP request latency by feature.",
		Buckets: prometheus.DefBuckets,
	}, []string{"feature"})

	registry.MustRegister(
		collectors.NewGoCollector(),
		operations,
		requests,
		latency,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "songshelf_songs_total",
			Help: "Songs stored in the library.",
		}, func() float64 {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			n, err := service.SongsCount(ctx)
			if err != nil {
				slog.Warn("Failed to count songs for metrics", "error", err)
				return 0
			}
			return float64(n)
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "songshelf_pending_additions",
			Help: "Songs waiting in the additions queue.",
		}, func() float64 { return float64(service.PendingAdditions()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "songshelf_pending_deletions",
			Help: "Songs staged for deletion.",
		}, func() float64 { return float64(service.StagedDeletions()) }),
	)

	return &Collector{registry: registry, operations: operations, requests: requests, latency: latency}
}

// RecordOperation counts one operation as "ok" or "error".
func (c *Collector) RecordOperation(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.operations.WithLabelValues(operation, result).Inc()
}

// RecordRequest counts one served HTTP request under its status class ("2xx", "4xx").
func (c *Collector) RecordRequest(feature, client string, status int, elapsed time.Duration) {
	class := strconv.Itoa(status/100) + "xx"
	c.requests.WithLabelValues(feature, client, class).Inc()
	c.latency.WithLabelValues(feature).Observe(elapsed.Seconds())
}

// Registry returns the registry backing the collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// HTTPHandler serves the registry in the Prometheus text format.
func (c *Collector) HTTPHandler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
