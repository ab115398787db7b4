package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "verdicto"

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	analysisTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_total",
			Help:      "Completed analyses by predicted risk level",
		},
		[]string{"risk_level"},
	)

	analysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Inference time for one analysis",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
	)

	analysisCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_cache_total",
			Help:      "Analysis cache lookups by result",
		},
		[]string{"result"}, // hit, miss, error
	)

	metadataDecodeFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_metadata_decode_failures_total",
			Help:      "Catalog records whose stored metadata could not be decoded",
		},
	)

	registry = prometheus.NewRegistry()
)

func init() {
	registry.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		analysisTotal,
		analysisDuration,
		analysisCacheTotal,
		metadataDecodeFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// ObserveRequest records one served HTTP request.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveAnalysis records one completed analysis.
func ObserveAnalysis(riskLevel string, elapsed time.Duration) {
	analysisTotal.WithLabelValues(riskLevel).Inc()
	analysisDuration.Observe(elapsed.Seconds())
}

// IncAnalysisCache counts a cache lookup outcome.
func IncAnalysisCache(result string) {
	analysisCacheTotal.WithLabelValues(result).Inc()
}

// IncMetadataDecodeFailure counts a catalog record with malformed metadata.
func IncMetadataDecodeFailure() {
	metadataDecodeFailures.Inc()
}

// Middleware records request count and latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// Registry returns the registry all service metrics are registered with.
func Registry() *prometheus.Registry {
	return registry
}
