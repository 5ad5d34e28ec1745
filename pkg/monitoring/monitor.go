package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)
)

// requestSample menyimpan jejak request dalam memori untuk endpoint
// system-health (24 jam terakhir), terpisah dari registry prometheus.
type requestSample struct {
	at       time.Time
	status   int
	duration time.Duration
}

var (
	samplesMu sync.Mutex
	samples   []requestSample
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration.Seconds())

		recordSample(requestSample{at: start, status: status, duration: duration})
	}
}

func recordSample(s requestSample) {
	cutoff := time.Now().Add(-24 * time.Hour)

	samplesMu.Lock()
	defer samplesMu.Unlock()

	samples = append(samples, s)
	for len(samples) > 0 && samples[0].at.Before(cutoff) {
		samples = samples[1:]
	}
}

// HealthSnapshot adalah agregat request 24 jam terakhir.
type HealthSnapshot struct {
	TotalRequests int     `json:"total_requests_24h"`
	AvgResponseMs float64 `json:"api_response_time_avg"`
	ErrorRate     float64 `json:"error_rate_24h"`
}

func Snapshot() HealthSnapshot {
	cutoff := time.Now().Add(-24 * time.Hour)

	samplesMu.Lock()
	defer samplesMu.Unlock()

	var total, errors int
	var sum time.Duration
	for _, s := range samples {
		if s.at.Before(cutoff) {
			continue
		}
		total++
		sum += s.duration
		if s.status >= 400 {
			errors++
		}
	}

	snap := HealthSnapshot{TotalRequests: total}
	if total > 0 {
		snap.AvgResponseMs = float64(sum.Milliseconds()) / float64(total)
		snap.ErrorRate = float64(errors) / float64(total) * 100
	}
	return snap
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
