package monitor

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// CommandsTotal counts every answered command by instruction and status word.
	CommandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signer_commands_total",
			Help: "Total number of commands answered by the device.",
		},
		[]string{"ins", "sw"},
	)

	// CommandDuration includes the time the holder spends on a review screen.
	CommandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "signer_command_duration_seconds",
			Help:    "Command handling latency distributions.",
			Buckets: []float64{0.01, 0.1, 0.5, 1.0, 5.0, 30.0, 120.0},
		},
		[]string{"ins"},
	)

	// HTTPRequestsTotal covers the side server (/health, /metrics).
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signer_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
)

var once sync.Once

// Init registers the metrics with the default registry. Safe to call more than once.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(CommandsTotal)
		prometheus.MustRegister(CommandDuration)
		prometheus.MustRegister(HTTPRequestsTotal)
		InitBusinessMetrics()
	})
}

// ObserveCommand records one answered command.
func ObserveCommand(ins byte, sw uint16, start time.Time) {
	insLabel := "0x" + strconv.FormatUint(uint64(ins), 16)
	CommandsTotal.WithLabelValues(insLabel, "0x"+strconv.FormatUint(uint64(sw), 16)).Inc()
	CommandDuration.WithLabelValues(insLabel).Observe(time.Since(start).Seconds())
}

// PrometheusMiddleware returns a gin middleware for monitoring
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path != "" {
			HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		}
	}
}
