package metrics

import (
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "period_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	resolveTotal   *prometheus.CounterVec
	resolveLatency *prometheus.HistogramVec

	calendarTotal        *prometheus.CounterVec
	calendarWindowsTotal *prometheus.CounterVec

	exportTotal *prometheus.CounterVec
)

// Init registers resolver metrics with the default registry.
func Init(logger *log.Logger) {
	registerOnce.Do(func() {
		resolveTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "resolve_total",
				Help: "Total period resolutions by granularity and result",
			},
			[]string{"granularity", "result"},
		)
		resolveLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "resolve_latency_seconds",
				Help:    "Period resolution latency in seconds",
				Buckets: []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01},
			},
			[]string{"granularity"},
		)

		calendarTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "calendar_total",
				Help: "Total calendar requests by granularity and result",
			},
			[]string{"granularity", "result"},
		)
		calendarWindowsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "calendar_windows_total",
				Help: "Total windows enumerated by calendar requests",
			},
			[]string{"granularity"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Total calendar exports by format and result",
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			resolveTotal,
			resolveLatency,
			calendarTotal,
			calendarWindowsTotal,
			exportTotal,
		)
		if logger != nil {
			logger.Printf("metrics registered: prefix=%s", metricPrefix)
		}
	})
}

// ObserveResolve records a resolution result and latency.
func ObserveResolve(granularity, result string, duration time.Duration) {
	if granularity == "" {
		granularity = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if resolveTotal != nil {
		resolveTotal.WithLabelValues(granularity, result).Inc()
	}
	if resolveLatency != nil {
		resolveLatency.WithLabelValues(granularity).Observe(duration.Seconds())
	}
}

// IncCalendar increments calendar request counters.
func IncCalendar(granularity, result string) {
	if granularity == "" {
		granularity = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if calendarTotal != nil {
		calendarTotal.WithLabelValues(granularity, result).Inc()
	}
}

// AddCalendarWindows increments the enumerated window counter by count.
func AddCalendarWindows(granularity string, count int) {
	if count <= 0 {
		return
	}
	if granularity == "" {
		granularity = "unknown"
	}
	if calendarWindowsTotal != nil {
		calendarWindowsTotal.WithLabelValues(granularity).Add(float64(count))
	}
}

// IncExport increments export counters.
func IncExport(format, result string) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
}

// WriteTextfile dumps the default registry in text exposition format,
// for pickup by a node exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
