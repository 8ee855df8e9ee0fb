package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry guarda só os coletores da aplicação.
	Registry = prometheus.NewRegistry()

	ipcCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "ipc",
			Name:      "calls_total",
			Help:      "Total number of dispatched IPC calls by method and result code.",
		},
		[]string{"method", "code"},
	)

	ipcDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "salon",
			Subsystem: "ipc",
			Name:      "call_duration_seconds",
			Help:      "Duration of dispatched IPC calls.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms a ~4s
		},
		[]string{"method"},
	)

	auditDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "audit",
			Name:      "dropped_events_total",
			Help:      "Audit events discarded because the queue was full.",
		},
	)
)

func init() {
	Registry.MustRegister(ipcCalls, ipcDuration, auditDropped)
}

// ObserveCall registra uma chamada; code é "ok" ou o código de erro
// devolvido à interface.
func ObserveCall(method, code string, elapsed time.Duration) {
	ipcCalls.WithLabelValues(method, code).Inc()
	ipcDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func AuditDropped() {
	auditDropped.Inc()
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
