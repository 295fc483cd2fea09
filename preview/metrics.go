package preview

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the preview server's Prometheus collectors.
type Metrics struct {
	ReloadsTotal        prometheus.Counter
	ReloadFailuresTotal prometheus.Counter
	HTTPRequestsTotal   *prometheus.CounterVec
	EventClients        prometheus.GaugeFunc
}

func newMetrics(registry prometheus.Registerer, clients func() int) *Metrics {
	m := &Metrics{
		ReloadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "asyncdocket_document_reloads_total",
			Help: "Total number of documents published to the preview",
		}),
		ReloadFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "asyncdocket_document_reload_failures_total",
			Help: "Total number of docket changes that failed to compile",
		}),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "asyncdocket_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route"},
		),
		EventClients: prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "asyncdocket_event_clients",
				Help: "Number of connected live reload clients",
			},
			func() float64 { return float64(clients()) },
		),
	}

	registry.MustRegister(
		m.ReloadsTotal,
		m.ReloadFailuresTotal,
		m.HTTPRequestsTotal,
		m.EventClients,
	)

	return m
}

func (m *Metrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := "unknown"
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		m.HTTPRequestsTotal.WithLabelValues(r.Method, route).Inc()
		next.ServeHTTP(w, r)
	})
}
