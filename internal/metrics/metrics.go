package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts bot traffic. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	updates        *prometheus.CounterVec
	stages         *prometheus.CounterVec
	sendFailures   prometheus.Counter
	announcements  prometheus.Counter
	throttled      prometheus.Counter
	activeSessions prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "squashbot",
			Name:      "updates_total",
			Help:      "Inbound chat updates by kind.",
		}, []string{"kind"}),
		stages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "squashbot",
			Name:      "stage_entries_total",
			Help:      "Sessions observed at each stage after handling an update.",
		}, []string{"stage"}),
		sendFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "squashbot",
			Name:      "send_failures_total",
			Help:      "Outbound messages that could not be delivered.",
		}),
		announcements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "squashbot",
			Name:      "results_announced_total",
			Help:      "Published results announced to the admin channel.",
		}),
		throttled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "squashbot",
			Name:      "throttled_updates_total",
			Help:      "Updates dropped by per-chat rate limiting.",
		}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "squashbot",
			Name:      "active_sessions",
			Help:      "Chat sessions currently held in memory.",
		}),
	}
	m.registry.MustRegister(
		m.updates,
		m.stages,
		m.sendFailures,
		m.announcements,
		m.throttled,
		m.activeSessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Update(kind string) {
	if m != nil {
		m.updates.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) Stage(stage string) {
	if m != nil {
		m.stages.WithLabelValues(stage).Inc()
	}
}

func (m *Metrics) SendFailure() {
	if m != nil {
		m.sendFailures.Inc()
	}
}

func (m *Metrics) Announced() {
	if m != nil {
		m.announcements.Inc()
	}
}

func (m *Metrics) Throttled() {
	if m != nil {
		m.throttled.Inc()
	}
}

func (m *Metrics) Sessions(n int) {
	if m != nil {
		m.activeSessions.Set(float64(n))
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve runs a /metrics listener on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
