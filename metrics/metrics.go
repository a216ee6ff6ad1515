// Package metrics exposes prometheus instrumentation for bridge transfers.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const Namespace = "op_bridger"

type Metrics struct {
	registry *prometheus.Registry

	info prometheus.GaugeVec
	up   prometheus.Gauge

	submittedTotal *prometheus.CounterVec
	relaysTotal    *prometheus.CounterVec
	relayDuration  *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewGoCollector())

	factory := promauto.With(registry)
	return &Metrics{
		registry: registry,

		info: *factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "info",
			Help:      "Pseudo-metric tracking version info",
		}, []string{
			"version",
		}),
		up: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "up",
			Help:      "1 if the bridger has finished starting up",
		}),

		submittedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "transfers_submitted_total",
			Help:      "Count of submitted bridge transactions",
		}, []string{"direction", "asset"}),

		relaysTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "relays_total",
			Help:      "Count of completed relay waits",
		}, []string{"direction", "result"}),

		relayDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "relay_duration_seconds",
			Buckets:   []float64{1, 2.5, 5, 10, 30, 60, 120, 300, 600, 1800},
			Help:      "Duration from submission to relayed status",
		}, []string{"direction"}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordInfo sets a pseudo-metric that contains versioning info.
func (m *Metrics) RecordInfo(version string) {
	m.info.WithLabelValues(version).Set(1)
}

// RecordUp sets the up metric to 1.
func (m *Metrics) RecordUp() {
	m.up.Set(1)
}

// RecordSubmitted counts a bridge transaction accepted by the source chain
// mempool.
func (m *Metrics) RecordSubmitted(direction, asset string) {
	m.submittedTotal.WithLabelValues(direction, asset).Inc()
}

// RecordRelay times a relay wait. The returned func records the outcome.
func (m *Metrics) RecordRelay(direction string) func(err error) {
	timer := prometheus.NewTimer(m.relayDuration.WithLabelValues(direction))
	return func(err error) {
		result := "success"
		if err != nil {
			result = "failed"
		} else {
			timer.ObserveDuration()
		}
		m.relaysTotal.WithLabelValues(direction, result).Inc()
	}
}

// ListenAndServe runs a metrics HTTP server until the context is cancelled.
func (m *Metrics) ListenAndServe(ctx context.Context, logger log.Logger, hostname string, port int) error {
	addr := net.JoinHostPort(hostname, strconv.Itoa(port))
	server := &http.Server{
		Addr:    addr,
		Handler: promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}),
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	logger.Info("Started metrics server", "addr", addr)
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
