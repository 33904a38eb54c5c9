// Package metrics exposes Prometheus collectors for the gateway, the
// deployer and the record stores, plus a small server for /metrics.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mosaic"

// Gateway metrics
var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Gateway requests by route and status code",
	}, []string{"route", "code"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Gateway request latency by route",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
)

// Registry metrics
var (
	DeploymentsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registry_deployments_recorded_total",
		Help:      "recordDeployment transactions confirmed by this process",
	})

	TotalDeployments = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "registry_total_deployments",
		Help:      "Last totalDeployments value read from the registry",
	})

	RegistryErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registry_errors_total",
		Help:      "Registry call failures by operation and error class",
	}, []string{"operation", "class"})
)

// Deployer and storage metrics
var (
	ContractDeployments = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contract_deployments_total",
		Help:      "Contract deployments by network and result",
	}, []string{"network", "result"})

	RecordSaves = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "record_saves_total",
		Help:      "Deployment record writes by store and result",
	}, []string{"store", "result"})
)

// Result returns the label value for err.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// MetricsServer serves the default Prometheus registry.
type MetricsServer struct {
	srv *http.Server
}

// New creates a metrics server listening on addr. The service name is
// attached to every series as a constant build_info label.
func New(service, addr string) (*MetricsServer, error) {
	if addr == "" {
		return nil, errors.New("metrics server needs a listen address")
	}
	if err := registerBuildInfo(prometheus.DefaultRegisterer, service); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &MetricsServer{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

func (m *MetricsServer) ListenAndServe() error {
	return m.srv.ListenAndServe()
}

func (m *MetricsServer) Shutdown(ctx context.Context) error {
	return m.srv.Shutdown(ctx)
}

func registerBuildInfo(reg prometheus.Registerer, service string) error {
	info := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "build_info",
		Help:        "Constant 1, labelled with the service name",
		ConstLabels: prometheus.Labels{"service": strings.TrimSpace(service)},
	})
	info.Set(1)
	// Registering the same service twice is a no-op.
	if err := reg.Register(info); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			return nil
		}
		return fmt.Errorf("could not register build info: %w", err)
	}
	return nil
}
