package core

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/heptiolabs/healthcheck"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// AdminServer exposes /live, /ready and /metrics on its own port,
// leaving the redirect server with its single route.
type AdminServer struct {
	health healthcheck.Handler
	*endpoint
}

// AddReadinessCheck registers an extra check served on /ready.
func (s *AdminServer) AddReadinessCheck(name string, check healthcheck.Check) {
	s.health.AddReadinessCheck(name, check)
}

func (s *AdminServer) Listen() error {
	if err := s.listen(); err != nil {
		return err
	}
	log.WithFields(s.logFields).Infof("admin server listening on http://localhost:%d", s.boundPort())
	return nil
}

func (s *AdminServer) Serve() *Awaiter {
	return s.serve()
}

func (s *AdminServer) Close() error {
	return s.close()
}

func (s *AdminServer) Addr() net.Addr {
	return s.addr()
}

// NewAdminServer wires health checks and metrics from reg.
// liveness reports whether the application process is running.
func NewAdminServer(port int, reg *prometheus.Registry, states *StateMachine, liveness healthcheck.Check) *AdminServer {
	health := healthcheck.NewMetricsHandler(reg, metricsNamespace)
	health.AddLivenessCheck("application-process", liveness)
	health.AddReadinessCheck("serving", func() error {
		if current := states.Current(); current != StateServing {
			return errors.Errorf("launcher is %s", current)
		}
		return nil
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/live", health.LiveEndpoint)
	mux.HandleFunc("/ready", health.ReadyEndpoint)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return &AdminServer{
		health:   health,
		endpoint: newEndpoint(port, mux, log.Fields{"module": "admin_server"}),
	}
}

// upstreamCheck is added to /ready in probe mode. It accepts the same
// answers as the readiness probe.
func upstreamCheck(target string) healthcheck.Check {
	client := &http.Client{Timeout: time.Second}
	return func() error {
		return probeApplication(context.Background(), client, target)
	}
}
