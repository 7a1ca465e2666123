// Package monitoring exports loop telemetry as Prometheus metrics and
// optionally serves them over HTTP.
package monitoring

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"showcase/internal/config"
	"showcase/loop"
	"showcase/resource"
)

const namespace = "showcase"

// Metrics implements loop.Metrics on a private registry.
type Metrics struct {
	reg *prometheus.Registry

	frameSeconds *prometheus.HistogramVec
	violations   *prometheus.GaugeVec
	acquired     *prometheus.CounterVec
	released     *prometheus.CounterVec
	leaked       *prometheus.CounterVec
	live         *prometheus.GaugeVec
}

var _ loop.Metrics = (*Metrics)(nil)

func NewMetrics() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		frameSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_seconds",
			Help:      "Time spent in update and draw per frame.",
			Buckets:   []float64{.0005, .001, .002, .004, .008, .016, .033, .066, .1},
		}, []string{"demo"}),
		violations: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "draw_violations",
			Help:      "Drawing calls made outside a frame bracket.",
		}, []string{"demo"}),
		acquired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resources_acquired_total",
			Help:      "Resource handles acquired.",
		}, []string{"demo", "kind"}),
		released: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resources_released_total",
			Help:      "Resource handles released.",
		}, []string{"demo", "kind"}),
		leaked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resources_leaked_total",
			Help:      "Resource handles released at teardown instead of by the demo.",
		}, []string{"demo", "kind"}),
		live: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "resources_live",
			Help:      "Resource handles currently live.",
		}, []string{"demo", "kind"}),
	}
	m.reg.MustRegister(m.frameSeconds, m.violations, m.acquired, m.released, m.leaked, m.live,
		collectors.NewGoCollector())
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

func (m *Metrics) Frame(demo string, d time.Duration) {
	m.frameSeconds.WithLabelValues(demo).Observe(d.Seconds())
}

func (m *Metrics) Violations(demo string, n uint64) {
	m.violations.WithLabelValues(demo).Set(float64(n))
}

func (m *Metrics) Resource(demo string, ev resource.Event) {
	kind := ev.Handle.Kind().String()
	switch ev.Op {
	case resource.OpAcquire:
		m.acquired.WithLabelValues(demo, kind).Inc()
		m.live.WithLabelValues(demo, kind).Inc()
	case resource.OpRelease:
		m.released.WithLabelValues(demo, kind).Inc()
		m.live.WithLabelValues(demo, kind).Dec()
		if ev.Auto {
			m.leaked.WithLabelValues(demo, kind).Inc()
		}
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Server serves the metrics endpoint.
type Server struct {
	conf config.Monitoring
	log  zerolog.Logger
	srv  *http.Server
}

func NewServer(conf config.Monitoring, m *Metrics, log zerolog.Logger) *Server {
	path := conf.URLPrefix + "/metrics"
	mux := http.NewServeMux()
	mux.Handle(path, m.Handler())
	return &Server{
		conf: conf,
		log:  log,
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", conf.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Run listens and serves in the background. Listen errors are returned
// directly; serve errors are logged.
func (s *Server) Run() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	s.log.Info().Str("addr", ln.Addr().String()+s.conf.URLPrefix+"/metrics").Msg("metrics enabled")
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("metrics server")
		}
	}()
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Debug().Msg("shutting down metrics server")
	return s.srv.Shutdown(ctx)
}

func (s *Server) String() string {
	return fmt.Sprintf("monitoring::%s:%d", s.conf.URLPrefix, s.conf.Port)
}
