package live

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/statekit-dev/statekit/pkg/states"
)

// tracerName identifies bridge spans in the global tracer provider.
const tracerName = "statekit/live"

// Options configures a bridge Server.
type Options struct {
	// Addr is the host:port to listen on.
	Addr string

	// Fields maps state field names to initial values. Every connection
	// gets its own container seeded from this map.
	Fields map[string]any

	// MetricsNamespace is the Prometheus namespace (default "statekit").
	MetricsNamespace string

	// Registry is the Prometheus registry to use.
	// Default: the default registerer, served by promhttp.Handler.
	Registry *prometheus.Registry

	// Logger is the structured logger. Default: slog.Default.
	Logger *slog.Logger
}

// Server serves the WebSocket state bridge plus health and metrics
// endpoints.
type Server struct {
	addr     string
	fields   map[string]any
	logger   *slog.Logger
	metrics  *metrics
	tracer   trace.Tracer
	registry *prometheus.Registry
	upgrader websocket.Upgrader

	httpSrv *http.Server
}

// New creates a bridge server. The tracer comes from the global
// OpenTelemetry provider; configure that in main before serving.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "live")

	namespace := opts.MetricsNamespace
	if namespace == "" {
		namespace = "statekit"
	}

	var reg prometheus.Registerer
	if opts.Registry != nil {
		reg = opts.Registry
	}

	fields := opts.Fields
	if fields == nil {
		fields = map[string]any{}
	}

	return &Server{
		addr:     opts.Addr,
		fields:   fields,
		logger:   logger,
		metrics:  newMetrics(namespace, reg),
		tracer:   otel.Tracer(tracerName),
		registry: opts.Registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Handler returns the bridge's HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if s.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	} else {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Get("/ws", s.handleWS)

	return r
}

// handleWS upgrades the connection and runs the session's read loop.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	sess := &session{
		conn:   conn,
		states: states.UseStates(s.fields),
		logger: s.logger.With("remote", r.RemoteAddr),
		srv:    s,
	}

	s.metrics.activeSessions.Inc()
	defer s.metrics.activeSessions.Dec()

	sess.logger.Info("session started", "fields", len(s.fields))
	sess.readLoop(r.Context())
	sess.logger.Info("session closed")
}

// ListenAndServe starts the bridge and blocks until Shutdown or failure.
func (s *Server) ListenAndServe() error {
	s.httpSrv = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}
	s.logger.Info("listening", "addr", s.addr)
	return s.httpSrv.ListenAndServe()
}

// Shutdown gracefully stops the bridge.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}
