package api

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/easiio/sflow-server/pkg/auth"
	"github.com/easiio/sflow-server/pkg/config"
	"github.com/easiio/sflow-server/pkg/httputil"
	"github.com/easiio/sflow-server/pkg/middleware"
	"github.com/easiio/sflow-server/pkg/observability"
	"github.com/easiio/sflow-server/pkg/storage"
)

// Server is the sflow HTTP server: the authentication REST surface plus
// health probes and metrics, wrapped in the origin gate and the common
// middleware chain.
type Server struct {
	handler http.Handler
	runtime *config.Runtime
	session *middleware.Session
}

// NewServer wires the full request pipeline from configuration and an
// open database handle.
func NewServer(cfg *config.Config, db *sql.DB, log *logrus.Entry) (*Server, error) {
	runtime := config.NewRuntime(cfg.Auth.SflowAPIKey, cfg.Auth.OwnerSetUp)
	users := storage.NewPostgresUserStore(db)

	codec, err := auth.NewTokenCodec(cfg.Auth.JWTSecret, users)
	if err != nil {
		return nil, fmt.Errorf("failed to create token codec: %w", err)
	}

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	health := observability.NewHealthChecker(db)

	router := mux.NewRouter()
	router.HandleFunc("/healthz", health.Liveness).Methods("GET")
	router.HandleFunc("/readyz", health.Readiness).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	authHandlers := NewAuthHandlers(users, codec, runtime, metrics, log)
	authHandlers.RegisterRoutes(router, cfg.Auth.RESTPrefix)

	gate := middleware.NewOriginGate(cfg.CORS, metrics)
	chain := httputil.Chain(
		gate.Handler,
		httputil.RequestIDMiddleware,
		httputil.LoggingMiddleware(log),
		httputil.RecoveryMiddleware(log),
	)

	return &Server{
		handler: chain(router),
		runtime: runtime,
		session: middleware.NewSession(codec),
	}, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Runtime returns the dynamic settings store, so the caller can hook up
// hot reloading.
func (s *Server) Runtime() *config.Runtime {
	return s.runtime
}

// Session returns the cookie-auth middleware guarding any non-authless
// routes mounted on top of this server.
func (s *Server) Session() *middleware.Session {
	return s.session
}
