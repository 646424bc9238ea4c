package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"medivault/internal/config"
	"medivault/internal/domain"
	"medivault/internal/metrics"

	"github.com/rs/zerolog"
)

// HTTPServer exposes the appointment REST API.
type HTTPServer struct {
	cfg          config.ServerConfig
	appointments domain.AppointmentService
	users        domain.UserService
	authCfg      config.AuthConfig
	server       *http.Server
	logger       *zerolog.Logger
}

func NewHTTPServer(cfg config.ServerConfig, authCfg config.AuthConfig, appointments domain.AppointmentService, users domain.UserService, logger *zerolog.Logger) *HTTPServer {
	srv := &HTTPServer{
		cfg:          cfg,
		authCfg:      authCfg,
		appointments: appointments,
		users:        users,
		logger:       logger,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/api/auth/signup", srv.handleSignup)
	mux.HandleFunc("/api/auth/login", srv.handleLogin)

	auth := srv.requireAuth

	mux.HandleFunc("/api/appointments/patient", auth(srv.handleListForPatient))
	mux.HandleFunc("/api/appointments/patient/upcoming", auth(srv.handleListUpcomingForPatient))
	mux.HandleFunc("/api/appointments/doctor", auth(srv.handleListForDoctor))
	mux.HandleFunc("/api/appointments/doctor/upcoming", auth(srv.handleListUpcomingForDoctor))
	mux.HandleFunc("/api/appointments/doctors", auth(srv.handleListDoctors))
	mux.HandleFunc("/api/appointments/patients", auth(srv.handleListPatientsForDoctor))
	mux.HandleFunc("/api/appointments/schedule", auth(srv.handleSchedule))
	mux.HandleFunc("/api/appointments/", auth(srv.handleAppointmentByID))
	mux.HandleFunc("/api/admin/export/appointments", auth(srv.handleExportAppointments))

	mux.HandleFunc("/healthz", srv.handleHealth)

	limiter := newRateLimiter(cfg.RateLimit)
	handler := srv.loggingMiddleware(limiter.wrap(mux))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler returns the configured handler, used by tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		metrics.IncHTTP(r.URL.Path)
		next.ServeHTTP(w, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
