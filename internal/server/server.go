package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"leaguelens/internal/service"
)

// Server exposes the league reports over HTTP as JSON.
type Server struct {
	httpServer *http.Server
	svc        *service.AnalyticsService
}

func New(addr string, svc *service.AnalyticsService) *Server {
	s := &Server{svc: svc}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(metricsMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/standings", s.handleStandings)
		r.Get("/awards", s.handleAwards)
		r.Get("/matchups/close", s.handleCloseGames)

		r.Route("/efficiency", func(r chi.Router) {
			r.Get("/", s.handleEfficiencyRankings)
			r.Get("/{rosterID}", s.handleTeamEfficiency)
			r.Get("/{rosterID}/week/{week}", s.handleWeeklyEfficiency)
		})

		r.Route("/luck", func(r chi.Router) {
			r.Get("/", s.handleLeagueLuck)
			r.Get("/{rosterID}", s.handleTeamLuck)
		})

		r.Route("/faab", func(r chi.Router) {
			r.Get("/", s.handleLeagueFAAB)
			r.Get("/{rosterID}", s.handleOwnerFAAB)
		})

		r.Route("/construction", func(r chi.Router) {
			r.Get("/", s.handleRosterConstruction)
			r.Get("/{rosterID}", s.handleTeamConstruction)
		})

		r.Get("/draft", s.handleDraft)
		r.Get("/benchwarmers", s.handleBenchwarmers)
		r.Get("/players/{playerID}", s.handlePlayerLifecycle)
		r.Get("/whohas", s.handleWhoHas)
	})

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

func (s *Server) Start() error {
	slog.Info("http server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
