// Package server exposes a dashboard session over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"workforce-dashboard/config"
	"workforce-dashboard/metrics"
	"workforce-dashboard/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Server serves one session. Every client shares it.
type Server struct {
	validate   *validator.Validate
	translator ut.Translator
	config     *config.Config
	session    *session.Session

	Mux *chi.Mux
}

// New creates a server and registers its routes.
func New(cfg *config.Config, sess *session.Session) (*Server, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"query", "json"} {
			if name := strings.Split(f.Tag.Get(tag), ",")[0]; name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	s := &Server{
		validate:   validate,
		translator: trans,
		config:     cfg,
		session:    sess,

		Mux: chi.NewRouter(),
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.Mux.Use(s.logger)
	s.Mux.Use(s.recoverer)

	s.Mux.Route("/schedule", func(r chi.Router) {
		r.Get("/", s.GetSchedule)
		r.Delete("/", s.ClearSchedule)
		r.Post("/upload", s.UploadSchedule)
		r.Get("/export.csv", s.ExportSchedule)
		r.Get("/distinct/{field}", s.GetDistinctValues)
	})

	s.Mux.Route("/productivity", func(r chi.Router) {
		r.Get("/", s.GetProductivity)
		r.Delete("/", s.ClearProductivity)
		r.Post("/upload", s.UploadProductivity)
		r.Get("/export.csv", s.ExportProductivity)
	})

	s.Mux.Route("/settings/excluded-solutions", func(r chi.Router) {
		r.Get("/", s.GetExcludedSolutions)
		r.Put("/", s.ReplaceExcludedSolutions)
		r.Post("/reset", s.ResetExcludedSolutions)
	})

	s.Mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("session", s.session.ID.String()).Msg("Dashboard listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", srv.Addr, err)
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
