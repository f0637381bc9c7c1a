/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package server is the web front end of the dashboard. It only routes and
// renders; every answer comes from a dashboard.Service.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/ademuri/listening-seasons/internal/dashboard"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const shutdownTimeout = 5 * time.Second

// Config tunes the server. Rate is requests per second allowed on the API
// and chart routes, with bursts up to Burst.
type Config struct {
	Rate  float64
	Burst int
}

var DefaultConfig = Config{Rate: 10, Burst: 20}

type Server struct {
	svc     *dashboard.Service
	router  *gin.Engine
	limiter *rate.Limiter
	logger  zerolog.Logger
}

func New(svc *dashboard.Service, cfg Config, logger zerolog.Logger) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)

	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	if cfg.Rate <= 0 {
		cfg.Rate = DefaultConfig.Rate
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultConfig.Burst
	}

	s := &Server{
		svc:     svc,
		router:  gin.New(),
		limiter: rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst),
		logger:  logger.With().Str("component", "server").Logger(),
	}
	s.router.SetHTMLTemplate(tmpl)
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.Use(gin.Recovery(), requestID(), accessLog(s.logger))

	s.router.GET("/", s.landing)
	s.router.GET("/analysis", s.analysis)
	s.router.GET("/healthz", s.healthCheck)

	api := s.router.Group("/api", rateLimit(s.limiter))
	{
		api.GET("/summary", s.summary)
		api.GET("/recommendations", s.recommendations)
		api.GET("/options", s.options)
		api.GET("/charts/:kind", s.chartSpec)
	}

	charts := s.router.Group("/charts", rateLimit(s.limiter))
	charts.GET("/:file", s.chartImage)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router}

	errs := make(chan error, 1)
	go func() { errs <- srv.ListenAndServe() }()
	s.logger.Info().Str("addr", addr).Msg("Listening")

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		s.logger.Info().Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
