package app

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/markdave123-py/docparser/internal/api/handlers"
	appMiddleware "github.com/markdave123-py/docparser/internal/api/middlewares"
	"github.com/markdave123-py/docparser/internal/config"
)

//go:embed web
var webAssets embed.FS

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, parser handlers.BatchParser, logger *slog.Logger) *Server {
	parseHandler := handlers.NewParseHandler(parser, cfg.MaxUploadBytes, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", handlers.Health)

	r.Group(func(parse chi.Router) {
		if cfg.JWTSecret != "" {
			parse.Use(appMiddleware.JWT(cfg.JWTSecret))
		}
		parse.Post("/parse", parseHandler.Parse)
	})

	if cfg.EnableFileServing {
		static, err := fs.Sub(webAssets, "web")
		if err != nil {
			panic(err)
		}
		r.Handle("/*", http.FileServer(http.FS(static)))
	}

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv, logger: logger}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
