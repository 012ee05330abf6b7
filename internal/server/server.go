package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/feastline/menu-api/internal/auth"
	"github.com/feastline/menu-api/internal/config"
	"github.com/feastline/menu-api/internal/http/handlers"
	"github.com/feastline/menu-api/internal/middleware"
	"github.com/feastline/menu-api/internal/service"
	"github.com/feastline/menu-api/internal/storage"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires middleware, services, and routes, returning a ready server.
func New(cfg config.Config, store storage.Store, log *slog.Logger) *Server {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	hasher := auth.NewPasswordHasher()

	users := service.NewUserService(store, hasher, tokens, log)
	menu := service.NewMenuService(store)

	authHandler := handlers.NewAuthHandler(users, log)
	userHandler := handlers.NewUserHandler(users, log)
	menuHandler := handlers.NewMenuHandler(menu, log)
	health := handlers.NewHealthHandler(time.Now())

	gate := middleware.RequireUser(tokens, store, log)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", health.ServeHTTP)
	r.Route("/auth", authHandler.Routes)
	r.Route("/users", func(r chi.Router) {
		r.Use(gate)
		userHandler.Routes(r)
	})
	r.Route("/menu", func(r chi.Router) {
		menuHandler.PublicRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(gate)
			menuHandler.AdminRoutes(r)
		})
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
