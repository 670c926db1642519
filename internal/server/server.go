// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: New opens the configured store and wires
//
//	store → UserService / EventService → GraphQL schema → handlers → router
//
// Each layer only receives what it needs. Services get repository
// interfaces, the schema gets services and handlers get the schema.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/sakif/event-booking/internal/auth"
	"github.com/sakif/event-booking/internal/config"
	"github.com/sakif/event-booking/internal/graph"
	"github.com/sakif/event-booking/internal/handler"
	"github.com/sakif/event-booking/internal/metrics"
	"github.com/sakif/event-booking/internal/middleware"
	"github.com/sakif/event-booking/internal/repository"
	pgRepo "github.com/sakif/event-booking/internal/repository/postgres"
	sqliteRepo "github.com/sakif/event-booking/internal/repository/sqlite"
	"github.com/sakif/event-booking/internal/service"
)

// Server represents the HTTP server and all its dependencies.
// The Server owns the store and closes it when Start returns.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	store  repository.Store
}

// New opens the configured store and builds the router.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	store, err := OpenStore(ctx, cfg.Store, logger)
	if err != nil {
		return nil, err
	}

	s, err := newServer(cfg, store, auth.NewPasswordService(), logger)
	if err != nil {
		store.Close()
		return nil, err
	}
	return s, nil
}

// OpenStore connects to the store selected by cfg.Driver. The sqlite file's
// directory is created if missing; postgres migrations run first when
// AutoMigrate is set.
func OpenStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (repository.Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		if cfg.DBPath != ":memory:" {
			dir := filepath.Dir(cfg.DBPath)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
			}
		}
		db, err := sqliteRepo.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		logger.Info("store opened", slog.String("driver", cfg.Driver), slog.String("path", cfg.DBPath))
		return db, nil

	case config.DriverPostgres:
		if cfg.AutoMigrate {
			if err := pgRepo.MigrateUp(cfg.DatabaseURL); err != nil {
				return nil, fmt.Errorf("migrating postgres store: %w", err)
			}
		}
		db, err := pgRepo.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("opening postgres store: %w", err)
		}
		logger.Info("store opened", slog.String("driver", cfg.Driver))
		return db, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func newServer(cfg config.Config, store repository.Store, passwords service.PasswordHasher, logger *slog.Logger) (*Server, error) {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
	}

	if err := s.setupRoutes(passwords); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}
	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTES:
//
//	POST|GET /graphql   → GraphQL API (acting user from Bearer token or cookie)
//	GET      /graphiql  → GraphiQL IDE, only when GRAPHIQL=true
//	GET      /healthz   → store ping
//	GET      /metrics   → Prometheus
//
// MIDDLEWARE ORDER MATTERS:
// RequestID runs first so the logger can print the id. Recoverer sits
// inside the logger so a recovered panic is still logged as a 500.
func (s *Server) setupRoutes(passwords service.PasswordHasher) error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(metrics.HTTPMiddleware)

	tokens, err := auth.NewTokenService(s.config.Auth.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	timeout := s.config.Store.Timeout
	userService := service.NewUserService(s.store, passwords, timeout, s.logger)
	eventService := service.NewEventService(s.store, s.store, timeout, s.logger)

	schema, err := graph.NewSchema(userService, eventService, s.logger)
	if err != nil {
		return err
	}
	graphqlHandler := handler.NewGraphQLHandler(schema, s.logger)

	s.router.Group(func(r chi.Router) {
		r.Use(auth.OptionalAuth(tokens))
		r.Post("/graphql", graphqlHandler.ServeHTTP)
		r.Get("/graphql", graphqlHandler.ServeHTTP)
	})

	if s.config.Server.GraphiQL {
		graphiqlHandler, err := handler.NewGraphiQLHandler("/graphql", s.logger)
		if err != nil {
			return fmt.Errorf("creating graphiql handler: %w", err)
		}
		s.router.Get("/graphiql", graphiqlHandler.HandleGraphiQL)
	}

	healthHandler := handler.NewHealthHandler(s.store, timeout, s.logger)
	s.router.Get("/healthz", healthHandler.HandleHealth)
	s.router.Handle("/metrics", metrics.Handler())

	return nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves HTTP until ctx is cancelled or SIGINT/SIGTERM arrives, then
// shuts down gracefully.
//
// SHUTDOWN ORDER:
//  1. Stop accepting new connections.
//  2. Wait up to SHUTDOWN_TIMEOUT for in-flight requests.
//  3. Close the store (flushes the sqlite WAL, releases postgres connections).
func (s *Server) Start(ctx context.Context) error {
	defer s.store.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Server.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Server.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d/graphql", s.config.Server.Port)),
			slog.String("store", s.config.Store.Driver),
			slog.Bool("graphiql", s.config.Server.GraphiQL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
		return nil
	})

	return g.Wait()
}
