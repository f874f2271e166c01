// Formula API
//
// A thin HTTP transport around the astrology formula DSL core: parse,
// validate, and evaluate predicate formulas against a natal chart.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"github.com/astroformula/dsl/internal/config"
	"github.com/astroformula/dsl/internal/dignity"
	"github.com/astroformula/dsl/internal/dsl"
	"github.com/astroformula/dsl/internal/handlers"
	custommw "github.com/astroformula/dsl/internal/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	dignityCfg := dignity.Default()
	if path := os.Getenv("DIGNITY_CONFIG_FILE"); path != "" {
		loaded, err := dignity.LoadFile(path)
		if err != nil {
			slog.Error("failed to load dignity config", "error", err, "path", path)
			os.Exit(1)
		}
		dignityCfg = loaded
		slog.Info("loaded dignity configuration", "path", path, "mode", dignityCfg.Mode)
	}

	h := handlers.New(dignityCfg)

	if cfg.Cache.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.Cache.RedisURL)
		if err != nil {
			slog.Warn("invalid REDIS_URL, AST cache mirror disabled", "error", err)
		} else {
			client := redis.NewClient(opts)
			mirror := dsl.NewRedisMirror(client, "astroformula:ast:", cfg.Cache.TTL)
			h = h.WithMirror(mirror)
			slog.Info("AST cache mirror enabled", "redis_url", cfg.Cache.RedisURL)
		}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(custommw.RealIP)
	r.Use(custommw.Logger)
	r.Use(custommw.Recoverer)
	r.Use(custommw.Timeout(cfg.Server.Timeout))
	r.Use(custommw.SecurityHeaders)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(custommw.ContentType("application/json"))
		r.Post("/formula/validate", h.ValidateFormula)
		r.Post("/formula/evaluate", h.EvaluateFormula)
	})

	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("starting server", "addr", srv.Addr, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server exited")
}
