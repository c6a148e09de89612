package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kitvault/kitvault/internal/config"
	"github.com/kitvault/kitvault/internal/db"
	dbRedis "github.com/kitvault/kitvault/internal/db/redis"
	"github.com/kitvault/kitvault/internal/llm"
	logpkg "github.com/kitvault/kitvault/internal/logger"
	"github.com/kitvault/kitvault/internal/metrics"
	assetrepo "github.com/kitvault/kitvault/internal/repository/asset"
	kitrepo "github.com/kitvault/kitvault/internal/repository/kit"
	sharingrepo "github.com/kitvault/kitvault/internal/repository/sharing"
	workspacerepo "github.com/kitvault/kitvault/internal/repository/workspace"
	chiTransport "github.com/kitvault/kitvault/internal/transport/chi"
	geminiBackend "github.com/kitvault/kitvault/internal/transport/gemini"
	openaiBackend "github.com/kitvault/kitvault/internal/transport/openai"
	assetuc "github.com/kitvault/kitvault/internal/usecase/asset"
	healthuc "github.com/kitvault/kitvault/internal/usecase/health"
	kituc "github.com/kitvault/kitvault/internal/usecase/kit"
	quickuc "github.com/kitvault/kitvault/internal/usecase/quickquery"
	raguc "github.com/kitvault/kitvault/internal/usecase/rag"
	retrievaluc "github.com/kitvault/kitvault/internal/usecase/retrieval"
	sharinguc "github.com/kitvault/kitvault/internal/usecase/sharing"
	synthesisuc "github.com/kitvault/kitvault/internal/usecase/synthesis"
	workspaceuc "github.com/kitvault/kitvault/internal/usecase/workspace"
	"github.com/kitvault/kitvault/internal/version"
)

func main() {
	// Load .env if present (local development convenience)
	_ = godotenv.Load()

	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting kitvault API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Create database store. rueidis speaks both redis and valkey.
	var store db.Store
	switch cfg.Database.Driver {
	case "valkey", "redis":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register LLM metrics explicitly (no init())
	metrics.RegisterLLMMetrics()

	// Build backend families
	openaiFam := openaiBackend.NewBackend(&openaiBackend.Config{
		APIKey:  cfg.LLM.OpenAI.APIKey,
		BaseURL: cfg.LLM.OpenAI.BaseURL,
		Model:   cfg.LLM.OpenAI.Model,
		Logger:  logger,
	})
	geminiFam, err := geminiBackend.NewBackend(ctx, &geminiBackend.Config{
		APIKey: cfg.LLM.Gemini.APIKey,
		Model:  cfg.LLM.Gemini.Model,
		Logger: logger,
	})
	if err != nil {
		logger.Fatal("Failed to create gemini backend", zap.Error(err))
	}

	// Model-name routing: gemini* goes to the Gemini family, everything else
	// falls back to the OpenAI-compatible family.
	registry := llm.NewRegistry(openaiFam).WithPrefix("gemini", geminiFam)
	logger.Info("Backends created",
		zap.Bool("openai_configured", openaiFam.Configured()),
		zap.Bool("gemini_configured", geminiFam.Configured()),
		zap.String("default_model", cfg.LLM.DefaultModel),
	)

	// Create repositories
	wsRepo := workspacerepo.New(store, cfg.Storage.KeyPrefix)
	aRepo := assetrepo.New(store, cfg.Storage.KeyPrefix)
	kRepo := kitrepo.New(store, cfg.Storage.KeyPrefix)
	linkRepo := sharingrepo.New(store, cfg.Storage.KeyPrefix)

	// Create use case services
	wsSvc := workspaceuc.New(wsRepo, aRepo, kRepo, linkRepo)
	assetSvc := assetuc.New(aRepo, wsRepo, kRepo)
	kitSvc := kituc.New(kRepo, wsRepo, aRepo, linkRepo)
	sharingSvc := sharinguc.New(linkRepo, kRepo)

	selector := retrievaluc.New(registry, logger)
	synth := synthesisuc.New(registry, logger)
	ragSvc := raguc.New(selector, synth, logger)
	quickSvc := quickuc.New()

	healthSvc := healthuc.New(store, registry)

	// Create chi server
	server := chiTransport.NewServer(
		wsSvc, assetSvc, kitSvc, sharingSvc, ragSvc, quickSvc, healthSvc,
		cfg.LLM.DefaultModel, logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
