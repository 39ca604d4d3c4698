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
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/cureat-cloud/matseek/internal/config"
	logpkg "github.com/cureat-cloud/matseek/internal/logger"
	"github.com/cureat-cloud/matseek/internal/metrics"
	chiTransport "github.com/cureat-cloud/matseek/internal/transport/chi"
	"github.com/cureat-cloud/matseek/internal/transport/naver"
	openaiChat "github.com/cureat-cloud/matseek/internal/transport/openai"
	"github.com/cureat-cloud/matseek/internal/usecase/health"
	"github.com/cureat-cloud/matseek/internal/usecase/places"
	"github.com/cureat-cloud/matseek/internal/usecase/recommend"
	"github.com/cureat-cloud/matseek/internal/usecase/review"
	"github.com/cureat-cloud/matseek/internal/usecase/summary"
	"github.com/cureat-cloud/matseek/internal/usecase/translate"
	"github.com/cureat-cloud/matseek/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting matseek API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("llm_model", cfg.LLM.Model),
	)

	// Register provider metrics explicitly (no init())
	metrics.RegisterSearchMetrics()
	metrics.RegisterChatMetrics()

	naverClient := naver.NewClient(&naver.Config{
		ClientID:     cfg.Naver.ClientID,
		ClientSecret: cfg.Naver.ClientSecret,
		BaseURL:      cfg.Naver.BaseURL,
		Timeout:      time.Duration(cfg.Naver.TimeoutSec) * time.Second,
		Logger:       logger,
	})

	// The chat model is optional: without a key the pipeline degrades to
	// deterministic fallbacks instead of refusing to start.
	var chatClient *openaiChat.ChatClient
	if cfg.LLM.APIKey != "" {
		chatClient = openaiChat.NewChatClient(&openaiChat.Config{
			APIKey:   cfg.LLM.APIKey,
			BaseURL:  cfg.LLM.BaseURL,
			Model:    cfg.LLM.Model,
			RPM:      cfg.LLM.RPM,
			Timeout:  time.Duration(cfg.LLM.TimeoutSec) * time.Second,
			Provider: "openai",
			Logger:   logger,
		})
	} else {
		logger.Warn("llm.api_key not set, running without a chat model")
	}

	// Pass nil interfaces (not typed nil pointers!) if chat is not configured.
	// Go gotcha: (*ChatClient)(nil) wrapped in an interface != nil.
	var summaryChat summary.ChatModel
	var translateChat translate.ChatModel
	var chatChecker health.ChatChecker
	if chatClient != nil {
		summaryChat = chatClient
		translateChat = chatClient
		chatChecker = chatClient
	}

	// Create use case services
	placesSvc := places.New(naverClient, logger).
		WithDisplay(cfg.Naver.SearchDisplay)
	reviewSvc := review.New(naverClient, logger).
		WithDisplay(cfg.Naver.ReviewDisplay).
		WithExtraAdKeywords(cfg.Recommend.ExtraAdKeywords...)
	summarySvc := summary.New(summaryChat, logger).
		WithContextBounds(cfg.Recommend.MinContextChars, cfg.Recommend.MaxContextChars)
	translateSvc := translate.New(translateChat, logger)
	recommendSvc := recommend.New(placesSvc, reviewSvc, summarySvc, translateSvc, logger).
		WithMaxPlaces(cfg.Recommend.MaxPlaces).
		WithKeywordOptimization(!cfg.Recommend.DisableKeywordStage).
		WithDisplayTranslation(!cfg.Recommend.DisableTranslationStage)

	// Health service
	healthSvc := health.New(naverClient, chatChecker)

	// Create chi server
	server := chiTransport.NewServer(recommendSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	if len(cfg.HTTP.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.HTTP.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		}))
	}
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

			// Canonical log line — one line per request
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
