package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/Elon7069/asha-didi-backend/internal/api/router"
	appconfig "github.com/Elon7069/asha-didi-backend/internal/config"
	"github.com/Elon7069/asha-didi-backend/internal/conversation"
	"github.com/Elon7069/asha-didi-backend/internal/observability/metrics"
	"github.com/Elon7069/asha-didi-backend/internal/risk"
	"github.com/Elon7069/asha-didi-backend/internal/visits"
	"github.com/Elon7069/asha-didi-backend/internal/webchat"
	"github.com/Elon7069/asha-didi-backend/pkg/logging"
)

func main() {
	// No .env file is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting asha-didi-backend API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Missing LLM credentials must not stop the process: the chat then
	// serves canned emergency and fallback messages only.
	llm := buildLLMClient(ctx, cfg, logger)

	redisClient := buildRedisClient(cfg)
	historyStore := conversation.NewHistoryStore(redisClient, cfg.HistoryTTL, cfg.HistoryMaxMessages)

	var visitsRepo *visits.Repository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres, visit storage disabled", "error", err)
		} else {
			defer pool.Close()
			visitsRepo = visits.NewRepository(pool)
		}
	} else {
		logger.Warn("DATABASE_URL not set, visit storage disabled")
	}

	chatMetrics := metrics.NewChatMetrics(prometheus.DefaultRegisterer)

	chatService := conversation.NewChatService(llm, logger,
		conversation.WithLLMTimeout(cfg.LLMTimeout),
		conversation.WithMaxTokens(int32(cfg.LLMMaxTokens)),
		conversation.WithChatMetrics(chatMetrics),
	)
	extractor := visits.NewExtractor(llm, logger, chatMetrics, "")
	assessor := risk.NewAssessor(llm, logger, chatMetrics, "")

	r := router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        conversation.NewHandler(chatService, historyStore, logger),
		VisitsHandler:      visits.NewHandler(extractor, visitsRepo, logger),
		RiskHandler:        risk.NewHandler(assessor, logger),
		WebchatHandler:     webchat.NewHandler(chatService, historyStore, logger),
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildLLMClient wires Gemini as primary and OpenAI as fallback. Whatever
// is configured is used; nothing configured returns nil and the services
// degrade to their canned responses.
func buildLLMClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) conversation.LLMClient {
	var primary, fallback conversation.LLMClient

	if cfg.GeminiAPIKey != "" {
		gemini, err := conversation.NewGeminiLLMClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Error("failed to create gemini client", "error", err)
		} else {
			primary = gemini
		}
	}
	if cfg.OpenAIAPIKey != "" {
		openAI, err := conversation.NewOpenAILLMClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			logger.Error("failed to create openai client", "error", err)
		} else {
			fallback = openAI
		}
	}

	switch {
	case primary != nil:
		return conversation.NewFallbackLLMClient(primary, fallback, logger)
	case fallback != nil:
		logger.Warn("gemini not configured, using openai as the only provider")
		return fallback
	default:
		logger.Warn("no LLM provider configured, chat will serve fallback messages only")
		return nil
	}
}

func buildRedisClient(cfg *appconfig.Config) *redis.Client {
	options := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		options.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return redis.NewClient(options)
}
