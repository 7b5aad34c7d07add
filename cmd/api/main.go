// @title Exam Grader API
// @version 1.0
// @description Grades exam answers with an LLM, stores exam results and extracts keywords.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:5000
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "exam-grader/cmd/api/docs"
	"exam-grader/internal/adapter"
	"exam-grader/internal/adapter/llm"
	"exam-grader/internal/cache"
	"exam-grader/internal/config"
	"exam-grader/internal/database"
	"exam-grader/internal/domain"
	"exam-grader/internal/handler"
	"exam-grader/internal/logger"
	"exam-grader/internal/metrics"
	"exam-grader/internal/repository"
	"exam-grader/internal/server"
	"exam-grader/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	// LLM provider
	llmClient, err := newLLMClient(cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}
	appLogger.Info("LLM client initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("base_url", cfg.LLM.BaseURL),
		zap.String("model", cfg.LLM.Model),
	)

	// Result store
	var (
		resultRepo  domain.ExamResultRepository
		mongoClient *mongo.Client
	)
	switch cfg.Store.Driver {
	case config.StoreDriverMongo:
		mongoClient, err = database.ConnectMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Timeout)
		if err != nil {
			appLogger.Fatal("Failed to create document store client", zap.Error(err))
		}
		if err := database.PingMongo(ctx, mongoClient, cfg.Mongo.Timeout); err != nil {
			appLogger.Warn("Document store unreachable, writes will fail until it recovers", zap.Error(err))
		}
		collection := mongoClient.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
		resultRepo = repository.NewMongoExamResultRepository(collection)
		appLogger.Info("Mongo result store initialized",
			zap.String("database", cfg.Mongo.Database),
			zap.String("collection", cfg.Mongo.Collection),
		)
	case config.StoreDriverMemory:
		resultRepo = repository.NewMemoryExamResultRepository()
		appLogger.Warn("Using in-memory result store, results are lost on restart")
	}

	// Optional evaluation cache
	var (
		evaluationCache domain.Cache
		redisClient     *redis.Client
	)
	if cfg.Redis.Address != "" {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLogger.Warn("Evaluation cache disabled", zap.Error(err))
		} else {
			evaluationCache = adapter.NewRedisCacheAdapter(redisClient)
			appLogger.Info("Evaluation cache initialized", zap.String("address", cfg.Redis.Address))
		}
	}

	// Initialize services
	evaluator := service.NewAnswerEvaluator(
		llmClient,
		domain.CompletionOptions{
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
		},
		evaluationCache,
		cfg.ParseTTLStringOrDefault(cfg.CacheTTLs.Evaluation, service.DefaultEvaluationCacheTTL),
	)
	resultService := service.NewExamResultService(resultRepo, time.Now)
	keywordExtractor := service.NewKeywordExtractor(cfg.Keywords)

	// Initialize handlers
	examHandler := handler.NewExamHandler(evaluator, resultService, keywordExtractor)
	healthHandler := handler.NewHealthHandler(resultRepo, evaluationCache)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.RegisterCollectors(registry)

	app := server.NewApp(cfg.Server, server.Handlers{Exam: examHandler, Health: healthHandler}, registry)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			appLogger.Error("Failed to disconnect document store", zap.Error(err))
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			appLogger.Error("Failed to close Redis client", zap.Error(err))
		}
	}
	appLogger.Info("Server exited gracefully")
}

func newLLMClient(cfg config.LLMConfig) (domain.LLMClient, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case config.ProviderLangchain:
		return llm.NewLangchainClient(cfg.APIKey, cfg.BaseURL, cfg.Model, httpClient)
	case config.ProviderOpenAI:
		return llm.NewOpenAIClient(cfg.APIKey, cfg.BaseURL, cfg.Model, httpClient)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %q", cfg.Provider)
	}
}
