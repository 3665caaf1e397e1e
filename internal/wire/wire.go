// Package wire 提供依赖注入装配
package wire

import (
	"context"
	"fmt"

	einoembedding "github.com/cloudwego/eino/components/embedding"
	"github.com/gin-gonic/gin"

	"educa-tennis-api/internal/application/assistant"
	"educa-tennis-api/internal/config"
	infraembedding "educa-tennis-api/internal/infrastructure/embedding"
	"educa-tennis-api/internal/infrastructure/llm"
	"educa-tennis-api/internal/infrastructure/persistence/milvus"
	"educa-tennis-api/internal/infrastructure/persistence/redis"
	"educa-tennis-api/internal/interfaces/http/handler"
	"educa-tennis-api/internal/interfaces/http/middleware"
	"educa-tennis-api/internal/interfaces/http/router"
)

// App 装配完成的应用
type App struct {
	Router *router.Router
	Engine *assistant.Engine
}

// DataLayer 数据层依赖容器
type DataLayer struct {
	RedisClient *redis.Client
	Cache       *redis.Cache
	RateLimiter *redis.RateLimiter

	MilvusClient *milvus.Client
	VectorRepo   *milvus.Repository
	PageRepo     *milvus.PageRepository
}

// IngestionDeps 摄取流水线依赖容器
type IngestionDeps struct {
	Data     *DataLayer
	Embedder einoembedding.Embedder
}

// InitializeDataLayer 初始化数据层
// Redis 和 Milvus 均为启动硬依赖：检索是服务的核心路径，
// 向量库不可达时直接失败而不是降级启动。
func InitializeDataLayer(ctx context.Context, cfg *config.Config) (*DataLayer, func(), error) {
	redisClient, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("init redis: %w", err)
	}

	milvusClient, err := milvus.NewClient(ctx, &cfg.Vector.Milvus)
	if err != nil {
		_ = redisClient.Close()
		return nil, nil, fmt.Errorf("init milvus: %w", err)
	}

	vectorRepo := milvus.NewRepository(milvusClient)
	pageRepo := milvus.NewPageRepository(vectorRepo)

	if err := pageRepo.EnsureProgramPagesCollection(ctx); err != nil {
		_ = milvusClient.Close()
		_ = redisClient.Close()
		return nil, nil, fmt.Errorf("ensure collection: %w", err)
	}

	cleanup := func() {
		_ = milvusClient.Close()
		_ = redisClient.Close()
	}

	return &DataLayer{
		RedisClient:  redisClient,
		Cache:        redis.NewCache(redisClient),
		RateLimiter:  redis.NewRateLimiter(redisClient),
		MilvusClient: milvusClient,
		VectorRepo:   vectorRepo,
		PageRepo:     pageRepo,
	}, cleanup, nil
}

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	data, cleanup, err := InitializeDataLayer(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	embedder, err := infraembedding.NewEinoEmbedder(ctx, &cfg.Embedding)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("init embedder: %w", err)
	}

	factory := llm.NewEinoFactory(cfg)

	classifier := assistant.NewClassifier(factory, cfg.LLM.DefaultProvider, cfg.Assistant.DefaultLanguage)
	retriever := assistant.NewRetriever(embedder, data.PageRepo, cfg.Assistant.TopK)
	responder := assistant.NewResponder(factory, cfg.LLM.DefaultProvider)
	engine := assistant.NewEngine(classifier, retriever, responder, data.Cache, cfg.Assistant.IntroCacheTTL)

	handlers := router.Handlers{
		Health: handler.NewHealthHandler(data.RedisClient, data.MilvusClient),
		Chat:   handler.NewChatHandler(engine),
		Intro:  handler.NewIntroHandler(engine),
	}

	rateLimitFunc := provideRateLimit(cfg, data.RateLimiter)

	r := router.New(cfg, handlers, rateLimitFunc)

	return &App{Router: r, Engine: engine}, cleanup, nil
}

// InitializeIngestion 初始化摄取流水线依赖
func InitializeIngestion(ctx context.Context, cfg *config.Config) (*IngestionDeps, func(), error) {
	data, cleanup, err := InitializeDataLayer(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	embedder, err := infraembedding.NewEinoEmbedder(ctx, &cfg.Embedding)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("init embedder: %w", err)
	}

	return &IngestionDeps{Data: data, Embedder: embedder}, cleanup, nil
}

// provideRateLimit 提供限流中间件
func provideRateLimit(cfg *config.Config, limiter *redis.RateLimiter) gin.HandlerFunc {
	return middleware.RateLimit(middleware.RateLimitConfig{
		Enabled:           cfg.Security.RateLimit.Enabled,
		RequestsPerSecond: cfg.Security.RateLimit.RequestsPerSecond,
		Burst:             cfg.Security.RateLimit.Burst,
		KeyPrefix:         "ratelimit",
	}, limiter)
}
