package repository

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"taskprovision/sources/configuration"
	"taskprovision/sources/platform"
	"taskprovision/sources/tracing"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type ComponentHealth struct {
	Healthy   bool   `json:"healthy"`
	LatencyMs int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

type HealthRepository struct {
	db     *gorm.DB
	redis  *redis.Client
	client *http.Client
	config *configuration.Config
}

func NewHealthRepository(db *gorm.DB, redis *redis.Client, client *http.Client, config *configuration.Config) *HealthRepository {
	return &HealthRepository{db: db, redis: redis, client: client, config: config}
}

func (x *HealthRepository) CheckDatabase(logger *tracing.Logger) ComponentHealth {
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	sqlDB, err := x.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		logger.W("Database health check failed", tracing.InnerError, err)
		return ComponentHealth{Healthy: false, LatencyMs: time.Since(start).Milliseconds(), Error: err.Error()}
	}

	return ComponentHealth{Healthy: true, LatencyMs: time.Since(start).Milliseconds()}
}

func (x *HealthRepository) CheckRedis(logger *tracing.Logger) ComponentHealth {
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	if err := x.redis.Ping(ctx).Err(); err != nil {
		logger.W("Redis health check failed", tracing.InnerError, err)
		return ComponentHealth{Healthy: false, LatencyMs: time.Since(start).Milliseconds(), Error: err.Error()}
	}

	return ComponentHealth{Healthy: true, LatencyMs: time.Since(start).Milliseconds()}
}

// CheckOllama asks the local model host for its tag list. An unreachable host
// degrades the report but never fails it, cloud providers can still serve.
func (x *HealthRepository) CheckOllama(logger *tracing.Logger) ComponentHealth {
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 5*time.Second)
	defer cancel()

	url := strings.TrimSuffix(x.config.AI.OllamaBaseURL, "/") + "/api/tags"
	start := time.Now()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ComponentHealth{Healthy: false, LatencyMs: time.Since(start).Milliseconds(), Error: err.Error()}
	}

	response, err := x.client.Do(request)
	if err != nil {
		logger.W("Ollama health check failed", tracing.InnerError, err)
		return ComponentHealth{Healthy: false, LatencyMs: time.Since(start).Milliseconds(), Error: err.Error()}
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status %d", response.StatusCode)
		logger.W("Ollama health check failed", tracing.InnerError, err)
		return ComponentHealth{Healthy: false, LatencyMs: time.Since(start).Milliseconds(), Error: err.Error()}
	}

	return ComponentHealth{Healthy: true, LatencyMs: time.Since(start).Milliseconds()}
}
