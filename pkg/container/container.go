package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"people-service/internal/config"
	"people-service/internal/domains/person"
	personHandler "people-service/internal/domains/person/handler"
	personRepo "people-service/internal/domains/person/repository"
	personService "people-service/internal/domains/person/service"
	infraCache "people-service/internal/infrastructure/cache"
	"people-service/pkg/cache"
	"people-service/pkg/logger"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application.
// Nothing below reads package level state: every layer gets what it needs
// through its constructor.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config *config.Config
	Cache  cache.Cache // nil when REDIS_URL is empty or Redis is down

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================
	PersonRepo person.Repository

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================
	PersonService person.Service

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	PersonHandler *personHandler.PersonHandler

	redis *infraCache.RedisCache
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph
//
// Thứ tự initialization:
// 1. Config
// 2. Record store (+ optional Redis cache)
// 3. Service
// 4. Handler
func NewContainer(cfg *config.Config) (*Container, error) {
	log.Info().Msg("🔧 Initializing DI Container...")

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: CONNECT RECORD STORE
	// ========================================
	log.Info().Msg("🗄️  Connecting to record store...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := personRepo.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}
	log.Info().Msg("✅ Record store connected")

	// ========================================
	// STEP 2: INITIALIZE CACHE (optional)
	// ========================================
	if cfg.Redis.URL != "" {
		log.Info().Msg("🔴 Connecting to Redis...")
		c.initCache(ctx)
	}

	if c.Cache != nil {
		logger.Debug("Wrapping record store with read-through cache")
		repo = personRepo.NewCachedRepository(repo, c.Cache, cfg.Redis.CacheTTL)
	}
	c.PersonRepo = repo

	// ========================================
	// STEP 3: SERVICES + HANDLERS
	// ========================================
	c.PersonService = personService.NewPersonService(c.PersonRepo)
	c.PersonHandler = personHandler.NewPersonHandler(c.PersonService)

	log.Info().Msg("🎉 DI Container initialized successfully")
	return c, nil
}

// initCache connects Redis. Redis failure không critical - log warning và continue
func (c *Container) initCache(ctx context.Context) {
	rc, err := infraCache.NewRedisCache(c.Config.Redis.URL)
	if err != nil {
		logger.Warn("⚠️  Redis disabled (non-critical)", err)
		return
	}

	if err := rc.Connect(ctx); err != nil {
		logger.Warn("⚠️  Redis connection failed (non-critical)", err)
		_ = rc.Close()
		return
	}

	c.redis = rc
	c.Cache = rc
	logger.Info("✅ Redis connected", map[string]interface{}{
		"ttl": c.Config.Redis.CacheTTL.String(),
	})
}

// HealthCheck pings the record store and, when configured, the cache
func (c *Container) HealthCheck(ctx context.Context) map[string]string {
	status := map[string]string{
		"database": "ok",
	}

	if err := c.PersonRepo.Ping(ctx); err != nil {
		status["database"] = err.Error()
	}

	if c.Cache != nil {
		status["cache"] = "ok"
		if err := c.Cache.Ping(ctx); err != nil {
			status["cache"] = err.Error()
		}
	}

	return status
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.PersonRepo != nil {
		if err := c.PersonRepo.Close(); err != nil {
			logger.Error("Failed to close record store", err)
		} else {
			log.Info().Msg("✅ Record store closed")
		}
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			logger.Error("Failed to close Redis", err)
		} else {
			log.Info().Msg("✅ Redis connections closed")
		}
	}

	log.Info().Msg("✅ Container cleanup completed")
}
