package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/config"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/handler"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/middleware"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/repository"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/service"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/worker"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	collectionRepo := repository.NewCollectionRepository(db)
	eventRepo := repository.NewEventRepository(db)
	labRepo := repository.NewLabResultRepository(db)
	batchRepo := repository.NewBatchRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	// Worker dispatcher — injected into services that enqueue audit jobs
	dispatcher := worker.NewDispatcher(rdb)

	collectionSvc := service.NewCollectionService(collectionRepo, eventRepo, labRepo, dispatcher)
	resolveSvc := service.NewResolveService(collectionRepo, eventRepo, labRepo, rdb)
	batchSvc := service.NewBatchService(batchRepo, collectionRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	collectionsH := handler.NewCollectionsHandler(collectionSvc)
	resolveH := handler.NewResolveHandler(resolveSvc)
	batchesH := handler.NewBatchesHandler(batchSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		v1.POST("/collections", collectionsH.Submit)
		v1.GET("/collections", collectionsH.List)
		v1.GET("/collections/:id", collectionsH.GetByID)
		v1.POST("/collections/:id/events", collectionsH.AppendEvent)
		v1.POST("/collections/:id/lab-results", collectionsH.AddLabResult)

		// Consumer-facing lookup — body and query forms behave identically
		v1.POST("/resolve", resolveH.Resolve)
		v1.GET("/resolve", resolveH.ResolveQuery)

		v1.POST("/batches", batchesH.Create)
		v1.GET("/batches/:id", batchesH.Get)
	}

	return r
}
