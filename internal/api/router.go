package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"repair-workshop-backend/internal/mw"
)

// RouterConfig bundles the tunables the router needs.
type RouterConfig struct {
	RateLimitPerSec float64
	RateLimitBurst  int
	CacheTTL        time.Duration
}

// NewRouter creates and configures a new Gin router.
func NewRouter(handler *Handler, cfg RouterConfig) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)
	cacheStore := cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	caching := mw.Cache(cacheStore, cfg.CacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/status", handler.GetStatus)

		api.GET("/devices", caching, handler.ListDevices)
		api.POST("/devices", caching, handler.CreateDevice)
		api.PUT("/devices/:id", caching, handler.UpdateDevice)
		api.DELETE("/devices/:id", caching, handler.DeleteDevice)
		api.GET("/devices/:id/documents/:kind", handler.GetDocument)

		api.GET("/parts", caching, handler.ListParts)
		api.POST("/parts", caching, handler.CreatePart)
		api.PUT("/parts/:id", caching, handler.UpdatePart)
		api.DELETE("/parts/:id", caching, handler.DeletePart)
		api.GET("/parts/export", handler.ExportParts)

		api.GET("/catalog/parts", caching, handler.GetPartCatalog)

		api.POST("/advice", handler.GetAdvice)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
