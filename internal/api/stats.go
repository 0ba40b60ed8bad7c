package api

import (
	"context"                           // Context for Redis operations
	"net/http"                          // HTTP status codes
	"time"                              // Time durations
	"vehicle_registry/internal/service" // CRUD orchestrators
	"vehicle_registry/internal/utils"   // Redis cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// VehiclesByBrandHandler returns vehicle counts grouped by brand, cached in
// Redis. Pass-through aggregation, no core logic.
func VehiclesByBrandHandler(svc *service.VehicleService, rdb *redis.Client) gin.HandlerFunc {
	return statsHandler("stats:vehicles:brand", svc.StatsByBrand, rdb)
}

// VehiclesByColorHandler returns vehicle counts grouped by color, cached in
// Redis.
func VehiclesByColorHandler(svc *service.VehicleService, rdb *redis.Client) gin.HandlerFunc {
	return statsHandler("stats:vehicles:color", svc.StatsByColor, rdb)
}

func statsHandler(cacheKey string, load func() (map[string]int64, error), rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		var cached map[string]int64
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"data": cached, "cached": true})
			return
		}
		data, err := load()
		if err != nil {
			writeError(c, err)
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, data, 60*time.Second)
		c.JSON(http.StatusOK, gin.H{"data": data, "cached": false})
	}
}
