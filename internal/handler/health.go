package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const healthCheckTimeout = 3 * time.Second

// Health reports liveness of the two backing stores. Anything beyond up/down
// (versions, pool stats, DSNs) stays out of the response.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		pgUp := pingPostgres(ctx, db)
		redisUp := rdb.Ping(ctx).Err() == nil

		code := http.StatusOK
		status := "ok"
		if !pgUp || !redisUp {
			code = http.StatusServiceUnavailable
			status = "degraded"
		}

		c.JSON(code, gin.H{
			"status":   status,
			"postgres": upDown(pgUp),
			"redis":    upDown(redisUp),
		})
	}
}

func pingPostgres(ctx context.Context, db *gorm.DB) bool {
	sqlDB, err := db.DB()
	if err != nil {
		return false
	}
	return sqlDB.PingContext(ctx) == nil
}

func upDown(up bool) string {
	if up {
		return "up"
	}
	return "down"
}
