package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const healthProbeTimeout = 3 * time.Second

// Health reports whether the ledger can take writes. Postgres holds the
// records and Redis backs the audit queue and resolve cache; either one
// failing degrades the service, so both are pinged on every probe.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthProbeTimeout)
		defer cancel()

		deps := gin.H{
			"store": pingStore(ctx, db),
			"queue": pingQueue(ctx, rdb),
		}

		status := http.StatusOK
		for _, up := range []any{deps["store"], deps["queue"]} {
			if up != "up" {
				status = http.StatusServiceUnavailable
			}
		}

		c.JSON(status, gin.H{
			"status":       statusWord(status),
			"dependencies": deps,
		})
	}
}

func pingStore(ctx context.Context, db *gorm.DB) string {
	sqlDB, err := db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		return "down"
	}
	return "up"
}

func pingQueue(ctx context.Context, rdb *redis.Client) string {
	if rdb.Ping(ctx).Err() != nil {
		return "down"
	}
	return "up"
}

func statusWord(code int) string {
	if code == http.StatusOK {
		return "ok"
	}
	return "degraded"
}
