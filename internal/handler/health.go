package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// HealthCheck is one named dependency probe.
type HealthCheck struct {
	Nombre string
	Ping   func(ctx context.Context) error
}

func DBCheck(db *gorm.DB) HealthCheck {
	return HealthCheck{Nombre: "db", Ping: func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}}
}

func RedisCheck(rdb *redis.Client) HealthCheck {
	return HealthCheck{Nombre: "redis", Ping: func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}}
}

// Health returns a JSON health check response.
// Runs every probe; never exposes credentials or internals.
func Health(checks ...HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		body := gin.H{}
		status := http.StatusOK
		for _, chk := range checks {
			if err := chk.Ping(ctx); err != nil {
				body[chk.Nombre] = "error"
				status = http.StatusServiceUnavailable
				continue
			}
			body[chk.Nombre] = "connected"
		}
		body["ok"] = status == http.StatusOK
		c.JSON(status, body)
	}
}
