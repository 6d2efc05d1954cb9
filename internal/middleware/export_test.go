package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiterAt builds a rate limiter with a fixed clock.
func RateLimiterAt(cont Contador, limit int, window time.Duration, now func() time.Time) gin.HandlerFunc {
	return rateLimiter(cont, "test", limit, window, "Demasiadas solicitudes", now)
}
