package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"mimbres/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Contador counts hits on key within the window that started when the key
// was first incremented.
type Contador interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

type redisContador struct {
	rdb *redis.Client
}

// NewRedisContador returns a fixed-window counter shared by every replica.
func NewRedisContador(rdb *redis.Client) Contador {
	return &redisContador{rdb: rdb}
}

func (r *redisContador) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := r.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// RateLimiter allows limit requests per client IP per window. Keys are
// bucketed by window start, so each bucket expires on its own. Counter
// errors let the request through.
func RateLimiter(cont Contador, nombre string, limit int, window time.Duration, msg string) gin.HandlerFunc {
	return rateLimiter(cont, nombre, limit, window, msg, time.Now)
}

func rateLimiter(cont Contador, nombre string, limit int, window time.Duration, msg string, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		t := now()
		bucket := t.UnixNano() / int64(window)
		key := fmt.Sprintf("ratelimit:%s:%s:%d", nombre, c.ClientIP(), bucket)

		n, err := cont.Incr(c.Request.Context(), key, window)
		if err != nil {
			log.Warn().Err(err).Str("limiter", nombre).Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}
		if n > int64(limit) {
			fin := time.Unix(0, (bucket+1)*int64(window))
			c.Header("Retry-After", strconv.Itoa(int(fin.Sub(t).Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(msg))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter(cont Contador) gin.HandlerFunc {
	return RateLimiter(cont, "login", 20, time.Minute, "Demasiados intentos de login. Intente en 1 minuto.")
}

// PedidosRateLimiter limits public web orders to 30 per minute per IP.
func PedidosRateLimiter(cont Contador) gin.HandlerFunc {
	return RateLimiter(cont, "pedidos", 30, time.Minute, "Demasiadas solicitudes. Intente nuevamente en un momento.")
}
