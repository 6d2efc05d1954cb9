package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	keyCatalogoVersion = "catalogo:version"
	keyCatalogo        = "catalogo:v%d:%s"
)

// CatalogoCache is a cache-aside store for public catalog responses. Keys embed
// a version number; Invalidar bumps it so every key written before the bump
// becomes unreachable and simply expires.
type CatalogoCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCatalogoCache(rdb *redis.Client, ttl time.Duration) *CatalogoCache {
	return &CatalogoCache{rdb: rdb, ttl: ttl}
}

// Version returns the current catalog version (0 before the first write).
func (c *CatalogoCache) Version(ctx context.Context) (int64, error) {
	v, err := c.rdb.Get(ctx, keyCatalogoVersion).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// Get decodes the cached value for clave into dest. It reports false on a miss
// or on any Redis/JSON error.
func (c *CatalogoCache) Get(ctx context.Context, version int64, clave string, dest any) bool {
	b, err := c.rdb.Get(ctx, fmt.Sprintf(keyCatalogo, version, clave)).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(b, dest) == nil
}

// Set stores v under clave for the given version. Best effort.
func (c *CatalogoCache) Set(ctx context.Context, version int64, clave string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, fmt.Sprintf(keyCatalogo, version, clave), b, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("clave", clave).Msg("catalogo cache set failed")
	}
}

// Invalidar bumps the catalog version.
func (c *CatalogoCache) Invalidar(ctx context.Context) {
	if err := c.rdb.Incr(ctx, keyCatalogoVersion).Err(); err != nil {
		log.Warn().Err(err).Msg("catalogo cache invalidation failed")
	}
}
