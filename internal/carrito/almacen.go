package carrito

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyCarrito = "carrito:%s"

	// Attempts of an optimistic update before giving up.
	maxIntentos = 5
)

// ErrConcurrente is returned by Actualizar when the cart kept changing
// underneath every attempt.
var ErrConcurrente = errors.New("carrito modificado concurrentemente")

// Almacen persists carts by id. A cart that was never saved, or has expired,
// reads as empty.
type Almacen interface {
	Obtener(ctx context.Context, id string) (Estado, error)
	Guardar(ctx context.Context, id string, e Estado) error
	// Actualizar reads the cart, applies fn and writes the result only if the
	// cart did not change in between. Errors from fn are returned unchanged.
	Actualizar(ctx context.Context, id string, fn func(Estado) (Estado, error)) (Estado, error)
	Eliminar(ctx context.Context, id string) error
}

// RedisAlmacen stores each cart as JSON with a sliding TTL.
type RedisAlmacen struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisAlmacen(rdb *redis.Client, ttl time.Duration) *RedisAlmacen {
	return &RedisAlmacen{rdb: rdb, ttl: ttl}
}

func (a *RedisAlmacen) Obtener(ctx context.Context, id string) (Estado, error) {
	return leer(ctx, a.rdb, fmt.Sprintf(keyCarrito, id))
}

// lector is satisfied by both *redis.Client and *redis.Tx.
type lector interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func leer(ctx context.Context, c lector, key string) (Estado, error) {
	b, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Estado{Items: []Item{}}, nil
	}
	if err != nil {
		return Estado{}, fmt.Errorf("carrito: get: %w", err)
	}
	var e Estado
	if err := json.Unmarshal(b, &e); err != nil {
		return Estado{}, fmt.Errorf("carrito: decode: %w", err)
	}
	if e.Items == nil {
		e.Items = []Item{}
	}
	return e, nil
}

func (a *RedisAlmacen) Guardar(ctx context.Context, id string, e Estado) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return a.rdb.Set(ctx, fmt.Sprintf(keyCarrito, id), b, a.ttl).Err()
}

func (a *RedisAlmacen) Eliminar(ctx context.Context, id string) error {
	return a.rdb.Del(ctx, fmt.Sprintf(keyCarrito, id)).Err()
}

// Actualizar uses WATCH on the cart key; a concurrent write aborts the
// MULTI/EXEC and the whole read-modify-write is retried.
func (a *RedisAlmacen) Actualizar(ctx context.Context, id string, fn func(Estado) (Estado, error)) (Estado, error) {
	key := fmt.Sprintf(keyCarrito, id)
	var next Estado
	txf := func(tx *redis.Tx) error {
		e, err := leer(ctx, tx, key)
		if err != nil {
			return err
		}
		next, err = fn(e)
		if err != nil {
			return err
		}
		b, err := json.Marshal(next)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, a.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxIntentos; i++ {
		err := a.rdb.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return Estado{}, err
		}
		return next, nil
	}
	return Estado{}, ErrConcurrente
}
