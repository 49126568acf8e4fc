// Package cache caché opcional de saldos materializados en Redis (cache-aside).
// Solo la usan las lecturas; la admisión de salidas siempre lee el libro dentro de la transacción.
package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

var (
	_ inventory.BalanceReader = (*BalanceCache)(nil)
	_ inventory.MovementHook  = (*BalanceCache)(nil)
)

// Client subconjunto de redis.Cmdable que usa la caché (*redis.Client lo cumple).
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// BalanceCache guarda el saldo por producto con TTL y lo invalida tras cada movimiento.
type BalanceCache struct {
	client Client
	source inventory.BalanceReader
	ttl    time.Duration
	group  singleflight.Group
	log    *logger.Logger
}

// NewBalanceCache envuelve source (normalmente el repositorio de movimientos).
func NewBalanceCache(client Client, source inventory.BalanceReader, ttl time.Duration, log *logger.Logger) *BalanceCache {
	if log == nil {
		log = logger.Nop()
	}
	return &BalanceCache{client: client, source: source, ttl: ttl, log: log.Component("balance_cache")}
}

// NewRedisClient crea el cliente y verifica la conexión.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// El valor se guarda bajo la versión vigente del producto y cada movimiento la incrementa.
// Un Set tardío de un lector que calculó antes del commit queda en una clave que nadie
// vuelve a leer y expira con el TTL.
func versionKey(productID int64) string {
	return "stock:balance:ver:" + strconv.FormatInt(productID, 10)
}

func balanceKey(productID, version int64) string {
	return "stock:balance:" + strconv.FormatInt(productID, 10) + ":v" + strconv.FormatInt(version, 10)
}

// Balance devuelve el saldo cacheado o lo recalcula. Si Redis falla se lee directo del libro.
func (c *BalanceCache) Balance(ctx context.Context, productID int64) (int64, error) {
	version, _, err := c.get(ctx, versionKey(productID))
	if err != nil {
		return c.source.Balance(ctx, productID)
	}
	key := balanceKey(productID, version)
	if v, ok, err := c.get(ctx, key); err == nil && ok {
		return v, nil
	}

	// singleflight colapsa fallos concurrentes de la misma clave en una sola consulta.
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		fresh, err := c.source.Balance(ctx, productID)
		if err != nil {
			return int64(0), err
		}
		if err := c.client.Set(ctx, key, fresh, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Int64("product_id", productID).Msg("no se pudo cachear el saldo")
		}
		return fresh, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

// get lee un entero. Clave ausente => (0, false, nil).
func (c *BalanceCache) get(ctx context.Context, key string) (int64, bool, error) {
	raw, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("lectura de caché fallida")
		return 0, false, err
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

// MovementAppended invalida el saldo del producto pasando a la versión siguiente.
func (c *BalanceCache) MovementAppended(ctx context.Context, movement *entity.StockMovement) {
	if err := c.client.Incr(ctx, versionKey(movement.ProductID)).Err(); err != nil {
		c.log.Error().Err(err).Int64("product_id", movement.ProductID).Msg("no se pudo invalidar el saldo cacheado")
	}
}

// MovementRejected no cambia el libro.
func (c *BalanceCache) MovementRejected(context.Context, int64, error) {}
