package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventario-concesionarios/internal/application/inventory"
	"github.com/jhoicas/inventario-concesionarios/pkg/logger"
)

const cacheKeyPrefix = "catalog:variants:"

var _ inventory.CatalogResolver = (*CachedResolver)(nil)

// CachedResolver decora un CatalogResolver con Redis. Solo se cachean respuestas exitosas
// (incluida la lista vacía); un fallo de Redis cae a la consulta en vivo.
type CachedResolver struct {
	next  inventory.CatalogResolver
	redis *redis.Client
	ttl   time.Duration
	log   *logger.Logger
}

// NewCachedResolver construye el decorador. log puede ser nil.
func NewCachedResolver(next inventory.CatalogResolver, client *redis.Client, ttl time.Duration, log *logger.Logger) *CachedResolver {
	if log == nil {
		log = logger.Nop()
	}
	return &CachedResolver{next: next, redis: client, ttl: ttl, log: log}
}

// normalizeKeyword forma usada tanto en la clave como en la consulta en vivo.
func normalizeKeyword(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

func cacheKey(keyword string) string {
	return cacheKeyPrefix + normalizeKeyword(keyword)
}

func (c *CachedResolver) ResolveVariantIDs(ctx context.Context, keyword string) ([]int64, error) {
	keyword = normalizeKeyword(keyword)
	key := cacheKeyPrefix + keyword

	val, err := c.redis.Get(ctx, key).Result()
	switch {
	case err == nil:
		var ids []int64
		if jsonErr := json.Unmarshal([]byte(val), &ids); jsonErr == nil {
			return ids, nil
		}
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("key", key).Msg("redis no disponible, consultando catálogo")
	}

	ids, err := c.next.ResolveVariantIDs(ctx, keyword)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(ids); err == nil {
		if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("no se pudo cachear resolución de catálogo")
		}
	}
	return ids, nil
}
