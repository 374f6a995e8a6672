package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/JPostigo48/FigurAndoBackend/internal/application/usecase"
	"github.com/JPostigo48/FigurAndoBackend/internal/domain/entity"
	"github.com/JPostigo48/FigurAndoBackend/pkg/config"
)

var _ usecase.CatalogCache = (*CatalogCache)(nil)

// TTL del catálogo: es un dato que cambia poco y toda mutación invalida.
const catalogTTL = 10 * time.Minute

// CatalogCache cache de lectura en Redis para álbumes y figuras por álbum.
// singleflight colapsa los misses concurrentes de una misma clave en una
// sola carga contra la base.
type CatalogCache struct {
	rdb *redis.Client
	sf  singleflight.Group
}

// NewClient crea el cliente Redis según configuración y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

// NewCatalogCache construye el cache sobre un cliente Redis.
func NewCatalogCache(rdb *redis.Client) *CatalogCache {
	return &CatalogCache{rdb: rdb}
}

// Albumes devuelve la lista completa de álbumes, cargándola en un miss.
func (c *CatalogCache) Albumes(ctx context.Context, load func(context.Context) ([]*entity.Album, error)) ([]*entity.Album, error) {
	return getOrLoad(ctx, c, keyAlbumes, load)
}

// Album devuelve un álbum por ID, cargándolo en un miss. Un load que
// devuelve error (p. ej. no encontrado) no se cachea.
func (c *CatalogCache) Album(ctx context.Context, id string, load func(context.Context) (*entity.Album, error)) (*entity.Album, error) {
	return getOrLoad(ctx, c, keyAlbum(id), load)
}

// FigurasByAlbum devuelve las figuras de un álbum, cargándolas en un miss.
func (c *CatalogCache) FigurasByAlbum(ctx context.Context, albumID string, load func(context.Context) ([]*entity.Figura, error)) ([]*entity.Figura, error) {
	return getOrLoad(ctx, c, keyFigurasByAlbum(albumID), load)
}

// InvalidateAlbum borra el álbum, su lista de figuras y el listado global.
func (c *CatalogCache) InvalidateAlbum(ctx context.Context, albumID string) error {
	return c.rdb.Del(ctx, keyAlbum(albumID), keyFigurasByAlbum(albumID), keyAlbumes).Err()
}

// InvalidateAlbumes borra solo el listado global.
func (c *CatalogCache) InvalidateAlbumes(ctx context.Context) error {
	return c.rdb.Del(ctx, keyAlbumes).Err()
}

func getOrLoad[T any](ctx context.Context, c *CatalogCache, key string, load func(context.Context) (T, error)) (T, error) {
	var zero T

	if v, ok, err := getJSON[T](ctx, c, key); err == nil && ok {
		return v, nil
	}

	vAny, err, _ := c.sf.Do(key, func() (any, error) {
		if v, ok, err := getJSON[T](ctx, c, key); err == nil && ok {
			return v, nil
		}
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		// Fallo al escribir el cache no invalida la lectura.
		if b, err := json.Marshal(v); err == nil {
			_ = c.rdb.Set(ctx, key, b, catalogTTL).Err()
		}
		return v, nil
	})
	if err != nil {
		return zero, err
	}
	v, ok := vAny.(T)
	if !ok {
		return zero, nil
	}
	return v, nil
}

func getJSON[T any](ctx context.Context, c *CatalogCache, key string) (T, bool, error) {
	var zero T
	s, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}
	var out T
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return zero, false, err
	}
	return out, true, nil
}
