package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"segurauto-backend/internal/domain"
)

// ErrMiss is returned when a key is absent. Callers fall through to the
// authoritative source; a miss is never a failure.
var ErrMiss = errors.New("cache miss")

const keyPrefix = "segurauto"

// Cache is a thin redis-backed JSON cache. It mirrors the tier catalog for
// display and memoizes VIN decoder responses; it is never the pricing
// authority.
type Cache struct {
	client *redis.Client
}

func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// NewClient builds a redis client from connection settings.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (c *Cache) Get(ctx context.Context, key string, dest any) error {
	data, err := c.client.Get(ctx, buildKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrMiss
		}
		return fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("cache unmarshal: %w", err)
	}
	return nil
}

func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, buildKey(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, buildKey(key)).Err()
}

// GetDecodedVehicle returns a memoized decoder response, or ErrMiss.
func (c *Cache) GetDecodedVehicle(ctx context.Context, vin string) (*domain.VehicleAttributes, error) {
	var attrs domain.VehicleAttributes
	if err := c.Get(ctx, "decoder:"+vin, &attrs); err != nil {
		return nil, err
	}
	return &attrs, nil
}

func (c *Cache) SetDecodedVehicle(ctx context.Context, vin string, attrs *domain.VehicleAttributes, ttl time.Duration) error {
	return c.Set(ctx, "decoder:"+vin, attrs, ttl)
}

// MirrorTierCatalog stores a display copy of the static catalog. Readers that
// miss fall back to domain.TierCatalog() directly.
func (c *Cache) MirrorTierCatalog(ctx context.Context, ttl time.Duration) error {
	return c.Set(ctx, "catalog:tiers", domain.TierCatalog(), ttl)
}

func (c *Cache) GetTierCatalog(ctx context.Context) ([]domain.CoverageTier, error) {
	var tiers []domain.CoverageTier
	if err := c.Get(ctx, "catalog:tiers", &tiers); err != nil {
		return nil, err
	}
	return tiers, nil
}

func (c *Cache) HealthCheck(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func buildKey(key string) string {
	return fmt.Sprintf("%s:%s", keyPrefix, key)
}
