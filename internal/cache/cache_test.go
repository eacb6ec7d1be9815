package cache

import (
	"context"
	"testing"
	"time"

	"segurauto-backend/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	return New(NewClient(mr.Addr(), "", 0))
}

func TestCache_DecodedVehicle(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	t.Run("Miss before set", func(t *testing.T) {
		_, err := c.GetDecodedVehicle(ctx, "1HGCM82633A123456")
		assert.ErrorIs(t, err, ErrMiss)
	})

	t.Run("Round trip", func(t *testing.T) {
		attrs := &domain.VehicleAttributes{
			ModelYear: 2024,
			Make:      "BMW",
			Model:     "X5",
			VIN:       "1HGCM82633A123456",
		}
		err := c.SetDecodedVehicle(ctx, attrs.VIN, attrs, time.Hour)
		assert.NoError(t, err)

		got, err := c.GetDecodedVehicle(ctx, attrs.VIN)
		assert.NoError(t, err)
		assert.Equal(t, attrs, got)
	})
}

func TestCache_TierCatalogMirror(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	t.Run("Miss before mirror", func(t *testing.T) {
		_, err := c.GetTierCatalog(ctx)
		assert.ErrorIs(t, err, ErrMiss)
	})

	t.Run("Mirror matches the static catalog", func(t *testing.T) {
		assert.NoError(t, c.MirrorTierCatalog(ctx, time.Hour))

		tiers, err := c.GetTierCatalog(ctx)
		assert.NoError(t, err)
		assert.Equal(t, domain.TierCatalog(), tiers)
	})
}

func TestCache_Delete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "k", "v", time.Hour))
	assert.NoError(t, c.Delete(ctx, "k"))

	var s string
	assert.ErrorIs(t, c.Get(ctx, "k", &s), ErrMiss)
}
