// Package cache provides a Redis read-through cache for catalog profiles.
//
// Simulation previews hit vehicle and driver lookups on every keystroke-level
// recompute from the UI, so profiles are cached per tenant with a short TTL.
// Catalog writes invalidate by ID.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"logiprofit/internal/core/id"
	"logiprofit/internal/core/tenant"
	"logiprofit/internal/domain/simulation"
	"logiprofit/pkg/logger"
)

// DefaultProfileTTL bounds staleness of cached catalog profiles.
const DefaultProfileTTL = 5 * time.Minute

// ProfileCache wraps simulation lookups with a Redis read-through layer.
// Cache failures degrade to the underlying lookup, never to an error.
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProfileCache creates a profile cache with the default TTL.
func NewProfileCache(client *redis.Client) *ProfileCache {
	return &ProfileCache{client: client, ttl: DefaultProfileTTL}
}

// NewProfileCacheWithTTL creates a profile cache with a custom TTL.
func NewProfileCacheWithTTL(client *redis.Client, ttl time.Duration) *ProfileCache {
	return &ProfileCache{client: client, ttl: ttl}
}

func (c *ProfileCache) key(ctx context.Context, kind string, entityID id.ID) string {
	return "profile:" + tenant.GetTenantID(ctx) + ":" + kind + ":" + entityID.String()
}

// VehicleLookup returns a lookup that consults Redis before the source.
func (c *ProfileCache) VehicleLookup(source simulation.VehicleLookup) simulation.VehicleLookup {
	return func(ctx context.Context, vehicleID id.ID) (*simulation.VehicleProfile, bool) {
		key := c.key(ctx, "vehicle", vehicleID)

		if data, err := c.client.Get(ctx, key).Bytes(); err == nil {
			var p simulation.VehicleProfile
			if err := json.Unmarshal(data, &p); err == nil {
				return &p, true
			}
		} else if err != redis.Nil {
			logger.Warn(ctx, "profile cache read failed", "key", key, "error", err)
		}

		p, ok := source(ctx, vehicleID)
		if !ok {
			return nil, false
		}

		c.store(ctx, key, p)
		return p, true
	}
}

// DriverLookup returns a lookup that consults Redis before the source.
func (c *ProfileCache) DriverLookup(source simulation.DriverLookup) simulation.DriverLookup {
	return func(ctx context.Context, driverID id.ID) (*simulation.DriverProfile, bool) {
		key := c.key(ctx, "driver", driverID)

		if data, err := c.client.Get(ctx, key).Bytes(); err == nil {
			var p simulation.DriverProfile
			if err := json.Unmarshal(data, &p); err == nil {
				return &p, true
			}
		} else if err != redis.Nil {
			logger.Warn(ctx, "profile cache read failed", "key", key, "error", err)
		}

		p, ok := source(ctx, driverID)
		if !ok {
			return nil, false
		}

		c.store(ctx, key, p)
		return p, true
	}
}

func (c *ProfileCache) store(ctx context.Context, key string, profile any) {
	data, err := json.Marshal(profile)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Warn(ctx, "profile cache write failed", "key", key, "error", err)
	}
}

// InvalidateVehicle drops the cached profile for a vehicle.
// Wire into the vehicle after-update and after-delete hooks.
func (c *ProfileCache) InvalidateVehicle(ctx context.Context, vehicleID id.ID) {
	c.invalidate(ctx, c.key(ctx, "vehicle", vehicleID))
}

// InvalidateDriver drops the cached profile for a driver.
func (c *ProfileCache) InvalidateDriver(ctx context.Context, driverID id.ID) {
	c.invalidate(ctx, c.key(ctx, "driver", driverID))
}

func (c *ProfileCache) invalidate(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		logger.Warn(ctx, "profile cache invalidation failed", "key", key, "error", err)
	}
}
