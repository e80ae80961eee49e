package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"traveldocs-service/internal/domain/entity"
	"traveldocs-service/internal/domain/repository"
	"traveldocs-service/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// CachedHotelRepository is a read-through redis cache in front of the
// hotel catalog. Cache failures fall back to the underlying repository.
type CachedHotelRepository struct {
	inner  repository.HotelRepository
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewCachedHotelRepository creates a new cached hotel repository
func NewCachedHotelRepository(inner repository.HotelRepository, client *redis.Client, ttl time.Duration, logger logger.Logger) repository.HotelRepository {
	return &CachedHotelRepository{
		inner:  inner,
		redis:  client,
		ttl:    ttl,
		logger: logger,
	}
}

// ListAll returns the full hotel catalog
func (r *CachedHotelRepository) ListAll(ctx context.Context) ([]*entity.Hotel, error) {
	return r.fetch(ctx, "hotels:all", func() ([]*entity.Hotel, error) {
		return r.inner.ListAll(ctx)
	})
}

// FindByLocation returns hotels matching the location
func (r *CachedHotelRepository) FindByLocation(ctx context.Context, location string) ([]*entity.Hotel, error) {
	key := "hotels:location:" + strings.ToLower(location)
	return r.fetch(ctx, key, func() ([]*entity.Hotel, error) {
		return r.inner.FindByLocation(ctx, location)
	})
}

func (r *CachedHotelRepository) fetch(ctx context.Context, key string, load func() ([]*entity.Hotel, error)) ([]*entity.Hotel, error) {
	cached, err := r.redis.Get(ctx, key).Bytes()
	if err == nil {
		var hotels []*entity.Hotel
		if err := json.Unmarshal(cached, &hotels); err == nil {
			return hotels, nil
		}
		r.logger.Warn("Discarding undecodable cache entry", "key", key)
	} else if err != redis.Nil {
		r.logger.Warn("Cache read failed", "key", key, "error", err)
	}

	hotels, err := load()
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(hotels)
	if err == nil {
		if err := r.redis.SetEx(ctx, key, data, r.ttl).Err(); err != nil {
			r.logger.Warn("Cache write failed", "key", key, "error", err)
		}
	}

	return hotels, nil
}
