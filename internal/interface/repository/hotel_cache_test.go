package repository_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traveldocs-service/internal/domain/entity"
	"traveldocs-service/internal/interface/repository"
	"traveldocs-service/pkg/logger"
)

type staticHotelRepo struct {
	hotels []*entity.Hotel
	err    error
	calls  int
}

func (s *staticHotelRepo) ListAll(_ context.Context) ([]*entity.Hotel, error) {
	s.calls++
	return s.hotels, s.err
}

func (s *staticHotelRepo) FindByLocation(_ context.Context, _ string) ([]*entity.Hotel, error) {
	s.calls++
	return s.hotels, s.err
}

func catalogFixture() []*entity.Hotel {
	return []*entity.Hotel{
		{ID: 1, Name: "Hotel Lumiere", City: "Paris", Country: "France", Rate: 120},
		{ID: 2, Name: "Berlin Grand", City: "Berlin", Country: "Germany", Rate: 95},
	}
}

func TestCachedHotelRepository(t *testing.T) {
	log := logger.NewNopLogger()
	ttl := 5 * time.Minute

	t.Run("should load from the inner repository and fill the cache on a miss", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		inner := &staticHotelRepo{hotels: catalogFixture()}
		payload, _ := json.Marshal(inner.hotels)

		mock.ExpectGet("hotels:all").RedisNil()
		mock.ExpectSetEx("hotels:all", payload, ttl).SetVal("OK")

		repo := repository.NewCachedHotelRepository(inner, client, ttl, log)
		hotels, err := repo.ListAll(context.Background())

		require.NoError(t, err)
		assert.Len(t, hotels, 2)
		assert.Equal(t, 1, inner.calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should serve a hit without touching the inner repository", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		inner := &staticHotelRepo{hotels: catalogFixture()}
		payload, _ := json.Marshal(catalogFixture())

		mock.ExpectGet("hotels:all").SetVal(string(payload))

		repo := repository.NewCachedHotelRepository(inner, client, ttl, log)
		hotels, err := repo.ListAll(context.Background())

		require.NoError(t, err)
		assert.Len(t, hotels, 2)
		assert.Equal(t, 0, inner.calls)
	})

	t.Run("should lowercase the location cache key", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		inner := &staticHotelRepo{hotels: catalogFixture()[:1]}
		payload, _ := json.Marshal(inner.hotels)

		mock.ExpectGet("hotels:location:paris").RedisNil()
		mock.ExpectSetEx("hotels:location:paris", payload, ttl).SetVal("OK")

		repo := repository.NewCachedHotelRepository(inner, client, ttl, log)
		_, err := repo.FindByLocation(context.Background(), "Paris")

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should fall back to the inner repository when redis fails", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		inner := &staticHotelRepo{hotels: catalogFixture()}
		payload, _ := json.Marshal(inner.hotels)

		mock.ExpectGet("hotels:all").SetErr(errors.New("connection refused"))
		mock.ExpectSetEx("hotels:all", payload, ttl).SetErr(errors.New("connection refused"))

		repo := repository.NewCachedHotelRepository(inner, client, ttl, log)
		hotels, err := repo.ListAll(context.Background())

		require.NoError(t, err)
		assert.Len(t, hotels, 2)
		assert.Equal(t, 1, inner.calls)
	})

	t.Run("should reload when the cached entry is undecodable", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		inner := &staticHotelRepo{hotels: catalogFixture()}
		payload, _ := json.Marshal(inner.hotels)

		mock.ExpectGet("hotels:all").SetVal("{not json")
		mock.ExpectSetEx("hotels:all", payload, ttl).SetVal("OK")

		repo := repository.NewCachedHotelRepository(inner, client, ttl, log)
		hotels, err := repo.ListAll(context.Background())

		require.NoError(t, err)
		assert.Len(t, hotels, 2)
		assert.Equal(t, 1, inner.calls)
	})

	t.Run("should propagate inner repository errors", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		inner := &staticHotelRepo{err: errors.New("pg down")}

		mock.ExpectGet("hotels:all").RedisNil()

		repo := repository.NewCachedHotelRepository(inner, client, ttl, log)
		_, err := repo.ListAll(context.Background())
		assert.Error(t, err)
	})
}
