package repository

import (
	"context"

	"traveldocs-service/internal/domain/entity"
)

// HotelRepository defines the interface for the hotel catalog
type HotelRepository interface {
	ListAll(ctx context.Context) ([]*entity.Hotel, error)
	FindByLocation(ctx context.Context, location string) ([]*entity.Hotel, error)
}
