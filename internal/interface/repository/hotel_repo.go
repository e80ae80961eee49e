package repository

import (
	"context"
	"fmt"
	"time"

	"traveldocs-service/internal/domain/entity"
	"traveldocs-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormHotelRepository implements the HotelRepository interface
type GormHotelRepository struct {
	db *gorm.DB
}

// NewGormHotelRepository creates a new GORM hotel repository
func NewGormHotelRepository(db *gorm.DB) repository.HotelRepository {
	return &GormHotelRepository{
		db: db,
	}
}

// HotelList GORM model for database mapping
type HotelList struct {
	ID        uint           `gorm:"primaryKey"`
	Name      string         `gorm:"column:hotel_name"`
	City      string         `gorm:"column:city"`
	Country   string         `gorm:"column:country"`
	Rate      float64        `gorm:"column:rate"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (HotelList) TableName() string {
	return "m_hotel_list"
}

// ListAll returns the full hotel catalog
func (r *GormHotelRepository) ListAll(ctx context.Context) ([]*entity.Hotel, error) {
	var rows []HotelList
	result := r.db.WithContext(ctx).Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("listing hotels: %w", result.Error)
	}
	return hotelsToEntities(rows), nil
}

// FindByLocation returns hotels whose city or country matches location,
// case-insensitively.
func (r *GormHotelRepository) FindByLocation(ctx context.Context, location string) ([]*entity.Hotel, error) {
	var rows []HotelList
	result := r.db.WithContext(ctx).
		Where("LOWER(city) = LOWER(?) OR LOWER(country) = LOWER(?)", location, location).
		Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("finding hotels for %q: %w", location, result.Error)
	}
	return hotelsToEntities(rows), nil
}

func hotelsToEntities(rows []HotelList) []*entity.Hotel {
	hotels := make([]*entity.Hotel, 0, len(rows))
	for _, row := range rows {
		// Convert GORM model to domain entity
		hotels = append(hotels, &entity.Hotel{
			ID:        row.ID,
			Name:      row.Name,
			City:      row.City,
			Country:   row.Country,
			Rate:      row.Rate,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
			DeletedAt: row.DeletedAt,
		})
	}
	return hotels
}
