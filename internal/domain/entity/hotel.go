package entity

import (
	"time"

	"gorm.io/gorm"
)

// Hotel is one offering from the hotel catalog.
type Hotel struct {
	ID        uint      `json:"id,omitempty"`
	Name      string    `json:"hotel_name"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	Rate      float64   `json:"rate"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	DeletedAt gorm.DeletedAt `json:"-"`
}
