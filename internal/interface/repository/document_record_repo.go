package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"traveldocs-service/internal/domain/entity"
	"traveldocs-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormDocumentRecordRepository implements the DocumentRecordRepository interface
type GormDocumentRecordRepository struct {
	db *gorm.DB
}

// NewGormDocumentRecordRepository creates a new GORM document record repository
func NewGormDocumentRecordRepository(db *gorm.DB) repository.DocumentRecordRepository {
	return &GormDocumentRecordRepository{
		db: db,
	}
}

// TravelRecords GORM model for database mapping. Trip legs, guests,
// selected targets and the URL map are stored as jsonb payloads.
type TravelRecords struct {
	UUID           string `gorm:"column:uuid;primaryKey"`
	PassengerName  string `gorm:"column:passenger_name"`
	Hometown       string `gorm:"column:hometown"`
	Age            int    `gorm:"column:age"`
	Gender         string `gorm:"column:gender"`
	JobTitle       string `gorm:"column:job_title"`
	CompanyName    string `gorm:"column:company_name"`
	JoiningDate    string `gorm:"column:joining_date"`
	PassportNumber string `gorm:"column:passport_number"`
	PhoneNumber    string `gorm:"column:phone_number"`
	FlightCost     float64 `gorm:"column:flight_cost"`
	Trips          []byte  `gorm:"column:trips;type:jsonb"`
	FamilyMembers  []byte  `gorm:"column:family_members;type:jsonb"`
	SelectedHotel  string  `gorm:"column:selected_hotel"`
	Documents      []byte  `gorm:"column:documents;type:jsonb"`
	DocumentURLs   []byte  `gorm:"column:document_urls;type:jsonb"`
	CreatedAt      time.Time
}

// TableName overrides the default table name
func (TravelRecords) TableName() string {
	return "travel_records"
}

// Insert writes a generation record. Records are insert-only.
func (r *GormDocumentRecordRepository) Insert(ctx context.Context, record *entity.DocumentRecord) error {
	row, err := toRow(record)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Create(row)
	if result.Error != nil {
		return fmt.Errorf("inserting travel record %s: %w", record.ID, result.Error)
	}
	return nil
}

// ListRecent returns the newest records first, up to limit rows.
func (r *GormDocumentRecordRepository) ListRecent(ctx context.Context, limit int) ([]*entity.DocumentRecord, error) {
	var rows []TravelRecords
	result := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("listing travel records: %w", result.Error)
	}

	records := make([]*entity.DocumentRecord, 0, len(rows))
	for i := range rows {
		record, err := toEntity(&rows[i])
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func toRow(record *entity.DocumentRecord) (*TravelRecords, error) {
	trips, err := json.Marshal(record.Trips)
	if err != nil {
		return nil, fmt.Errorf("marshaling trips: %w", err)
	}
	guests, err := json.Marshal(record.Guests)
	if err != nil {
		return nil, fmt.Errorf("marshaling guests: %w", err)
	}
	targets, err := json.Marshal(record.Targets)
	if err != nil {
		return nil, fmt.Errorf("marshaling documents: %w", err)
	}
	urls, err := json.Marshal(record.DocumentURLs)
	if err != nil {
		return nil, fmt.Errorf("marshaling document urls: %w", err)
	}

	joining := ""
	if !record.JoiningDate.IsZero() {
		joining = record.JoiningDate.Format("2006-01-02")
	}

	return &TravelRecords{
		UUID:           record.ID,
		PassengerName:  record.PassengerName,
		Hometown:       record.Hometown,
		Age:            record.Age,
		Gender:         record.Gender,
		JobTitle:       record.JobTitle,
		CompanyName:    record.CompanyName,
		JoiningDate:    joining,
		PassportNumber: record.PassportNumber,
		PhoneNumber:    record.PhoneNumber,
		FlightCost:     record.FlightCost,
		Trips:          trips,
		FamilyMembers:  guests,
		SelectedHotel:  record.SelectedHotels,
		Documents:      targets,
		DocumentURLs:   urls,
		CreatedAt:      record.CreatedAt,
	}, nil
}

func toEntity(row *TravelRecords) (*entity.DocumentRecord, error) {
	record := &entity.DocumentRecord{
		ID:             row.UUID,
		PassengerName:  row.PassengerName,
		Hometown:       row.Hometown,
		Age:            row.Age,
		Gender:         row.Gender,
		JobTitle:       row.JobTitle,
		CompanyName:    row.CompanyName,
		PassportNumber: row.PassportNumber,
		PhoneNumber:    row.PhoneNumber,
		FlightCost:     row.FlightCost,
		SelectedHotels: row.SelectedHotel,
		CreatedAt:      row.CreatedAt,
	}

	if row.JoiningDate != "" {
		t, err := time.Parse("2006-01-02", row.JoiningDate)
		if err == nil {
			record.JoiningDate = entity.Date{Time: t}
		}
	}
	if len(row.Trips) > 0 {
		if err := json.Unmarshal(row.Trips, &record.Trips); err != nil {
			return nil, fmt.Errorf("unmarshaling trips for %s: %w", row.UUID, err)
		}
	}
	if len(row.FamilyMembers) > 0 {
		if err := json.Unmarshal(row.FamilyMembers, &record.Guests); err != nil {
			return nil, fmt.Errorf("unmarshaling guests for %s: %w", row.UUID, err)
		}
	}
	if len(row.Documents) > 0 {
		if err := json.Unmarshal(row.Documents, &record.Targets); err != nil {
			return nil, fmt.Errorf("unmarshaling documents for %s: %w", row.UUID, err)
		}
	}
	if len(row.DocumentURLs) > 0 {
		if err := json.Unmarshal(row.DocumentURLs, &record.DocumentURLs); err != nil {
			return nil, fmt.Errorf("unmarshaling document urls for %s: %w", row.UUID, err)
		}
	}
	return record, nil
}
