package repository

import (
	"context"

	"traveldocs-service/internal/domain/entity"
)

// DocumentRecordRepository defines the interface for persisted generation records
type DocumentRecordRepository interface {
	Insert(ctx context.Context, record *entity.DocumentRecord) error
	ListRecent(ctx context.Context, limit int) ([]*entity.DocumentRecord, error)
}
