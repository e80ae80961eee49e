package repository

import (
	"context"

	"traveldocs-service/internal/domain/entity"
)

// MailRepository defines the interface for delivering document links
type MailRepository interface {
	SendDocumentLinks(ctx context.Context, to string, record *entity.DocumentRecord) error
}
