package repository

import (
	"context"

	"traveldocs-service/internal/domain/entity"
)

// SubmissionArchiveRepository defines the interface for the raw submission archive
type SubmissionArchiveRepository interface {
	Save(ctx context.Context, submission *entity.Submission) error
	FindByID(ctx context.Context, id string) (*entity.Submission, error)
}
