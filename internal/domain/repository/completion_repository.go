package repository

import "context"

// CompletionRepository defines the interface for the text completion service
type CompletionRepository interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
