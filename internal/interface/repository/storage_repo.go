package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"traveldocs-service/internal/domain/repository"
	"traveldocs-service/pkg/logger"
)

// SupabaseStorageRepository uploads artifacts to a Supabase Storage
// bucket and returns their public URLs
type SupabaseStorageRepository struct {
	logger     logger.Logger
	baseURL    string
	serviceKey string
	bucket     string
	client     *http.Client
}

// NewSupabaseStorageRepository creates a new Supabase storage repository
func NewSupabaseStorageRepository(baseURL, serviceKey, bucket string, logger logger.Logger) repository.StorageRepository {
	return &SupabaseStorageRepository{
		logger:     logger,
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		bucket:     bucket,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload stores data at path and returns the public URL. A duplicate
// path is treated as success: the existing object's URL is reused,
// never overwritten.
func (r *SupabaseStorageRepository) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", r.baseURL, r.bucket, path)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+r.serviceKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		r.logger.Info("Artifact uploaded", "path", path, "bytes", len(data))
		return r.publicURL(path), nil
	}

	var errorBody struct {
		StatusCode string `json:"statusCode"`
		Error      string `json:"error"`
		Message    string `json:"message"`
	}
	json.NewDecoder(resp.Body).Decode(&errorBody)

	if isDuplicate(resp.StatusCode, errorBody.Error, errorBody.Message) {
		r.logger.Warn("Artifact already exists, reusing", "path", path)
		return r.publicURL(path), nil
	}

	return "", fmt.Errorf("storage returned status %d for %s: %s", resp.StatusCode, path, errorBody.Message)
}

func (r *SupabaseStorageRepository) publicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", r.baseURL, r.bucket, path)
}

func isDuplicate(status int, errCode, message string) bool {
	if status != http.StatusConflict && status != http.StatusBadRequest {
		return false
	}
	return strings.Contains(strings.ToLower(errCode), "duplicate") ||
		strings.Contains(strings.ToLower(message), "already exists") ||
		strings.Contains(strings.ToLower(message), "duplicate")
}
