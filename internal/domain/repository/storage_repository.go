package repository

import "context"

// StorageRepository defines the interface for object storage uploads.
// Upload stores data at path and returns a public URL. Uploading to a
// path that already exists returns the existing object's URL.
type StorageRepository interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
}
