package repository_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traveldocs-service/internal/interface/repository"
	"traveldocs-service/pkg/logger"
)

func TestSupabaseStorageRepository(t *testing.T) {
	log := logger.NewNopLogger()

	t.Run("should upload and return the public url", func(t *testing.T) {
		var gotPath, gotAuth, gotContentType string
		var gotBody []byte
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			gotContentType = r.Header.Get("Content-Type")
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		repo := repository.NewSupabaseStorageRepository(server.URL, "secret", "travel-documents", log)
		url, err := repo.Upload(context.Background(), "abc/flight_ticket.pdf", []byte("%PDF-"), "application/pdf")

		require.NoError(t, err)
		assert.Equal(t, "/storage/v1/object/travel-documents/abc/flight_ticket.pdf", gotPath)
		assert.Equal(t, "Bearer secret", gotAuth)
		assert.Equal(t, "application/pdf", gotContentType)
		assert.Equal(t, []byte("%PDF-"), gotBody)
		assert.Equal(t, server.URL+"/storage/v1/object/public/travel-documents/abc/flight_ticket.pdf", url)
	})

	t.Run("should reuse the existing object on a duplicate upload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"statusCode":"409","error":"Duplicate","message":"The resource already exists"}`))
		}))
		defer server.Close()

		repo := repository.NewSupabaseStorageRepository(server.URL, "secret", "travel-documents", log)
		url, err := repo.Upload(context.Background(), "abc/itinerary.pdf", []byte("data"), "application/pdf")

		require.NoError(t, err)
		assert.Equal(t, server.URL+"/storage/v1/object/public/travel-documents/abc/itinerary.pdf", url)
	})

	t.Run("should fail on other error statuses", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"message":"invalid signature"}`))
		}))
		defer server.Close()

		repo := repository.NewSupabaseStorageRepository(server.URL, "bad", "travel-documents", log)
		_, err := repo.Upload(context.Background(), "abc/itinerary.pdf", []byte("data"), "application/pdf")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "403")
	})

	t.Run("should fail when the server is unreachable", func(t *testing.T) {
		repo := repository.NewSupabaseStorageRepository("http://127.0.0.1:1", "key", "bucket", log)
		_, err := repo.Upload(context.Background(), "a/b.pdf", []byte("data"), "application/pdf")
		assert.Error(t, err)
	})
}
