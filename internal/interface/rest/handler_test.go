package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traveldocs-service/internal/domain/entity"
	"traveldocs-service/internal/interface/rest"
	"traveldocs-service/internal/usecase"
	"traveldocs-service/pkg/logger"
	"traveldocs-service/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("traveldocs_rest_test")

func init() {
	gin.SetMode(gin.TestMode)
}

type stubRenderer struct {
	target entity.RenderTarget
}

func (s *stubRenderer) Target() entity.RenderTarget { return s.target }

func (s *stubRenderer) Render(_ *entity.NormalizedRecord, _ *rand.Rand) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

type stubRegistry struct {
	renderers map[entity.RenderTarget]usecase.DocumentRenderer
}

func (s *stubRegistry) Register(r usecase.DocumentRenderer) {
	if s.renderers == nil {
		s.renderers = make(map[entity.RenderTarget]usecase.DocumentRenderer)
	}
	s.renderers[r.Target()] = r
}

func (s *stubRegistry) Get(target entity.RenderTarget) usecase.DocumentRenderer {
	return s.renderers[target]
}

type stubStorage struct{}

func (stubStorage) Upload(_ context.Context, path string, _ []byte, _ string) (string, error) {
	return "https://storage.example/" + path, nil
}

type stubRecordRepo struct {
	records []*entity.DocumentRecord
	err     error
}

func (s *stubRecordRepo) Insert(_ context.Context, record *entity.DocumentRecord) error {
	s.records = append(s.records, record)
	return s.err
}

func (s *stubRecordRepo) ListRecent(_ context.Context, limit int) ([]*entity.DocumentRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	if limit > len(s.records) {
		limit = len(s.records)
	}
	return s.records[:limit], nil
}

type stubHotelRepo struct {
	hotels []*entity.Hotel
	err    error
}

func (s *stubHotelRepo) ListAll(_ context.Context) ([]*entity.Hotel, error) {
	return s.hotels, s.err
}

func (s *stubHotelRepo) FindByLocation(_ context.Context, location string) ([]*entity.Hotel, error) {
	var out []*entity.Hotel
	for _, h := range s.hotels {
		if h.Country == location {
			out = append(out, h)
		}
	}
	return out, s.err
}

func newTestRouter(records *stubRecordRepo, hotels *stubHotelRepo) *gin.Engine {
	log := logger.NewNopLogger()
	registry := &stubRegistry{}
	registry.Register(&stubRenderer{target: entity.RenderTarget{Kind: entity.KindItinerary, Format: entity.FormatPDF}})

	assembler := usecase.NewCoverLetterAssembler(nil, log)
	generator := usecase.NewDocumentGenerator(registry, stubStorage{}, records, nil, nil, assembler, log, testMetrics, 0)

	handler := rest.NewHandler(generator, records, hotels, log)
	return rest.SetupRouter(handler)
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"applicant": map[string]interface{}{
			"passenger_name": "Jane Smith",
			"hometown":       "Lisbon",
			"age":            31,
		},
		"flight_cost": 600,
		"trips": []map[string]interface{}{
			{"country": "France", "arrival_date": "2026-09-04", "departure_date": "2026-09-10"},
		},
		"documents": []map[string]string{
			{"kind": "itinerary", "format": "pdf"},
		},
	}
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getJSON(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateSubmission(t *testing.T) {
	t.Run("should process a valid submission", func(t *testing.T) {
		records := &stubRecordRepo{}
		router := newTestRouter(records, &stubHotelRepo{})

		w := postJSON(router, "/api/v1/submissions", validBody())

		require.Equal(t, http.StatusCreated, w.Code)
		var resp struct {
			Record struct {
				ID           string            `json:"uuid"`
				DocumentURLs map[string]string `json:"document_urls"`
			} `json:"record"`
			Failures map[string]string `json:"failures"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Record.ID, "server should assign a uuid")
		assert.Contains(t, resp.Record.DocumentURLs, "pdf_itinerary_url")
		assert.Empty(t, resp.Failures)
		assert.Len(t, records.records, 1)
	})

	t.Run("should reject malformed json", func(t *testing.T) {
		router := newTestRouter(&stubRecordRepo{}, &stubHotelRepo{})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", bytes.NewReader([]byte("{nope")))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should return 400 for an invalid submission", func(t *testing.T) {
		router := newTestRouter(&stubRecordRepo{}, &stubHotelRepo{})
		body := validBody()
		body["applicant"].(map[string]interface{})["passenger_name"] = ""

		w := postJSON(router, "/api/v1/submissions", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "passenger name")
	})

	t.Run("should return 207 when some documents fail", func(t *testing.T) {
		records := &stubRecordRepo{}
		router := newTestRouter(records, &stubHotelRepo{})
		body := validBody()
		body["documents"] = []map[string]string{
			{"kind": "itinerary", "format": "pdf"},
			{"kind": "flight_ticket", "format": "pdf"}, // not registered
		}

		w := postJSON(router, "/api/v1/submissions", body)

		require.Equal(t, http.StatusMultiStatus, w.Code)
		var resp struct {
			Failures map[string]string `json:"failures"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Failures, "pdf_flight_ticket_url")
	})

	t.Run("should return 500 when nothing can be generated", func(t *testing.T) {
		router := newTestRouter(&stubRecordRepo{}, &stubHotelRepo{})
		body := validBody()
		body["documents"] = []map[string]string{{"kind": "cover_letter", "format": "pdf"}}

		w := postJSON(router, "/api/v1/submissions", body)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestListRecords(t *testing.T) {
	t.Run("should list recent records", func(t *testing.T) {
		records := &stubRecordRepo{records: []*entity.DocumentRecord{{ID: "one"}, {ID: "two"}}}
		router := newTestRouter(records, &stubHotelRepo{})

		w := getJSON(router, "/api/v1/records?limit=1")

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Count int `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Count)
	})

	t.Run("should reject an out-of-range limit", func(t *testing.T) {
		router := newTestRouter(&stubRecordRepo{}, &stubHotelRepo{})
		assert.Equal(t, http.StatusBadRequest, getJSON(router, "/api/v1/records?limit=0").Code)
		assert.Equal(t, http.StatusBadRequest, getJSON(router, "/api/v1/records?limit=about").Code)
	})

	t.Run("should surface repository failures as 500", func(t *testing.T) {
		records := &stubRecordRepo{err: errors.New("pg down")}
		router := newTestRouter(records, &stubHotelRepo{})
		assert.Equal(t, http.StatusInternalServerError, getJSON(router, "/api/v1/records").Code)
	})
}

func TestListHotels(t *testing.T) {
	catalog := []*entity.Hotel{
		{ID: 1, Name: "Hotel Lumiere", City: "Paris", Country: "France", Rate: 120},
		{ID: 2, Name: "Berlin Grand", City: "Berlin", Country: "Germany", Rate: 95},
	}

	t.Run("should list the full catalog", func(t *testing.T) {
		router := newTestRouter(&stubRecordRepo{}, &stubHotelRepo{hotels: catalog})

		w := getJSON(router, "/api/v1/hotels")

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Count int `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Count)
	})

	t.Run("should filter by location", func(t *testing.T) {
		router := newTestRouter(&stubRecordRepo{}, &stubHotelRepo{hotels: catalog})

		w := getJSON(router, "/api/v1/hotels?location=France")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Hotel Lumiere")
		assert.NotContains(t, w.Body.String(), "Berlin Grand")
	})
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&stubRecordRepo{}, &stubHotelRepo{})
	w := getJSON(router, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
