package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"traveldocs-service/internal/domain/entity"
	"traveldocs-service/internal/domain/repository"
	"traveldocs-service/internal/usecase"
	"traveldocs-service/pkg/logger"
)

// Handler exposes the HTTP API: submission intake, generation history
// and the hotel catalog.
type Handler struct {
	generator  *usecase.DocumentGenerator
	recordRepo repository.DocumentRecordRepository
	hotelRepo  repository.HotelRepository
	logger     logger.Logger
}

// NewHandler creates a new REST handler
func NewHandler(
	generator *usecase.DocumentGenerator,
	recordRepo repository.DocumentRecordRepository,
	hotelRepo repository.HotelRepository,
	logger logger.Logger,
) *Handler {
	return &Handler{
		generator:  generator,
		recordRepo: recordRepo,
		hotelRepo:  hotelRepo,
		logger:     logger,
	}
}

// CreateSubmission accepts a travel form submission, runs the full
// generation pipeline and returns the persisted record with any
// per-document failures.
func (h *Handler) CreateSubmission(c *gin.Context) {
	var sub entity.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}

	record, failures, err := h.generator.Process(c.Request.Context(), &sub)
	if err != nil {
		if errors.Is(err, usecase.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Submission processing failed", "submissionID", sub.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":    err.Error(),
			"uuid":     sub.ID,
			"failures": failures,
		})
		return
	}

	status := http.StatusCreated
	if len(failures) > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, gin.H{
		"record":   record,
		"failures": failures,
	})
}

// ListRecords returns the most recent generation records
func (h *Handler) ListRecords(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = n
	}

	records, err := h.recordRepo.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list records", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list records"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records, "count": len(records)})
}

// ListHotels returns the hotel catalog, optionally filtered by location
func (h *Handler) ListHotels(c *gin.Context) {
	var (
		hotels []*entity.Hotel
		err    error
	)
	if location := c.Query("location"); location != "" {
		hotels, err = h.hotelRepo.FindByLocation(c.Request.Context(), location)
	} else {
		hotels, err = h.hotelRepo.ListAll(c.Request.Context())
	}
	if err != nil {
		h.logger.Error("Failed to list hotels", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list hotels"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hotels": hotels, "count": len(hotels)})
}

// Health reports service liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
