package handlers

import (
	"errors"
	"net/http"
	"time"

	"field-service-api/models"
	"field-service-api/repository"
	"field-service-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CreateRecordRequest struct {
	OperatorID   uint       `json:"operator_id" binding:"required"`
	ServiceType  string     `json:"service_type" binding:"required"`
	LocationID   *uint      `json:"location_id"`
	LocationName *string    `json:"location_name"`
	LocationCity *string    `json:"location_city"`
	LocationArea *float64   `json:"location_area"`
	GPSUsed      *bool      `json:"gps_used"`
	StartTime    *time.Time `json:"start_time"`
	EndTime      *time.Time `json:"end_time"`
}

// ListRecords returns records newest first, optionally filtered by the
// denormalized location city (?city=).
func (h *Handler) ListRecords(c *gin.Context) {
	records, err := h.ledger.List(c.Query("city"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list records"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// CreateRecord persists a service record. The location fields are stored as
// supplied; they are a snapshot, not a live join.
func (h *Handler) CreateRecord(c *gin.Context) {
	var req CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	gpsUsed := true
	if req.GPSUsed != nil {
		gpsUsed = *req.GPSUsed
	}
	record := models.Record{
		OperatorID:   req.OperatorID,
		ServiceType:  req.ServiceType,
		LocationID:   req.LocationID,
		LocationName: req.LocationName,
		LocationCity: req.LocationCity,
		LocationArea: req.LocationArea,
		GPSUsed:      gpsUsed,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
	}
	if err := h.ledger.Create(&record); err != nil {
		if errors.Is(err, service.ErrOperatorNotFound) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Operator does not exist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create record"})
		return
	}
	c.JSON(http.StatusCreated, record)
}

// GetRecord returns a record with its before/after photo locators.
func (h *Handler) GetRecord(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid record id"})
		return
	}
	detail, err := h.ledger.Detail(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load record"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// DeleteRecord removes the record, its photo rows and their backing files.
func (h *Handler) DeleteRecord(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid record id"})
		return
	}
	if err := h.ledger.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete record"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Record deleted"})
}

// UploadPhotos attaches a batch of before/after images to a record.
func (h *Handler) UploadPhotos(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid record id"})
		return
	}
	phase := c.PostForm("phase")
	if phase == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "phase is required"})
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "multipart form required"})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "at least one file is required"})
		return
	}

	photos, err := h.pipeline.Attach(id, phase, files)
	if err != nil {
		var payloadErr *service.PayloadError
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		case errors.As(err, &payloadErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": payloadErr.Msg})
		default:
			h.log.Error("photo upload failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store photos"})
		}
		return
	}
	c.JSON(http.StatusCreated, photos)
}
