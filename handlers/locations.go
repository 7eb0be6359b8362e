package handlers

import (
	"errors"
	"net/http"

	"field-service-api/models"
	"field-service-api/repository"

	"github.com/gin-gonic/gin"
)

type CreateLocationRequest struct {
	City string   `json:"city" binding:"required"`
	Name string   `json:"name" binding:"required"`
	Area *float64 `json:"area"`
	Lat  *float64 `json:"lat"`
	Lng  *float64 `json:"lng"`
}

type UpdateLocationRequest struct {
	City *string  `json:"city"`
	Name *string  `json:"name"`
	Area *float64 `json:"area"`
	Lat  *float64 `json:"lat"`
	Lng  *float64 `json:"lng"`
}

// ListLocations returns all locations, newest first.
func (h *Handler) ListLocations(c *gin.Context) {
	locations, err := h.locations.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list locations"})
		return
	}
	c.JSON(http.StatusOK, locations)
}

// CreateLocation registers a new serviceable location.
func (h *Handler) CreateLocation(c *gin.Context) {
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	location := models.Location{
		City: req.City,
		Name: req.Name,
		Area: req.Area,
		Lat:  req.Lat,
		Lng:  req.Lng,
	}
	if err := h.locations.Create(&location); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create location"})
		return
	}
	c.JSON(http.StatusCreated, location)
}

// UpdateLocation applies a partial update; absent fields stay untouched.
// Records that snapshotted this location keep their historical values.
func (h *Handler) UpdateLocation(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid location id"})
		return
	}
	location, err := h.locations.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if req.City != nil {
		location.City = *req.City
	}
	if req.Name != nil {
		location.Name = *req.Name
	}
	if req.Area != nil {
		location.Area = req.Area
	}
	if req.Lat != nil {
		location.Lat = req.Lat
	}
	if req.Lng != nil {
		location.Lng = req.Lng
	}

	if err := h.locations.Save(location); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update location"})
		return
	}
	c.JSON(http.StatusOK, location)
}

// DeleteLocation removes the location row only.
func (h *Handler) DeleteLocation(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid location id"})
		return
	}
	if err := h.locations.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete location"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Location deleted"})
}
