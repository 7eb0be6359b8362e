package handlers

import (
	"strconv"

	"field-service-api/config"
	"field-service-api/repository"
	"field-service-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler carries every dependency the HTTP boundary needs. It is built once
// in main and registered on the router; nothing here is package-global.
type Handler struct {
	cfg       *config.Config
	users     repository.UserRepository
	locations repository.LocationRepository
	ledger    *service.RecordLedger
	pipeline  *service.PhotoPipeline
	log       *zap.Logger
}

// New builds the handler set.
func New(
	cfg *config.Config,
	users repository.UserRepository,
	locations repository.LocationRepository,
	ledger *service.RecordLedger,
	pipeline *service.PhotoPipeline,
	log *zap.Logger,
) *Handler {
	return &Handler{
		cfg:       cfg,
		users:     users,
		locations: locations,
		ledger:    ledger,
		pipeline:  pipeline,
		log:       log,
	}
}

// idParam parses the {id} path segment.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
