package importer

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recipebox/internal/pkg/response"
	"recipebox/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects rg to already carry the internal-token middleware;
// these endpoints are for the import collaborator, not end users.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/catalogue", h.Upsert)
	rg.POST("/catalogue/batch", h.UpsertBatch)
}

func (h *Handler) Upsert(c *gin.Context) {
	var entry Entry
	if err := c.ShouldBindJSON(&entry); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	if errs := validator.Validate(entry); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", errs)
		return
	}

	rec, created, err := h.service.Upsert(c.Request.Context(), entry)
	if err != nil {
		response.FromError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.Success(c, status, rec)
}

func (h *Handler) UpsertBatch(c *gin.Context) {
	var entries []Entry
	if err := c.ShouldBindJSON(&entries); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}

	created, updated, failures := h.service.UpsertBatch(c.Request.Context(), entries)
	response.Success(c, http.StatusOK, gin.H{
		"created":  created,
		"updated":  updated,
		"failures": failures,
	})
}
