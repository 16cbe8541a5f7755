package activity

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"recipebox/internal/middleware"
	"recipebox/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/activity", h.List)
}

func (h *Handler) List(c *gin.Context) {
	viewerID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	events, total, err := h.service.List(c.Request.Context(), viewerID, page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"events": events,
		"total":  total,
		"page":   page,
	})
}
