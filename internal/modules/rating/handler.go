package rating

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"recipebox/internal/middleware"
	"recipebox/internal/pkg/response"
	"recipebox/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recipes/:id/ratings", h.rateTarget(false))
	rg.DELETE("/recipes/:id/ratings", h.unrateTarget(false))
	rg.GET("/recipes/:id/ratings", h.listTarget(false))

	rg.POST("/catalogue/:id/ratings", h.rateTarget(true))
	rg.DELETE("/catalogue/:id/ratings", h.unrateTarget(true))
	rg.GET("/catalogue/:id/ratings", h.listTarget(true))
}

type rateBody struct {
	Score   int    `json:"score" validate:"gte=0,lte=10"`
	Comment string `json:"comment,omitempty"`
}

func targetFromPath(c *gin.Context, catalogue bool) (Target, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid recipe id")
		return Target{}, false
	}
	if catalogue {
		return Target{CatalogueID: &id}, true
	}
	return Target{OwnedID: &id}, true
}

func (h *Handler) rateTarget(catalogue bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		raterID, ok := middleware.UserID(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
			return
		}
		target, ok := targetFromPath(c, catalogue)
		if !ok {
			return
		}

		var body rateBody
		if err := c.ShouldBindJSON(&body); err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
			return
		}
		if fields := validator.Validate(body); fields != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid rating", fields)
			return
		}

		row, err := h.service.Rate(c.Request.Context(), raterID, target, body.Score, body.Comment)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, http.StatusOK, row)
	}
}

func (h *Handler) unrateTarget(catalogue bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		raterID, ok := middleware.UserID(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
			return
		}
		target, ok := targetFromPath(c, catalogue)
		if !ok {
			return
		}

		if err := h.service.Unrate(c.Request.Context(), raterID, target); err != nil {
			response.FromError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func (h *Handler) listTarget(catalogue bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID, ok := middleware.UserID(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
			return
		}
		target, ok := targetFromPath(c, catalogue)
		if !ok {
			return
		}

		rows, err := h.service.ListForTarget(c.Request.Context(), viewerID, target)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, http.StatusOK, rows)
	}
}
