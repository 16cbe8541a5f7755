package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

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
	users := rg.Group("/users")
	{
		users.GET("/me", h.Me)
		users.PATCH("/me", h.UpdateProfile)
		users.GET("/share/:shareId", h.LookupByShareID)
	}
}

func (h *Handler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}
	u, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

type updateProfileRequest struct {
	DisplayName      *string  `json:"display_name" validate:"omitempty,min=1,max=100"`
	Bio              *string  `json:"bio" validate:"omitempty,max=1000"`
	IsProfilePublic  *bool    `json:"is_profile_public"`
	FavoriteCuisines []string `json:"favorite_cuisines" validate:"omitempty,max=20,dive,min=1,max=50"`
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	var body updateProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	if errs := validator.Validate(body); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", errs)
		return
	}

	u, err := h.service.UpdateProfile(c.Request.Context(), userID, ProfilePatch{
		DisplayName:      body.DisplayName,
		Bio:              body.Bio,
		IsProfilePublic:  body.IsProfilePublic,
		FavoriteCuisines: body.FavoriteCuisines,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

func (h *Handler) LookupByShareID(c *gin.Context) {
	viewerID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	profile, err := h.service.LookupByShareID(c.Request.Context(), viewerID, c.Param("shareId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}
