package recipe

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"recipebox/internal/domain"
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
	recipes := rg.Group("/recipes")
	{
		recipes.GET("", h.ListMine)
		recipes.POST("", h.Create)
		recipes.GET("/:id", h.Get)
		recipes.PATCH("/:id", h.Update)
		recipes.DELETE("/:id", h.Delete)
		recipes.POST("/:id/detach", h.Detach)
		recipes.POST("/:id/publish", h.Publish)
		recipes.POST("/:id/archive", h.Archive)
		recipes.POST("/:id/restore", h.Restore)
		recipes.POST("/:id/tags", h.AttachTag)
		recipes.DELETE("/:id/tags/:name", h.DetachTag)
	}
	tags := rg.Group("/tags")
	{
		tags.GET("", h.ListTags)
		tags.GET("/:name/recipes", h.ListByTag)
	}
}

func (h *Handler) Create(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	var body CreateRecipeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	in, err := body.toInput()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid catalogue recipe id")
		return
	}

	rec, err := h.service.Create(c.Request.Context(), actorID, in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rec)
}

func (h *Handler) Get(c *gin.Context) {
	viewerID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid recipe id")
		return
	}

	rec, eff, err := h.service.Get(c.Request.Context(), viewerID, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, RecipeResponse{Recipe: rec, Effective: eff})
}

func (h *Handler) ListMine(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	includeArchived := c.Query("include_archived") == "true"

	recipes, total, err := h.service.ListMine(c.Request.Context(), actorID, includeArchived, page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"recipes": recipes,
		"total":   total,
		"page":    page,
	})
}

func (h *Handler) Update(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid recipe id")
		return
	}

	var body UpdateRecipeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	patch, vis := body.toPatch()

	rec, err := h.service.Update(c.Request.Context(), actorID, id, patch, vis)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec)
}

func (h *Handler) Delete(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid recipe id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), actorID, id); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Detach(c *gin.Context) {
	h.mutate(c, h.service.Detach)
}

func (h *Handler) Archive(c *gin.Context) {
	h.mutate(c, h.service.Archive)
}

func (h *Handler) Restore(c *gin.Context) {
	h.mutate(c, h.service.Restore)
}

func (h *Handler) Publish(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid recipe id")
		return
	}

	catalogue, err := h.service.Publish(c.Request.Context(), actorID, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, catalogue)
}

func (h *Handler) AttachTag(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid recipe id")
		return
	}

	var body tagRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}

	tag, err := h.service.AttachTag(c.Request.Context(), actorID, id, body.Name)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, tag)
}

func (h *Handler) DetachTag(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid recipe id")
		return
	}

	if err := h.service.DetachTag(c.Request.Context(), actorID, id, c.Param("name")); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListTags(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}
	tags, err := h.service.ListTags(c.Request.Context(), actorID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tags)
}

func (h *Handler) ListByTag(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}
	recipes, err := h.service.ListByTag(c.Request.Context(), actorID, c.Param("name"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, recipes)
}

func (h *Handler) mutate(c *gin.Context, fn func(context.Context, uuid.UUID, uuid.UUID) (*domain.OwnedRecipe, error)) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid recipe id")
		return
	}

	rec, err := fn(c.Request.Context(), actorID, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec)
}
