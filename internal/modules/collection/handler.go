package collection

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

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
	collections := rg.Group("/collections")
	{
		collections.GET("", h.ListMine)
		collections.POST("", h.Create)
		collections.DELETE("/:id", h.Delete)
		collections.GET("/:id/members", h.ListMembers)
		collections.POST("/:id/members", h.Invite)
		collections.DELETE("/:id/members/:userId", h.RemoveMember)
		collections.GET("/:id/recipes", h.ListRecipes)
		collections.POST("/:id/recipes/:recipeId", h.AddRecipe)
		collections.DELETE("/:id/recipes/:recipeId", h.RemoveRecipe)
	}
}

type createBody struct {
	Name string `json:"name" validate:"required"`
}

type inviteBody struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

func (h *Handler) Create(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	var body createBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}

	col, err := h.service.Create(c.Request.Context(), actorID, body.Name)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, col)
}

func (h *Handler) ListMine(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}
	cols, err := h.service.ListMine(c.Request.Context(), actorID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cols)
}

func (h *Handler) Delete(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid collection id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, actorID); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListMembers(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid collection id")
		return
	}

	members, err := h.service.ListMembers(c.Request.Context(), id, actorID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, members)
}

func (h *Handler) ListRecipes(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid collection id")
		return
	}

	recipes, err := h.service.ListRecipes(c.Request.Context(), id, actorID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, recipes)
}

func (h *Handler) Invite(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid collection id")
		return
	}

	var body inviteBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	inviteeID, err := uuid.Parse(body.UserID)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid user id")
		return
	}

	member, err := h.service.Invite(c.Request.Context(), id, actorID, inviteeID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, member)
}

func (h *Handler) RemoveMember(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid collection id")
		return
	}
	memberID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid user id")
		return
	}

	if err := h.service.RemoveMember(c.Request.Context(), id, actorID, memberID); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) AddRecipe(c *gin.Context) {
	h.recipeLink(c, true)
}

func (h *Handler) RemoveRecipe(c *gin.Context) {
	h.recipeLink(c, false)
}

func (h *Handler) recipeLink(c *gin.Context, add bool) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid collection id")
		return
	}
	recipeID, err := uuid.Parse(c.Param("recipeId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid recipe id")
		return
	}

	if add {
		link, err := h.service.AddRecipe(c.Request.Context(), id, recipeID, actorID)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, http.StatusCreated, link)
		return
	}

	if err := h.service.RemoveRecipe(c.Request.Context(), id, recipeID, actorID); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
