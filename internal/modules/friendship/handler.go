package friendship

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
	friends := rg.Group("/friends")
	{
		friends.GET("", h.ListFriends)
		friends.GET("/requests", h.ListPending)
		friends.POST("/requests", h.SendRequest)
		friends.POST("/requests/:id/accept", h.Accept)
		friends.POST("/requests/:id/reject", h.Reject)
		friends.DELETE("/:id", h.Remove)
		friends.POST("/block/:userId", h.Block)
		friends.DELETE("/block/:userId", h.Unblock)
	}
}

type sendRequestBody struct {
	TargetID string `json:"target_id" validate:"required,uuid"`
	Message  string `json:"message,omitempty"`
}

func (h *Handler) SendRequest(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	var body sendRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	targetID, err := uuid.Parse(body.TargetID)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid target id")
		return
	}

	f, err := h.service.SendRequest(c.Request.Context(), actorID, targetID, body.Message)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, f)
}

func (h *Handler) Accept(c *gin.Context) {
	h.respond(c, true)
}

func (h *Handler) Reject(c *gin.Context) {
	h.respond(c, false)
}

func (h *Handler) respond(c *gin.Context, accept bool) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid friendship id")
		return
	}

	var f any
	if accept {
		f, err = h.service.Accept(c.Request.Context(), actorID, id)
	} else {
		f, err = h.service.Reject(c.Request.Context(), actorID, id)
	}
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, f)
}

func (h *Handler) Remove(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid friendship id")
		return
	}

	if err := h.service.Remove(c.Request.Context(), actorID, id); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Block(c *gin.Context) {
	h.block(c, true)
}

func (h *Handler) Unblock(c *gin.Context) {
	h.block(c, false)
}

func (h *Handler) block(c *gin.Context, block bool) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}
	otherID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid user id")
		return
	}

	if block {
		err = h.service.Block(c.Request.Context(), actorID, otherID)
	} else {
		err = h.service.Unblock(c.Request.Context(), actorID, otherID)
	}
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListFriends(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}
	rows, err := h.service.ListFriends(c.Request.Context(), actorID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

func (h *Handler) ListPending(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}
	rows, err := h.service.ListPending(c.Request.Context(), actorID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}
