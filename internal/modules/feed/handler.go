package feed

import (
	"net/http"
	"strconv"
	"strings"

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
	feed := rg.Group("/feed")
	{
		feed.GET("", h.Combined)
		feed.GET("/favorites", h.CommonFavorites)
	}
}

func (h *Handler) Combined(c *gin.Context) {
	viewerID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	scope, err := parseScope(c.Query("collections"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_SCOPE", "invalid collection id list")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	filters := Filters{
		Query:           c.Query("q"),
		Cuisine:         c.Query("cuisine"),
		IncludeArchived: c.Query("include_archived") == "true",
	}

	entries, total, err := h.service.CombinedFeed(c.Request.Context(), viewerID, scope, filters, c.Query("sort"), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"entries": entries,
		"total":   total,
		"page":    page,
	})
}

func (h *Handler) CommonFavorites(c *gin.Context) {
	viewerID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	scope, err := parseScope(c.Query("collections"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_SCOPE", "invalid collection id list")
		return
	}

	minRaters, _ := strconv.Atoi(c.DefaultQuery("min_raters", "2"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	favorites, err := h.service.CommonFavorites(c.Request.Context(), viewerID, scope, minRaters, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"favorites": favorites})
}

func parseScope(raw string) ([]uuid.UUID, error) {
	var scope []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, err
		}
		scope = append(scope, id)
	}
	return scope, nil
}
