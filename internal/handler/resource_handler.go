package handler

import (
	"net/http"

	"community-events/internal/service"

	"github.com/gin-gonic/gin"
)

type ResourceHandler struct {
	queries service.ResourceQueryService
}

func NewResourceHandler(queries service.ResourceQueryService) *ResourceHandler {
	return &ResourceHandler{queries: queries}
}

func (h *ResourceHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("resources", h.List)
		router.GET("resources/counts", h.Counts)
		router.GET("resources/latest", h.Latest)
		router.GET("resources/:id", h.Get)
	}
}

type termQuery struct {
	Q string `form:"q"`
}

type limitQuery struct {
	Limit int `form:"limit"`
}

func (h *ResourceHandler) List(c *gin.Context) {
	var q listQuery
	if err := BindQuery(c, &q); err != nil {
		return
	}
	page := h.queries.ListPage(c, service.ResourcePageQuery{
		Term:     q.Q,
		Type:     q.Type,
		Page:     q.page(),
		PageSize: q.pageSize(),
	})
	c.JSON(http.StatusOK, page)
}

func (h *ResourceHandler) Counts(c *gin.Context) {
	var q termQuery
	if err := BindQuery(c, &q); err != nil {
		return
	}
	c.JSON(http.StatusOK, h.queries.TypeCounts(c, q.Q))
}

func (h *ResourceHandler) Latest(c *gin.Context) {
	var q limitQuery
	if err := BindQuery(c, &q); err != nil {
		return
	}
	if q.Limit <= 0 {
		q.Limit = service.DefaultLatestResources
	}
	c.JSON(http.StatusOK, gin.H{"items": h.queries.Latest(c, q.Limit)})
}

func (h *ResourceHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	resource, err := h.queries.Get(c, id)
	if err != nil {
		handleError(c, err, "GetResource")
		return
	}
	c.JSON(http.StatusOK, resource)
}
