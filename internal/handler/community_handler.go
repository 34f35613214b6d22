package handler

import (
	"net/http"

	"community-events/internal/service"

	"github.com/gin-gonic/gin"
)

type CommunityHandler struct {
	service service.CommunityService
}

func NewCommunityHandler(service service.CommunityService) *CommunityHandler {
	return &CommunityHandler{service: service}
}

func (h *CommunityHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("community/profiles", h.ListProfiles)
	}
}

func (h *CommunityHandler) ListProfiles(c *gin.Context) {
	var q termQuery
	if err := BindQuery(c, &q); err != nil {
		return
	}
	profiles, err := h.service.ListPublic(c, q.Q)
	if err != nil {
		handleError(c, err, "ListProfiles")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": profiles})
}
