package handler

import (
	"context"
	"net/http"

	"community-events/internal/cache"
	"community-events/internal/model"
	"community-events/internal/service"
	"community-events/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PermissionInvalidator 角色變更後讓下一個 request 重新讀取權限
type PermissionInvalidator interface {
	ForgetUser(ctx context.Context, userID uuid.UUID)
}

type AdminHandler struct {
	users      service.UserAdminService
	sessions   PermissionInvalidator
	queryCache cache.QueryCache
}

func NewAdminHandler(users service.UserAdminService, sessions PermissionInvalidator, queryCache cache.QueryCache) *AdminHandler {
	return &AdminHandler{users: users, sessions: sessions, queryCache: queryCache}
}

func (h *AdminHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1/admin", RequireAdmin())
	{
		router.GET("users", h.ListUsers)
		router.GET("users/counts", h.RoleCounts)
		router.PUT("users/:id/role", h.ChangeRole)
		router.DELETE("cache", h.ClearCache)
	}
}

type roleRequest struct {
	Role model.Role `json:"role" binding:"required"`
}

type clearCacheQuery struct {
	Pattern string `form:"pattern"`
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c, currentPermissions(c))
	if err != nil {
		handleError(c, err, "ListUsers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": users})
}

func (h *AdminHandler) RoleCounts(c *gin.Context) {
	counts, err := h.users.RoleCounts(c, currentPermissions(c))
	if err != nil {
		handleError(c, err, "RoleCounts")
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h *AdminHandler) ChangeRole(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req roleRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	user, err := h.users.ChangeRole(c, currentPermissions(c), id, req.Role)
	if err != nil {
		handleError(c, err, "ChangeRole")
		return
	}
	h.sessions.ForgetUser(c, id)
	c.JSON(http.StatusOK, user)
}

// ClearCache 空的 pattern 清除全部
func (h *AdminHandler) ClearCache(c *gin.Context) {
	var q clearCacheQuery
	if err := BindQuery(c, &q); err != nil {
		return
	}
	h.queryCache.Clear(c, q.Pattern)
	logger.WithComponent("handler").Info("Query cache cleared", zap.String("pattern", q.Pattern))
	c.Status(http.StatusNoContent)
}
