package handler

import (
	"errors"
	"net/http"
	"strconv"

	apperrors "community-events/pkg/app_errors"
	"community-events/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func BindUri(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindUri(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

// listQuery 公開列表共用的 query string；page/pageSize 不合法時交給 Normalize 套預設值
type listQuery struct {
	Q        string `form:"q"`
	Type     string `form:"type"`
	Page     string `form:"page"`
	PageSize string `form:"pageSize"`
}

func (q listQuery) page() int {
	return atoiOrZero(q.Page)
}

func (q listQuery) pageSize() int {
	return atoiOrZero(q.PageSize)
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

type idUri struct {
	ID string `uri:"id" binding:"required"`
}

// bindID 解析 :id，失敗時已回 400
func bindID(c *gin.Context) (uuid.UUID, bool) {
	var uri idUri
	if err := BindUri(c, &uri); err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(uri.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

var notFoundErrors = []error{
	apperrors.ErrEventNotFound,
	apperrors.ErrResourceNotFound,
	apperrors.ErrUserNotFound,
	apperrors.ErrProfileNotFound,
	apperrors.ErrRegistrationNotFound,
}

func handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))

	var validation *apperrors.ValidationError
	if errors.As(err, &validation) {
		log.Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message})
		return
	}
	for _, nf := range notFoundErrors {
		if errors.Is(err, nf) {
			log.Warn("Not found")
			c.JSON(http.StatusNotFound, gin.H{"error": nf.Error()})
			return
		}
	}

	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		log.Warn("Invalid credentials")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, apperrors.ErrUnauthenticated):
		log.Warn("Unauthenticated")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	case errors.Is(err, apperrors.ErrForbidden):
		log.Warn("Forbidden")
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrAlreadyRegistered):
		log.Warn("Already registered")
		c.JSON(http.StatusConflict, gin.H{"error": "Already registered for this event"})
	case errors.Is(err, apperrors.ErrEventFull):
		log.Warn("Event full")
		c.JSON(http.StatusConflict, gin.H{"error": "No spots left"})
	case errors.Is(err, apperrors.ErrFileTooLarge):
		log.Warn("File too large")
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File exceeds 5MB"})
	case errors.Is(err, apperrors.ErrUnsupportedFileType):
		log.Warn("Unsupported file type")
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "Unsupported file type"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
