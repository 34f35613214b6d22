package handler

import (
	"context"
	"io"
	"net/http"
	"strings"

	"community-events/internal/storage"
	apperrors "community-events/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FileUploader interface {
	Upload(ctx context.Context, userID uuid.UUID, bucket storage.Bucket, folder, filename string, data []byte) (*storage.UploadResult, error)
	Delete(ctx context.Context, bucket storage.Bucket, path string) error
}

type UploadHandler struct {
	uploader FileUploader
}

func NewUploadHandler(uploader FileUploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

func (h *UploadHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1", RequireAuth())
	{
		router.POST("uploads/:bucket", h.Upload)
		router.DELETE("uploads/:bucket/*path", h.Delete)
	}
}

// Upload multipart 欄位 file，選填 folder
func (h *UploadHandler) Upload(c *gin.Context) {
	bucket := storage.Bucket(c.Param("bucket"))
	if !h.canWrite(c, bucket, "") {
		handleError(c, apperrors.ErrForbidden, "Upload")
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fh.Size > storage.MaxUploadSize {
		handleError(c, apperrors.ErrFileTooLarge, "Upload")
		return
	}
	f, err := fh.Open()
	if err != nil {
		handleError(c, err, "Upload")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, storage.MaxUploadSize+1))
	if err != nil {
		handleError(c, err, "Upload")
		return
	}

	folder := c.PostForm("folder")
	if bucket == storage.BucketUserAvatars {
		folder = "" // 頭像一律放在自己的目錄
	}
	session, _ := currentSession(c)
	result, err := h.uploader.Upload(c, session.UserID, bucket, folder, fh.Filename, data)
	if err != nil {
		handleError(c, err, "Upload")
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *UploadHandler) Delete(c *gin.Context) {
	bucket := storage.Bucket(c.Param("bucket"))
	path := strings.TrimPrefix(c.Param("path"), "/")
	if !h.canWrite(c, bucket, path) {
		handleError(c, apperrors.ErrForbidden, "DeleteUpload")
		return
	}
	if err := h.uploader.Delete(c, bucket, path); err != nil {
		handleError(c, err, "DeleteUpload")
		return
	}
	c.Status(http.StatusNoContent)
}

// canWrite 活動圖片與資源檔案限 organizer；頭像任何登入者都可上傳，但只能刪自己的
func (h *UploadHandler) canWrite(c *gin.Context, bucket storage.Bucket, path string) bool {
	perms := currentPermissions(c)
	if bucket != storage.BucketUserAvatars {
		return perms.IsOrganizer
	}
	if path == "" || perms.IsAdmin {
		return true
	}
	session, _ := currentSession(c)
	return strings.HasPrefix(path, session.UserID.String()+"/")
}
