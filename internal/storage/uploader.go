package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	apperrors "community-events/pkg/app_errors"
	"community-events/pkg/logger"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp" // imaging.Decode 讀 webp 需要
)

const (
	MaxUploadSize = 5 * 1024 * 1024
	avatarMaxSide = 512
)

var imageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

type UploadResult struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// Uploader 驗證檔案後寫入 ObjectStorage；驗證失敗不會碰到 storage
type Uploader struct {
	store ObjectStorage
	now   func() time.Time
	log   *zap.Logger
}

func NewUploader(store ObjectStorage) *Uploader {
	return &Uploader{
		store: store,
		now:   time.Now,
		log:   logger.WithComponent("uploader"),
	}
}

func (u *Uploader) Upload(ctx context.Context, userID uuid.UUID, bucket Bucket, folder, filename string, data []byte) (*UploadResult, error) {
	if userID == uuid.Nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if !bucket.IsValid() {
		return nil, apperrors.NewValidationError("invalid bucket")
	}
	folder, err := cleanFolder(folder)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, apperrors.NewValidationError("file is empty")
	}
	if len(data) > MaxUploadSize {
		return nil, apperrors.ErrFileTooLarge
	}

	mt := mimetype.Detect(data)
	contentType := mt.String()
	ext := fileExtension(filename, mt.Extension())

	if bucket.ImagesOnly() && !imageTypes[mt.String()] {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFileType, mt.String())
	}

	if bucket == BucketUserAvatars {
		data, err = fitAvatar(data)
		if err != nil {
			return nil, err
		}
		contentType = "image/png"
		ext = "png"
	}

	if folder == "" {
		folder = userID.String()
	}
	path := objectPath(folder, u.now(), ext)

	if err := u.store.Put(ctx, bucket, path, data, contentType); err != nil {
		u.log.Error("Upload failed",
			zap.String("bucket", string(bucket)),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}

	u.log.Info("File uploaded",
		zap.String("bucket", string(bucket)),
		zap.String("path", path),
		zap.String("content_type", contentType),
		zap.Int("size", len(data)),
	)
	return &UploadResult{URL: u.store.PublicURL(bucket, path), Path: path}, nil
}

func (u *Uploader) Delete(ctx context.Context, bucket Bucket, path string) error {
	if !bucket.IsValid() {
		return apperrors.NewValidationError("invalid bucket")
	}
	path = strings.Trim(path, "/")
	if path == "" || hasDotDot(path) {
		return apperrors.NewValidationError("invalid path")
	}
	if err := u.store.Delete(ctx, bucket, path); err != nil {
		u.log.Error("Delete failed", zap.String("bucket", string(bucket)), zap.String("path", path), zap.Error(err))
		return err
	}
	return nil
}

// fitAvatar 縮到 512x512 內，一律存成 PNG
func fitAvatar(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot decode image", apperrors.ErrUnsupportedFileType)
	}
	img = imaging.Fit(img, avatarMaxSide, avatarMaxSide, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// objectPath {folder}/{unixMillis}-{random}.{ext}
func objectPath(folder string, now time.Time, ext string) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	name := fmt.Sprintf("%d-%s", now.UnixMilli(), random)
	if ext != "" {
		name += "." + ext
	}
	return folder + "/" + name
}

func fileExtension(filename, detected string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		ext = strings.TrimPrefix(detected, ".")
	}
	return ext
}

func cleanFolder(folder string) (string, error) {
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if hasDotDot(folder) {
		return "", apperrors.NewValidationError("invalid folder")
	}
	return folder, nil
}

func hasDotDot(path string) bool {
	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return true
		}
	}
	return false
}
