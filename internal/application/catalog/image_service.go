package catalog

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopora/backend/internal/domain/shared"
)

// ObjectStorageService abstracts the object storage backend used for
// product and banner images
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file
	// Returns the upload URL and expiration time
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file
	// Returns the download URL and expiration time
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// allowedImageTypes are the content types accepted for image uploads
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageServiceConfig holds configuration for the image service
type ImageServiceConfig struct {
	// UploadURLExpiry is the duration for which upload URLs are valid
	UploadURLExpiry time.Duration
	// PublicBaseURL is the public URL prefix under which uploaded
	// objects become reachable
	PublicBaseURL string
}

// DefaultImageServiceConfig returns the default configuration
func DefaultImageServiceConfig() ImageServiceConfig {
	return ImageServiceConfig{
		UploadURLExpiry: 15 * time.Minute,
	}
}

// UploadTicket describes a prepared image upload: where the client should
// PUT the bytes and the public URL the image will have afterwards
type UploadTicket struct {
	StorageKey string
	UploadURL  string
	PublicURL  string
	ExpiresAt  time.Time
}

// ImageService issues presigned upload URLs for catalog and banner images
type ImageService struct {
	storage ObjectStorageService
	config  ImageServiceConfig
	logger  *zap.Logger
}

// NewImageService creates a new image service
func NewImageService(storage ObjectStorageService, config ImageServiceConfig, logger *zap.Logger) *ImageService {
	if config.UploadURLExpiry <= 0 {
		config.UploadURLExpiry = DefaultImageServiceConfig().UploadURLExpiry
	}
	return &ImageService{
		storage: storage,
		config:  config,
		logger:  logger,
	}
}

// PrepareUpload validates the content type and returns an upload ticket.
// The storage key is namespaced by prefix (e.g. "products/<id>") and
// randomized so uploads never collide.
func (s *ImageService) PrepareUpload(ctx context.Context, prefix, fileName, contentType string) (*UploadTicket, error) {
	ext, ok := allowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unsupported image type %q", contentType))
	}

	base := strings.TrimSuffix(path.Base(fileName), path.Ext(fileName))
	if base == "" || base == "." {
		base = "image"
	}
	key := fmt.Sprintf("%s/%s-%s%s", strings.Trim(prefix, "/"), base, uuid.NewString()[:8], ext)

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, s.config.UploadURLExpiry)
	if err != nil {
		s.logger.Error("Failed to generate upload URL",
			zap.String("storage_key", key),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to prepare image upload")
	}

	s.logger.Info("Image upload prepared",
		zap.String("storage_key", key),
		zap.String("content_type", contentType))

	return &UploadTicket{
		StorageKey: key,
		UploadURL:  uploadURL,
		PublicURL:  s.publicURL(key),
		ExpiresAt:  expiresAt,
	}, nil
}

// DeleteImage removes an uploaded object by its storage key
func (s *ImageService) DeleteImage(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return shared.NewDomainError("INVALID_INPUT", "Storage key is required")
	}
	if err := s.storage.DeleteObject(ctx, storageKey); err != nil {
		s.logger.Error("Failed to delete image",
			zap.String("storage_key", storageKey),
			zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete image")
	}
	return nil
}

func (s *ImageService) publicURL(key string) string {
	if s.config.PublicBaseURL == "" {
		return key
	}
	return strings.TrimSuffix(s.config.PublicBaseURL, "/") + "/" + key
}
