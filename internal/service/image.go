package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/pageza/ingredient-macros/backend/config"
	"github.com/pageza/ingredient-macros/backend/internal/model"
)

// ErrNoImage is returned for ingredients without an image reference.
var ErrNoImage = errors.New("ingredient has no image")

// ImageService resolves ingredient image references to object storage URLs
type ImageService struct {
	s3Config *config.S3Config
	prefix   string
	ttl      time.Duration
}

// NewImageService creates a new ImageService instance
func NewImageService(s3Config *config.S3Config, prefix string, ttl time.Duration) *ImageService {
	return &ImageService{
		s3Config: s3Config,
		prefix:   prefix,
		ttl:      ttl,
	}
}

// ObjectKey returns the bucket key holding the ingredient's image.
func (s *ImageService) ObjectKey(ing model.Ingredient) string {
	return s.prefix + ing.ImageID.String()
}

// ImageURL returns a presigned GET URL for the ingredient's image.
func (s *ImageService) ImageURL(ctx context.Context, ing model.Ingredient) (string, error) {
	if ing.ImageID.IsZero() {
		return "", ErrNoImage
	}

	key := s.ObjectKey(ing)
	url, err := s.s3Config.GeneratePresignedURL(ctx, key, s.ttl)
	if err != nil {
		log.Printf("[ImageService] Failed to presign %s: %v", key, err)
		return "", fmt.Errorf("failed to presign image for ingredient %d: %w", ing.ID, err)
	}
	return url, nil
}
