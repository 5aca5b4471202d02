// Package services – MediaService
//
// This file implements the MediaService, which stores and serves binary
// attachments. Uploads land unattached (tweet_id NULL) and are claimed later
// by TweetService.Post, matching the upload-first flow of the media
// endpoints.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-twitter-backend/internal/domain"
	"github.com/tbourn/go-twitter-backend/internal/repo"
)

// MediaService implements the use-cases around media attachments.
type MediaService struct {
	// DB is the database handle used for all media operations.
	DB *gorm.DB

	// MaxUploadBytes caps the stored payload size. Zero disables the cap.
	MaxUploadBytes int64
}

// Upload persists a new media row with the given filename and payload. The
// row starts unattached; a later tweet post may claim it. Empty payloads are
// rejected with ErrEmptyUpload, oversized ones with ErrUploadTooLarge.
func (s *MediaService) Upload(ctx context.Context, fileName string, data []byte) (*domain.Media, error) {
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}
	if s.MaxUploadBytes > 0 && int64(len(data)) > s.MaxUploadBytes {
		return nil, ErrUploadTooLarge
	}
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		fileName = "upload"
	}
	return repo.Insert(ctx, s.DB, &domain.Media{FileName: fileName, FileBody: data})
}

// Get fetches a media row by id. Returns ErrMediaNotFound when absent.
func (s *MediaService) Get(ctx context.Context, id uint) (*domain.Media, error) {
	m, err := repo.FindByID[domain.Media](ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrMediaNotFound
	}
	return m, err
}
