// Media HTTP handlers.
//
// This file exposes REST endpoints for binary attachments:
//   - POST /medias      (multipart upload, returns the new media id)
//   - GET  /media/{id}  (streams the blob with a sniffed content type)
//
// Uploads land unattached; a subsequent tweet post claims them by id.
// Idempotency-Key retries of an upload return the previously stored media id
// instead of a duplicate row.
package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-twitter-backend/internal/http/middleware"
	"github.com/tbourn/go-twitter-backend/internal/repo"
	"github.com/tbourn/go-twitter-backend/internal/services"
)

// UploadMediaResponse is the envelope for a stored attachment.
type UploadMediaResponse struct {
	Result  bool `json:"result" example:"true"`
	MediaID uint `json:"media_id" example:"7"`
}

// mediaDB exposes the concrete database handle behind the media service for
// best-effort idempotency records. Nil when the service is a test double.
func (h *Handlers) mediaDB() *gorm.DB {
	if svc, ok := h.mediaSvc.(*services.MediaService); ok {
		return svc.DB
	}
	return nil
}

// UploadMedia godoc
// @ID          uploadMedia
// @Summary     Upload a media file
// @Description Stores a multipart file (field name "file") and returns its id for attachment to a tweet.
// @Description Supports idempotency via the Idempotency-Key header (same key → same media id).
// @Tags        Media
// @Accept      multipart/form-data
// @Produce     json
// @Security    ApiKeyAuth
//
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"
// @Param       file             formData file    true  "File to upload"
//
// @Success     201  {object} handlers.UploadMediaResponse
// @Failure     400  {object} handlers.ErrorResponse "Missing or empty file"
// @Failure     403  {object} handlers.ErrorResponse "Invalid api key"
// @Failure     413  {object} handlers.ErrorResponse "File too large"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /medias [post]
func (h *Handlers) UploadMedia(c *gin.Context) {
	ctx := c.Request.Context()
	uid, okAuth := currentUserID(c)
	if !okAuth {
		fail(c, http.StatusForbidden, ErrCodeForbidden, "invalid api key")
		return
	}

	// Idempotency (replay path).
	idemKey, _ := middleware.GetIdempotencyKey(c)
	scope := c.FullPath()
	if idemKey != "" {
		if db := h.mediaDB(); db != nil {
			if rec, err := repo.GetIdempotency(ctx, db, uid, scope, idemKey, time.Now().UTC()); err == nil && rec != nil {
				c.Header("Idempotency-Replayed", "true")
				ok(c, rec.Status, UploadMediaResponse{Result: true, MediaID: rec.ResourceID})
				return
			}
		}
	}

	fh, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "multipart field 'file' required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unreadable upload")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unreadable upload")
		return
	}

	m, err := h.mediaSvc.Upload(ctx, fh.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyUpload):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "empty upload")
		case errors.Is(err, services.ErrUploadTooLarge):
			fail(c, http.StatusRequestEntityTooLarge, ErrCodeBadRequest, "file too large")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeUploadFailed, err.Error())
		}
		return
	}

	// Idempotency (store path) – best effort.
	if idemKey != "" {
		if db := h.mediaDB(); db != nil {
			_, _ = repo.CreateIdempotency(ctx, db, uid, scope, idemKey, m.ID, http.StatusCreated, h.idemTTL)
		}
	}

	ok(c, http.StatusCreated, UploadMediaResponse{Result: true, MediaID: m.ID})
}

// GetMedia godoc
// @ID          getMedia
// @Summary     Download a media file
// @Description Streams the stored blob. The content type is sniffed from the payload.
// @Tags        Media
// @Produce     octet-stream
//
// @Param       id  path  int  true  "Media ID"  minimum(1)
//
// @Success     200  {file}   file
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Media not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /media/{id} [get]
func (h *Handlers) GetMedia(c *gin.Context) {
	id, okID := pathID(c)
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "media id must be a positive integer")
		return
	}

	m, err := h.mediaSvc.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMediaNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "media not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	c.Data(http.StatusOK, http.DetectContentType(m.FileBody), m.FileBody)
}
