package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"

	"github.com/aouyang1/theframe/api/models"
	"github.com/aouyang1/theframe/api/web/templates"
	"github.com/aouyang1/theframe/library"
	"github.com/aouyang1/theframe/screen"
	"github.com/aouyang1/theframe/thumbnail"
)

var thumbnailSizes = map[string]thumbnail.Size{
	"strip":   thumbnail.StripSize,
	"preview": thumbnail.PreviewSize,
	"frame":   thumbnail.FrameSize,
}

func (ws *WebServer) handleListPhotos(c *gin.Context) {
	var q models.PhotoListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		errorJSON(c, http.StatusBadRequest, fmt.Sprintf("Invalid limit: %v", err))
		return
	}
	if q.Limit == 0 {
		q.Limit = screen.PhotoViewLimit
	}

	ids := ws.photos.Query(q.Limit)
	entries := make([]models.PhotoEntry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, models.PhotoEntry{
			PhotoID:      id,
			ThumbnailURL: templates.ThumbnailURL(id, "strip"),
		})
	}

	c.JSON(http.StatusOK, models.PhotoListResponse{
		Photos: entries,
		Total:  ws.photos.Count(),
		Limit:  q.Limit,
	})
}

func (ws *WebServer) handleThumbnail(c *gin.Context) {
	var q models.ThumbnailQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		errorJSON(c, http.StatusBadRequest, fmt.Sprintf("Invalid size: %v", err))
		return
	}
	if q.Size == "" {
		q.Size = "strip"
	}

	id := library.PhotoID(c.Param("id"))
	img, err := ws.loadThumbnail(c.Request.Context(), id, thumbnailSizes[q.Size])
	if errors.Is(err, thumbnail.ErrUnavailable) {
		errorJSON(c, http.StatusNotFound, fmt.Sprintf("Photo %s is unavailable", id))
		return
	}
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, fmt.Sprintf("Failed to load photo: %v", err))
		return
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		errorJSON(c, http.StatusInternalServerError, fmt.Sprintf("Failed to encode photo: %v", err))
		return
	}
	c.Data(http.StatusOK, "image/jpeg", buf.Bytes())
}

// loadThumbnail prefers the settings visit's cache for photos on that screen.
func (ws *WebServer) loadThumbnail(ctx context.Context, id library.PhotoID, size thumbnail.Size) (image.Image, error) {
	if s, ok := ws.screens.CurrentSettings(); ok {
		img, err := s.Thumbnail(ctx, id, size)
		if !errors.Is(err, screen.ErrNotOnScreen) {
			return img, err
		}
	}
	return ws.loader.Load(ctx, id, size)
}
