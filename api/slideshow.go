package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"

	"github.com/aouyang1/theframe/api/models"
	"github.com/aouyang1/theframe/api/web/templates"
	"github.com/aouyang1/theframe/slideshow"
	"github.com/aouyang1/theframe/thumbnail"
	"github.com/aouyang1/theframe/transition"
)

const jpegQuality = 85

// handleOpenSlideshow starts a photo view visit with the launch params in the query.
func (ws *WebServer) handleOpenSlideshow(c *gin.Context) {
	var q models.LaunchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		errorJSON(c, http.StatusBadRequest, fmt.Sprintf("Invalid launch params: %v", err))
		return
	}

	params, err := paramsFromQuery(q)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	pv := ws.screens.OpenPhotoView(params)
	if wantsHTML(c) {
		render(c, http.StatusOK, templates.PhotoView(pv.State()))
		return
	}
	c.JSON(http.StatusOK, pv.State())
}

func paramsFromQuery(q models.LaunchQuery) (slideshow.Params, error) {
	params := slideshow.DefaultParams()
	if q.Effect != "" {
		e, err := transition.ParseEffect(q.Effect)
		if err != nil {
			return params, err
		}
		params.Effect = e
	}
	if q.EffectDuration != nil {
		params.EffectDuration = slideshow.Seconds(*q.EffectDuration)
	}
	if q.PhotoInterval != nil {
		params.PhotoInterval = slideshow.Seconds(*q.PhotoInterval)
	}
	params.StartIndex = q.StartIndex
	return params, nil
}

func (ws *WebServer) handleSlideshowState(c *gin.Context) {
	pv, ok := ws.screens.PhotoView()
	if !ok {
		errorJSON(c, http.StatusNotFound, "Slideshow is not open")
		return
	}
	c.JSON(http.StatusOK, pv.State())
}

// handleSlideshowFrame renders the current transition frame as a JPEG.
func (ws *WebServer) handleSlideshowFrame(c *gin.Context) {
	var q models.FrameQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		errorJSON(c, http.StatusBadRequest, fmt.Sprintf("Invalid frame size: %v", err))
		return
	}
	width, height := q.Width, q.Height
	if width == 0 {
		width = thumbnail.FrameSize.Width
	}
	if height == 0 {
		height = thumbnail.FrameSize.Height
	}

	pv, ok := ws.screens.PhotoView()
	if !ok {
		errorJSON(c, http.StatusNotFound, "Slideshow is not open")
		return
	}

	frame, ok := pv.Frame(width, height)
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, frame, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		errorJSON(c, http.StatusInternalServerError, fmt.Sprintf("Failed to encode frame: %v", err))
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/jpeg", buf.Bytes())
}

func (ws *WebServer) handleToggleMenu(c *gin.Context) {
	pv, ok := ws.screens.PhotoView()
	if !ok {
		errorJSON(c, http.StatusNotFound, "Slideshow is not open")
		return
	}
	c.JSON(http.StatusOK, models.MenuResponse{Visible: pv.Menu().Toggle()})
}

func (ws *WebServer) handleCloseSlideshow(c *gin.Context) {
	if !ws.screens.ClosePhotoView() {
		errorJSON(c, http.StatusNotFound, "Slideshow is not open")
		return
	}
	c.Status(http.StatusNoContent)
}
