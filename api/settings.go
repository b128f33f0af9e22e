package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aouyang1/theframe/api/models"
	"github.com/aouyang1/theframe/api/web/templates"
	"github.com/aouyang1/theframe/library"
	"github.com/aouyang1/theframe/slideshow"
	"github.com/aouyang1/theframe/transition"
)

// handleGetSettings starts a new visit to the settings screen.
func (ws *WebServer) handleGetSettings(c *gin.Context) {
	s, err := ws.screens.OpenSettings()
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, fmt.Sprintf("Failed to open settings: %v", err))
		return
	}

	if wantsHTML(c) {
		render(c, http.StatusOK, templates.Settings(s.State().View()))
		return
	}
	c.JSON(http.StatusOK, s.State().View())
}

// handleUpdateSettings takes a JSON body or the settings page form. Values go through the
// same clamping setters either way.
func (ws *WebServer) handleUpdateSettings(c *gin.Context) {
	var req models.UpdateSettingsRequest
	if err := c.ShouldBind(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	s, err := ws.screens.Settings()
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, fmt.Sprintf("Failed to open settings: %v", err))
		return
	}

	state := s.State()
	if req.Effect != nil {
		e, err := transition.ParseEffect(*req.Effect)
		if err != nil {
			errorJSON(c, http.StatusBadRequest, err.Error())
			return
		}
		state.SetEffect(e)
	}
	if req.EffectDurationSeconds != nil {
		state.SetEffectDuration(*req.EffectDurationSeconds)
	}
	if req.PhotoIntervalSeconds != nil {
		state.SetPhotoInterval(*req.PhotoIntervalSeconds)
	}

	if wantsHTML(c) {
		render(c, http.StatusOK, templates.Settings(state.View()))
		return
	}
	c.JSON(http.StatusOK, state.View())
}

func (ws *WebServer) handleSelectPhoto(c *gin.Context) {
	s, err := ws.screens.Settings()
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, fmt.Sprintf("Failed to open settings: %v", err))
		return
	}

	id := library.PhotoID(c.Param("id"))
	if !s.State().SelectPhoto(id) {
		errorJSON(c, http.StatusNotFound, fmt.Sprintf("Photo %s is not on the settings screen", id))
		return
	}

	// Rendered in place. GET /settings would start a new visit and drop the selections.
	if wantsHTML(c) {
		render(c, http.StatusOK, templates.Settings(s.State().View()))
		return
	}
	c.JSON(http.StatusOK, s.State().View())
}

// handleApplySettings saves the selections and returns where the photo view opens.
func (ws *WebServer) handleApplySettings(c *gin.Context) {
	s, err := ws.screens.Settings()
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, fmt.Sprintf("Failed to open settings: %v", err))
		return
	}

	params, err := s.State().Apply()
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, fmt.Sprintf("Failed to update settings: %v", err))
		return
	}

	res := launchParams(params)
	if wantsHTML(c) {
		c.Redirect(http.StatusSeeOther, res.Location)
		return
	}
	c.JSON(http.StatusOK, res)
}

func launchParams(p slideshow.Params) models.LaunchParams {
	return models.LaunchParams{
		Effect:                p.Effect.String(),
		EffectDurationSeconds: p.EffectDuration.Seconds(),
		PhotoIntervalSeconds:  p.PhotoInterval.Seconds(),
		StartIndex:            p.StartIndex,
		Location:              templates.SlideshowURL(p),
	}
}
