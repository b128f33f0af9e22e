package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aouyang1/theframe/access"
	"github.com/aouyang1/theframe/api/models"
	"github.com/aouyang1/theframe/api/web/templates"
)

var errNoAnswer = errors.New("grant is required")

func (ws *WebServer) handleIntro(c *gin.Context) {
	render(c, http.StatusOK, templates.Intro(ws.gate.Status()))
}

func (ws *WebServer) handleGetAccess(c *gin.Context) {
	res := ws.gate.Status()
	if wantsHTML(c) {
		render(c, http.StatusOK, templates.Access(res))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ws *WebServer) handleAccessSettings(c *gin.Context) {
	render(c, http.StatusOK, templates.AccessSettings(ws.gate.Status()))
}

func (ws *WebServer) handleRequestAccess(c *gin.Context) {
	var req models.AccessRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBind(&req); err != nil {
			errorJSON(c, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
			return
		}
	}

	res, err := ws.gate.Request(c.Request.Context(), func(context.Context) (bool, error) {
		if req.Grant == nil {
			return false, errNoAnswer
		}
		return *req.Grant, nil
	})
	if errors.Is(err, errNoAnswer) {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, fmt.Sprintf("Failed to request access: %v", err))
		return
	}

	status := http.StatusOK
	if res.State == access.Denied {
		status = http.StatusConflict
	}

	if wantsHTML(c) {
		if res.State == access.Granted {
			c.Redirect(http.StatusSeeOther, res.Next)
			return
		}
		render(c, status, templates.Access(res))
		return
	}
	c.JSON(status, res)
}

func (ws *WebServer) handleRevokeAccess(c *gin.Context) {
	if err := ws.gate.Revoke(); err != nil {
		errorJSON(c, http.StatusInternalServerError, fmt.Sprintf("Failed to revoke access: %v", err))
		return
	}
	ws.screens.Close()
	if wantsHTML(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.JSON(http.StatusOK, ws.gate.Status())
}
