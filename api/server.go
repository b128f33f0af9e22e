// Package api is the main api web server
package api

import (
	"context"
	"log"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/aouyang1/theframe/access"
	"github.com/aouyang1/theframe/api/models"
	"github.com/aouyang1/theframe/library"
	"github.com/aouyang1/theframe/screen"
	"github.com/aouyang1/theframe/thumbnail"
)

// Photos lists the identifiers available to a screen.
type Photos interface {
	Query(maxCount int) []library.PhotoID
	Count() int
}

type WebServer struct {
	router *gin.Engine

	gate    *access.Gate
	screens *screen.Manager
	photos  Photos
	loader  thumbnail.ImageLoader

	upgrader websocket.Upgrader

	// Updated is signalled when the library index changes.
	Updated <-chan bool
}

func NewWebServer(gate *access.Gate, screens *screen.Manager, photos Photos, loader thumbnail.ImageLoader) *WebServer {
	router := gin.Default()

	ws := &WebServer{
		router:  router,
		gate:    gate,
		screens: screens,
		photos:  photos,
		loader:  loader,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	// Setup routes
	ws.setupRoutes()

	return ws
}

// Handler exposes the router, mostly for tests.
func (ws *WebServer) Handler() http.Handler {
	return ws.router
}

func (ws *WebServer) setupRoutes() {
	ws.router.GET("/", ws.handleIntro)
	ws.router.GET("/access", ws.handleGetAccess)
	ws.router.GET("/access/settings", ws.handleAccessSettings)
	ws.router.POST("/access/request", ws.handleRequestAccess)
	ws.router.POST("/access/revoke", ws.handleRevokeAccess)

	gated := ws.router.Group("/", ws.requireAccess)

	gated.GET("/settings", ws.handleGetSettings)
	gated.PUT("/settings", ws.handleUpdateSettings)
	gated.POST("/settings", ws.handleUpdateSettings)
	gated.POST("/settings/select/:id", ws.handleSelectPhoto)
	gated.POST("/settings/apply", ws.handleApplySettings)

	gated.GET("/slideshow", ws.handleOpenSlideshow)
	gated.GET("/slideshow/state", ws.handleSlideshowState)
	gated.GET("/slideshow/frame", ws.handleSlideshowFrame)
	gated.GET("/slideshow/ws", ws.handleSlideshowStream)
	gated.POST("/slideshow/menu", ws.handleToggleMenu)
	gated.DELETE("/slideshow", ws.handleCloseSlideshow)

	gated.GET("/photos", ws.handleListPhotos)
	gated.GET("/photos/:id/thumbnail", ws.handleThumbnail)
}

// Start serves until ctx is cancelled.
func (ws *WebServer) Start(ctx context.Context, addr string) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ws.Updated:
				// sessions keep their photo list; the next screen visit picks up changes
				slog.Info("photo library updated")
			}
		}
	}()

	srv := &http.Server{Addr: addr, Handler: ws.router}
	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(context.Background()); err != nil {
			slog.Error("failed to shut down web server", "error", err)
		}
	}()

	log.Printf("Starting web server on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start web server: %v", err)
	}
}

// requireAccess rejects requests until the library can be read.
func (ws *WebServer) requireAccess(c *gin.Context) {
	if ws.gate.Held() {
		c.Next()
		return
	}
	c.AbortWithStatusJSON(http.StatusConflict, ws.gate.Status())
}

func wantsHTML(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML
}

func render(c *gin.Context, status int, component templ.Component) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		slog.Error("failed to render page", "path", c.FullPath(), "error", err)
	}
}

func errorJSON(c *gin.Context, status int, msg string) {
	c.JSON(status, models.ErrorResponse{Error: msg})
}
