// Package api exposes the relay over HTTP for the browser clients.
package api

import (
	"github.com/labstack/echo/v4"

	"github.com/bjo163/pairlink/config"
	"github.com/bjo163/pairlink/internal/relay"
	"github.com/bjo163/pairlink/internal/storage"
)

// Handler wires the relay services to their routes.
type Handler struct {
	registry   *relay.Registry
	directory  *relay.Directory
	dispatcher *relay.Dispatcher
	ledger     *relay.Ledger
	prefs      *relay.Prefs
	monitor    *relay.Monitor
	blobs      storage.BlobStore
	pushCfg    config.PushConfig
}

func NewHandler(registry *relay.Registry, directory *relay.Directory,
	dispatcher *relay.Dispatcher, ledger *relay.Ledger, prefs *relay.Prefs,
	monitor *relay.Monitor, blobs storage.BlobStore, pushCfg config.PushConfig) *Handler {
	return &Handler{
		registry:   registry,
		directory:  directory,
		dispatcher: dispatcher,
		ledger:     ledger,
		prefs:      prefs,
		monitor:    monitor,
		blobs:      blobs,
		pushCfg:    pushCfg,
	}
}

// Register mounts all API routes.
func (h *Handler) Register(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/create-pair", h.createPair)
	g.POST("/join-pair", h.joinPair)
	g.GET("/pair-status", h.pairStatus)
	g.POST("/subscribe", h.subscribe)
	g.POST("/send-tap", h.sendTap)
	g.POST("/send-image", h.sendImage)
	g.GET("/history", h.history)
	g.GET("/preferences", h.getPreferences)
	g.POST("/preferences", h.setPreferences)
	g.POST("/upload-image", h.uploadImage)
	g.GET("/vapid-key", h.vapidKey)
}
