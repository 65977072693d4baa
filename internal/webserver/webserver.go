// Package webserver hosts the HTTP API on echo.
package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/bjo163/pairlink/config"
)

// WebServer wraps the echo instance and its lifecycle.
type WebServer struct {
	cfg config.AppConfig
	e   *echo.Echo
}

func NewWebServer(cfg config.AppConfig) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("6M"))
	e.Use(corsMiddleware)
	e.Use(requestLogger)

	return &WebServer{cfg: cfg, e: e}
}

// Echo exposes the router for route registration.
func (s *WebServer) Echo() *echo.Echo {
	return s.e
}

// Start blocks serving HTTP until Shutdown or a listener error.
func (s *WebServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Web.Host, s.cfg.Web.Port)
	zap.L().Info("starting web server", zap.String("addr", addr))
	err := s.e.Start(addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// corsMiddleware opens the API to any origin. Clients are static sites served
// from arbitrary hosts; pairing knowledge is the only credential, so there is
// nothing origin-scoped to protect. Preflight answers 200 rather than echo's
// default 204 because installed clients check for it explicitly.
func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		h.Set(echo.HeaderAccessControlAllowOrigin, "*")
		h.Set(echo.HeaderAccessControlAllowMethods, "GET, POST, OPTIONS")
		h.Set(echo.HeaderAccessControlAllowHeaders, "Content-Type")
		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}
		return next(c)
	}
}

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		req := c.Request()
		zap.L().Debug("http request",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", c.Response().Status),
			zap.Duration("latency", time.Since(start)))
		return nil
	}
}
