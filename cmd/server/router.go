package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/zerolog/log"

	"github.com/kiliankoe/otiyot/internal/api"
	"github.com/kiliankoe/otiyot/internal/config"
	"github.com/kiliankoe/otiyot/internal/screen"
	"github.com/kiliankoe/otiyot/internal/ws"
	staticserver "github.com/kiliankoe/otiyot/static"
)

func newRouter(cfg config.Config, mgr *screen.Manager) (*gin.Engine, *socketio.Server) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(accessLog)

	// Healthcheck
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC(), "screens": mgr.Count()})
	})

	api.New(mgr).Register(r)
	io := ws.New(mgr, cfg.CORSOrigin).Mount(r)

	// Serve frontend for all other routes
	r.NoRoute(func(c *gin.Context) {
		staticserver.Handler().ServeHTTP(c.Writer, c.Request)
	})
	return r, io
}

// accessLog logs every request except Socket.IO polling.
func accessLog(c *gin.Context) {
	start := time.Now()
	c.Next()
	path := c.Request.URL.Path
	if strings.HasPrefix(path, "/socket.io") {
		return
	}
	log.Info().Str("method", c.Request.Method).Str("path", path).Int("status", c.Writer.Status()).Dur("dur", time.Since(start)).Msg("http")
}
