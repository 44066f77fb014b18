package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomcast-server/internal/config"
	"github.com/vovakirdan/roomcast-server/internal/core"
)

// NewServer builds the HTTP server: REST room management plus the
// WebSocket event surface.
func NewServer(broker *core.Broker, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", healthHandler)

	rooms := NewRoomHandlers(broker, logger)
	api := router.Group("/api")
	api.POST("/rooms", rooms.CreateRoom)
	api.GET("/rooms/:code", rooms.GetRoom)

	router.GET("/ws", gin.WrapH(NewWSHandler(broker, cfg, logger)))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
