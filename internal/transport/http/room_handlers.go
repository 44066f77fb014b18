package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomcast-server/internal/core"
	"github.com/vovakirdan/roomcast-server/internal/utils"
)

// RoomHandlers provides HTTP handlers for room code management.
type RoomHandlers struct {
	broker *core.Broker
	log    *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(broker *core.Broker, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{
		broker: broker,
		log:    logger,
	}
}

// CreateRoomResponse carries a freshly minted room code.
type CreateRoomResponse struct {
	Code string `json:"code"`
}

// RoomResponse describes a live room.
type RoomResponse struct {
	Code    string   `json:"code"`
	Members []string `json:"members"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateRoom mints a room code. The room itself materializes when the
// first session joins over the event surface.
// POST /api/rooms
func (h *RoomHandlers) CreateRoom(c *gin.Context) {
	code := utils.NewRoomCode()
	h.log.Info().Str("room", code).Msg("room code created")
	c.JSON(http.StatusCreated, CreateRoomResponse{Code: code})
}

// GetRoom returns the live room for a code, 404 when no session holds it.
// GET /api/rooms/:code
func (h *RoomHandlers) GetRoom(c *gin.Context) {
	code := c.Param("code")

	members, err := h.broker.Members(code)
	if err != nil {
		if errors.Is(err, core.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
			return
		}
		h.log.Error().Err(err).Str("room", code).Msg("failed to look up room")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, RoomResponse{Code: code, Members: members})
}
