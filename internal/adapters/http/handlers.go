package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/HarshitBamotra/StreamSync-Backend/internal/app"
	"github.com/HarshitBamotra/StreamSync-Backend/internal/domain"
)

type RoomHandler struct {
	Coord *app.Coordinator
}

// RoomSummary is the compact room view returned by create/join.
type RoomSummary struct {
	ID               domain.RoomID        `json:"id"`
	HostName         string               `json:"hostName"`
	ParticipantCount int                  `json:"participantCount"`
	CreatedAt        time.Time            `json:"createdAt,omitzero"`
	Participants     []domain.Participant `json:"participants,omitempty"`
}

// errStatus maps the outcome taxonomy to HTTP statuses. Internal detail
// never reaches the response body.
func errStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found or inactive"})
	case errors.Is(err, domain.ErrParticipantNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Participant not found"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("module", "adapters.http").Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req struct {
		HostName string `json:"hostName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Host name is required"})
		return
	}

	room, err := h.Coord.CreateRoom(c.Request.Context(), req.HostName)
	if err != nil {
		errStatus(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"roomId":  room.ID,
		"hostId":  room.HostID,
		"room": RoomSummary{
			ID:               room.ID,
			HostName:         room.HostName,
			ParticipantCount: len(room.Participants),
			CreatedAt:        room.CreatedAt,
		},
	})
}

func (h *RoomHandler) JoinRoom(c *gin.Context) {
	roomID := domain.RoomID(c.Param("roomId"))
	var req struct {
		UserName string `json:"userName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User name is required"})
		return
	}

	userID, room, err := h.Coord.JoinRoom(c.Request.Context(), roomID, req.UserName)
	if err != nil {
		errStatus(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"userId":  userID,
		"room": RoomSummary{
			ID:               room.ID,
			HostName:         room.HostName,
			ParticipantCount: len(room.Participants),
			Participants:     room.Participants,
		},
	})
}

func (h *RoomHandler) GetRoomInfo(c *gin.Context) {
	roomID := domain.RoomID(c.Param("roomId"))

	room, err := h.Coord.GetRoomInfo(c.Request.Context(), roomID)
	if err != nil {
		errStatus(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":               room.ID,
		"hostName":         room.HostName,
		"participantCount": len(room.Participants),
		"participants":     room.Participants,
		"createdAt":        room.CreatedAt,
		"isActive":         room.IsActive,
	})
}

func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	roomID := domain.RoomID(c.Param("roomId"))
	var req struct {
		UserID string `json:"userId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User id is required"})
		return
	}

	if err := h.Coord.DeleteRoom(c.Request.Context(), roomID, domain.UserID(req.UserID)); err != nil {
		errStatus(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Room deleted successfully"})
}
