// Package http is the control-plane adapter: room CRUD over gin.
package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HarshitBamotra/StreamSync-Backend/internal/adapters/signal"
	"github.com/HarshitBamotra/StreamSync-Backend/internal/app"
	"github.com/HarshitBamotra/StreamSync-Backend/internal/config"
)

func SetupRouter(ctx context.Context, cfg *config.Config, coord *app.Coordinator, signalCtl *signal.Controller) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	h := &RoomHandler{Coord: coord}

	ping := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "Server is up and running"})
	}
	r.GET("/ping", ping)

	api := r.Group("/api")
	api.GET("/ping", ping)
	api.POST("/rooms", h.CreateRoom)
	api.POST("/rooms/:roomId/join", h.JoinRoom)
	api.GET("/rooms/:roomId", h.GetRoomInfo)
	api.DELETE("/rooms/:roomId", h.DeleteRoom)

	api.GET("/ws/signal", func(c *gin.Context) {
		signalCtl.HandleSignal(ctx, c)
	})

	return r
}
