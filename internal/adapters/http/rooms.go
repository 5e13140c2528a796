package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/karunchanna/SplatsExperiment/internal/core"
	"github.com/karunchanna/SplatsExperiment/internal/domain"
)

// CreateRoom allocates an empty room and hands its id back; the caller
// joins it over the websocket afterwards.
func CreateRoom(reg *core.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		room := reg.Create()
		c.JSON(http.StatusOK, gin.H{"roomId": room.ID()})
	}
}

// GetRoom reports room metadata without mutating it.
func GetRoom(reg *core.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		room, ok := reg.Get(domain.RoomID(c.Param("roomId")))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		sceneURL, sceneID := room.Scene()
		c.JSON(http.StatusOK, gin.H{
			"id":          room.ID(),
			"sceneUrl":    sceneURL,
			"sceneId":     sceneID,
			"playerCount": room.PlayerCount(),
		})
	}
}
