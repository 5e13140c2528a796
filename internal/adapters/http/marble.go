package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/karunchanna/SplatsExperiment/internal/marble"
)

// apiKey pulls the client's generation key off the request. The relay
// never stores it; it only forwards it upstream.
func apiKey(c *gin.Context) (string, bool) {
	key := c.GetHeader("x-api-key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "API key required"})
		return "", false
	}
	return key, true
}

func PrepareUpload(worlds *marble.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := apiKey(c)
		if !ok {
			return
		}
		var req marble.PrepareUploadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		body, status, err := worlds.PrepareUpload(c.Request.Context(), key, req)
		if err != nil {
			log.Error().Err(err).Str("module", "adapters.http").Msg("prepare-upload")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare upload"})
			return
		}
		c.Data(status, "application/json", body)
	}
}

func GenerateWorld(worlds *marble.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := apiKey(c)
		if !ok {
			return
		}
		var req marble.GenerateWorldRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		body, status, err := worlds.GenerateWorld(c.Request.Context(), key, req)
		if errors.Is(err, marble.ErrNoImageSource) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Either mediaAssetId or imageUri required"})
			return
		}
		if err != nil {
			log.Error().Err(err).Str("module", "adapters.http").Msg("generate-world")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate world"})
			return
		}
		c.Data(status, "application/json", body)
	}
}

func GetOperation(worlds *marble.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := apiKey(c)
		if !ok {
			return
		}
		body, status, err := worlds.GetOperation(c.Request.Context(), key, c.Param("operationId"))
		if err != nil {
			log.Error().Err(err).Str("module", "adapters.http").Msg("poll operation")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to poll operation"})
			return
		}
		c.Data(status, "application/json", body)
	}
}

func GetWorld(worlds *marble.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := apiKey(c)
		if !ok {
			return
		}
		body, status, err := worlds.GetWorld(c.Request.Context(), key, c.Param("worldId"))
		if err != nil {
			log.Error().Err(err).Str("module", "adapters.http").Msg("get world")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get world"})
			return
		}
		c.Data(status, "application/json", body)
	}
}
