package http

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/karunchanna/SplatsExperiment/internal/adapters/signal"
	"github.com/karunchanna/SplatsExperiment/internal/config"
	"github.com/karunchanna/SplatsExperiment/internal/core"
	"github.com/karunchanna/SplatsExperiment/internal/marble"
)

func SetupRouter(ctx context.Context, cfg *config.Config, reg *core.Registry, worlds *marble.Client) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	if cfg.StaticPath != "" {
		r.Static("/static", cfg.StaticPath)
		r.GET("/", func(c *gin.Context) {
			c.File(cfg.StaticPath + "/index.html")
		})
	}

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	api := r.Group("/api")

	api.POST("/rooms", CreateRoom(reg))
	api.GET("/rooms/:roomId", GetRoom(reg))

	api.POST("/prepare-upload", PrepareUpload(worlds))
	api.POST("/generate-world", GenerateWorld(worlds))
	api.GET("/operations/:operationId", GetOperation(worlds))
	api.GET("/worlds/:worldId", GetWorld(worlds))

	ctrl := signal.NewRelayController(cfg, reg)
	r.GET("/ws", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("remote", c.ClientIP()).Msg("ws relay endpoint hit")
		ctrl.HandleRelay(ctx, c)
	})

	return r
}
