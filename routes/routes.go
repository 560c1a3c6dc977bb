package routes

import (
	"context"
	"time"

	"reniverse/controllers"
	"reniverse/database"

	"github.com/gin-gonic/gin"
)

func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

func SetupRoutes(r *gin.Engine) {
	db := database.GetDB()

	songController := controllers.NewSongController(db)
	reactionController := controllers.NewReactionController(db)
	channelController := controllers.NewChannelController(db)
	importController := controllers.NewYouTubeImportController(db)

	r.Use(SecurityHeadersMiddleware())
	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil {
			c.JSON(503, gin.H{
				"status":    "unhealthy",
				"error":     "database connection error",
				"timestamp": time.Now().Unix(),
			})
			return
		}

		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := sqlDB.PingContext(pingCtx); err != nil {
			c.JSON(503, gin.H{
				"status":    "unhealthy",
				"error":     "database ping failed",
				"timestamp": time.Now().Unix(),
			})
			return
		}

		c.JSON(200, gin.H{
			"status":    "healthy",
			"database":  "connected",
			"timestamp": time.Now().Unix(),
		})
	})

	r.GET("/songs", songController.GetSongs)
	r.GET("/songs/:id", songController.GetSongByID)
	r.POST("/songs", songController.CreateSong)
	r.PUT("/songs/:id", songController.UpdateSong)
	r.DELETE("/songs/:id", songController.DeleteSong)

	r.GET("/reactions", reactionController.GetReactions)
	r.GET("/reactions/:id", reactionController.GetReactionByID)
	r.POST("/reactions", reactionController.CreateReaction)
	r.PUT("/reactions/:id", reactionController.UpdateReaction)
	r.DELETE("/reactions/:id", reactionController.DeleteReaction)

	r.GET("/channels", channelController.GetChannels)
	r.GET("/channels/:id", channelController.GetChannelByID)
	r.POST("/channels", channelController.CreateChannel)
	r.PUT("/channels/:id", channelController.UpdateChannel)
	r.DELETE("/channels/:id", channelController.DeleteChannel)

	r.GET("/youtube/playlist/:id", importController.ImportPlaylist)
}
