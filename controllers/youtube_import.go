package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"reniverse/config"
	"reniverse/services"
	"reniverse/youtube"
)

// YouTubeImportController exposes the playlist import pipeline over HTTP.
type YouTubeImportController struct {
	db      *gorm.DB
	service *services.ImportService
}

func NewYouTubeImportController(db *gorm.DB) *YouTubeImportController {
	yt := youtube.NewClient(config.YouTube.APIKey)
	service := services.NewImportService(db, yt, config.YouTube.ArtistChannelID, config.YouTube.PlaylistPageSize)
	return &YouTubeImportController{db: db, service: service}
}

// NewYouTubeImportControllerWithService is used by tests to inject a service
// wired to a stub YouTube server.
func NewYouTubeImportControllerWithService(db *gorm.DB, service *services.ImportService) *YouTubeImportController {
	return &YouTubeImportController{db: db, service: service}
}

// ImportPlaylist runs one import for the playlist in the path.
// GET /youtube/playlist/:id
func (c *YouTubeImportController) ImportPlaylist(ctx *gin.Context) {
	playlistID := ctx.Param("id")

	result, err := c.service.ImportPlaylist(ctx.Request.Context(), playlistID)
	if err != nil {
		if errors.Is(err, services.ErrMissingPlaylistID) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, result)
}
