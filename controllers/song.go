package controllers

import (
	"reniverse/models"
	"reniverse/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SongController struct {
	db *gorm.DB
}

func NewSongController(db *gorm.DB) *SongController {
	return &SongController{db: db}
}

func (c *SongController) GetSongs(ctx *gin.Context) {
	var songs []models.Song
	result := c.db.Find(&songs)
	if result.Error != nil {
		ctx.JSON(500, gin.H{"error": "Failed to fetch songs"})
		return
	}
	ctx.JSON(200, songs)
}

func (c *SongController) GetSongByID(ctx *gin.Context) {
	id := ctx.Param("id")

	var song models.Song
	result := c.db.First(&song, "id = ?", id)
	if result.Error != nil {
		ctx.JSON(404, gin.H{"error": "Song not found"})
		return
	}
	ctx.JSON(200, song)
}

func (c *SongController) CreateSong(ctx *gin.Context) {
	var song models.Song
	if err := ctx.ShouldBindJSON(&song); err != nil {
		ctx.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if !utils.IsValidVideoID(song.ID) {
		ctx.JSON(400, gin.H{"error": "Invalid video ID"})
		return
	}
	if song.Title == "" {
		ctx.JSON(400, gin.H{"error": "Title is required"})
		return
	}
	if song.Genres == nil {
		song.Genres = models.StringList{}
	}

	result := c.db.Create(&song)
	if result.Error != nil {
		ctx.JSON(500, gin.H{"error": "Failed to create song"})
		return
	}
	ctx.JSON(201, song)
}

func (c *SongController) UpdateSong(ctx *gin.Context) {
	id := ctx.Param("id")
	var song models.Song
	result := c.db.First(&song, "id = ?", id)
	if result.Error != nil {
		ctx.JSON(404, gin.H{"error": "Song not found"})
		return
	}

	if err := ctx.ShouldBindJSON(&song); err != nil {
		ctx.JSON(400, gin.H{"error": err.Error()})
		return
	}
	song.ID = id
	if song.Genres == nil {
		song.Genres = models.StringList{}
	}

	result = c.db.Save(&song)
	if result.Error != nil {
		ctx.JSON(500, gin.H{"error": "Failed to update song"})
		return
	}
	ctx.JSON(200, song)
}

func (c *SongController) DeleteSong(ctx *gin.Context) {
	id := ctx.Param("id")
	var song models.Song
	result := c.db.First(&song, "id = ?", id)
	if result.Error != nil {
		ctx.JSON(404, gin.H{"error": "Song not found"})
		return
	}

	result = c.db.Delete(&song)
	if result.Error != nil {
		ctx.JSON(500, gin.H{"error": "Failed to delete song"})
		return
	}
	ctx.JSON(200, gin.H{"message": "Song deleted successfully"})
}
