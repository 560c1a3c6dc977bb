package controllers

import (
	"reniverse/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReactionController struct {
	db *gorm.DB
}

func NewReactionController(db *gorm.DB) *ReactionController {
	return &ReactionController{db: db}
}

// GetReactions lists reactions, optionally filtered by song_id and category
// query parameters.
func (c *ReactionController) GetReactions(ctx *gin.Context) {
	query := c.db.Model(&models.Reaction{})

	if songID := ctx.Query("song_id"); songID != "" {
		query = query.Where("song_id = ?", songID)
	}

	var reactions []models.Reaction
	result := query.Find(&reactions)
	if result.Error != nil {
		ctx.JSON(500, gin.H{"error": "Failed to fetch reactions"})
		return
	}

	// Category filtering happens after the query: categories live in a JSON
	// text column, so substring matching in SQL would be unreliable.
	if category := ctx.Query("category"); category != "" {
		filtered := []models.Reaction{}
		for _, reaction := range reactions {
			for _, cat := range reaction.Categories {
				if cat == category {
					filtered = append(filtered, reaction)
					break
				}
			}
		}
		reactions = filtered
	}

	ctx.JSON(200, reactions)
}

func (c *ReactionController) GetReactionByID(ctx *gin.Context) {
	id := ctx.Param("id")

	var reaction models.Reaction
	result := c.db.First(&reaction, "id = ?", id)
	if result.Error != nil {
		ctx.JSON(404, gin.H{"error": "Reaction not found"})
		return
	}
	ctx.JSON(200, reaction)
}

func (c *ReactionController) CreateReaction(ctx *gin.Context) {
	var reaction models.Reaction
	if err := ctx.ShouldBindJSON(&reaction); err != nil {
		ctx.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if reaction.ID == "" {
		ctx.JSON(400, gin.H{"error": "ID is required"})
		return
	}
	// A reaction must always reference a song
	if reaction.SongID == "" {
		ctx.JSON(400, gin.H{"error": "song_id is required"})
		return
	}

	var song models.Song
	if err := c.db.First(&song, "id = ?", reaction.SongID).Error; err != nil {
		ctx.JSON(400, gin.H{"error": "Referenced song does not exist"})
		return
	}

	if reaction.Categories == nil {
		reaction.Categories = models.StringList{models.ToBeClassified}
	}

	result := c.db.Create(&reaction)
	if result.Error != nil {
		ctx.JSON(500, gin.H{"error": "Failed to create reaction"})
		return
	}
	ctx.JSON(201, reaction)
}

func (c *ReactionController) UpdateReaction(ctx *gin.Context) {
	id := ctx.Param("id")
	var reaction models.Reaction
	result := c.db.First(&reaction, "id = ?", id)
	if result.Error != nil {
		ctx.JSON(404, gin.H{"error": "Reaction not found"})
		return
	}

	if err := ctx.ShouldBindJSON(&reaction); err != nil {
		ctx.JSON(400, gin.H{"error": err.Error()})
		return
	}
	reaction.ID = id
	if reaction.SongID == "" {
		ctx.JSON(400, gin.H{"error": "song_id is required"})
		return
	}

	result = c.db.Save(&reaction)
	if result.Error != nil {
		ctx.JSON(500, gin.H{"error": "Failed to update reaction"})
		return
	}
	ctx.JSON(200, reaction)
}

func (c *ReactionController) DeleteReaction(ctx *gin.Context) {
	id := ctx.Param("id")
	var reaction models.Reaction
	result := c.db.First(&reaction, "id = ?", id)
	if result.Error != nil {
		ctx.JSON(404, gin.H{"error": "Reaction not found"})
		return
	}

	result = c.db.Delete(&reaction)
	if result.Error != nil {
		ctx.JSON(500, gin.H{"error": "Failed to delete reaction"})
		return
	}
	ctx.JSON(200, gin.H{"message": "Reaction deleted successfully"})
}
