package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"reniverse/models"
)

type ChannelController struct {
	db *gorm.DB
}

func NewChannelController(db *gorm.DB) *ChannelController {
	return &ChannelController{db: db}
}

func (c *ChannelController) GetChannels(ctx *gin.Context) {
	var channels []models.Channel
	result := c.db.Order("name").Find(&channels)
	if result.Error != nil {
		ctx.JSON(500, gin.H{"error": "Failed to fetch channels"})
		return
	}
	ctx.JSON(200, channels)
}

func (c *ChannelController) GetChannelByID(ctx *gin.Context) {
	id := ctx.Param("id")

	var channel models.Channel
	result := c.db.First(&channel, "id = ?", id)
	if result.Error != nil {
		ctx.JSON(404, gin.H{"error": "Channel not found"})
		return
	}
	ctx.JSON(200, channel)
}

func (c *ChannelController) CreateChannel(ctx *gin.Context) {
	var channel models.Channel
	if err := ctx.ShouldBindJSON(&channel); err != nil {
		ctx.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if channel.Name == "" {
		ctx.JSON(400, gin.H{"error": "Name is required"})
		return
	}
	if channel.ID == "" {
		channel.ID = uuid.NewString()
	}
	if channel.Categories == nil {
		channel.Categories = models.StringList{models.ToBeClassified}
	}

	result := c.db.Create(&channel)
	if result.Error != nil {
		ctx.JSON(500, gin.H{"error": "Failed to create channel"})
		return
	}
	ctx.JSON(201, channel)
}

func (c *ChannelController) UpdateChannel(ctx *gin.Context) {
	id := ctx.Param("id")
	var channel models.Channel
	result := c.db.First(&channel, "id = ?", id)
	if result.Error != nil {
		ctx.JSON(404, gin.H{"error": "Channel not found"})
		return
	}

	if err := ctx.ShouldBindJSON(&channel); err != nil {
		ctx.JSON(400, gin.H{"error": err.Error()})
		return
	}
	channel.ID = id

	result = c.db.Save(&channel)
	if result.Error != nil {
		ctx.JSON(500, gin.H{"error": "Failed to update channel"})
		return
	}
	ctx.JSON(200, channel)
}

func (c *ChannelController) DeleteChannel(ctx *gin.Context) {
	id := ctx.Param("id")
	var channel models.Channel
	result := c.db.First(&channel, "id = ?", id)
	if result.Error != nil {
		ctx.JSON(404, gin.H{"error": "Channel not found"})
		return
	}

	result = c.db.Delete(&channel)
	if result.Error != nil {
		ctx.JSON(500, gin.H{"error": "Failed to delete channel"})
		return
	}
	ctx.JSON(200, gin.H{"message": "Channel deleted successfully"})
}
