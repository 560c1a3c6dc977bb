package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reniverse/models"
)

// ChannelResolver maps an external YouTube channel ID to the catalog's
// internal channel ID, creating the channel on first sight.
type ChannelResolver struct {
	db *gorm.DB
}

func NewChannelResolver(db *gorm.DB) *ChannelResolver {
	return &ChannelResolver{db: db}
}

// Resolve finds or creates the channel for the given external ID and returns
// its internal ID. An empty external ID resolves to "" without error: older
// reactions only carry a denormalized channel name.
//
// Two imports racing on the same external ID can both miss the lookup and
// both insert; the unique index on youtube_id rejects the loser, so an insert
// failure is answered with one re-query for the winner's row.
func (r *ChannelResolver) Resolve(ctx context.Context, externalChannelID, displayName string) (string, error) {
	if externalChannelID == "" {
		return "", nil
	}

	var existing models.Channel
	err := r.db.WithContext(ctx).Where("youtube_id = ?", externalChannelID).First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return "", fmt.Errorf("failed to look up channel %s: %w", externalChannelID, err)
	}

	if displayName == "" {
		displayName = "Unknown Channel"
	}

	channel := models.Channel{
		ID:         uuid.NewString(),
		Name:       displayName,
		YoutubeID:  &externalChannelID,
		Categories: models.StringList{models.ToBeClassified},
	}

	if err := r.db.WithContext(ctx).Create(&channel).Error; err != nil {
		// Most likely a concurrent import won the insert race; take its row.
		var winner models.Channel
		if qerr := r.db.WithContext(ctx).Where("youtube_id = ?", externalChannelID).First(&winner).Error; qerr == nil {
			log.Printf("Channel %s created concurrently, using existing id %s", externalChannelID, winner.ID)
			return winner.ID, nil
		}
		return "", fmt.Errorf("failed to create channel %s: %w", externalChannelID, err)
	}

	return channel.ID, nil
}
