package services

import (
	"reniverse/youtube"
)

// SongCandidate is a playlist item uploaded by the canonical artist channel.
type SongCandidate struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ReactionCandidate is a playlist item uploaded by any other channel. It keeps
// the owner channel identity for later resolution.
type ReactionCandidate struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	OwnerChannelID    string `json:"owner_channel_id"`
	OwnerChannelTitle string `json:"owner_channel_title"`
}

// PartitionPlaylistItems splits playlist items into song candidates (uploaded
// by artistChannelID) and reaction candidates (everything else). Items with no
// video ID or no snippet data at all are skipped; the API is allowed to return
// partial entries. Input order is preserved within each partition.
func PartitionPlaylistItems(items []youtube.PlaylistItem, artistChannelID string) ([]SongCandidate, []ReactionCandidate) {
	songs := []SongCandidate{}
	others := []ReactionCandidate{}

	for _, item := range items {
		if item.VideoID == "" {
			continue
		}
		if item.Title == "" && item.OwnerChannelID == "" {
			continue
		}

		if item.OwnerChannelID == artistChannelID {
			songs = append(songs, SongCandidate{
				ID:    item.VideoID,
				Title: item.Title,
			})
			continue
		}

		others = append(others, ReactionCandidate{
			ID:                item.VideoID,
			Title:             item.Title,
			OwnerChannelID:    item.OwnerChannelID,
			OwnerChannelTitle: item.OwnerChannelTitle,
		})
	}

	return songs, others
}
