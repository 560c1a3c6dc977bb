package config

import (
	"os"
	"strconv"
)

// defaultArtistChannelID is the RenMakesMusic channel. Uploads from this
// channel are classified as songs; everything else is a reaction candidate.
const defaultArtistChannelID = "UCEUNy-tJh9Q2tEDS8pfcp4w"

type YouTubeConfig struct {
	APIKey           string `env:"YOUTUBE_API_KEY"`
	ArtistChannelID  string `env:"ARTIST_CHANNEL_ID" envDefault:"UCEUNy-tJh9Q2tEDS8pfcp4w"`
	PlaylistPageSize int    `env:"YOUTUBE_PLAYLIST_PAGE_SIZE" envDefault:"50"`
}

var YouTube = loadYouTubeConfig()

func loadYouTubeConfig() YouTubeConfig {
	cfg := YouTubeConfig{
		ArtistChannelID:  defaultArtistChannelID,
		PlaylistPageSize: 50,
	}

	cfg.APIKey = os.Getenv("YOUTUBE_API_KEY")

	if v := os.Getenv("ARTIST_CHANNEL_ID"); v != "" {
		cfg.ArtistChannelID = v
	}

	if v := os.Getenv("YOUTUBE_PLAYLIST_PAGE_SIZE"); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			cfg.PlaylistPageSize = i
		}
	}

	// The playlistItems endpoint caps maxResults at 50
	if cfg.PlaylistPageSize > 50 {
		cfg.PlaylistPageSize = 50
	}

	return cfg
}
