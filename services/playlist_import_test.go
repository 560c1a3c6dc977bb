package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/gorm"

	"reniverse/models"
	"reniverse/youtube"
)

const artistChannel = "UCEUNy-tJh9Q2tEDS8pfcp4w"

type stubPlaylistItem struct {
	videoID     string
	title       string
	ownerID     string
	ownerTitle  string
	omitSnippet bool
	omitDetails bool
}

// newStubYouTubeServer serves a playlistItems response in the Data API v3
// shape for whatever items the test registers.
func newStubYouTubeServer(t *testing.T, items []stubPlaylistItem) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/playlistItems" {
			http.NotFound(w, r)
			return
		}

		type snippet struct {
			Title                  string `json:"title"`
			VideoOwnerChannelID    string `json:"videoOwnerChannelId"`
			VideoOwnerChannelTitle string `json:"videoOwnerChannelTitle"`
		}
		type contentDetails struct {
			VideoID string `json:"videoId"`
		}
		type resource struct {
			Kind           string          `json:"kind"`
			Snippet        *snippet        `json:"snippet,omitempty"`
			ContentDetails *contentDetails `json:"contentDetails,omitempty"`
		}

		resources := []resource{}
		for _, item := range items {
			res := resource{Kind: "youtube#playlistItem"}
			if !item.omitSnippet {
				res.Snippet = &snippet{
					Title:                  item.title,
					VideoOwnerChannelID:    item.ownerID,
					VideoOwnerChannelTitle: item.ownerTitle,
				}
			}
			if !item.omitDetails {
				res.ContentDetails = &contentDetails{VideoID: item.videoID}
			}
			resources = append(resources, res)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"kind":  "youtube#playlistItemListResponse",
			"items": resources,
		})
	}))
}

func newTestImportService(db *gorm.DB, serverURL string) *ImportService {
	yt := youtube.NewClientWithBaseURL("test-key", serverURL)
	return NewImportService(db, yt, artistChannel, 50)
}

func TestImportPlaylist(t *testing.T) {
	db := setupTestDB(t)
	server := newStubYouTubeServer(t, []stubPlaylistItem{
		{videoID: "song1", title: "Hi Ren", ownerID: artistChannel, ownerTitle: "Ren"},
		{videoID: "song2", title: "Money Game", ownerID: artistChannel, ownerTitle: "Ren"},
		{videoID: "react1", title: "Vocal Coach Reacts to Hi Ren", ownerID: "UCchris", ownerTitle: "Chris Liepe"},
		{videoID: "react2", title: "Random video unrelated", ownerID: "UCother", ownerTitle: "Someone"},
	})
	defer server.Close()

	service := newTestImportService(db, server.URL)
	result, err := service.ImportPlaylist(context.Background(), "PLtest")
	if err != nil {
		t.Fatalf("ImportPlaylist failed: %v", err)
	}

	if len(result.Songs) != 2 {
		t.Errorf("expected 2 songs, got %d", len(result.Songs))
	}
	if result.SongsImported != 2 {
		t.Errorf("expected 2 new songs, got %d", result.SongsImported)
	}
	if len(result.Reactions) != 1 {
		t.Fatalf("expected 1 reaction (unmatched dropped), got %d", len(result.Reactions))
	}
	if result.Reactions[0].SongID != "song1" {
		t.Errorf("expected reaction matched to song1, got %q", result.Reactions[0].SongID)
	}
	if result.Reactions[0].ChannelID == nil {
		t.Error("expected imported reaction to carry a channel_id")
	}
	if len(result.Reactions[0].Categories) != 1 || result.Reactions[0].Categories[0] != models.ToBeClassified {
		t.Errorf("expected default categories, got %v", result.Reactions[0].Categories)
	}

	// Songs persisted with empty genre list, never null
	var song models.Song
	if err := db.First(&song, "id = ?", "song1").Error; err != nil {
		t.Fatalf("song not persisted: %v", err)
	}
	if song.Genres == nil || len(song.Genres) != 0 {
		t.Errorf("expected empty genres list, got %v", song.Genres)
	}

	// Unmatched reaction never persisted
	var reactionCount int64
	db.Model(&models.Reaction{}).Count(&reactionCount)
	if reactionCount != 1 {
		t.Errorf("expected 1 persisted reaction, got %d", reactionCount)
	}

	// No reaction without a song reference
	var orphanCount int64
	db.Model(&models.Reaction{}).Where("song_id = '' OR song_id IS NULL").Count(&orphanCount)
	if orphanCount != 0 {
		t.Errorf("found %d reactions without song_id", orphanCount)
	}
}

// Importing the same playlist twice yields the same rows with no duplicates.
func TestImportPlaylistIdempotent(t *testing.T) {
	db := setupTestDB(t)
	server := newStubYouTubeServer(t, []stubPlaylistItem{
		{videoID: "song1", title: "Hi Ren", ownerID: artistChannel, ownerTitle: "Ren"},
		{videoID: "react1", title: "Vocal Coach Reacts to Hi Ren", ownerID: "UCchris", ownerTitle: "Chris Liepe"},
	})
	defer server.Close()

	service := newTestImportService(db, server.URL)

	first, err := service.ImportPlaylist(context.Background(), "PLtest")
	if err != nil {
		t.Fatalf("first import failed: %v", err)
	}
	if first.SongsImported != 1 || first.ReactionsImported != 1 {
		t.Fatalf("first import counts wrong: %+v", first)
	}

	second, err := service.ImportPlaylist(context.Background(), "PLtest")
	if err != nil {
		t.Fatalf("second import failed: %v", err)
	}
	if second.SongsImported != 0 {
		t.Errorf("second import created %d new songs, want 0", second.SongsImported)
	}
	if second.ReactionsImported != 0 {
		t.Errorf("second import created %d new reactions, want 0", second.ReactionsImported)
	}

	var songCount, reactionCount, channelCount int64
	db.Model(&models.Song{}).Count(&songCount)
	db.Model(&models.Reaction{}).Count(&reactionCount)
	db.Model(&models.Channel{}).Count(&channelCount)
	if songCount != 1 || reactionCount != 1 || channelCount != 1 {
		t.Errorf("expected 1/1/1 rows after double import, got %d/%d/%d", songCount, reactionCount, channelCount)
	}
}

// Two reactions from the same channel share one resolved channel row.
func TestImportPlaylistChannelDeduplication(t *testing.T) {
	db := setupTestDB(t)
	server := newStubYouTubeServer(t, []stubPlaylistItem{
		{videoID: "song1", title: "Hi Ren", ownerID: artistChannel, ownerTitle: "Ren"},
		{videoID: "song2", title: "Money Game", ownerID: artistChannel, ownerTitle: "Ren"},
		{videoID: "react1", title: "Knox Reacts to Hi Ren", ownerID: "UCabc", ownerTitle: "Knox Hill"},
		{videoID: "react2", title: "Knox Reacts to Money Game", ownerID: "UCabc", ownerTitle: "Knox Hill"},
	})
	defer server.Close()

	service := newTestImportService(db, server.URL)
	result, err := service.ImportPlaylist(context.Background(), "PLtest")
	if err != nil {
		t.Fatalf("ImportPlaylist failed: %v", err)
	}

	if len(result.Reactions) != 2 {
		t.Fatalf("expected 2 reactions, got %d", len(result.Reactions))
	}

	var channelCount int64
	db.Model(&models.Channel{}).Count(&channelCount)
	if channelCount != 1 {
		t.Errorf("expected 1 channel row for shared owner, got %d", channelCount)
	}

	a, b := result.Reactions[0].ChannelID, result.Reactions[1].ChannelID
	if a == nil || b == nil || *a != *b {
		t.Errorf("expected both reactions to share a channel_id, got %v and %v", a, b)
	}
}

// Songs already in the catalog from earlier imports are matchable even when
// the current playlist contains only reactions.
func TestImportPlaylistMatchesAgainstStore(t *testing.T) {
	db := setupTestDB(t)
	if err := db.Create(&models.Song{ID: "s1", Title: "Hi Ren", Genres: models.StringList{}}).Error; err != nil {
		t.Fatalf("failed to seed song: %v", err)
	}

	server := newStubYouTubeServer(t, []stubPlaylistItem{
		{videoID: "react1", title: "First listen to Hi Ren", ownerID: "UCabc", ownerTitle: "Knox Hill"},
	})
	defer server.Close()

	service := newTestImportService(db, server.URL)
	result, err := service.ImportPlaylist(context.Background(), "PLtest")
	if err != nil {
		t.Fatalf("ImportPlaylist failed: %v", err)
	}

	if len(result.Reactions) != 1 || result.Reactions[0].SongID != "s1" {
		t.Fatalf("expected reaction matched against stored song, got %+v", result.Reactions)
	}
}

func TestImportPlaylistSkipsMalformedItems(t *testing.T) {
	db := setupTestDB(t)
	server := newStubYouTubeServer(t, []stubPlaylistItem{
		{videoID: "song1", title: "Hi Ren", ownerID: artistChannel, ownerTitle: "Ren"},
		{omitDetails: true, title: "No video id", ownerID: "UCabc"},
		{videoID: "ghost", omitSnippet: true},
	})
	defer server.Close()

	service := newTestImportService(db, server.URL)
	result, err := service.ImportPlaylist(context.Background(), "PLtest")
	if err != nil {
		t.Fatalf("ImportPlaylist failed: %v", err)
	}

	if len(result.Songs) != 1 {
		t.Errorf("expected 1 song, got %d", len(result.Songs))
	}
	if len(result.Reactions) != 0 {
		t.Errorf("expected no reactions, got %d", len(result.Reactions))
	}
}

func TestImportPlaylistMissingPlaylistID(t *testing.T) {
	db := setupTestDB(t)
	server := newStubYouTubeServer(t, nil)
	defer server.Close()

	service := newTestImportService(db, server.URL)
	_, err := service.ImportPlaylist(context.Background(), "")
	if !errors.Is(err, ErrMissingPlaylistID) {
		t.Errorf("expected ErrMissingPlaylistID, got %v", err)
	}

	var songCount int64
	db.Model(&models.Song{}).Count(&songCount)
	if songCount != 0 {
		t.Errorf("expected no store writes, found %d songs", songCount)
	}
}

func TestImportPlaylistUnconfiguredAPIKey(t *testing.T) {
	db := setupTestDB(t)
	yt := youtube.NewClientWithBaseURL("", "http://unused")
	service := NewImportService(db, yt, artistChannel, 50)

	_, err := service.ImportPlaylist(context.Background(), "PLtest")
	if !errors.Is(err, ErrAPIKeyNotConfigured) {
		t.Errorf("expected ErrAPIKeyNotConfigured, got %v", err)
	}
}

func TestImportPlaylistNoItems(t *testing.T) {
	db := setupTestDB(t)
	server := newStubYouTubeServer(t, []stubPlaylistItem{})
	defer server.Close()

	service := newTestImportService(db, server.URL)
	_, err := service.ImportPlaylist(context.Background(), "PLempty")
	if !errors.Is(err, ErrNoItems) {
		t.Errorf("expected ErrNoItems, got %v", err)
	}
}
