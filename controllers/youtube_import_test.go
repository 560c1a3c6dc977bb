package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"reniverse/models"
	"reniverse/services"
	"reniverse/youtube"
)

const testArtistChannel = "UCartist"

// newStubYouTubeServer serves a fixed Data API v3 playlistItems response. An
// empty items slice reproduces the "no items found" upstream condition.
func newStubYouTubeServer(t *testing.T, items []map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/playlistItems" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"kind":  "youtube#playlistItemListResponse",
			"items": items,
		})
	}))
}

func stubItem(videoID, title, ownerID, ownerTitle string) map[string]interface{} {
	return map[string]interface{}{
		"snippet": map[string]interface{}{
			"title":                  title,
			"videoOwnerChannelId":    ownerID,
			"videoOwnerChannelTitle": ownerTitle,
		},
		"contentDetails": map[string]interface{}{
			"videoId": videoID,
		},
	}
}

func TestImportPlaylistEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("successful import", func(t *testing.T) {
		db := setupTestDB(t)
		server := newStubYouTubeServer(t, []map[string]interface{}{
			stubItem("s_nc1IVoMxc", "Hi Ren", testArtistChannel, "Ren"),
			stubItem("reactvid001", "Vocal Coach Reacts to Hi Ren", "UCcoach", "Chris Liepe"),
		})
		defer server.Close()

		yt := youtube.NewClientWithBaseURL("test-key", server.URL)
		service := services.NewImportService(db, yt, testArtistChannel, 50)
		controller := NewYouTubeImportControllerWithService(db, service)

		router := gin.New()
		router.GET("/youtube/playlist/:id", controller.ImportPlaylist)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/youtube/playlist/PLabc", nil)
		router.ServeHTTP(w, req)

		if w.Code != 200 {
			t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
		}

		var result services.ImportResult
		if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
			t.Fatalf("Failed to unmarshal result: %v", err)
		}
		if result.SongsImported != 1 || result.ReactionsImported != 1 {
			t.Errorf("Expected 1 song and 1 reaction imported, got %d/%d",
				result.SongsImported, result.ReactionsImported)
		}

		var count int64
		db.Model(&models.Reaction{}).Count(&count)
		if count != 1 {
			t.Errorf("Expected 1 reaction row, got %d", count)
		}
	})

	t.Run("empty playlist id returns 400", func(t *testing.T) {
		db := setupTestDB(t)
		yt := youtube.NewClientWithBaseURL("test-key", "http://unused.invalid")
		service := services.NewImportService(db, yt, testArtistChannel, 50)
		controller := NewYouTubeImportControllerWithService(db, service)

		router := gin.New()
		// Route with the param empty so the handler sees "".
		router.GET("/youtube/playlist", func(ctx *gin.Context) {
			controller.ImportPlaylist(ctx)
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/youtube/playlist", nil)
		router.ServeHTTP(w, req)

		if w.Code != 400 {
			t.Errorf("Expected status 400, got %d. Body: %s", w.Code, w.Body.String())
		}
	})

	t.Run("empty playlist returns 500", func(t *testing.T) {
		db := setupTestDB(t)
		server := newStubYouTubeServer(t, []map[string]interface{}{})
		defer server.Close()

		yt := youtube.NewClientWithBaseURL("test-key", server.URL)
		service := services.NewImportService(db, yt, testArtistChannel, 50)
		controller := NewYouTubeImportControllerWithService(db, service)

		router := gin.New()
		router.GET("/youtube/playlist/:id", controller.ImportPlaylist)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/youtube/playlist/PLempty", nil)
		router.ServeHTTP(w, req)

		if w.Code != 500 {
			t.Errorf("Expected status 500, got %d. Body: %s", w.Code, w.Body.String())
		}
	})

	t.Run("missing api key returns 500", func(t *testing.T) {
		db := setupTestDB(t)
		yt := youtube.NewClientWithBaseURL("", "http://unused.invalid")
		service := services.NewImportService(db, yt, testArtistChannel, 50)
		controller := NewYouTubeImportControllerWithService(db, service)

		router := gin.New()
		router.GET("/youtube/playlist/:id", controller.ImportPlaylist)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/youtube/playlist/PLabc", nil)
		router.ServeHTTP(w, req)

		if w.Code != 500 {
			t.Errorf("Expected status 500, got %d. Body: %s", w.Code, w.Body.String())
		}
	})
}
