package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"reniverse/config"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// PlaylistItem is the flattened view of one playlist entry the import
// pipeline works with. Fields may be empty when the API returned a partial
// entry; the classifier decides what to skip.
type PlaylistItem struct {
	VideoID           string `json:"video_id"`
	Title             string `json:"title"`
	OwnerChannelID    string `json:"owner_channel_id"`
	OwnerChannelTitle string `json:"owner_channel_title"`
}

// Client is an API-key client for the YouTube Data API v3.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type playlistItemsResponse struct {
	Kind     string `json:"kind"`
	ETag     string `json:"etag"`
	PageInfo struct {
		TotalResults   int `json:"totalResults"`
		ResultsPerPage int `json:"resultsPerPage"`
	} `json:"pageInfo"`
	Items []playlistItemResource `json:"items"`
}

type playlistItemResource struct {
	Kind    string `json:"kind"`
	ETag    string `json:"etag"`
	ID      string `json:"id"`
	Snippet *struct {
		PublishedAt            time.Time `json:"publishedAt"`
		ChannelID              string    `json:"channelId"`
		Title                  string    `json:"title"`
		Description            string    `json:"description"`
		ChannelTitle           string    `json:"channelTitle"`
		VideoOwnerChannelID    string    `json:"videoOwnerChannelId"`
		VideoOwnerChannelTitle string    `json:"videoOwnerChannelTitle"`
	} `json:"snippet"`
	ContentDetails *struct {
		VideoID          string `json:"videoId"`
		VideoPublishedAt string `json:"videoPublishedAt"`
	} `json:"contentDetails"`
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: config.YouTubeClient(),
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// GetPlaylistItems fetches a single page of playlist items. maxResults is
// clamped to the API's 1..50 range. Partial entries are passed through with
// zero-value fields rather than dropped.
func (c *Client) GetPlaylistItems(ctx context.Context, playlistID string, maxResults int) ([]PlaylistItem, error) {
	if playlistID == "" {
		return nil, fmt.Errorf("playlist ID is required")
	}
	if !c.IsConfigured() {
		return nil, fmt.Errorf("YouTube API key is not configured")
	}

	if maxResults <= 0 {
		maxResults = 50
	}
	if maxResults > 50 {
		maxResults = 50
	}

	reqURL := fmt.Sprintf("%s/playlistItems?part=snippet,contentDetails&playlistId=%s&maxResults=%d&key=%s",
		c.baseURL, url.QueryEscape(playlistID), maxResults, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist items: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to get playlist items: %d - %s", resp.StatusCode, string(respBody))
	}

	var parsed playlistItemsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	items := make([]PlaylistItem, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		var flat PlaylistItem
		if item.ContentDetails != nil {
			flat.VideoID = item.ContentDetails.VideoID
		}
		if item.Snippet != nil {
			flat.Title = item.Snippet.Title
			flat.OwnerChannelID = item.Snippet.VideoOwnerChannelID
			flat.OwnerChannelTitle = item.Snippet.VideoOwnerChannelTitle
		}
		items = append(items, flat)
	}

	return items, nil
}
