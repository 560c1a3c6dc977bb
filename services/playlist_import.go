package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reniverse/models"
	"reniverse/youtube"
)

var (
	// ErrMissingPlaylistID means the caller passed an empty playlist ID.
	ErrMissingPlaylistID = errors.New("playlist ID is required")
	// ErrAPIKeyNotConfigured means YOUTUBE_API_KEY is unset.
	ErrAPIKeyNotConfigured = errors.New("YouTube API key is not configured")
	// ErrNoItems means the playlist exists but returned no items.
	ErrNoItems = errors.New("no items found in playlist")
)

// ImportResult summarizes one playlist import run. Songs and Reactions hold
// the catalog rows the run produced or confirmed; the counts record how many
// of them were actually new this run.
type ImportResult struct {
	Songs             []models.Song     `json:"songs"`
	Reactions         []models.Reaction `json:"reactions"`
	SongsImported     int               `json:"songs_imported"`
	ReactionsImported int               `json:"reactions_imported"`
}

// ImportService drives the playlist import pipeline: fetch one page of
// playlist items, split songs from reaction candidates, upsert songs, resolve
// reaction channels, match reactions to songs by title and persist the ones
// that matched.
type ImportService struct {
	db              *gorm.DB
	yt              *youtube.Client
	resolver        *ChannelResolver
	artistChannelID string
	pageSize        int
}

func NewImportService(db *gorm.DB, yt *youtube.Client, artistChannelID string, pageSize int) *ImportService {
	return &ImportService{
		db:              db,
		yt:              yt,
		resolver:        NewChannelResolver(db),
		artistChannelID: artistChannelID,
		pageSize:        pageSize,
	}
}

// ImportPlaylist runs one import. Re-running it for the same playlist is
// idempotent: songs are upserted by ID and reactions already present are
// skipped. Channel resolution failures skip that channel's reactions and the
// run continues; song persistence failures abort the run.
func (s *ImportService) ImportPlaylist(ctx context.Context, playlistID string) (*ImportResult, error) {
	if playlistID == "" {
		return nil, ErrMissingPlaylistID
	}
	if !s.yt.IsConfigured() {
		return nil, ErrAPIKeyNotConfigured
	}

	items, err := s.yt.GetPlaylistItems(ctx, playlistID, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist %s: %w", playlistID, err)
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	songCandidates, reactionCandidates := PartitionPlaylistItems(items, s.artistChannelID)

	songs, songsImported, err := s.upsertSongs(ctx, songCandidates)
	if err != nil {
		return nil, err
	}

	// Resolve each distinct owner channel once; the mapping is local to this
	// run so two concurrent imports never share stale entries.
	resolved := make(map[string]string)
	unresolved := make(map[string]bool)
	for _, candidate := range reactionCandidates {
		extID := candidate.OwnerChannelID
		if extID == "" {
			continue
		}
		if _, seen := resolved[extID]; seen || unresolved[extID] {
			continue
		}
		internalID, err := s.resolver.Resolve(ctx, extID, candidate.OwnerChannelTitle)
		if err != nil {
			log.Printf("Failed to resolve channel %s (%s), skipping its reactions: %v",
				extID, candidate.OwnerChannelTitle, err)
			unresolved[extID] = true
			continue
		}
		resolved[extID] = internalID
	}

	// Match against the store, not the candidates: songs persisted moments ago
	// by this run (or any earlier one) must be visible to the matcher.
	var allSongs []models.Song
	if err := s.db.WithContext(ctx).Find(&allSongs).Error; err != nil {
		return nil, fmt.Errorf("failed to load songs for matching: %w", err)
	}

	reactions := []models.Reaction{}
	for _, candidate := range reactionCandidates {
		if candidate.OwnerChannelID != "" && unresolved[candidate.OwnerChannelID] {
			continue
		}

		songID := FindMatchingSongID(candidate.Title, allSongs)
		if songID == "" {
			continue
		}

		channelName := candidate.OwnerChannelTitle
		if channelName == "" {
			channelName = "Unknown Channel"
		}

		reaction := models.Reaction{
			ID:          candidate.ID,
			SongID:      songID,
			Title:       candidate.Title,
			ChannelName: channelName,
			Categories:  models.StringList{models.ToBeClassified},
		}
		if internalID := resolved[candidate.OwnerChannelID]; internalID != "" {
			id := internalID
			reaction.ChannelID = &id
		}
		reactions = append(reactions, reaction)
	}

	reactionsImported, err := s.insertNewReactions(ctx, reactions)
	if err != nil {
		return nil, err
	}

	log.Printf("Imported playlist %s: %d songs (%d new), %d reactions (%d new)",
		playlistID, len(songs), songsImported, len(reactions), reactionsImported)

	return &ImportResult{
		Songs:             songs,
		Reactions:         reactions,
		SongsImported:     songsImported,
		ReactionsImported: reactionsImported,
	}, nil
}

// upsertSongs writes all song candidates keyed by ID, overwriting on conflict
// so re-imports never duplicate or error. Any store error here is fatal for
// the run: reactions depend on the songs being in place.
func (s *ImportService) upsertSongs(ctx context.Context, candidates []SongCandidate) ([]models.Song, int, error) {
	if len(candidates) == 0 {
		return []models.Song{}, 0, nil
	}

	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}

	var existingCount int64
	if err := s.db.WithContext(ctx).Model(&models.Song{}).Where("id IN ?", ids).Count(&existingCount).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to check existing songs: %w", err)
	}

	songs := make([]models.Song, 0, len(candidates))
	for _, c := range candidates {
		songs = append(songs, models.Song{
			ID:     c.ID,
			Title:  c.Title,
			Genres: models.StringList{},
		})
	}

	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&songs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to upsert songs: %w", err)
	}

	return songs, len(candidates) - int(existingCount), nil
}

// insertNewReactions persists reactions that are not already in the store.
func (s *ImportService) insertNewReactions(ctx context.Context, reactions []models.Reaction) (int, error) {
	if len(reactions) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(reactions))
	for _, r := range reactions {
		ids = append(ids, r.ID)
	}

	existing := make(map[string]bool)
	var existingIDs []string
	if err := s.db.WithContext(ctx).Model(&models.Reaction{}).Where("id IN ?", ids).Pluck("id", &existingIDs).Error; err != nil {
		return 0, fmt.Errorf("failed to check existing reactions: %w", err)
	}
	for _, id := range existingIDs {
		existing[id] = true
	}

	newReactions := []models.Reaction{}
	for _, r := range reactions {
		if !existing[r.ID] {
			newReactions = append(newReactions, r)
		}
	}

	if len(newReactions) == 0 {
		return 0, nil
	}

	if err := s.db.WithContext(ctx).Create(&newReactions).Error; err != nil {
		return 0, fmt.Errorf("failed to insert reactions: %w", err)
	}

	return len(newReactions), nil
}
