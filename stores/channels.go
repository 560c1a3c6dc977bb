package stores

import (
	"log"
	"sync"

	"gorm.io/gorm"

	"reniverse/models"
)

// ChannelStore caches the channels collection ordered by name, with a
// category filter selection.
type ChannelStore struct {
	mu                 sync.Mutex
	db                 *gorm.DB
	channels           []models.Channel
	selectedCategories []string
	loading            bool
	lastError          string
}

func NewChannelStore(db *gorm.DB) *ChannelStore {
	return &ChannelStore{db: db, channels: []models.Channel{}}
}

// Fetch replaces the cache with the full channels collection, ordered by name.
func (s *ChannelStore) Fetch() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.lastError = ""
	defer func() { s.loading = false }()

	var channels []models.Channel
	if err := s.db.Order("name").Find(&channels).Error; err != nil {
		s.lastError = err.Error()
		log.Printf("Error fetching channels: %v", err)
		return err
	}
	if channels == nil {
		channels = []models.Channel{}
	}
	s.channels = channels
	return nil
}

// All returns a copy of the cached channels.
func (s *ChannelStore) All() []models.Channel {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Channel, len(s.channels))
	copy(out, s.channels)
	return out
}

// ByID returns the cached channel with the given internal ID, or nil.
func (s *ChannelStore) ByID(id string) *models.Channel {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.channels {
		if s.channels[i].ID == id {
			channel := s.channels[i]
			return &channel
		}
	}
	return nil
}

// ByYoutubeID returns the cached channel with the given external channel ID,
// or nil.
func (s *ChannelStore) ByYoutubeID(youtubeID string) *models.Channel {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.channels {
		if s.channels[i].YoutubeID != nil && *s.channels[i].YoutubeID == youtubeID {
			channel := s.channels[i]
			return &channel
		}
	}
	return nil
}

// Categories returns the distinct categories across all cached channels.
func (s *ChannelStore) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	out := []string{}
	for _, channel := range s.channels {
		for _, category := range channel.Categories {
			if !seen[category] {
				seen[category] = true
				out = append(out, category)
			}
		}
	}
	return out
}

// SetSelectedCategories replaces the category filter selection.
func (s *ChannelStore) SetSelectedCategories(categories []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedCategories = append([]string{}, categories...)
}

// ToggleCategory adds the category to the filter selection, or removes it if
// already selected.
func (s *ChannelStore) ToggleCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.selectedCategories {
		if c == category {
			s.selectedCategories = append(s.selectedCategories[:i], s.selectedCategories[i+1:]...)
			return
		}
	}
	s.selectedCategories = append(s.selectedCategories, category)
}

// Filtered returns the cached channels matching at least one selected
// category; with no selection it returns everything.
func (s *ChannelStore) Filtered() []models.Channel {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.selectedCategories) == 0 {
		out := make([]models.Channel, len(s.channels))
		copy(out, s.channels)
		return out
	}

	out := []models.Channel{}
	for _, channel := range s.channels {
		if hasAnyCategory(channel.Categories, s.selectedCategories) {
			out = append(out, channel)
		}
	}
	return out
}

// ChannelUpdate holds the mutable channel fields for a partial update.
type ChannelUpdate struct {
	Name        *string            `json:"name,omitempty"`
	Categories  *models.StringList `json:"categories,omitempty"`
	AvatarURL   *string            `json:"avatar_url,omitempty"`
	Description *string            `json:"description,omitempty"`
}

// Update applies a partial update to the channel and reconciles the cached
// entry. Returns false when the write failed; the message is kept in
// LastError for the UI.
func (s *ChannelStore) Update(channelID string, updates ChannelUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.lastError = ""
	defer func() { s.loading = false }()

	fields := map[string]interface{}{}
	if updates.Name != nil {
		fields["name"] = *updates.Name
	}
	if updates.Categories != nil {
		fields["categories"] = *updates.Categories
	}
	if updates.AvatarURL != nil {
		fields["avatar_url"] = *updates.AvatarURL
	}
	if updates.Description != nil {
		fields["description"] = *updates.Description
	}
	if len(fields) == 0 {
		return true
	}

	if err := s.db.Model(&models.Channel{}).Where("id = ?", channelID).Updates(fields).Error; err != nil {
		s.lastError = err.Error()
		log.Printf("Error updating channel %s: %v", channelID, err)
		return false
	}

	for i := range s.channels {
		if s.channels[i].ID != channelID {
			continue
		}
		if updates.Name != nil {
			s.channels[i].Name = *updates.Name
		}
		if updates.Categories != nil {
			s.channels[i].Categories = *updates.Categories
		}
		if updates.AvatarURL != nil {
			s.channels[i].AvatarURL = *updates.AvatarURL
		}
		if updates.Description != nil {
			s.channels[i].Description = *updates.Description
		}
		break
	}
	return true
}

// LastError returns the message captured by the most recent failed action.
func (s *ChannelStore) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// Loading reports whether an action is in flight.
func (s *ChannelStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
