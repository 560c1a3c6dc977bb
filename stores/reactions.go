package stores

import (
	"log"
	"sync"

	"gorm.io/gorm"

	"reniverse/models"
)

// reactionCategories is the fixed set of categories offered by the UI filter.
var reactionCategories = []string{
	"Vocal Analysis",
	"Lyrics Breakdown",
	"Emotional Response",
	"Mental Health",
	"Musical Analysis",
	"First Time Reaction",
	"Producer Review",
}

// ReactionStore caches the reactions collection and holds the current filter
// selection (song + categories).
type ReactionStore struct {
	mu                 sync.Mutex
	db                 *gorm.DB
	reactions          []models.Reaction
	selectedSong       string
	selectedCategories []string
	loading            bool
	lastError          string
}

func NewReactionStore(db *gorm.DB) *ReactionStore {
	return &ReactionStore{db: db, reactions: []models.Reaction{}}
}

// Categories returns the fixed filter category list.
func (s *ReactionStore) Categories() []string {
	out := make([]string, len(reactionCategories))
	copy(out, reactionCategories)
	return out
}

// Fetch replaces the cache with the full reactions collection.
func (s *ReactionStore) Fetch() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.lastError = ""
	defer func() { s.loading = false }()

	var reactions []models.Reaction
	if err := s.db.Find(&reactions).Error; err != nil {
		s.lastError = err.Error()
		log.Printf("Error fetching reactions: %v", err)
		return err
	}
	if reactions == nil {
		reactions = []models.Reaction{}
	}
	s.reactions = reactions
	return nil
}

// All returns a copy of the cached reactions.
func (s *ReactionStore) All() []models.Reaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Reaction, len(s.reactions))
	copy(out, s.reactions)
	return out
}

// ByID returns the cached reaction with the given ID, or nil.
func (s *ReactionStore) ByID(id string) *models.Reaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reactions {
		if s.reactions[i].ID == id {
			reaction := s.reactions[i]
			return &reaction
		}
	}
	return nil
}

// BySong returns the cached reactions for one song.
func (s *ReactionStore) BySong(songID string) []models.Reaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Reaction{}
	for _, reaction := range s.reactions {
		if reaction.SongID == songID {
			out = append(out, reaction)
		}
	}
	return out
}

// SetSelectedSong sets the song filter; empty string clears it.
func (s *ReactionStore) SetSelectedSong(songID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedSong = songID
}

// ToggleCategory adds the category to the filter selection, or removes it if
// already selected.
func (s *ReactionStore) ToggleCategory(category string) {
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

// ClearFilters resets the song and category selection.
func (s *ReactionStore) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedSong = ""
	s.selectedCategories = nil
}

// Filtered returns the cached reactions matching the current selection: the
// selected song (if any) and at least one selected category (if any).
func (s *ReactionStore) Filtered() []models.Reaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Reaction{}
	for _, reaction := range s.reactions {
		if s.selectedSong != "" && reaction.SongID != s.selectedSong {
			continue
		}
		if len(s.selectedCategories) > 0 && !hasAnyCategory(reaction.Categories, s.selectedCategories) {
			continue
		}
		out = append(out, reaction)
	}
	return out
}

func hasAnyCategory(have models.StringList, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

// Create inserts the reaction and appends it to the cache. Reactions without
// a song reference are rejected before touching the store.
func (s *ReactionStore) Create(reaction models.Reaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.lastError = ""
	defer func() { s.loading = false }()

	if reaction.SongID == "" {
		s.lastError = "reaction requires a song_id"
		return gorm.ErrInvalidData
	}
	if reaction.Categories == nil {
		reaction.Categories = models.StringList{models.ToBeClassified}
	}
	if err := s.db.Create(&reaction).Error; err != nil {
		s.lastError = err.Error()
		log.Printf("Error creating reaction: %v", err)
		return err
	}
	s.reactions = append(s.reactions, reaction)
	return nil
}

// Update writes the reaction and replaces the cached entry in place.
func (s *ReactionStore) Update(reaction models.Reaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.lastError = ""
	defer func() { s.loading = false }()

	if err := s.db.Save(&reaction).Error; err != nil {
		s.lastError = err.Error()
		log.Printf("Error updating reaction %s: %v", reaction.ID, err)
		return err
	}
	for i := range s.reactions {
		if s.reactions[i].ID == reaction.ID {
			s.reactions[i] = reaction
			return nil
		}
	}
	s.reactions = append(s.reactions, reaction)
	return nil
}

// Delete removes the reaction from the store and from the cache.
func (s *ReactionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.lastError = ""
	defer func() { s.loading = false }()

	if err := s.db.Delete(&models.Reaction{}, "id = ?", id).Error; err != nil {
		s.lastError = err.Error()
		log.Printf("Error deleting reaction %s: %v", id, err)
		return err
	}
	for i := range s.reactions {
		if s.reactions[i].ID == id {
			s.reactions = append(s.reactions[:i], s.reactions[i+1:]...)
			break
		}
	}
	return nil
}

// ImportVideos inserts reactions whose IDs are not already cached and returns
// how many were actually inserted. This is the idempotence boundary the UI
// sees after a playlist import: repeated calls insert nothing.
func (s *ReactionStore) ImportVideos(reactions []models.Reaction) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.lastError = ""
	defer func() { s.loading = false }()

	known := make(map[string]bool, len(s.reactions))
	for _, reaction := range s.reactions {
		known[reaction.ID] = true
	}

	newReactions := []models.Reaction{}
	for _, reaction := range reactions {
		if reaction.ID == "" || reaction.SongID == "" || known[reaction.ID] {
			continue
		}
		known[reaction.ID] = true
		if reaction.Categories == nil {
			reaction.Categories = models.StringList{models.ToBeClassified}
		}
		newReactions = append(newReactions, reaction)
	}

	if len(newReactions) == 0 {
		return 0, nil
	}

	if err := s.db.Create(&newReactions).Error; err != nil {
		s.lastError = err.Error()
		log.Printf("Error importing reactions: %v", err)
		return 0, err
	}
	s.reactions = append(s.reactions, newReactions...)
	return len(newReactions), nil
}

// LastError returns the message captured by the most recent failed action.
func (s *ReactionStore) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// Loading reports whether an action is in flight.
func (s *ReactionStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
