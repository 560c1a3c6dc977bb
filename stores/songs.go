package stores

import (
	"log"
	"sync"

	"gorm.io/gorm"

	"reniverse/models"
)

// SongStore is a read-through/write-through cache over the songs collection.
// It is owned by whoever constructs it; there is no package-level instance.
// The cache is empty until Fetch is called.
type SongStore struct {
	mu        sync.Mutex
	db        *gorm.DB
	songs     []models.Song
	loading   bool
	lastError string
}

func NewSongStore(db *gorm.DB) *SongStore {
	return &SongStore{db: db, songs: []models.Song{}}
}

// Fetch replaces the cache with the full songs collection.
func (s *SongStore) Fetch() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.lastError = ""
	defer func() { s.loading = false }()

	var songs []models.Song
	if err := s.db.Find(&songs).Error; err != nil {
		s.lastError = err.Error()
		log.Printf("Error fetching songs: %v", err)
		return err
	}
	if songs == nil {
		songs = []models.Song{}
	}
	s.songs = songs
	return nil
}

// All returns a copy of the cached songs.
func (s *SongStore) All() []models.Song {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Song, len(s.songs))
	copy(out, s.songs)
	return out
}

// ByID returns the cached song with the given ID, or nil.
func (s *SongStore) ByID(id string) *models.Song {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.songs {
		if s.songs[i].ID == id {
			song := s.songs[i]
			return &song
		}
	}
	return nil
}

// Create inserts the song and appends it to the cache.
func (s *SongStore) Create(song models.Song) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.lastError = ""
	defer func() { s.loading = false }()

	if song.Genres == nil {
		song.Genres = models.StringList{}
	}
	if err := s.db.Create(&song).Error; err != nil {
		s.lastError = err.Error()
		log.Printf("Error creating song: %v", err)
		return err
	}
	s.songs = append(s.songs, song)
	return nil
}

// Update writes the song and replaces the cached entry in place.
func (s *SongStore) Update(song models.Song) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.lastError = ""
	defer func() { s.loading = false }()

	if err := s.db.Save(&song).Error; err != nil {
		s.lastError = err.Error()
		log.Printf("Error updating song %s: %v", song.ID, err)
		return err
	}
	for i := range s.songs {
		if s.songs[i].ID == song.ID {
			s.songs[i] = song
			return nil
		}
	}
	s.songs = append(s.songs, song)
	return nil
}

// Delete removes the song from the store and from the cache.
func (s *SongStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.lastError = ""
	defer func() { s.loading = false }()

	if err := s.db.Delete(&models.Song{}, "id = ?", id).Error; err != nil {
		s.lastError = err.Error()
		log.Printf("Error deleting song %s: %v", id, err)
		return err
	}
	for i := range s.songs {
		if s.songs[i].ID == id {
			s.songs = append(s.songs[:i], s.songs[i+1:]...)
			break
		}
	}
	return nil
}

// ImportVideos inserts the songs whose IDs are not already cached and returns
// how many were actually inserted. Calling it again with the same input
// inserts nothing and returns 0.
func (s *SongStore) ImportVideos(songs []models.Song) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.lastError = ""
	defer func() { s.loading = false }()

	known := make(map[string]bool, len(s.songs))
	for _, song := range s.songs {
		known[song.ID] = true
	}

	newSongs := []models.Song{}
	for _, song := range songs {
		if song.ID == "" || known[song.ID] {
			continue
		}
		known[song.ID] = true
		if song.Genres == nil {
			song.Genres = models.StringList{}
		}
		newSongs = append(newSongs, song)
	}

	if len(newSongs) == 0 {
		return 0, nil
	}

	if err := s.db.Create(&newSongs).Error; err != nil {
		s.lastError = err.Error()
		log.Printf("Error importing songs: %v", err)
		return 0, err
	}
	s.songs = append(s.songs, newSongs...)
	return len(newSongs), nil
}

// LastError returns the message captured by the most recent failed action.
func (s *SongStore) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// Loading reports whether an action is in flight.
func (s *SongStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
