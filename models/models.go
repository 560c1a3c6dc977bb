package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ToBeClassified is the default category assigned to imported channels and
// reactions until an admin tags them.
const ToBeClassified = "To be classified"

// StringList stores an ordered list of tag strings as a JSON text column so it
// works on both SQLite and MySQL.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal string list: %w", err)
	}
	return string(data), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for string list: %T", value)
	}

	if len(data) == 0 {
		*l = StringList{}
		return nil
	}

	if err := json.Unmarshal(data, l); err != nil {
		return fmt.Errorf("failed to unmarshal string list: %w", err)
	}
	if *l == nil {
		*l = StringList{}
	}
	return nil
}

// Song is an original work by the canonical artist. The ID is the YouTube
// video ID and is stable across imports.
type Song struct {
	ID        string     `gorm:"primaryKey;size:20" json:"id"`
	Title     string     `gorm:"not null" json:"title"`
	Genres    StringList `gorm:"type:text" json:"genres"`
	CoArtists StringList `gorm:"type:text" json:"co_artists,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Channel is a creator identity. The ID is generated internally; YoutubeID is
// the external platform channel ID and is unique when present.
type Channel struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	YoutubeID   *string    `gorm:"size:30;uniqueIndex" json:"youtube_id"`
	Categories  StringList `gorm:"type:text" json:"categories"`
	AvatarURL   string     `json:"avatar_url,omitempty"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Reaction is a third-party video responding to a Song. SongID is required; a
// reaction that cannot be matched to a song is never persisted. ChannelID is
// nullable for rows created before channel tracking existed.
type Reaction struct {
	ID          string     `gorm:"primaryKey;size:20" json:"id"`
	SongID      string     `gorm:"not null;index;size:20" json:"song_id"`
	Title       string     `gorm:"not null" json:"title"`
	ChannelName string     `json:"channel_name"`
	ChannelID   *string    `gorm:"size:36;index" json:"channel_id"`
	Categories  StringList `gorm:"type:text" json:"categories"`
	CreatedAt   time.Time  `json:"created_at"`
}
