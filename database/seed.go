package database

import (
	"log"

	"gorm.io/gorm"
	"reniverse/models"
)

// SeedDatabase populates the catalog with the initial Ren discography and a
// handful of known reactions so a fresh install has something to browse.
func SeedDatabase(db *gorm.DB) error {
	log.Println("Seeding database with initial catalog data...")

	// Check if database is already seeded
	var songCount int64
	db.Model(&models.Song{}).Count(&songCount)
	if songCount > 0 {
		log.Println("Database already seeded, skipping...")
		return nil
	}

	songs := []models.Song{
		{
			ID:     "s_nc1IVoMxc",
			Title:  "Hi Ren",
			Genres: models.StringList{"Hip-Hop", "Alternative"},
		},
		{
			ID:     "TYAnqQ--KX0",
			Title:  "The Tale of Jenny & Screech",
			Genres: models.StringList{"Folk", "Storytelling"},
		},
		{
			ID:        "35yALr_opeg",
			Title:     "Chalk Outlines",
			Genres:    models.StringList{"Hip-Hop", "Live Performance"},
			CoArtists: models.StringList{"Chinchilla"},
		},
		{
			ID:     "1T_fLytBFM4",
			Title:  "The Hunger",
			Genres: models.StringList{"Alternative", "Rock"},
		},
		{
			ID:        "mLvAGjhDssc",
			Title:     "Losing it",
			Genres:    models.StringList{"Hip-Hop", "Remix"},
			CoArtists: models.StringList{"FISHER"},
		},
		{
			ID:     "J2H7wDR9eTU",
			Title:  "1990s",
			Genres: models.StringList{"Hip-Hop", "Alternative"},
		},
		{
			ID:     "0ivQwwgW4OY",
			Title:  "Money Game",
			Genres: models.StringList{"Hip-Hop", "Political"},
		},
		{
			ID:     "YonS9_QJbp8",
			Title:  "Money Game Part 2",
			Genres: models.StringList{"Hip-Hop", "Political"},
		},
		{
			ID:     "nyWbun_PbTc",
			Title:  "Money Game Part 3",
			Genres: models.StringList{"Hip-Hop", "Political"},
		},
	}

	for _, song := range songs {
		if err := db.Create(&song).Error; err != nil {
			log.Printf("Failed to seed song %s: %v", song.Title, err)
			return err
		}
	}

	reactions := []models.Reaction{
		{
			ID:          "chris-1",
			SongID:      "s_nc1IVoMxc",
			Title:       "Vocal Coach Reacts to Hi Ren",
			ChannelName: "Chris Liepe",
			Categories:  models.StringList{"Vocal Analysis", "Musical Analysis"},
		},
		{
			ID:          "knox-1",
			SongID:      "TYAnqQ--KX0",
			Title:       "Knox Hill - Jenny & Screech Reaction & Breakdown",
			ChannelName: "Knox Hill",
			Categories:  models.StringList{"Lyrics Breakdown", "Mental Health"},
		},
		{
			ID:          "charismatic-1",
			SongID:      "0ivQwwgW4OY",
			Title:       "Opera Singer Reacts to Money Game",
			ChannelName: "A Charismatic Voice",
			Categories:  models.StringList{"Vocal Analysis", "First Time Reaction", "Emotional Response"},
		},
		{
			ID:          "pegasus-1",
			SongID:      "nyWbun_PbTc",
			Title:       "Money Game Part 3 - Real Rapper Reacts",
			ChannelName: "Black Pegasus",
			Categories:  models.StringList{"Lyrics Breakdown", "Musical Analysis"},
		},
	}

	for _, reaction := range reactions {
		if err := db.Create(&reaction).Error; err != nil {
			log.Printf("Failed to seed reaction %s: %v", reaction.Title, err)
			return err
		}
	}

	log.Printf("Seeded %d songs and %d reactions", len(songs), len(reactions))
	return nil
}
