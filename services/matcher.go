package services

import (
	"strings"

	"reniverse/models"
)

// FindMatchingSongID returns the ID of the first song whose title, lowercased,
// appears as a substring of the lowercased reaction title, or "" when nothing
// matches. First match wins in the order the songs were given: with
// overlapping titles ("Money Game" vs "Money Game Part 2") the earlier song
// takes the match, which mirrors how the catalog has always behaved. Do not
// change the tie-break to longest-match without migrating existing reactions.
func FindMatchingSongID(title string, songs []models.Song) string {
	loweredTitle := strings.ToLower(title)

	for _, song := range songs {
		if strings.Contains(loweredTitle, strings.ToLower(song.Title)) {
			return song.ID
		}
	}

	return ""
}
