package utils

import (
	"regexp"
)

var videoIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// IsValidVideoID checks if a string is a valid YouTube video ID format
func IsValidVideoID(id string) bool {
	return videoIDPattern.MatchString(id)
}
