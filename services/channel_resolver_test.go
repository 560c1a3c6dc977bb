package services

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"reniverse/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Song{},
		&models.Channel{},
		&models.Reaction{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func TestResolveCreatesChannel(t *testing.T) {
	db := setupTestDB(t)
	resolver := NewChannelResolver(db)

	id, err := resolver.Resolve(context.Background(), "UCabc", "Knox Hill")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected an internal channel id")
	}

	var channel models.Channel
	if err := db.First(&channel, "id = ?", id).Error; err != nil {
		t.Fatalf("created channel not found: %v", err)
	}
	if channel.Name != "Knox Hill" {
		t.Errorf("expected name Knox Hill, got %q", channel.Name)
	}
	if channel.YoutubeID == nil || *channel.YoutubeID != "UCabc" {
		t.Errorf("expected youtube_id UCabc, got %v", channel.YoutubeID)
	}
	if len(channel.Categories) != 1 || channel.Categories[0] != models.ToBeClassified {
		t.Errorf("expected default categories, got %v", channel.Categories)
	}
}

func TestResolveReturnsExistingChannel(t *testing.T) {
	db := setupTestDB(t)
	resolver := NewChannelResolver(db)

	first, err := resolver.Resolve(context.Background(), "UCabc", "Knox Hill")
	if err != nil {
		t.Fatalf("first Resolve failed: %v", err)
	}

	// Same external id, different display name: the existing row wins
	second, err := resolver.Resolve(context.Background(), "UCabc", "Knox Hill Renamed")
	if err != nil {
		t.Fatalf("second Resolve failed: %v", err)
	}

	if first != second {
		t.Errorf("expected same internal id for same external id, got %q and %q", first, second)
	}

	var count int64
	db.Model(&models.Channel{}).Where("youtube_id = ?", "UCabc").Count(&count)
	if count != 1 {
		t.Errorf("expected exactly one channel row, got %d", count)
	}
}

func TestResolveEmptyExternalID(t *testing.T) {
	db := setupTestDB(t)
	resolver := NewChannelResolver(db)

	id, err := resolver.Resolve(context.Background(), "", "Whoever")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if id != "" {
		t.Errorf("expected empty internal id for empty external id, got %q", id)
	}

	var count int64
	db.Model(&models.Channel{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no channel rows, got %d", count)
	}
}

func TestResolveEmptyDisplayName(t *testing.T) {
	db := setupTestDB(t)
	resolver := NewChannelResolver(db)

	id, err := resolver.Resolve(context.Background(), "UCxyz", "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	var channel models.Channel
	if err := db.First(&channel, "id = ?", id).Error; err != nil {
		t.Fatalf("created channel not found: %v", err)
	}
	if channel.Name != "Unknown Channel" {
		t.Errorf("expected fallback name, got %q", channel.Name)
	}
}

// A conflicting insert (another writer created the row between our lookup and
// our create) resolves to the winner's id instead of failing the run. The
// race is simulated with a create callback that slips the winner row in right
// before the resolver's own insert.
func TestResolveInsertConflictReQueries(t *testing.T) {
	db := setupTestDB(t)
	resolver := NewChannelResolver(db)

	raced := false
	err := db.Callback().Create().Before("gorm:create").Register("test:race", func(tx *gorm.DB) {
		if raced {
			return
		}
		raced = true
		tx.Session(&gorm.Session{NewDB: true}).Exec(
			`INSERT INTO channels (id, name, youtube_id, categories, created_at) VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`,
			"winner-id", "The Winner", "UCrace", `["To be classified"]`,
		)
	})
	if err != nil {
		t.Fatalf("failed to register callback: %v", err)
	}

	id, err := resolver.Resolve(context.Background(), "UCrace", "The Loser")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if id != "winner-id" {
		t.Errorf("expected winner's id, got %q", id)
	}

	var count int64
	db.Model(&models.Channel{}).Where("youtube_id = ?", "UCrace").Count(&count)
	if count != 1 {
		t.Errorf("expected exactly one channel row after the race, got %d", count)
	}
}
