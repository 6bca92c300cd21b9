package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/kikitori/kikitori-backend/internal/domain"
)

// AutoMigrateCore creates the video hierarchy shared by both store
// variants. Parent tables first so foreign keys resolve.
func AutoMigrateCore(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.Video{},
		&types.Segment{},
		&types.PhraseAnalysis{},
		&types.KanjiEntry{},
	)
}

// AutoMigrateLexicon creates the embedded-variant extras: per-phrase
// words, the global kanji glossary and the phrase-kanji association.
func AutoMigrateLexicon(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.Kanji{},
		&types.Word{},
		&types.PhraseKanji{},
	)
}

// EnsureVideoIndexes adds the supporting indexes AutoMigrate's tags do not
// cover. Plain CREATE INDEX syntax so both dialects accept it.
func EnsureVideoIndexes(db *gorm.DB) error {
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_video_created_at ON video(created_at DESC);`).Error; err != nil {
		return fmt.Errorf("create idx_video_created_at: %w", err)
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_kanji_entry_character ON kanji_entry("character");`).Error; err != nil {
		return fmt.Errorf("create idx_kanji_entry_character: %w", err)
	}
	return nil
}
