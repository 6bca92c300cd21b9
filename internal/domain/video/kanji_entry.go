package video

import (
	"time"

	"github.com/google/uuid"
)

// KanjiEntry is one glossary record scoped to a single video. A character
// appears at most once per video; re-processing a video must not duplicate
// or overwrite entries.
type KanjiEntry struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VideoID uuid.UUID `gorm:"type:uuid;not null;index;index:idx_kanji_entry_video_character,unique,priority:1" json:"video_id"`
	Video   *Video    `gorm:"constraint:OnDelete:CASCADE;foreignKey:VideoID;references:ID" json:"video,omitempty"`

	Character string `gorm:"type:text;not null;index:idx_kanji_entry_video_character,unique,priority:2" json:"character"`
	Reading   string `gorm:"type:text;not null;default:''" json:"reading"`
	Meaning   string `gorm:"type:text;not null;default:''" json:"meaning"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (KanjiEntry) TableName() string { return "kanji_entry" }
