package lexicon

import (
	"time"

	"github.com/google/uuid"
)

// Kanji is the deduplicated cross-video glossary, keyed by character.
// Embedded-store only; the hosted variant scopes kanji per video instead.
type Kanji struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Character string    `gorm:"type:text;not null;uniqueIndex:idx_kanji_character" json:"character"`

	Reading      string `gorm:"type:text;not null;default:''" json:"reading"`
	Meaning      string `gorm:"type:text;not null;default:''" json:"meaning"`
	HanjaMeaning string `gorm:"column:hanja_meaning;type:text;not null;default:''" json:"hanja_meaning"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Kanji) TableName() string { return "kanji" }
