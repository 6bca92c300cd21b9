package lexicon

import (
	"time"

	"github.com/google/uuid"

	"github.com/kikitori/kikitori-backend/internal/domain/video"
)

// Word is one token of a phrase analysis, carrying scripts, romanization
// and translation. Embedded-store only.
type Word struct {
	ID               uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	PhraseAnalysisID uuid.UUID             `gorm:"type:uuid;not null;index;index:idx_word_phrase_index,unique,priority:1" json:"phrase_analysis_id"`
	PhraseAnalysis   *video.PhraseAnalysis `gorm:"constraint:OnDelete:CASCADE;foreignKey:PhraseAnalysisID;references:ID" json:"phrase_analysis,omitempty"`

	Index      int    `gorm:"column:word_index;not null;index:idx_word_phrase_index,unique,priority:2" json:"word_index"`
	Japanese   string `gorm:"type:text;not null;default:''" json:"japanese"`
	KanjiChars string `gorm:"column:kanji_chars;type:text;not null;default:''" json:"kanji_chars"`
	Romaji     string `gorm:"type:text;not null;default:''" json:"romaji"`
	Meaning    string `gorm:"type:text;not null;default:''" json:"meaning"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Word) TableName() string { return "word" }
