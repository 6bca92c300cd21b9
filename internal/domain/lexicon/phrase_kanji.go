package lexicon

import (
	"time"

	"github.com/google/uuid"

	"github.com/kikitori/kikitori-backend/internal/domain/video"
)

// PhraseKanji links a phrase analysis to a global kanji. One link per
// (phrase, character) pair.
type PhraseKanji struct {
	ID               uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	PhraseAnalysisID uuid.UUID             `gorm:"type:uuid;not null;index;index:idx_phrase_kanji_pair,unique,priority:1" json:"phrase_analysis_id"`
	PhraseAnalysis   *video.PhraseAnalysis `gorm:"constraint:OnDelete:CASCADE;foreignKey:PhraseAnalysisID;references:ID" json:"phrase_analysis,omitempty"`

	KanjiCharacter string `gorm:"column:kanji_character;type:text;not null;index:idx_phrase_kanji_pair,unique,priority:2" json:"kanji_character"`
	Kanji          *Kanji `gorm:"constraint:OnDelete:CASCADE;foreignKey:KanjiCharacter;references:Character" json:"kanji,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (PhraseKanji) TableName() string { return "phrase_kanji" }
