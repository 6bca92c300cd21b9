package video

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PhraseAnalysis is a sub-segment unit produced by the semantic analysis
// step, with its own word sync data and slowed-down audio rendition.
// (segment_id, phrase_index) is unique and defines in-segment ordering.
type PhraseAnalysis struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SegmentID uuid.UUID `gorm:"type:uuid;not null;index;index:idx_phrase_segment_index,unique,priority:1" json:"segment_id"`
	Segment   *Segment  `gorm:"constraint:OnDelete:CASCADE;foreignKey:SegmentID;references:ID" json:"segment,omitempty"`

	Index           int            `gorm:"column:phrase_index;not null;index:idx_phrase_segment_index,unique,priority:2" json:"phrase_index"`
	Analysis        datatypes.JSON `gorm:"column:analysis;not null" json:"analysis"`
	SyncWords       datatypes.JSON `gorm:"column:sync_words" json:"sync_words,omitempty"`
	SlowedAudioPath string         `gorm:"column:slowed_audio_path;type:text" json:"slowed_audio_path"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (PhraseAnalysis) TableName() string { return "phrase_analysis" }

// VideoPhraseAnalysis is a PhraseAnalysis row annotated with its segment's
// order index, as returned by the ordered per-video fetch.
type VideoPhraseAnalysis struct {
	ID              uuid.UUID      `json:"id"`
	SegmentID       uuid.UUID      `json:"segment_id"`
	SegmentIndex    int            `json:"segment_index"`
	Index           int            `gorm:"column:phrase_index" json:"phrase_index"`
	Analysis        datatypes.JSON `json:"analysis"`
	SyncWords       datatypes.JSON `json:"sync_words,omitempty"`
	SlowedAudioPath string         `json:"slowed_audio_path"`
}
