package video

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Video is one source recording being processed into learning material.
// It owns every Segment and KanjiEntry below it; deleting a video cascades
// through the whole hierarchy.
type Video struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SourceURL string    `gorm:"column:source_url;type:text;not null;uniqueIndex:idx_video_source_url" json:"source_url"`
	Title     string    `gorm:"type:text;not null;default:''" json:"title"`

	// DataDir names the per-video artifact directory in object storage.
	// Audio files live there, not in the database.
	DataDir   string `gorm:"column:data_dir;type:text;index" json:"data_dir"`
	AudioPath string `gorm:"column:audio_path;type:text" json:"audio_path"`

	TranscriptText   string         `gorm:"column:transcript_text;type:text" json:"transcript_text"`
	RawTranscription datatypes.JSON `gorm:"column:raw_transcription" json:"raw_transcription,omitempty"`
	SyncWords        datatypes.JSON `gorm:"column:sync_words" json:"sync_words,omitempty"`
	Debug            datatypes.JSON `gorm:"column:debug" json:"debug,omitempty"`

	// Listing order index is created in EnsureVideoIndexes (descending).
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Video) TableName() string { return "video" }
