package video

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Segment is a contiguous time-bounded slice of a video's transcript.
// (video_id, segment_index) is unique and defines segment ordering.
type Segment struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VideoID uuid.UUID `gorm:"type:uuid;not null;index;index:idx_segment_video_index,unique,priority:1" json:"video_id"`
	Video   *Video    `gorm:"constraint:OnDelete:CASCADE;foreignKey:VideoID;references:ID" json:"video,omitempty"`

	Index     int            `gorm:"column:segment_index;not null;index:idx_segment_video_index,unique,priority:2" json:"segment_index"`
	Text      string         `gorm:"type:text;not null;default:''" json:"text"`
	StartTime float64        `gorm:"column:start_time;not null;default:0" json:"start_time"`
	EndTime   float64        `gorm:"column:end_time;not null;default:0" json:"end_time"`
	Words     datatypes.JSON `gorm:"column:words" json:"words,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Segment) TableName() string { return "segment" }
