package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/kikitori/kikitori-backend/internal/data/repos"
	types "github.com/kikitori/kikitori-backend/internal/domain"
	"github.com/kikitori/kikitori-backend/internal/platform/dbctx"
	"github.com/kikitori/kikitori-backend/internal/platform/logger"
)

// AnnotationService records the transcript hierarchy under a video:
// ordered segments, and ordered phrase analyses under each segment.
type AnnotationService interface {
	AddSegments(ctx context.Context, videoID uuid.UUID, inputs []SegmentInput) ([]*types.Segment, error)
	GetSegments(ctx context.Context, videoID uuid.UUID) ([]*types.Segment, error)
	AddPhraseAnalyses(ctx context.Context, segmentID uuid.UUID, inputs []PhraseInput) ([]*types.PhraseAnalysis, error)
	GetPhraseAnalysesForVideo(ctx context.Context, videoID uuid.UUID) ([]*types.VideoPhraseAnalysis, error)
	SetSlowedAudio(ctx context.Context, phraseID uuid.UUID, path string) error
	SetPhraseSyncWords(ctx context.Context, phraseID uuid.UUID, syncWords datatypes.JSON) error
}

type SegmentInput struct {
	Index     int
	Text      string
	StartTime float64
	EndTime   float64
	Words     datatypes.JSON
}

type PhraseInput struct {
	Index           int
	Analysis        datatypes.JSON
	SyncWords       datatypes.JSON
	SlowedAudioPath string
}

type annotationService struct {
	db         *gorm.DB
	log        *logger.Logger
	segRepo    repos.SegmentRepo
	phraseRepo repos.PhraseAnalysisRepo
}

func NewAnnotationService(db *gorm.DB, log *logger.Logger, segRepo repos.SegmentRepo, phraseRepo repos.PhraseAnalysisRepo) AnnotationService {
	return &annotationService{
		db:         db,
		log:        log.With("service", "AnnotationService"),
		segRepo:    segRepo,
		phraseRepo: phraseRepo,
	}
}

func (s *annotationService) AddSegments(ctx context.Context, videoID uuid.UUID, inputs []SegmentInput) ([]*types.Segment, error) {
	rows := make([]*types.Segment, 0, len(inputs))
	for _, in := range inputs {
		rows = append(rows, &types.Segment{
			VideoID:   videoID,
			Index:     in.Index,
			Text:      in.Text,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
			Words:     in.Words,
		})
	}
	created, err := s.segRepo.Create(dbctx.Context{Ctx: ctx}, rows)
	if err != nil {
		return nil, err
	}
	s.log.Info("Segments recorded", "video_id", videoID, "count", len(created))
	return created, nil
}

func (s *annotationService) GetSegments(ctx context.Context, videoID uuid.UUID) ([]*types.Segment, error) {
	return s.segRepo.GetByVideoID(dbctx.Context{Ctx: ctx}, videoID)
}

func (s *annotationService) AddPhraseAnalyses(ctx context.Context, segmentID uuid.UUID, inputs []PhraseInput) ([]*types.PhraseAnalysis, error) {
	rows := make([]*types.PhraseAnalysis, 0, len(inputs))
	for _, in := range inputs {
		rows = append(rows, &types.PhraseAnalysis{
			SegmentID:       segmentID,
			Index:           in.Index,
			Analysis:        in.Analysis,
			SyncWords:       in.SyncWords,
			SlowedAudioPath: in.SlowedAudioPath,
		})
	}
	created, err := s.phraseRepo.Create(dbctx.Context{Ctx: ctx}, rows)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *annotationService) GetPhraseAnalysesForVideo(ctx context.Context, videoID uuid.UUID) ([]*types.VideoPhraseAnalysis, error) {
	return s.phraseRepo.GetForVideo(dbctx.Context{Ctx: ctx}, videoID)
}

func (s *annotationService) SetSlowedAudio(ctx context.Context, phraseID uuid.UUID, path string) error {
	return s.phraseRepo.UpdateFields(dbctx.Context{Ctx: ctx}, phraseID, map[string]interface{}{
		"slowed_audio_path": path,
	})
}

func (s *annotationService) SetPhraseSyncWords(ctx context.Context, phraseID uuid.UUID, syncWords datatypes.JSON) error {
	return s.phraseRepo.UpdateFields(dbctx.Context{Ctx: ctx}, phraseID, map[string]interface{}{
		"sync_words": syncWords,
	})
}
