package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/kikitori/kikitori-backend/internal/data/repos"
	types "github.com/kikitori/kikitori-backend/internal/domain"
	"github.com/kikitori/kikitori-backend/internal/platform/dbctx"
	"github.com/kikitori/kikitori-backend/internal/platform/gcp"
	"github.com/kikitori/kikitori-backend/internal/platform/logger"
)

// VideoService owns the video lifecycle: registration by source URL,
// transcript attachment after processing, and deletion including the
// audio artifacts stored under the video's data_dir.
type VideoService interface {
	Register(ctx context.Context, sourceURL, title string) (*types.Video, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Video, error)
	GetBySourceURL(ctx context.Context, sourceURL string) (*types.Video, error)
	List(ctx context.Context) ([]*types.Video, error)
	AttachTranscript(ctx context.Context, id uuid.UUID, input TranscriptInput) error
	UpdateMetadata(ctx context.Context, id uuid.UUID, input VideoMetadataInput) error
	Delete(ctx context.Context, id uuid.UUID) (string, error)
}

type VideoMetadataInput struct {
	Title     *string
	AudioPath *string
	DataDir   *string
}

type TranscriptInput struct {
	TranscriptText   string
	RawTranscription datatypes.JSON
	SyncWords        datatypes.JSON
	AudioPath        string
	Debug            datatypes.JSON
}

type videoService struct {
	db            *gorm.DB
	log           *logger.Logger
	videoRepo     repos.VideoRepo
	bucketService gcp.BucketService
}

func NewVideoService(db *gorm.DB, log *logger.Logger, videoRepo repos.VideoRepo, bucketService gcp.BucketService) VideoService {
	return &videoService{
		db:            db,
		log:           log.With("service", "VideoService"),
		videoRepo:     videoRepo,
		bucketService: bucketService,
	}
}

// Register returns the existing video when the source URL is already
// known; the bool reports whether a new row was created.
func (s *videoService) Register(ctx context.Context, sourceURL, title string) (*types.Video, bool, error) {
	dbc := dbctx.Context{Ctx: ctx}
	existing, err := s.videoRepo.GetBySourceURL(dbc, sourceURL)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	v := &types.Video{
		ID:        uuid.New(),
		SourceURL: sourceURL,
		Title:     title,
	}
	v.DataDir = fmt.Sprintf("videos/%s", v.ID)
	created, err := s.videoRepo.Create(dbc, []*types.Video{v})
	if err != nil {
		return nil, false, err
	}
	s.log.Info("Video registered", "video_id", v.ID, "source_url", sourceURL)
	return created[0], true, nil
}

func (s *videoService) GetByID(ctx context.Context, id uuid.UUID) (*types.Video, error) {
	return s.videoRepo.GetByID(dbctx.Context{Ctx: ctx}, id)
}

func (s *videoService) GetBySourceURL(ctx context.Context, sourceURL string) (*types.Video, error) {
	return s.videoRepo.GetBySourceURL(dbctx.Context{Ctx: ctx}, sourceURL)
}

func (s *videoService) List(ctx context.Context) ([]*types.Video, error) {
	return s.videoRepo.List(dbctx.Context{Ctx: ctx})
}

func (s *videoService) AttachTranscript(ctx context.Context, id uuid.UUID, input TranscriptInput) error {
	updates := map[string]interface{}{}
	if input.TranscriptText != "" {
		updates["transcript_text"] = input.TranscriptText
	}
	if input.RawTranscription != nil {
		updates["raw_transcription"] = input.RawTranscription
	}
	if input.SyncWords != nil {
		updates["sync_words"] = input.SyncWords
	}
	if input.AudioPath != "" {
		updates["audio_path"] = input.AudioPath
	}
	if input.Debug != nil {
		updates["debug"] = input.Debug
	}
	return s.videoRepo.UpdateFields(dbctx.Context{Ctx: ctx}, id, updates)
}

func (s *videoService) UpdateMetadata(ctx context.Context, id uuid.UUID, input VideoMetadataInput) error {
	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.AudioPath != nil {
		updates["audio_path"] = *input.AudioPath
	}
	if input.DataDir != nil {
		updates["data_dir"] = *input.DataDir
	}
	return s.videoRepo.UpdateFields(dbctx.Context{Ctx: ctx}, id, updates)
}

// Delete removes the video row (the cascade takes its segments, phrase
// analyses and glossary) and then purges the audio objects under its
// data_dir. The row delete is the source of truth; a failed purge is
// logged and left for a later sweep rather than resurrecting the row.
func (s *videoService) Delete(ctx context.Context, id uuid.UUID) (string, error) {
	dir, err := s.videoRepo.DeleteReturningDataDir(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return "", err
	}
	if dir == "" {
		return "", nil
	}
	if err := s.bucketService.DeletePrefix(ctx, dir); err != nil {
		s.log.Warn("Audio purge failed after video delete", "video_id", id, "data_dir", dir, "error", err)
	}
	return dir, nil
}
