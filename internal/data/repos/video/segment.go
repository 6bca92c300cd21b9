package video

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/kikitori/kikitori-backend/internal/domain"
	"github.com/kikitori/kikitori-backend/internal/platform/dbctx"
	"github.com/kikitori/kikitori-backend/internal/platform/logger"
)

type SegmentRepo interface {
	Create(dbc dbctx.Context, segments []*types.Segment) ([]*types.Segment, error)
	GetByVideoID(dbc dbctx.Context, videoID uuid.UUID) ([]*types.Segment, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Segment, error)
}

type segmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSegmentRepo(db *gorm.DB, baseLog *logger.Logger) SegmentRepo {
	repoLog := baseLog.With("repo", "SegmentRepo")
	return &segmentRepo{db: db, log: repoLog}
}

func (r *segmentRepo) Create(dbc dbctx.Context, segments []*types.Segment) ([]*types.Segment, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(segments) == 0 {
		return []*types.Segment{}, nil
	}
	for _, s := range segments {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = time.Now().UTC()
		}
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&segments).Error; err != nil {
		return nil, err
	}
	return segments, nil
}

func (r *segmentRepo) GetByVideoID(dbc dbctx.Context, videoID uuid.UUID) ([]*types.Segment, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Segment
	if err := transaction.WithContext(dbc.Ctx).
		Where("video_id = ?", videoID).
		Order("segment_index ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *segmentRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Segment, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Segment
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
