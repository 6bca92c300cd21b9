package video

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/kikitori/kikitori-backend/internal/domain"
	"github.com/kikitori/kikitori-backend/internal/platform/dbctx"
	"github.com/kikitori/kikitori-backend/internal/platform/logger"
)

type PhraseAnalysisRepo interface {
	Create(dbc dbctx.Context, phrases []*types.PhraseAnalysis) ([]*types.PhraseAnalysis, error)
	GetBySegmentID(dbc dbctx.Context, segmentID uuid.UUID) ([]*types.PhraseAnalysis, error)
	GetForVideo(dbc dbctx.Context, videoID uuid.UUID) ([]*types.VideoPhraseAnalysis, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
}

type phraseAnalysisRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPhraseAnalysisRepo(db *gorm.DB, baseLog *logger.Logger) PhraseAnalysisRepo {
	repoLog := baseLog.With("repo", "PhraseAnalysisRepo")
	return &phraseAnalysisRepo{db: db, log: repoLog}
}

func (r *phraseAnalysisRepo) Create(dbc dbctx.Context, phrases []*types.PhraseAnalysis) ([]*types.PhraseAnalysis, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(phrases) == 0 {
		return []*types.PhraseAnalysis{}, nil
	}
	for _, p := range phrases {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = time.Now().UTC()
		}
	}

	// Keep batches small because Analysis payloads are large
	const batchSize = 100

	if err := transaction.WithContext(dbc.Ctx).CreateInBatches(phrases, batchSize).Error; err != nil {
		return nil, err
	}
	return phrases, nil
}

func (r *phraseAnalysisRepo) GetBySegmentID(dbc dbctx.Context, segmentID uuid.UUID) ([]*types.PhraseAnalysis, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.PhraseAnalysis
	if err := transaction.WithContext(dbc.Ctx).
		Where("segment_id = ?", segmentID).
		Order("phrase_index ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetForVideo joins phrases to their segments and returns every phrase
// analysis under the video, ordered by (segment_index, phrase_index).
// Unknown or childless videos yield an empty slice, not an error.
func (r *phraseAnalysisRepo) GetForVideo(dbc dbctx.Context, videoID uuid.UUID) ([]*types.VideoPhraseAnalysis, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	results := []*types.VideoPhraseAnalysis{}
	if err := transaction.WithContext(dbc.Ctx).
		Table("phrase_analysis AS pa").
		Select("pa.id, pa.segment_id, s.segment_index, pa.phrase_index, pa.analysis, pa.sync_words, pa.slowed_audio_path").
		Joins("JOIN segment s ON s.id = pa.segment_id").
		Where("s.video_id = ?", videoID).
		Order("s.segment_index ASC, pa.phrase_index ASC").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *phraseAnalysisRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&types.PhraseAnalysis{}).
		Where("id = ?", id).
		Updates(updates).Error
}
