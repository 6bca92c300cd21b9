package lexicon

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/kikitori/kikitori-backend/internal/domain"
	"github.com/kikitori/kikitori-backend/internal/platform/dbctx"
	"github.com/kikitori/kikitori-backend/internal/platform/logger"
)

type WordRepo interface {
	Create(dbc dbctx.Context, words []*types.Word) ([]*types.Word, error)
	GetByPhraseAnalysisID(dbc dbctx.Context, phraseID uuid.UUID) ([]*types.Word, error)
}

type wordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWordRepo(db *gorm.DB, baseLog *logger.Logger) WordRepo {
	repoLog := baseLog.With("repo", "WordRepo")
	return &wordRepo{db: db, log: repoLog}
}

func (r *wordRepo) Create(dbc dbctx.Context, words []*types.Word) ([]*types.Word, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(words) == 0 {
		return []*types.Word{}, nil
	}
	for _, w := range words {
		if w.ID == uuid.Nil {
			w.ID = uuid.New()
		}
		if w.CreatedAt.IsZero() {
			w.CreatedAt = time.Now().UTC()
		}
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&words).Error; err != nil {
		return nil, err
	}
	return words, nil
}

func (r *wordRepo) GetByPhraseAnalysisID(dbc dbctx.Context, phraseID uuid.UUID) ([]*types.Word, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Word
	if err := transaction.WithContext(dbc.Ctx).
		Where("phrase_analysis_id = ?", phraseID).
		Order("word_index ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
