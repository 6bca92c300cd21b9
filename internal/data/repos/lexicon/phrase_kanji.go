package lexicon

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/kikitori/kikitori-backend/internal/domain"
	"github.com/kikitori/kikitori-backend/internal/platform/dbctx"
	"github.com/kikitori/kikitori-backend/internal/platform/logger"
)

type PhraseKanjiRepo interface {
	Link(dbc dbctx.Context, phraseID uuid.UUID, characters []string) error
	GetByPhraseAnalysisID(dbc dbctx.Context, phraseID uuid.UUID) ([]*types.PhraseKanji, error)
}

type phraseKanjiRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPhraseKanjiRepo(db *gorm.DB, baseLog *logger.Logger) PhraseKanjiRepo {
	repoLog := baseLog.With("repo", "PhraseKanjiRepo")
	return &phraseKanjiRepo{db: db, log: repoLog}
}

// Link associates a phrase with global kanji. Existing pairs are left
// alone so repeated analysis runs stay idempotent.
func (r *phraseKanjiRepo) Link(dbc dbctx.Context, phraseID uuid.UUID, characters []string) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(characters) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]*types.PhraseKanji, 0, len(characters))
	for _, ch := range characters {
		rows = append(rows, &types.PhraseKanji{
			ID:               uuid.New(),
			PhraseAnalysisID: phraseID,
			KanjiCharacter:   ch,
			CreatedAt:        now,
		})
	}
	return transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "phrase_analysis_id"}, {Name: "kanji_character"}},
			DoNothing: true,
		}).
		Create(&rows).Error
}

func (r *phraseKanjiRepo) GetByPhraseAnalysisID(dbc dbctx.Context, phraseID uuid.UUID) ([]*types.PhraseKanji, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.PhraseKanji
	if err := transaction.WithContext(dbc.Ctx).
		Where("phrase_analysis_id = ?", phraseID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
