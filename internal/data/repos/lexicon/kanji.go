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

// KanjiRepo holds the global, cross-video glossary. Upserts keep the first
// recorded reading/meaning for a character.
type KanjiRepo interface {
	UpsertBatch(dbc dbctx.Context, entries []*types.Kanji) error
	GetByCharacters(dbc dbctx.Context, characters []string) ([]*types.Kanji, error)
}

type kanjiRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewKanjiRepo(db *gorm.DB, baseLog *logger.Logger) KanjiRepo {
	repoLog := baseLog.With("repo", "KanjiRepo")
	return &kanjiRepo{db: db, log: repoLog}
}

func (r *kanjiRepo) UpsertBatch(dbc dbctx.Context, entries []*types.Kanji) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(entries) == 0 {
		return nil
	}
	for _, e := range entries {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = time.Now().UTC()
		}
	}
	return transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "character"}},
			DoNothing: true,
		}).
		Create(&entries).Error
}

func (r *kanjiRepo) GetByCharacters(dbc dbctx.Context, characters []string) ([]*types.Kanji, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Kanji
	if len(characters) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where(`"character" IN ?`, characters).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
