package video

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/kikitori/kikitori-backend/internal/domain"
	"github.com/kikitori/kikitori-backend/internal/platform/dbctx"
	"github.com/kikitori/kikitori-backend/internal/platform/logger"
)

// KanjiEntryInput is one {character, reading, meaning} triple for the
// bulk upsert.
type KanjiEntryInput struct {
	Character string `json:"character"`
	Reading   string `json:"reading"`
	Meaning   string `json:"meaning"`
}

type KanjiEntryRepo interface {
	Create(dbc dbctx.Context, entries []*types.KanjiEntry) ([]*types.KanjiEntry, error)
	GetByVideoID(dbc dbctx.Context, videoID uuid.UUID) ([]*types.KanjiEntry, error)
	UpsertBatch(dbc dbctx.Context, videoID uuid.UUID, entries []KanjiEntryInput) error
}

type kanjiEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewKanjiEntryRepo(db *gorm.DB, baseLog *logger.Logger) KanjiEntryRepo {
	repoLog := baseLog.With("repo", "KanjiEntryRepo")
	return &kanjiEntryRepo{db: db, log: repoLog}
}

func (r *kanjiEntryRepo) Create(dbc dbctx.Context, entries []*types.KanjiEntry) ([]*types.KanjiEntry, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(entries) == 0 {
		return []*types.KanjiEntry{}, nil
	}
	for _, e := range entries {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = time.Now().UTC()
		}
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *kanjiEntryRepo) GetByVideoID(dbc dbctx.Context, videoID uuid.UUID) ([]*types.KanjiEntry, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.KanjiEntry
	if err := transaction.WithContext(dbc.Ctx).
		Where("video_id = ?", videoID).
		Order(`"character" ASC`).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// UpsertBatch inserts the triples for one video in a single statement.
// Conflicts on (video_id, character) are dropped silently: the first
// recorded reading/meaning for a character wins, so re-processing a video
// is idempotent with respect to its glossary.
func (r *kanjiEntryRepo) UpsertBatch(dbc dbctx.Context, videoID uuid.UUID, entries []KanjiEntryInput) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(entries) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]*types.KanjiEntry, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, &types.KanjiEntry{
			ID:        uuid.New(),
			VideoID:   videoID,
			Character: e.Character,
			Reading:   e.Reading,
			Meaning:   e.Meaning,
			CreatedAt: now,
		})
	}
	return transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "video_id"}, {Name: "character"}},
			DoNothing: true,
		}).
		Create(&rows).Error
}
