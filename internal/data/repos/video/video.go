package video

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/kikitori/kikitori-backend/internal/domain"
	"github.com/kikitori/kikitori-backend/internal/platform/dbctx"
	"github.com/kikitori/kikitori-backend/internal/platform/logger"
)

// VideoRepo persists the top of the hierarchy. Lookups return (nil, nil)
// for unknown ids/urls; only engine failures surface as errors.
type VideoRepo interface {
	Create(dbc dbctx.Context, videos []*types.Video) ([]*types.Video, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Video, error)
	GetBySourceURL(dbc dbctx.Context, url string) (*types.Video, error)
	List(dbc dbctx.Context) ([]*types.Video, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteReturningDataDir(dbc dbctx.Context, id uuid.UUID) (string, error)
}

type videoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVideoRepo(db *gorm.DB, baseLog *logger.Logger) VideoRepo {
	repoLog := baseLog.With("repo", "VideoRepo")
	return &videoRepo{db: db, log: repoLog}
}

func (r *videoRepo) Create(dbc dbctx.Context, videos []*types.Video) ([]*types.Video, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(videos) == 0 {
		return []*types.Video{}, nil
	}
	for _, v := range videos {
		if v.ID == uuid.Nil {
			v.ID = uuid.New()
		}
		if v.CreatedAt.IsZero() {
			v.CreatedAt = time.Now().UTC()
		}
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *videoRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Video, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var v types.Video
	err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *videoRepo) GetBySourceURL(dbc dbctx.Context, url string) (*types.Video, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var v types.Video
	err := transaction.WithContext(dbc.Ctx).
		Where("source_url = ?", url).
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *videoRepo) List(dbc dbctx.Context) ([]*types.Video, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Video
	if err := transaction.WithContext(dbc.Ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *videoRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&types.Video{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// DeleteReturningDataDir reads the video's artifact directory and deletes
// the row in one transaction, so a concurrent delete cannot slip between
// the lookup and the delete. The cascade removes every descendant row.
// A missing video yields ("", nil).
func (r *videoRepo) DeleteReturningDataDir(dbc dbctx.Context, id uuid.UUID) (string, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var dir string
	err := transaction.WithContext(dbc.Ctx).Transaction(func(tx *gorm.DB) error {
		var v types.Video
		if err := tx.Select("data_dir").Where("id = ?", id).First(&v).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		dir = v.DataDir
		return tx.Where("id = ?", id).Delete(&types.Video{}).Error
	})
	if err != nil {
		return "", err
	}
	return dir, nil
}
