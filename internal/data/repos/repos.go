package repos

import (
	"gorm.io/gorm"

	"github.com/kikitori/kikitori-backend/internal/data/repos/lexicon"
	"github.com/kikitori/kikitori-backend/internal/data/repos/video"
	"github.com/kikitori/kikitori-backend/internal/platform/logger"
)

type VideoRepo = video.VideoRepo
type SegmentRepo = video.SegmentRepo
type PhraseAnalysisRepo = video.PhraseAnalysisRepo
type KanjiEntryRepo = video.KanjiEntryRepo
type KanjiEntryInput = video.KanjiEntryInput

type WordRepo = lexicon.WordRepo
type KanjiRepo = lexicon.KanjiRepo
type PhraseKanjiRepo = lexicon.PhraseKanjiRepo

func NewVideoRepo(db *gorm.DB, baseLog *logger.Logger) VideoRepo {
	return video.NewVideoRepo(db, baseLog)
}
func NewSegmentRepo(db *gorm.DB, baseLog *logger.Logger) SegmentRepo {
	return video.NewSegmentRepo(db, baseLog)
}
func NewPhraseAnalysisRepo(db *gorm.DB, baseLog *logger.Logger) PhraseAnalysisRepo {
	return video.NewPhraseAnalysisRepo(db, baseLog)
}
func NewKanjiEntryRepo(db *gorm.DB, baseLog *logger.Logger) KanjiEntryRepo {
	return video.NewKanjiEntryRepo(db, baseLog)
}

func NewWordRepo(db *gorm.DB, baseLog *logger.Logger) WordRepo {
	return lexicon.NewWordRepo(db, baseLog)
}
func NewKanjiRepo(db *gorm.DB, baseLog *logger.Logger) KanjiRepo {
	return lexicon.NewKanjiRepo(db, baseLog)
}
func NewPhraseKanjiRepo(db *gorm.DB, baseLog *logger.Logger) PhraseKanjiRepo {
	return lexicon.NewPhraseKanjiRepo(db, baseLog)
}
