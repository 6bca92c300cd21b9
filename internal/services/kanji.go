package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kikitori/kikitori-backend/internal/data/repos"
	types "github.com/kikitori/kikitori-backend/internal/domain"
	"github.com/kikitori/kikitori-backend/internal/platform/dbctx"
	"github.com/kikitori/kikitori-backend/internal/platform/logger"
)

// KanjiService builds the per-video kanji glossary from the phrase
// analyses already stored for that video.
type KanjiService interface {
	ExtractForVideo(ctx context.Context, videoID uuid.UUID) (int, error)
	GetForVideo(ctx context.Context, videoID uuid.UUID) ([]*types.KanjiEntry, error)
}

type kanjiService struct {
	db             *gorm.DB
	log            *logger.Logger
	phraseRepo     repos.PhraseAnalysisRepo
	kanjiEntryRepo repos.KanjiEntryRepo
}

func NewKanjiService(db *gorm.DB, log *logger.Logger, phraseRepo repos.PhraseAnalysisRepo, kanjiEntryRepo repos.KanjiEntryRepo) KanjiService {
	return &kanjiService{
		db:             db,
		log:            log.With("service", "KanjiService"),
		phraseRepo:     phraseRepo,
		kanjiEntryRepo: kanjiEntryRepo,
	}
}

// ExtractForVideo walks the video's phrase analyses in playback order,
// collects each kanji's first explanation, and upserts the set. Rerunning
// it never overwrites an earlier reading or meaning. Returns how many
// distinct characters the walk produced.
func (s *kanjiService) ExtractForVideo(ctx context.Context, videoID uuid.UUID) (int, error) {
	dbc := dbctx.Context{Ctx: ctx}
	rows, err := s.phraseRepo.GetForVideo(dbc, videoID)
	if err != nil {
		return 0, err
	}
	entries := extractKanjiEntries(rows)
	if len(entries) == 0 {
		return 0, nil
	}
	if err := s.kanjiEntryRepo.UpsertBatch(dbc, videoID, entries); err != nil {
		return 0, err
	}
	s.log.Info("Kanji glossary extracted", "video_id", videoID, "characters", len(entries))
	return len(entries), nil
}

func (s *kanjiService) GetForVideo(ctx context.Context, videoID uuid.UUID) ([]*types.KanjiEntry, error) {
	return s.kanjiEntryRepo.GetByVideoID(dbctx.Context{Ctx: ctx}, videoID)
}

type kanjiExplanation struct {
	Kanji   string `json:"kanji"`
	Reading string `json:"reading"`
	Meaning string `json:"meaning"`
}

type phraseAnalysisDoc struct {
	KanjiExplanations []kanjiExplanation `json:"kanji_explanations"`
}

// extractKanjiEntries dedupes kanji_explanations across the ordered
// phrase rows; the first sighting of a character wins. Rows whose
// analysis payload fails to parse are skipped.
func extractKanjiEntries(rows []*types.VideoPhraseAnalysis) []repos.KanjiEntryInput {
	seen := map[string]struct{}{}
	out := []repos.KanjiEntryInput{}
	for _, row := range rows {
		var doc phraseAnalysisDoc
		if err := json.Unmarshal(row.Analysis, &doc); err != nil {
			continue
		}
		for _, ke := range doc.KanjiExplanations {
			if ke.Kanji == "" {
				continue
			}
			if _, ok := seen[ke.Kanji]; ok {
				continue
			}
			seen[ke.Kanji] = struct{}{}
			out = append(out, repos.KanjiEntryInput{
				Character: ke.Kanji,
				Reading:   ke.Reading,
				Meaning:   ke.Meaning,
			})
		}
	}
	return out
}
