package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kikitori/kikitori-backend/internal/data/repos"
	types "github.com/kikitori/kikitori-backend/internal/domain"
	"github.com/kikitori/kikitori-backend/internal/platform/dbctx"
	"github.com/kikitori/kikitori-backend/internal/platform/logger"
)

// LexiconService keeps the word-level breakdown and the global kanji
// dictionary. It is only wired up on the embedded engine, where those
// tables exist.
type LexiconService interface {
	RecordPhrase(ctx context.Context, phraseID uuid.UUID, words []WordInput, kanji []KanjiInput) error
	GetPhraseWords(ctx context.Context, phraseID uuid.UUID) ([]*types.Word, error)
	GetPhraseKanji(ctx context.Context, phraseID uuid.UUID) ([]*types.Kanji, error)
}

type WordInput struct {
	Japanese   string
	KanjiChars string
	Romaji     string
	Meaning    string
}

type KanjiInput struct {
	Character    string
	Reading      string
	Meaning      string
	HanjaMeaning string
}

type lexiconService struct {
	db              *gorm.DB
	log             *logger.Logger
	wordRepo        repos.WordRepo
	kanjiRepo       repos.KanjiRepo
	phraseKanjiRepo repos.PhraseKanjiRepo
}

func NewLexiconService(db *gorm.DB, log *logger.Logger, wordRepo repos.WordRepo, kanjiRepo repos.KanjiRepo, phraseKanjiRepo repos.PhraseKanjiRepo) LexiconService {
	return &lexiconService{
		db:              db,
		log:             log.With("service", "LexiconService"),
		wordRepo:        wordRepo,
		kanjiRepo:       kanjiRepo,
		phraseKanjiRepo: phraseKanjiRepo,
	}
}

// RecordPhrase stores a phrase's word breakdown, folds its kanji into
// the global dictionary (first sighting wins) and links them to the
// phrase. All three writes commit or roll back together.
func (s *lexiconService) RecordPhrase(ctx context.Context, phraseID uuid.UUID, words []WordInput, kanji []KanjiInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		if len(words) > 0 {
			rows := make([]*types.Word, 0, len(words))
			for i, w := range words {
				rows = append(rows, &types.Word{
					PhraseAnalysisID: phraseID,
					Index:            i,
					Japanese:         w.Japanese,
					KanjiChars:       w.KanjiChars,
					Romaji:           w.Romaji,
					Meaning:          w.Meaning,
				})
			}
			if _, err := s.wordRepo.Create(dbc, rows); err != nil {
				return err
			}
		}

		if len(kanji) == 0 {
			return nil
		}
		dict := make([]*types.Kanji, 0, len(kanji))
		chars := make([]string, 0, len(kanji))
		for _, k := range kanji {
			if k.Character == "" {
				continue
			}
			dict = append(dict, &types.Kanji{
				Character:    k.Character,
				Reading:      k.Reading,
				Meaning:      k.Meaning,
				HanjaMeaning: k.HanjaMeaning,
			})
			chars = append(chars, k.Character)
		}
		if err := s.kanjiRepo.UpsertBatch(dbc, dict); err != nil {
			return err
		}
		return s.phraseKanjiRepo.Link(dbc, phraseID, chars)
	})
}

func (s *lexiconService) GetPhraseWords(ctx context.Context, phraseID uuid.UUID) ([]*types.Word, error) {
	return s.wordRepo.GetByPhraseAnalysisID(dbctx.Context{Ctx: ctx}, phraseID)
}

func (s *lexiconService) GetPhraseKanji(ctx context.Context, phraseID uuid.UUID) ([]*types.Kanji, error) {
	links, err := s.phraseKanjiRepo.GetByPhraseAnalysisID(dbctx.Context{Ctx: ctx}, phraseID)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return []*types.Kanji{}, nil
	}
	chars := make([]string, 0, len(links))
	for _, l := range links {
		chars = append(chars, l.KanjiCharacter)
	}
	return s.kanjiRepo.GetByCharacters(dbctx.Context{Ctx: ctx}, chars)
}
