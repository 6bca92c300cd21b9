package domain

import (
	"github.com/kikitori/kikitori-backend/internal/domain/lexicon"
	"github.com/kikitori/kikitori-backend/internal/domain/video"
)

type Video = video.Video
type Segment = video.Segment
type PhraseAnalysis = video.PhraseAnalysis
type VideoPhraseAnalysis = video.VideoPhraseAnalysis
type KanjiEntry = video.KanjiEntry

type Word = lexicon.Word
type Kanji = lexicon.Kanji
type PhraseKanji = lexicon.PhraseKanji
