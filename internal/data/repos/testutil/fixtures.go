package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/kikitori/kikitori-backend/internal/domain"
)

func SeedVideo(tb testing.TB, ctx context.Context, tx *gorm.DB, sourceURL string) *types.Video {
	tb.Helper()
	v := &types.Video{
		ID:        uuid.New(),
		SourceURL: sourceURL,
		Title:     "video",
		DataDir:   "videos/" + sourceURL,
		CreatedAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(v).Error; err != nil {
		tb.Fatalf("seed video: %v", err)
	}
	return v
}

func SeedSegment(tb testing.TB, ctx context.Context, tx *gorm.DB, videoID uuid.UUID, index int) *types.Segment {
	tb.Helper()
	s := &types.Segment{
		ID:        uuid.New(),
		VideoID:   videoID,
		Index:     index,
		Text:      "segment",
		StartTime: float64(index) * 5,
		EndTime:   float64(index)*5 + 5,
		Words:     datatypes.JSON([]byte("[]")),
		CreatedAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed segment: %v", err)
	}
	return s
}

func SeedPhraseAnalysis(tb testing.TB, ctx context.Context, tx *gorm.DB, segmentID uuid.UUID, index int) *types.PhraseAnalysis {
	tb.Helper()
	p := &types.PhraseAnalysis{
		ID:        uuid.New(),
		SegmentID: segmentID,
		Index:     index,
		Analysis:  datatypes.JSON([]byte(`{"phrase":"テスト"}`)),
		SyncWords: datatypes.JSON([]byte("[]")),
		CreatedAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed phrase analysis: %v", err)
	}
	return p
}

func SeedKanjiEntry(tb testing.TB, ctx context.Context, tx *gorm.DB, videoID uuid.UUID, character string) *types.KanjiEntry {
	tb.Helper()
	k := &types.KanjiEntry{
		ID:        uuid.New(),
		VideoID:   videoID,
		Character: character,
		Reading:   "よみ",
		Meaning:   "meaning",
		CreatedAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(k).Error; err != nil {
		tb.Fatalf("seed kanji entry: %v", err)
	}
	return k
}
