package services

import (
	"context"
	"testing"

	"gorm.io/datatypes"

	"github.com/kikitori/kikitori-backend/internal/data/repos"
	"github.com/kikitori/kikitori-backend/internal/data/repos/testutil"
	types "github.com/kikitori/kikitori-backend/internal/domain"
	"github.com/kikitori/kikitori-backend/internal/platform/dbctx"
)

func TestExtractKanjiEntriesFirstSightingWins(t *testing.T) {
	rows := []*types.VideoPhraseAnalysis{
		{Analysis: datatypes.JSON([]byte(`{
			"text": "大統領",
			"kanji_explanations": [
				{"kanji": "大", "reading": "だい", "meaning": "클 / 대"},
				{"kanji": "統", "reading": "とう", "meaning": "거느릴 / 통"}
			]
		}`))},
		{Analysis: datatypes.JSON([]byte(`not json`))},
		{Analysis: datatypes.JSON([]byte(`{
			"text": "大学",
			"kanji_explanations": [
				{"kanji": "大", "reading": "おお", "meaning": "big (later reading)"},
				{"kanji": "学", "reading": "がく", "meaning": "배울 / 학"},
				{"kanji": "", "reading": "x", "meaning": "blank character is skipped"}
			]
		}`))},
	}

	got := extractKanjiEntries(rows)
	want := []repos.KanjiEntryInput{
		{Character: "大", Reading: "だい", Meaning: "클 / 대"},
		{Character: "統", Reading: "とう", Meaning: "거느릴 / 통"},
		{Character: "学", Reading: "がく", Meaning: "배울 / 학"},
	}
	if len(got) != len(want) {
		t.Fatalf("extracted %d entries, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestKanjiServiceExtractForVideo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	phraseRepo := repos.NewPhraseAnalysisRepo(tx, log)
	entryRepo := repos.NewKanjiEntryRepo(tx, log)
	svc := NewKanjiService(tx, log, phraseRepo, entryRepo)

	v := testutil.SeedVideo(t, ctx, tx, "https://example.com/kanji-extract")
	seg := testutil.SeedSegment(t, ctx, tx, v.ID, 0)

	phrases := []*types.PhraseAnalysis{
		{SegmentID: seg.ID, Index: 0, Analysis: datatypes.JSON([]byte(
			`{"kanji_explanations": [{"kanji": "水", "reading": "みず", "meaning": "물 / 수"}]}`))},
		{SegmentID: seg.ID, Index: 1, Analysis: datatypes.JSON([]byte(
			`{"kanji_explanations": [
				{"kanji": "水", "reading": "すい", "meaning": "second sighting"},
				{"kanji": "曜", "reading": "よう", "meaning": "빛날 / 요"}
			]}`))},
	}
	if _, err := phraseRepo.Create(dbc, phrases); err != nil {
		t.Fatalf("seed phrases: %v", err)
	}

	n, err := svc.ExtractForVideo(ctx, v.ID)
	if err != nil {
		t.Fatalf("ExtractForVideo: %v", err)
	}
	if n != 2 {
		t.Fatalf("extracted %d characters, want 2", n)
	}

	entries, err := svc.GetForVideo(ctx, v.ID)
	if err != nil || len(entries) != 2 {
		t.Fatalf("GetForVideo: err=%v len=%d", err, len(entries))
	}
	for _, e := range entries {
		if e.Character == "水" && e.Reading != "みず" {
			t.Fatalf("first sighting did not win: reading=%q", e.Reading)
		}
	}

	// Rerunning after the glossary exists changes nothing.
	if _, err := svc.ExtractForVideo(ctx, v.ID); err != nil {
		t.Fatalf("ExtractForVideo rerun: %v", err)
	}
	entries, err = svc.GetForVideo(ctx, v.ID)
	if err != nil || len(entries) != 2 {
		t.Fatalf("GetForVideo after rerun: err=%v len=%d", err, len(entries))
	}
}
