package video

import (
	"context"
	"testing"

	"github.com/kikitori/kikitori-backend/internal/data/repos/testutil"
	types "github.com/kikitori/kikitori-backend/internal/domain"
	"github.com/kikitori/kikitori-backend/internal/platform/dbctx"
)

func TestKanjiEntryRepoUniquePerVideo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewKanjiEntryRepo(db, testutil.Logger(t))

	v := testutil.SeedVideo(t, ctx, tx, "https://example.com/kanji-dup")
	testutil.SeedKanjiEntry(t, ctx, tx, v.ID, "語")

	dup := &types.KanjiEntry{VideoID: v.ID, Character: "語"}
	if _, err := repo.Create(dbc, []*types.KanjiEntry{dup}); err == nil {
		t.Fatalf("duplicate (video, character) insert should fail")
	}

	// Same character under a different video is fine.
	other := testutil.SeedVideo(t, ctx, tx, "https://example.com/kanji-other")
	ok := &types.KanjiEntry{VideoID: other.ID, Character: "語"}
	if _, err := repo.Create(dbc, []*types.KanjiEntry{ok}); err != nil {
		t.Fatalf("same character on another video: %v", err)
	}
}

func TestKanjiEntryRepoUpsertBatchFirstWriteWins(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewKanjiEntryRepo(db, testutil.Logger(t))

	v := testutil.SeedVideo(t, ctx, tx, "https://example.com/kanji-upsert")

	first := []KanjiEntryInput{
		{Character: "語", Reading: "ご", Meaning: "language"},
		{Character: "水", Reading: "みず", Meaning: "water"},
	}
	if err := repo.UpsertBatch(dbc, v.ID, first); err != nil {
		t.Fatalf("UpsertBatch: %v", err)
	}

	// Conflicting re-run: no error, no overwrite, no duplicate row.
	second := []KanjiEntryInput{
		{Character: "語", Reading: "ご", Meaning: "word"},
		{Character: "火", Reading: "ひ", Meaning: "fire"},
	}
	if err := repo.UpsertBatch(dbc, v.ID, second); err != nil {
		t.Fatalf("UpsertBatch rerun: %v", err)
	}

	rows, err := repo.GetByVideoID(dbc, v.ID)
	if err != nil || len(rows) != 3 {
		t.Fatalf("GetByVideoID: err=%v len=%d", err, len(rows))
	}
	for _, row := range rows {
		if row.Character == "語" && row.Meaning != "language" {
			t.Fatalf("first write did not win: meaning=%q", row.Meaning)
		}
	}
}
