package lexicon

import (
	"context"
	"testing"

	"github.com/kikitori/kikitori-backend/internal/data/repos/testutil"
	types "github.com/kikitori/kikitori-backend/internal/domain"
	"github.com/kikitori/kikitori-backend/internal/platform/dbctx"
)

func TestKanjiRepoGlobalUpsert(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewKanjiRepo(db, testutil.Logger(t))

	first := []*types.Kanji{
		{Character: "学", Reading: "がく", Meaning: "study", HanjaMeaning: "學"},
	}
	if err := repo.UpsertBatch(dbc, first); err != nil {
		t.Fatalf("UpsertBatch: %v", err)
	}

	// A second sighting of the same character is ignored.
	second := []*types.Kanji{
		{Character: "学", Reading: "まなぶ", Meaning: "learn"},
		{Character: "校", Reading: "こう", Meaning: "school"},
	}
	if err := repo.UpsertBatch(dbc, second); err != nil {
		t.Fatalf("UpsertBatch rerun: %v", err)
	}

	rows, err := repo.GetByCharacters(dbc, []string{"学", "校"})
	if err != nil || len(rows) != 2 {
		t.Fatalf("GetByCharacters: err=%v len=%d", err, len(rows))
	}
	for _, row := range rows {
		if row.Character == "学" && row.Meaning != "study" {
			t.Fatalf("first write did not win: meaning=%q", row.Meaning)
		}
	}
}
