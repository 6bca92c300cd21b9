package lexicon

import (
	"context"
	"testing"

	"github.com/kikitori/kikitori-backend/internal/data/repos/testutil"
	types "github.com/kikitori/kikitori-backend/internal/domain"
	"github.com/kikitori/kikitori-backend/internal/platform/dbctx"
)

func TestWordRepoOrderingAndUniqueness(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewWordRepo(db, testutil.Logger(t))

	v := testutil.SeedVideo(t, ctx, tx, "https://example.com/words")
	seg := testutil.SeedSegment(t, ctx, tx, v.ID, 0)
	p := testutil.SeedPhraseAnalysis(t, ctx, tx, seg.ID, 0)

	w1 := &types.Word{PhraseAnalysisID: p.ID, Index: 1, Japanese: "です", Romaji: "desu"}
	w0 := &types.Word{PhraseAnalysisID: p.ID, Index: 0, Japanese: "水", KanjiChars: "水", Romaji: "mizu", Meaning: "water"}
	if _, err := repo.Create(dbc, []*types.Word{w1, w0}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows, err := repo.GetByPhraseAnalysisID(dbc, p.ID)
	if err != nil || len(rows) != 2 {
		t.Fatalf("GetByPhraseAnalysisID: err=%v len=%d", err, len(rows))
	}
	if rows[0].Japanese != "水" || rows[1].Japanese != "です" {
		t.Fatalf("words not ordered by word_index")
	}

	dup := &types.Word{PhraseAnalysisID: p.ID, Index: 0, Japanese: "again"}
	if _, err := repo.Create(dbc, []*types.Word{dup}); err == nil {
		t.Fatalf("duplicate (phrase, index) insert should fail")
	}
}

func TestWordRepoCascadeFromVideoDelete(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewWordRepo(db, testutil.Logger(t))

	v := testutil.SeedVideo(t, ctx, tx, "https://example.com/words-cascade")
	seg := testutil.SeedSegment(t, ctx, tx, v.ID, 0)
	p := testutil.SeedPhraseAnalysis(t, ctx, tx, seg.ID, 0)

	w := &types.Word{PhraseAnalysisID: p.ID, Index: 0, Japanese: "猫"}
	if _, err := repo.Create(dbc, []*types.Word{w}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := tx.WithContext(ctx).Where("id = ?", v.ID).Delete(&types.Video{}).Error; err != nil {
		t.Fatalf("delete video: %v", err)
	}

	var n int64
	if err := tx.Model(&types.Word{}).Where("phrase_analysis_id = ?", p.ID).Count(&n).Error; err != nil {
		t.Fatalf("count words: %v", err)
	}
	if n != 0 {
		t.Fatalf("cascade left %d words behind", n)
	}
}
