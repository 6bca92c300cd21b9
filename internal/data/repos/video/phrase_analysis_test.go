package video

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/kikitori/kikitori-backend/internal/data/repos/testutil"
	types "github.com/kikitori/kikitori-backend/internal/domain"
	"github.com/kikitori/kikitori-backend/internal/platform/dbctx"
)

func TestPhraseAnalysisRepoGetForVideo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewPhraseAnalysisRepo(db, testutil.Logger(t))

	v := testutil.SeedVideo(t, ctx, tx, "https://example.com/phrases")
	seg1 := testutil.SeedSegment(t, ctx, tx, v.ID, 1)
	seg0 := testutil.SeedSegment(t, ctx, tx, v.ID, 0)

	// Two phrases per segment, inserted in scrambled order.
	testutil.SeedPhraseAnalysis(t, ctx, tx, seg1.ID, 1)
	testutil.SeedPhraseAnalysis(t, ctx, tx, seg0.ID, 1)
	testutil.SeedPhraseAnalysis(t, ctx, tx, seg1.ID, 0)
	testutil.SeedPhraseAnalysis(t, ctx, tx, seg0.ID, 0)

	rows, err := repo.GetForVideo(dbc, v.ID)
	if err != nil {
		t.Fatalf("GetForVideo: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("GetForVideo len = %d, want 4", len(rows))
	}
	want := [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	for i, row := range rows {
		if row.SegmentIndex != want[i][0] || row.Index != want[i][1] {
			t.Fatalf("rows[%d] = (seg %d, phrase %d), want (%d, %d)",
				i, row.SegmentIndex, row.Index, want[i][0], want[i][1])
		}
	}

	// Unknown video id is not an error, just empty.
	empty, err := repo.GetForVideo(dbc, uuid.New())
	if err != nil || len(empty) != 0 {
		t.Fatalf("GetForVideo unknown: err=%v len=%d", err, len(empty))
	}
}

func TestPhraseAnalysisRepoDuplicateIndexRejected(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewPhraseAnalysisRepo(db, testutil.Logger(t))

	v := testutil.SeedVideo(t, ctx, tx, "https://example.com/phrase-dup")
	seg := testutil.SeedSegment(t, ctx, tx, v.ID, 0)
	testutil.SeedPhraseAnalysis(t, ctx, tx, seg.ID, 0)

	dup := &types.PhraseAnalysis{SegmentID: seg.ID, Index: 0, Analysis: []byte("{}")}
	if _, err := repo.Create(dbc, []*types.PhraseAnalysis{dup}); err == nil {
		t.Fatalf("duplicate (segment, index) insert should fail")
	}
}
