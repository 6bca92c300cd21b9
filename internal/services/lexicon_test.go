package services

import (
	"context"
	"testing"

	"github.com/kikitori/kikitori-backend/internal/data/repos"
	"github.com/kikitori/kikitori-backend/internal/data/repos/testutil"
)

func TestLexiconServiceRecordPhrase(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	svc := NewLexiconService(tx, log,
		repos.NewWordRepo(tx, log),
		repos.NewKanjiRepo(tx, log),
		repos.NewPhraseKanjiRepo(tx, log),
	)
	ctx := context.Background()

	v := testutil.SeedVideo(t, ctx, tx, "https://example.com/lexicon")
	seg := testutil.SeedSegment(t, ctx, tx, v.ID, 0)
	p := testutil.SeedPhraseAnalysis(t, ctx, tx, seg.ID, 0)

	words := []WordInput{
		{Japanese: "水曜日", KanjiChars: "水曜日", Romaji: "suiyōbi", Meaning: "수요일"},
		{Japanese: "に", Romaji: "ni", Meaning: "~에"},
	}
	kanji := []KanjiInput{
		{Character: "水", Reading: "すい", Meaning: "물 / 수"},
		{Character: "曜", Reading: "よう", Meaning: "빛날 / 요"},
		{Character: "日", Reading: "び", Meaning: "날 / 일"},
	}
	if err := svc.RecordPhrase(ctx, p.ID, words, kanji); err != nil {
		t.Fatalf("RecordPhrase: %v", err)
	}

	gotWords, err := svc.GetPhraseWords(ctx, p.ID)
	if err != nil || len(gotWords) != 2 {
		t.Fatalf("GetPhraseWords: err=%v len=%d", err, len(gotWords))
	}
	if gotWords[0].Japanese != "水曜日" || gotWords[0].Index != 0 {
		t.Fatalf("word order lost: %+v", gotWords[0])
	}

	gotKanji, err := svc.GetPhraseKanji(ctx, p.ID)
	if err != nil || len(gotKanji) != 3 {
		t.Fatalf("GetPhraseKanji: err=%v len=%d", err, len(gotKanji))
	}

	// A later phrase reusing 水 keeps the dictionary row and just links it.
	p2 := testutil.SeedPhraseAnalysis(t, ctx, tx, seg.ID, 1)
	if err := svc.RecordPhrase(ctx, p2.ID, nil, []KanjiInput{
		{Character: "水", Reading: "みず", Meaning: "later sighting"},
	}); err != nil {
		t.Fatalf("RecordPhrase rerun: %v", err)
	}
	rows, err := svc.GetPhraseKanji(ctx, p2.ID)
	if err != nil || len(rows) != 1 {
		t.Fatalf("GetPhraseKanji p2: err=%v len=%d", err, len(rows))
	}
	if rows[0].Reading != "すい" {
		t.Fatalf("global dictionary overwritten: reading=%q", rows[0].Reading)
	}
}
