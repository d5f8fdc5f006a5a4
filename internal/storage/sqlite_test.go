package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/calc-climb/internal/multiplayer"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveScore(ScoreEntry{Mode: "calc", Stages: 3}); err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()
	best, err := store.BestStages("calc")
	if err != nil || best != 3 {
		t.Errorf("BestStages = %d, %v; expected 3", best, err)
	}
}

func TestStoreTopScores(t *testing.T) {
	store := openTestStore(t)

	runs := []ScoreEntry{
		{Mode: "calc", Stages: 2, Tier: 2, Seed: 11},
		{Mode: "calc", Stages: 5, Tier: 5, Seed: 22},
		{Mode: "calc", Stages: 5, Tier: 8, Seed: 33},
		{Mode: "calc_practice", Stages: 9, Tier: 1, Seed: 44},
	}
	for _, r := range runs {
		if _, err := store.SaveScore(r); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("calc", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(scores))
	}
	wantSeeds := []int64{33, 22, 11}
	for i, s := range scores {
		if s.Seed != wantSeeds[i] {
			t.Errorf("scores[%d].Seed = %d, expected %d", i, s.Seed, wantSeeds[i])
		}
		if s.Mode != "calc" {
			t.Errorf("scores[%d].Mode = %q", i, s.Mode)
		}
	}

	limited, err := store.TopScores("calc", 1)
	if err != nil || len(limited) != 1 {
		t.Errorf("TopScores limit 1 = %d entries, %v", len(limited), err)
	}
}

func TestStoreBestStagesEmpty(t *testing.T) {
	store := openTestStore(t)
	best, err := store.BestStages("calc")
	if err != nil || best != 0 {
		t.Errorf("BestStages on empty = %d, %v", best, err)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore(ScoreEntry{Mode: "calc", Stages: 1})
	store.SaveScore(ScoreEntry{Mode: "calc_practice", Stages: 1})

	if err := store.ClearScores("calc"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if scores, _ := store.TopScores("calc", 10); len(scores) != 0 {
		t.Errorf("expected no calc scores, got %d", len(scores))
	}
	if scores, _ := store.TopScores("calc_practice", 10); len(scores) != 1 {
		t.Error("other modes should be untouched")
	}
}

func TestStoreAllModeStats(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore(ScoreEntry{Mode: "calc", Stages: 2, Tier: 4})
	store.SaveScore(ScoreEntry{Mode: "calc", Stages: 6, Tier: 7})

	stats, err := store.AllModeStats()
	if err != nil {
		t.Fatalf("AllModeStats() failed: %v", err)
	}
	calc, ok := stats["calc"]
	if !ok {
		t.Fatal("missing calc stats")
	}
	if calc.Runs != 2 || calc.BestStages != 6 || calc.HighestTier != 7 || calc.TotalStages != 8 {
		t.Errorf("stats = %+v", calc)
	}
}

func TestStoreMatchResults(t *testing.T) {
	store := openTestStore(t)

	var saver multiplayer.MatchResultSaver = store
	results := []multiplayer.MatchResult{
		{Code: "ABCDE", LevelIndex: 1, Seed: 555, Winner: "s1", Loser: "s2", Reason: multiplayer.ReasonTarget},
		{Code: "FGHJK", LevelIndex: 2, Seed: 777, Winner: "s3", Loser: "s1", Reason: multiplayer.ReasonForfeit},
	}
	for _, r := range results {
		if err := saver.SaveMatchResult(r); err != nil {
			t.Fatalf("SaveMatchResult() failed: %v", err)
		}
	}

	recent, err := store.RecentOnlineMatches(10)
	if err != nil {
		t.Fatalf("RecentOnlineMatches() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].RoomCode != "FGHJK" {
		t.Fatalf("recent = %+v", recent)
	}
	if recent[1].Seed != 555 || recent[1].LevelIndex != 1 || recent[1].Reason != "target" {
		t.Errorf("first match = %+v", recent[1])
	}

	history, err := store.PlayerMatchHistory("s1", 10)
	if err != nil || len(history) != 2 {
		t.Errorf("s1 history = %d entries, %v", len(history), err)
	}
	history, _ = store.PlayerMatchHistory("s3", 10)
	if len(history) != 1 || history[0].WinnerSession != "s3" {
		t.Errorf("s3 history = %+v", history)
	}

	m, err := store.OnlineMatchByID(recent[0].ID)
	if err != nil || m == nil || m.RoomCode != "FGHJK" {
		t.Errorf("OnlineMatchByID = %+v, %v", m, err)
	}
	missing, err := store.OnlineMatchByID(9999)
	if err != nil || missing != nil {
		t.Errorf("missing match = %+v, %v", missing, err)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.calcclimb/test.db")
	if err != nil {
		t.Fatalf("Open() with ~ failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".calcclimb", "test.db")); err != nil {
		t.Errorf("expected database under HOME: %v", err)
	}
}
