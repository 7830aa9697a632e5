package storage

import (
	"os"
	"path/filepath"
	"testing"
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
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	if err := store.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("stack", "ann", 42); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("stack")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 42 {
		t.Errorf("Expected 42 after reopen, got %d", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveScore("stack", "ann", 100)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("Expected positive ID, got %d", id)
	}

	store.SaveScore("stack", "bob", 200)
	store.SaveScore("stack", "ann", 50)
	store.SaveScore("stack_endless", "ann", 150)

	scores, err := store.TopScores("stack", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	want := []struct {
		player string
		score  int
	}{
		{"bob", 200},
		{"ann", 100},
		{"ann", 50},
	}
	for i, w := range want {
		if scores[i].Score != w.score || scores[i].Player != w.player {
			t.Errorf("scores[%d] = %s/%d, want %s/%d", i, scores[i].Player, scores[i].Score, w.player, w.score)
		}
		if scores[i].GameID != "stack" {
			t.Errorf("scores[%d].GameID = %q", i, scores[i].GameID)
		}
	}

	endless, err := store.TopScores("stack_endless", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(endless) != 1 {
		t.Errorf("Expected 1 endless score, got %d", len(endless))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("stack", "", (i+1)*100)
	}

	scores, err := store.TopScores("stack", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("stack")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("stack", "", 100)
	store.SaveScore("stack", "", 300)
	store.SaveScore("stack", "", 200)

	high, err = store.HighScore("stack")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("stack", "", 100)
	store.SaveScore("stack", "", 200)
	store.SaveScore("stack_endless", "", 300)

	if err := store.ClearScores("stack"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	campaign, _ := store.TopScores("stack", 10)
	if len(campaign) != 0 {
		t.Errorf("Expected 0 campaign scores after clear, got %d", len(campaign))
	}

	endless, _ := store.TopScores("stack_endless", 10)
	if len(endless) != 1 {
		t.Errorf("Endless scores should not be affected by clearing campaign")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore("stack", "", i*10)
	}

	scores, err := store.AllScores("stack")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("stack")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 {
		t.Errorf("Expected zero stats, got %+v", empty)
	}

	store.SaveScore("stack", "", 10)
	store.SaveScore("stack", "", 30)
	store.SaveScore("stack_endless", "", 7)

	stats, err := store.GetGameStats("stack")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 30 || stats.TotalScore != 40 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 20 {
		t.Errorf("AvgScore = %v, want 20", stats.AvgScore)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 games, got %d", len(all))
	}
	if all["stack_endless"].HighScore != 7 {
		t.Errorf("endless high score = %d, want 7", all["stack_endless"].HighScore)
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(Run{GameID: "stack"}); err == nil {
		t.Error("Expected error for run without outcome")
	}

	runs := []Run{
		{GameID: "stack", Player: "ann", Level: 1, Outcome: "failed", Score: 4, Placed: 3},
		{GameID: "stack", Player: "ann", Level: 2, Outcome: "won", Score: 30, Placed: 12, Perfects: 5, MaxCombo: 3, Duration: 95},
		{GameID: "stack_endless", Player: "bob", Level: 4, Outcome: "quit", Score: 50},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	got, err := store.RecentRuns("stack", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 campaign runs, got %d", len(got))
	}
	latest := got[0]
	if latest.Outcome != "won" || latest.Level != 2 || latest.Perfects != 5 || latest.MaxCombo != 3 || latest.Duration != 95 {
		t.Errorf("Newest run mismatch: %+v", latest)
	}

	all, err := store.RecentRuns("", 2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 2 || all[0].GameID != "stack_endless" {
		t.Errorf("Expected newest 2 runs across games, got %+v", all)
	}
}

func TestStoreProgress(t *testing.T) {
	store := openTestStore(t)

	level, err := store.HighestCleared("stack", "ann")
	if err != nil {
		t.Fatalf("HighestCleared() failed: %v", err)
	}
	if level != 0 {
		t.Errorf("Expected 0 for new player, got %d", level)
	}

	steps := []struct {
		cleared int
		want    int
	}{
		{1, 1},
		{3, 3},
		{2, 3}, // never goes backwards
	}
	for _, s := range steps {
		if err := store.SaveProgress("stack", "ann", s.cleared); err != nil {
			t.Fatalf("SaveProgress(%d) failed: %v", s.cleared, err)
		}
		got, err := store.HighestCleared("stack", "ann")
		if err != nil {
			t.Fatalf("HighestCleared() failed: %v", err)
		}
		if got != s.want {
			t.Errorf("after SaveProgress(%d): got %d, want %d", s.cleared, got, s.want)
		}
	}

	other, _ := store.HighestCleared("stack", "bob")
	if other != 0 {
		t.Errorf("Progress leaked to another player: %d", other)
	}
}

func TestStoreCreatesNestedDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreMigrationsRecordVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	v, err := store.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion() failed: %v", err)
	}
	if v != len(migrations) {
		t.Errorf("SchemaVersion() = %d, want %d", v, len(migrations))
	}
	store.Close()

	// Reopening must not rerun anything.
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()
	if v, _ := store.SchemaVersion(); v != len(migrations) {
		t.Errorf("SchemaVersion() after reopen = %d", v)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := map[string]string{
		"~/x/scores.db": filepath.Join(home, "x", "scores.db"),
		"~":             home,
		"~bob/x.db":     "~bob/x.db",
		"rel/x.db":      "rel/x.db",
	}
	for in, want := range tests {
		got, err := expandHome(in)
		if err != nil || got != want {
			t.Errorf("expandHome(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
}
