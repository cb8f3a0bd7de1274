package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
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
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieveRuns(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveRun(RunEntry{Level: 3, Seed: 1, Score: score, MaxTile: 64, Moves: 40}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	// Different level
	if _, err := store.SaveRun(RunEntry{Level: 7, Seed: 2, Score: 500, MaxTile: 256, Moves: 120, Won: true}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.TopRuns(3, 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}

	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Should be sorted descending
	if runs[0].Score != 200 || runs[1].Score != 100 || runs[2].Score != 50 {
		t.Errorf("Runs not in expected order: %v", runs)
	}

	other, err := store.TopRuns(7, 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(other) != 1 {
		t.Fatalf("Expected 1 run for level 7, got %d", len(other))
	}
	if !other[0].Won {
		t.Error("Won flag not persisted")
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(RunEntry{Level: 5, Score: (i + 1) * 100})
	}

	runs, err := store.TopRuns(5, 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}

	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}

	// Should be 500, 400, 300 (top 3)
	if runs[0].Score != 500 || runs[1].Score != 400 || runs[2].Score != 300 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	// No runs yet
	high, err := store.HighScore(4)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty level, got %d", high)
	}

	store.SaveRun(RunEntry{Level: 4, Score: 100})
	store.SaveRun(RunEntry{Level: 4, Score: 300})
	store.SaveRun(RunEntry{Level: 4, Score: 200})

	high, err = store.HighScore(4)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunEntry{Level: 1, Score: 100})
	store.SaveRun(RunEntry{Level: 1, Score: 200})
	store.SaveRun(RunEntry{Level: 2, Score: 300})

	if err := store.ClearRuns(1); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	cleared, _ := store.TopRuns(1, 10)
	if len(cleared) != 0 {
		t.Errorf("Expected 0 runs for level 1 after clear, got %d", len(cleared))
	}

	kept, _ := store.TopRuns(2, 10)
	if len(kept) != 1 {
		t.Error("Level 2 runs should not be affected by clearing level 1")
	}
}

func TestStoreDuels(t *testing.T) {
	store := openTestStore(t)

	entries := []DuelEntry{
		{LevelA: 3, LevelB: 7, ScoreA: 800, ScoreB: 2400, Winner: 7, Seed: 11},
		{LevelA: 5, LevelB: 5, ScoreA: 1000, ScoreB: 1000, Winner: 0, Seed: 12},
	}
	for _, e := range entries {
		if _, err := store.SaveDuel(e); err != nil {
			t.Fatalf("SaveDuel() failed: %v", err)
		}
	}

	recent, err := store.RecentDuels(10)
	if err != nil {
		t.Fatalf("RecentDuels() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 duels, got %d", len(recent))
	}

	// Most recent first
	if recent[0].Winner != 0 || recent[0].LevelA != 5 {
		t.Errorf("Unexpected first duel: %+v", recent[0])
	}
	if recent[1].Winner != 7 || recent[1].LevelB != 7 {
		t.Errorf("Unexpected second duel: %+v", recent[1])
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunEntry{Level: 6, Score: 100, MaxTile: 128})
	store.SaveRun(RunEntry{Level: 6, Score: 300, MaxTile: 512})
	store.SaveRun(RunEntry{Level: 6, Score: 200, MaxTile: 2048, Won: true})

	stats, err := store.GetLevelStats(6)
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}

	if stats.RunsCount != 3 {
		t.Errorf("RunsCount = %d, want 3", stats.RunsCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, want 300", stats.HighScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, want 200", stats.AvgScore)
	}
	if stats.BestTile != 2048 {
		t.Errorf("BestTile = %d, want 2048", stats.BestTile)
	}
	if stats.Wins != 1 {
		t.Errorf("Wins = %d, want 1", stats.Wins)
	}
}

func TestStoreAllLevelStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunEntry{Level: 1, Score: 100})
	store.SaveRun(RunEntry{Level: 1, Score: 200})
	store.SaveRun(RunEntry{Level: 9, Score: 5000, MaxTile: 1024})

	all, err := store.GetAllLevelStats()
	if err != nil {
		t.Fatalf("GetAllLevelStats() failed: %v", err)
	}

	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 levels, got %d", len(all))
	}
	if all[1].RunsCount != 2 || all[1].HighScore != 200 {
		t.Errorf("Level 1 stats: %+v", all[1])
	}
	if all[9].BestTile != 1024 {
		t.Errorf("Level 9 stats: %+v", all[9])
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
