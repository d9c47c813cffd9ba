package storage

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func openTemp(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPreferences(t *testing.T) {
	s := openTemp(t)

	t.Run("Defaults", func(t *testing.T) {
		prefs, err := s.LoadPreferences()
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(DefaultPreferences(), prefs); diff != "" {
			t.Errorf("defaults (-want +got):\n%s", diff)
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		want := &UserPreferences{
			Username:    "ada",
			EnginePath:  "/usr/games/stockfish",
			MoveTimeMs:  750,
			Depth:       12,
			Difficulty:  DifficultyHard,
			PlayerColor: ColorBlack,
			Theme:       "dark",
		}
		if err := s.SavePreferences(want); err != nil {
			t.Fatal(err)
		}
		if want.LastPlayed.IsZero() {
			t.Error("SavePreferences should stamp LastPlayed")
		}
		got, err := s.LoadPreferences()
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want, got, cmpopts.EquateApproxTime(time.Second)); diff != "" {
			t.Errorf("preferences (-want +got):\n%s", diff)
		}
	})
}

func TestFirstLaunch(t *testing.T) {
	s := openTemp(t)
	first, err := s.IsFirstLaunch()
	if err != nil || !first {
		t.Fatalf("IsFirstLaunch = %v, %v; want true", first, err)
	}
	if err := s.MarkFirstLaunchComplete(); err != nil {
		t.Fatal(err)
	}
	if first, _ := s.IsFirstLaunch(); first {
		t.Error("still first launch after MarkFirstLaunchComplete")
	}
}

func TestRecordGame(t *testing.T) {
	s := openTemp(t)
	results := []GameResult{
		{Name: "brave-otter", Won: true, Termination: "checkmate", Difficulty: DifficultyEasy, Duration: time.Minute},
		{Name: "calm-heron", Won: true, Termination: "checkmate", Difficulty: DifficultyHard, Duration: 2 * time.Minute},
		{Name: "quiet-lynx", Draw: true, Termination: "stalemate", Duration: time.Minute},
		{Name: "swift-crane", Won: true, Termination: "checkmate", Difficulty: DifficultyHard, Duration: time.Minute},
		{Name: "bold-moose", Termination: "checkmate", Duration: 3 * time.Minute},
	}
	for _, r := range results {
		if err := s.RecordGame(r); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	want := &GameStats{
		GamesPlayed:      5,
		Wins:             3,
		Losses:           1,
		Draws:            1,
		ByTermination:    map[string]int{"checkmate": 4, "stalemate": 1},
		WinsByDiff:       map[string]int{"easy": 1, "hard": 2},
		TotalPlayTime:    8 * time.Minute,
		LongestWinStreak: 2,
		CurrentStreak:    0,
		LastGame:         "bold-moose",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stats (-want +got):\n%s", diff)
	}
	if rate := got.GetWinRate(); rate != 60 {
		t.Errorf("win rate = %v, want 60", rate)
	}
}

func TestStatsPersistAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.RecordGame(GameResult{Won: true, Termination: "checkmate"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesPlayed != 1 || stats.Wins != 1 {
		t.Errorf("after reopen: %+v", stats)
	}
}

func TestDataPaths(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("XDG_DATA_HOME only applies on Unix-like systems")
	}
	base := t.TempDir()
	t.Setenv("XDG_DATA_HOME", base)

	dbDir, err := GetDatabaseDir()
	if err != nil {
		t.Fatalf("GetDatabaseDir failed: %v", err)
	}
	if want := filepath.Join(base, appName, "db"); dbDir != want {
		t.Errorf("GetDatabaseDir = %s, want %s", dbDir, want)
	}
	if _, err := os.Stat(dbDir); err != nil {
		t.Errorf("database directory was not created: %v", err)
	}
}
