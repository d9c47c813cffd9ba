// chessrules - play chess against a UCI engine in the terminal
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/console"
	"github.com/hailam/chessrules/internal/engine"
	"github.com/hailam/chessrules/internal/storage"
)

var (
	enginePath = flag.String("engine", "", "UCI engine binary (default: saved preference, $CHESSRULES_ENGINE or stockfish)")
	dbDir      = flag.String("db", "", "database directory (default: platform data directory)")
	difficulty = flag.String("difficulty", "", "engine strength: easy, medium or hard")
	playBlack  = flag.Bool("black", false, "play the black pieces")
	theme      = flag.String("theme", "", "board theme: classic or dark")
	moveTime   = flag.Duration("movetime", 0, "engine time per move (overrides difficulty)")
	depth      = flag.Int("depth", 0, "engine search depth (overrides difficulty)")
	plain      = flag.Bool("plain", false, "disable colors")
	noEngine   = flag.Bool("noengine", false, "play both sides without an engine")
)

func openStorage() (*storage.Storage, error) {
	if *dbDir != "" {
		return storage.Open(*dbDir)
	}
	return storage.NewStorage()
}

// applyFlags overlays explicitly set flags on the saved preferences.
func applyFlags(prefs *storage.UserPreferences) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "engine":
			prefs.EnginePath = *enginePath
		case "difficulty":
			d, err := engine.ParseDifficulty(*difficulty)
			if err != nil {
				log.Fatal(err)
			}
			prefs.Difficulty = storage.Difficulty(d)
		case "black":
			prefs.PlayerColor = storage.ColorWhite
			if *playBlack {
				prefs.PlayerColor = storage.ColorBlack
			}
		case "theme":
			prefs.Theme = *theme
		case "movetime":
			prefs.MoveTimeMs = int(moveTime.Milliseconds())
		case "depth":
			prefs.Depth = *depth
		}
	})
}

func main() {
	flag.Parse()

	store, err := openStorage()
	if err != nil {
		log.Printf("Warning: storage unavailable: %v (results will not be saved)", err)
	}

	prefs := storage.DefaultPreferences()
	if store != nil {
		defer store.Close()
		if prefs, err = store.LoadPreferences(); err != nil {
			log.Printf("Warning: could not load preferences: %v", err)
		}
		if first, _ := store.IsFirstLaunch(); first {
			fmt.Println("Welcome to chessrules! Type help for the list of commands.")
			if err := store.MarkFirstLaunchComplete(); err != nil {
				log.Printf("Warning: %v", err)
			}
		}
	}
	applyFlags(prefs)

	path := prefs.EnginePath
	if path == "" {
		path = os.Getenv("CHESSRULES_ENGINE")
	}

	var analyzer engine.Analyzer
	if !*noEngine {
		if p, err := engine.Open(path); err != nil {
			log.Printf("Warning: engine not started: %v (you play both sides)", err)
		} else {
			analyzer = engine.NewCache(p, 1024)
			defer analyzer.Close()
		}
	}

	human := board.White
	if prefs.PlayerColor == storage.ColorBlack {
		human = board.Black
	}

	c := console.New(console.Config{
		Analyzer:   analyzer,
		Difficulty: engine.Difficulty(prefs.Difficulty),
		Limits: engine.Limits{
			Depth:    prefs.Depth,
			MoveTime: time.Duration(prefs.MoveTimeMs) * time.Millisecond,
		},
		Store: store,
		Human: human,
		Theme: prefs.Theme,
		Plain: *plain,
	}, os.Stdin, os.Stdout)

	if err := c.Run(); err != nil {
		log.Printf("console: %v", err)
	}

	if store == nil {
		return
	}
	// Re-read: the console may have saved a theme change.
	if saved, err := store.LoadPreferences(); err == nil {
		prefs.Theme = saved.Theme
	}
	if err := store.SavePreferences(prefs); err != nil {
		log.Printf("Warning: could not save preferences: %v", err)
	}
	if stats, err := store.LoadStats(); err == nil && stats.GamesPlayed > 0 {
		fmt.Printf("Games played: %d  won: %d  lost: %d  drawn: %d  (%.0f%% wins)\n",
			stats.GamesPlayed, stats.Wins, stats.Losses, stats.Draws, stats.GetWinRate())
	}
}
