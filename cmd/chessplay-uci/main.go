package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/hailam/chessrules/internal/engine"
	"github.com/hailam/chessrules/internal/uci"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	enginePath = flag.String("engine", "", "external UCI engine binary (default $CHESSRULES_ENGINE or stockfish)")
	moveTime   = flag.Duration("movetime", time.Second, "default time per move when go carries no limits")
	depth      = flag.Int("depth", 0, "default search depth when go carries no limits (0 = none)")
)

func main() {
	flag.Parse()
	log.SetOutput(os.Stderr)

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	path := *enginePath
	if path == "" {
		path = os.Getenv("CHESSRULES_ENGINE")
	}

	// Without an engine the proxy still answers with legal moves.
	var analyzer engine.Analyzer
	if p, err := engine.Open(path); err != nil {
		log.Printf("Warning: engine not started: %v (falling back to first legal move)", err)
	} else {
		analyzer = engine.NewCache(p, 4096)
	}

	protocol := uci.New(analyzer, engine.Limits{Depth: *depth, MoveTime: *moveTime}, os.Stdin, os.Stdout)
	if err := protocol.Run(); err != nil {
		log.Printf("uci: %v", err)
	}
}
