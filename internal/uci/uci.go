// Package uci implements a validating UCI front-end. It speaks UCI to a
// GUI, keeps the game with the rules core, forwards searches to an
// external engine and only ever reports legal moves.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/engine"
	"github.com/hailam/chessrules/internal/game"
)

// Opener starts an analyzer from an engine path.
type Opener func(path string) (engine.Analyzer, error)

// OpenProcess is the default Opener.
func OpenProcess(path string) (engine.Analyzer, error) {
	p, err := engine.Open(path)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UCI implements the Universal Chess Interface protocol.
type UCI struct {
	in  io.Reader
	out io.Writer

	game     *game.Game
	analyzer engine.Analyzer // nil until an engine is configured
	open     Opener
	defaults engine.Limits

	// CPU profiling
	profileFile *os.File
}

// New creates a protocol handler reading commands from in and writing
// replies to out. a may be nil; moves then fall back to the first legal
// move until an EnginePath option is set.
func New(a engine.Analyzer, defaults engine.Limits, in io.Reader, out io.Writer) *UCI {
	return &UCI{
		in:       in,
		out:      out,
		game:     game.New(),
		analyzer: a,
		open:     OpenProcess,
		defaults: defaults,
	}
}

// SetOpener replaces the function used for the EnginePath option.
func (u *UCI) SetOpener(open Opener) { u.open = open }

// Game returns the game as currently set up.
func (u *UCI) Game() *game.Game { return u.game }

// Run processes commands until "quit" or end of input. The analyzer is
// closed on return.
func (u *UCI) Run() error {
	defer u.shutdown()

	scanner := bufio.NewScanner(u.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			u.println("readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			// Searches are synchronous; bestmove has already been sent.
		case "quit":
			return nil
		case "setoption":
			u.handleSetOption(args)
		// Debug commands
		case "d":
			u.handleDisplay()
		case "perft":
			u.handlePerft(args)
		default:
			u.infof("Unknown command: %s", cmd)
		}
	}
	return scanner.Err()
}

func (u *UCI) println(a ...any) {
	fmt.Fprintln(u.out, a...)
}

func (u *UCI) infof(format string, args ...any) {
	fmt.Fprintf(u.out, "info string "+format+"\n", args...)
}

func (u *UCI) shutdown() {
	if u.profileFile != nil {
		pprof.StopCPUProfile()
		u.profileFile.Close()
		u.profileFile = nil
	}
	if u.analyzer != nil {
		u.analyzer.Close()
		u.analyzer = nil
	}
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	u.println("id name chessrules")
	u.println("id author chessrules developers")
	u.println()
	u.println("option name EnginePath type string default <empty>")
	u.println("option name MoveTime type spin default", u.defaults.MoveTime.Milliseconds(), "min 0 max 600000")
	u.println("option name Depth type spin default", u.defaults.Depth, "min 0 max 100")
	u.println("option name CPUProfile type string default <empty>")
	u.println("uciok")
}

// handleNewGame resets the game and tells the engine.
func (u *UCI) handleNewGame() {
	u.game = game.New()
	if p, ok := u.analyzer.(interface{ NewGame() error }); ok {
		if err := p.NewGame(); err != nil {
			u.infof("Engine new game failed: %v", err)
		}
	}
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
//
// On any error the previous position is kept.
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		u.infof("Invalid position: missing startpos or fen")
		return
	}

	movesAt := len(args)
	for i, arg := range args {
		if arg == "moves" {
			movesAt = i
			break
		}
	}

	var g *game.Game
	switch args[0] {
	case "startpos":
		g = game.New()
	case "fen":
		var err error
		g, err = game.FromFEN(strings.Join(args[1:movesAt], " "))
		if err != nil {
			u.infof("Invalid FEN: %v", err)
			return
		}
	default:
		u.infof("Invalid position: %s", args[0])
		return
	}

	if movesAt < len(args) {
		for _, moveStr := range args[movesAt+1:] {
			if _, err := g.ApplyText(moveStr); err != nil {
				u.infof("Invalid move: %v", err)
				return
			}
		}
	}
	u.game = g
}

// GoOptions holds parsed "go" command options.
type GoOptions struct {
	Depth    int
	MoveTime time.Duration
	Infinite bool
	Clock    engine.Clock
}

// ParseGoOptions parses "go" command arguments. Unknown or malformed
// values are ignored.
func ParseGoOptions(args []string) GoOptions {
	opts := GoOptions{}

	millis := func(v string) time.Duration {
		ms, _ := strconv.Atoi(v)
		return time.Duration(ms) * time.Millisecond
	}

	for i := 0; i < len(args); i++ {
		if args[i] == "infinite" {
			opts.Infinite = true
			continue
		}
		if i+1 >= len(args) {
			break
		}
		v := args[i+1]
		switch args[i] {
		case "depth":
			opts.Depth, _ = strconv.Atoi(v)
		case "movetime":
			opts.MoveTime = millis(v)
		case "wtime":
			opts.Clock.Time[board.White] = millis(v)
		case "btime":
			opts.Clock.Time[board.Black] = millis(v)
		case "winc":
			opts.Clock.Inc[board.White] = millis(v)
		case "binc":
			opts.Clock.Inc[board.Black] = millis(v)
		case "movestogo":
			opts.Clock.MovesToGo, _ = strconv.Atoi(v)
		default:
			continue
		}
		i++
	}

	return opts
}

// calculateLimits converts GoOptions into engine limits. An explicit
// movetime wins over the clock; with neither, the configured default
// time applies.
func (u *UCI) calculateLimits(opts GoOptions) engine.Limits {
	limits := engine.Limits{Depth: opts.Depth}

	switch {
	case opts.MoveTime > 0:
		limits.MoveTime = opts.MoveTime
	case !opts.Clock.IsZero():
		limits.MoveTime = opts.Clock.Budget(u.game.SideToMove(), u.game.Len())
		u.infof("time_allocated=%dms", limits.MoveTime.Milliseconds())
	case opts.Depth == 0:
		limits = u.defaults
	}
	return limits
}

// handleGo asks the engine for a move and reports it once it has been
// checked against the legal moves.
func (u *UCI) handleGo(args []string) {
	opts := ParseGoOptions(args)
	if opts.Infinite {
		u.infof("infinite search not supported, using default limits")
	}
	limits := u.calculateLimits(opts)

	legal := u.game.LegalMoves()
	if len(legal) == 0 {
		u.println("bestmove 0000")
		return
	}

	if u.analyzer == nil {
		u.infof("No engine configured, using fallback")
	} else {
		// A GUI may keep playing past a claimable draw, so only the
		// legal-move check applies here.
		m, err := engine.Suggest(u.game.Position(), u.analyzer, limits)
		if err == nil {
			u.println("bestmove " + m.String())
			return
		}
		u.infof("Engine move rejected: %v", err)
	}

	// Fallback: first legal move
	u.println("bestmove " + legal[0].String())
}

// handleSetOption processes "setoption" commands.
func (u *UCI) handleSetOption(args []string) {
	// Format: setoption name <name> value <value>
	var name, value string
	readingName := false
	readingValue := false

	for _, arg := range args {
		switch arg {
		case "name":
			readingName = true
			readingValue = false
		case "value":
			readingName = false
			readingValue = true
		default:
			if readingName {
				if name != "" {
					name += " "
				}
				name += arg
			} else if readingValue {
				if value != "" {
					value += " "
				}
				value += arg
			}
		}
	}

	switch strings.ToLower(name) {
	case "enginepath":
		a, err := u.open(value)
		if err != nil {
			u.infof("Failed to start engine: %v", err)
			return
		}
		if u.analyzer != nil {
			u.analyzer.Close()
		}
		u.analyzer = a
		u.infof("Engine started: %s", value)
	case "movetime":
		ms, err := strconv.Atoi(value)
		if err != nil || ms < 0 {
			u.infof("Invalid MoveTime: %s", value)
			return
		}
		u.defaults.MoveTime = time.Duration(ms) * time.Millisecond
	case "depth":
		depth, err := strconv.Atoi(value)
		if err != nil || depth < 0 {
			u.infof("Invalid Depth: %s", value)
			return
		}
		u.defaults.Depth = depth
	case "cpuprofile":
		// Stop existing profile if any
		if u.profileFile != nil {
			pprof.StopCPUProfile()
			u.profileFile.Close()
			u.infof("CPU profile stopped")
			u.profileFile = nil
		}
		if value != "" && value != "stop" {
			f, err := os.Create(value)
			if err != nil {
				u.infof("Failed to create profile: %v", err)
				return
			}
			if err := pprof.StartCPUProfile(f); err != nil {
				f.Close()
				u.infof("Failed to start profile: %v", err)
				return
			}
			u.profileFile = f
			u.infof("CPU profiling to %s", value)
		}
	default:
		u.infof("Unknown option: %s", name)
	}
}

// handleDisplay prints the board, FEN and game status.
func (u *UCI) handleDisplay() {
	fmt.Fprint(u.out, u.game.String())
	u.println("Status:", u.game.Status())
}

// handlePerft prints the divide breakdown and the total node count.
func (u *UCI) handlePerft(args []string) {
	depth := 1
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 1 {
			u.infof("Invalid perft depth: %s", args[0])
			return
		}
		depth = d
	}

	pos := u.game.Position()
	start := time.Now()
	var nodes uint64
	for _, e := range board.Divide(&pos, depth) {
		fmt.Fprintf(u.out, "%s: %d\n", e.Move, e.Nodes)
		nodes += e.Nodes
	}
	elapsed := time.Since(start)

	fmt.Fprintf(u.out, "\nNodes searched: %d\n", nodes)
	u.infof("time %dms", elapsed.Milliseconds())
}
