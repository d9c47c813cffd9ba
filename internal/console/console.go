// Package console is a line-oriented terminal front-end: a human plays
// one side by typing moves, an optional engine plays the other.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	petname "github.com/dustinkirkland/golang-petname"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/engine"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/storage"
)

const helpText = `Commands:
  <move>          play a move in coordinate notation (e2e4, e7e8q)
  moves <square>  highlight the legal destinations of a piece
  undo            take back your last move and the engine's reply
  hint            ask the engine for a suggestion
  new             start a new game
  fen [<fen>]     print the position, or set up a new one
  board           redraw the board
  theme <name>    switch theme (classic, dark)
  help            show this text
  quit            leave
`

// Config configures a Console. Analyzer and Store may be nil: without an
// engine the human plays both sides, without a store nothing is recorded.
type Config struct {
	Analyzer   engine.Analyzer
	Difficulty engine.Difficulty
	Limits     engine.Limits // zero means the difficulty's settings
	Store      *storage.Storage
	Human      board.Color
	Theme      string
	Plain      bool // no ANSI colors
}

// Console runs one interactive session.
type Console struct {
	cfg    Config
	limits engine.Limits
	in     *bufio.Scanner
	out    io.Writer

	game     *game.Game
	name     string
	started  time.Time
	recorded bool
	view     view
}

// New creates a console reading commands from in and writing to out.
func New(cfg Config, in io.Reader, out io.Writer) *Console {
	theme, err := LookupTheme(cfg.Theme)
	if err != nil && cfg.Theme != "" {
		log.Printf("console: %v", err)
	}
	limits := cfg.Limits
	if limits == (engine.Limits{}) {
		limits = engine.DifficultySettings[cfg.Difficulty]
	}
	if cfg.Human != board.Black {
		cfg.Human = board.White
	}
	return &Console{
		cfg:    cfg,
		limits: limits,
		in:     bufio.NewScanner(in),
		out:    out,
		view: view{
			theme: theme,
			plain: cfg.Plain,
			flip:  cfg.Human == board.Black,
		},
	}
}

// Game returns the game in progress.
func (c *Console) Game() *game.Game { return c.game }

// Name returns the current game's name.
func (c *Console) Name() string { return c.name }

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// Run starts a game and processes commands until quit or end of input.
func (c *Console) Run() error {
	c.start(game.New())

	for {
		c.printf("> ")
		if !c.in.Scan() {
			c.printf("\n")
			return c.in.Err()
		}
		line := strings.TrimSpace(c.in.Text())
		if line == "" {
			continue
		}
		if !c.handle(line) {
			return nil
		}
	}
}

// handle executes one command line and reports whether to keep going.
func (c *Console) handle(line string) bool {
	fields := strings.Fields(line)
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit":
		return false
	case "help", "?":
		c.printf("%s", helpText)
	case "board":
		c.draw()
	case "moves":
		c.showMoves(args)
	case "undo":
		c.undo()
	case "hint":
		c.hint()
	case "new":
		c.start(game.New())
	case "fen":
		c.fen(args)
	case "theme":
		c.setTheme(args)
	default:
		c.humanMove(fields[0])
	}
	return true
}

// start installs g, names it and lets the engine open if it has the move.
func (c *Console) start(g *game.Game) {
	c.game = g
	c.name = petname.Generate(2, "-")
	c.started = time.Now()
	c.recorded = false
	c.view.highlight = 0

	if ng, ok := c.cfg.Analyzer.(interface{ NewGame() error }); ok {
		if err := ng.NewGame(); err != nil {
			c.printf("Engine error: %v\n", err)
		}
	}

	c.printf("New game: %s. You play %s.\n", c.name, c.cfg.Human)
	c.draw()
	if c.finished() {
		return
	}
	c.engineReply()
}

func (c *Console) draw() {
	c.view.render(c.out, c.game, c.name)
}

func (c *Console) showMoves(args []string) {
	if len(args) != 1 {
		c.printf("Usage: moves <square>\n")
		return
	}
	sq, err := board.ParseSquare(args[0])
	if err != nil {
		c.printf("Invalid square: %s\n", args[0])
		return
	}
	moves := c.game.MovesFrom(sq)
	if len(moves) == 0 {
		c.printf("No legal moves from %s.\n", sq)
		return
	}

	pos := c.game.Position()
	var targets board.Bitboard
	names := make([]string, 0, len(moves))
	for _, m := range moves {
		targets = targets.With(m.To())
		names = append(names, m.SAN(&pos))
	}
	c.view.highlight = targets
	c.draw()
	c.view.highlight = 0
	c.printf("Moves from %s: %s\n", sq, strings.Join(names, " "))
}

func (c *Console) undo() {
	n := c.game.UndoPair()
	if n == 0 {
		c.printf("Nothing to undo.\n")
		return
	}
	c.view.highlight = 0
	c.draw()
	c.printf("Took back %d ply.\n", n)
}

func (c *Console) hint() {
	if c.cfg.Analyzer == nil {
		c.printf("No engine configured.\n")
		return
	}
	m, err := engine.Hint(c.game, c.cfg.Analyzer, c.limits)
	if err != nil {
		c.printf("No hint: %v\n", err)
		return
	}
	pos := c.game.Position()
	c.view.highlight = board.SquareBB(m.From()).With(m.To())
	c.draw()
	c.view.highlight = 0
	c.printf("Hint: %s\n", m.SAN(&pos))
}

func (c *Console) fen(args []string) {
	if len(args) == 0 {
		c.printf("%s\n", c.game.FEN())
		return
	}
	g, err := game.FromFEN(strings.Join(args, " "))
	if err != nil {
		c.printf("Invalid FEN: %v\n", err)
		return
	}
	c.start(g)
}

func (c *Console) setTheme(args []string) {
	if len(args) != 1 {
		c.printf("Usage: theme classic|dark\n")
		return
	}
	t, err := LookupTheme(args[0])
	if err != nil {
		c.printf("%v\n", err)
		return
	}
	c.view.theme = t
	c.printf("Theme: %s\n", t.Name)
	c.draw()

	if c.cfg.Store == nil {
		return
	}
	prefs, err := c.cfg.Store.LoadPreferences()
	if err == nil {
		prefs.Theme = strings.ToLower(args[0])
		err = c.cfg.Store.SavePreferences(prefs)
	}
	if err != nil {
		log.Printf("console: saving theme: %v", err)
	}
}

func (c *Console) humanMove(text string) {
	if c.game.Status().IsOver() {
		c.printf("Game is over. Type new to start again.\n")
		return
	}
	if c.cfg.Analyzer != nil && c.game.SideToMove() != c.cfg.Human {
		c.printf("It is the engine's turn.\n")
		c.engineReply()
		return
	}

	if _, err := c.game.ApplyText(text); err != nil {
		switch {
		case errors.Is(err, board.ErrParse):
			c.printf("Unknown command or move: %s (type help)\n", text)
		default:
			c.printf("Illegal move: %v\n", err)
		}
		return
	}
	c.draw()
	if c.finished() {
		return
	}
	c.engineReply()
}

// engineReply lets the engine move when it is its turn.
func (c *Console) engineReply() {
	if c.cfg.Analyzer == nil || c.game.SideToMove() == c.cfg.Human {
		return
	}
	if _, err := engine.Play(c.game, c.cfg.Analyzer, c.limits); err != nil {
		c.printf("Engine error: %v\n", err)
		return
	}
	sans := c.game.SANHistory()
	c.printf("Engine plays %s\n", sans[len(sans)-1])
	c.draw()
	c.finished()
}

// finished announces the end of the game and records it once.
func (c *Console) finished() bool {
	st := c.game.Status()
	if !st.IsOver() {
		return false
	}

	won := false
	switch st {
	case game.Checkmate:
		winner, _ := c.game.Winner()
		won = winner == c.cfg.Human
		switch {
		case c.cfg.Analyzer == nil:
			c.printf("Checkmate. %s wins!\n", winner)
		case won:
			c.printf("Checkmate. You win!\n")
		default:
			c.printf("Checkmate. Engine wins!\n")
		}
	case game.Stalemate:
		c.printf("Stalemate.\n")
	case game.InsufficientMaterial:
		c.printf("Draw by insufficient material.\n")
	default:
		c.printf("Game over. Result: %s\n", c.game.Result())
	}

	if c.cfg.Store != nil && !c.recorded {
		c.recorded = true
		err := c.cfg.Store.RecordGame(storage.GameResult{
			Name:        c.name,
			Won:         won,
			Draw:        st.IsDraw(),
			Termination: st.String(),
			Difficulty:  storage.Difficulty(c.cfg.Difficulty),
			Duration:    time.Since(c.started),
		})
		if err != nil {
			log.Printf("console: recording game: %v", err)
		}
	}
	return true
}
