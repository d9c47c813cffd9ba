// Package engine talks to an external UCI search engine. The engine's
// answers are never trusted: every move it returns is decoded and checked
// against the legal moves of the current position before use.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
)

var (
	// ErrClosed is returned by an Analyzer after Close.
	ErrClosed = errors.New("engine: closed")
	// ErrGameOver is returned when asked to move in a finished game.
	ErrGameOver = errors.New("engine: game is over")
	// ErrNoMove is returned when the engine answers without a move.
	ErrNoMove = errors.New("engine: no move returned")
)

// Limits bounds one search request. Zero fields are unbounded; a request
// with both zero is sent as depth 1.
type Limits struct {
	Depth    int
	MoveTime time.Duration
}

// Difficulty represents the engine strength offered to a human player.
type Difficulty int

const (
	Easy   Difficulty = iota // 3 ply, 500ms
	Medium                   // 5 ply, 2s
	Hard                     // 7 ply, 5s
)

// DifficultySettings maps difficulty to search limits.
var DifficultySettings = map[Difficulty]Limits{
	Easy:   {Depth: 3, MoveTime: 500 * time.Millisecond},
	Medium: {Depth: 5, MoveTime: 2 * time.Second},
	Hard:   {Depth: 7, MoveTime: 5 * time.Second},
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return "unknown"
}

// ParseDifficulty decodes "easy", "medium" or "hard".
func ParseDifficulty(s string) (Difficulty, error) {
	for d := Easy; d <= Hard; d++ {
		if d.String() == s {
			return d, nil
		}
	}
	return Medium, fmt.Errorf("engine: unknown difficulty %q", s)
}

// Analyzer answers "best move for this FEN" requests. Calls block until
// the answer arrives; implementations serve one request at a time.
type Analyzer interface {
	BestMove(fen string, limits Limits) (string, error)
	Close() error
}

// Hint asks a for a move in g's current position and returns it only if
// it is legal there. g is not modified.
func Hint(g *game.Game, a Analyzer, limits Limits) (board.Move, error) {
	if g.Status().IsOver() {
		return board.NoMove, ErrGameOver
	}
	return Suggest(g.Position(), a, limits)
}

// Suggest asks a for a move in pos and returns it only if it is legal
// there. Unlike Hint it does not look at the game status, so a position
// that is drawn by rule but still has moves gets the engine's answer.
func Suggest(pos board.Position, a Analyzer, limits Limits) (board.Move, error) {
	fen := pos.ToFEN()
	text, err := a.BestMove(fen, limits)
	if err != nil {
		return board.NoMove, fmt.Errorf("engine: best move for %s: %w", fen, err)
	}
	m, err := board.ParseMove(text)
	if err != nil {
		return board.NoMove, err
	}
	return pos.Resolve(m)
}

// Play asks a for a move and applies it to g. A malformed or illegal
// answer is returned as an error and g is left untouched.
func Play(g *game.Game, a Analyzer, limits Limits) (board.Move, error) {
	m, err := Hint(g, a, limits)
	if err != nil {
		return board.NoMove, err
	}
	return g.Apply(m)
}
