// Package game tracks a chess game on top of the board package: the move
// history with exact undo, repetition keys and the terminal status.
package game

import (
	"github.com/hailam/chessrules/internal/board"
)

type ply struct {
	move board.Move
	undo board.Undo
	san  string
}

// Game is a position plus the history needed to undo moves and detect
// repetitions. The zero value is not usable; call New or FromFEN.
type Game struct {
	pos     board.Position
	history []ply
	keys    []uint64 // repetition key of every position from the root, current last
}

// New starts a game from the standard initial position.
func New() *Game {
	return newGame(board.NewPosition())
}

// FromFEN starts a game from a FEN record.
func FromFEN(fen string) (*Game, error) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return newGame(pos), nil
}

func newGame(pos board.Position) *Game {
	return &Game{
		pos:  pos,
		keys: []uint64{pos.RepetitionKey()},
	}
}

// Clone returns an independent copy that can be explored without
// affecting g.
func (g *Game) Clone() *Game {
	c := &Game{
		pos:     g.pos,
		history: make([]ply, len(g.history)),
		keys:    make([]uint64, len(g.keys)),
	}
	copy(c.history, g.history)
	copy(c.keys, g.keys)
	return c
}

// Position returns a copy of the current position.
func (g *Game) Position() board.Position { return g.pos }

// FEN encodes the current position.
func (g *Game) FEN() string { return g.pos.ToFEN() }

// SideToMove returns the color whose turn it is.
func (g *Game) SideToMove() board.Color { return g.pos.SideToMove }

// Len returns the number of plies played.
func (g *Game) Len() int { return len(g.history) }

// Moves returns the moves played so far, oldest first.
func (g *Game) Moves() []board.Move {
	out := make([]board.Move, len(g.history))
	for i, p := range g.history {
		out[i] = p.move
	}
	return out
}

// SANHistory returns the moves played so far in algebraic notation.
func (g *Game) SANHistory() []string {
	out := make([]string, len(g.history))
	for i, p := range g.history {
		out[i] = p.san
	}
	return out
}

// LastMove returns the most recent move, or board.NoMove.
func (g *Game) LastMove() board.Move {
	if len(g.history) == 0 {
		return board.NoMove
	}
	return g.history[len(g.history)-1].move
}

// LegalMoves returns the legal moves in the current position.
func (g *Game) LegalMoves() []board.Move { return g.pos.LegalMoves() }

// MovesFrom returns the legal moves of the piece on sq.
func (g *Game) MovesFrom(sq board.Square) []board.Move { return g.pos.MovesFrom(sq) }

// InCheck reports whether the side to move is in check.
func (g *Game) InCheck() bool { return g.pos.InCheck() }

// Apply plays m if it matches a legal move by from, to and promotion.
// Otherwise it returns an *board.IllegalMoveError and g is unchanged.
// The returned move carries the generator's flags.
func (g *Game) Apply(m board.Move) (board.Move, error) {
	legal, err := g.pos.Resolve(m)
	if err != nil {
		return board.NoMove, err
	}
	san := legal.SAN(&g.pos)
	u := g.pos.MakeMove(legal)
	g.history = append(g.history, ply{move: legal, undo: u, san: san})
	g.keys = append(g.keys, g.pos.RepetitionKey())
	return legal, nil
}

// ApplyText decodes UCI move text and applies it. Malformed text gives a
// *board.ParseError, a well-formed but illegal move an
// *board.IllegalMoveError; g is unchanged in both cases.
func (g *Game) ApplyText(s string) (board.Move, error) {
	m, err := board.ParseMove(s)
	if err != nil {
		return board.NoMove, err
	}
	return g.Apply(m)
}

// Undo takes back the last ply and returns it. With no history it
// returns board.ErrNoHistory.
func (g *Game) Undo() (board.Move, error) {
	n := len(g.history)
	if n == 0 {
		return board.NoMove, board.ErrNoHistory
	}
	last := g.history[n-1]
	g.pos.UnmakeMove(last.move, last.undo)
	g.history = g.history[:n-1]
	g.keys = g.keys[:len(g.keys)-1]
	return last.move, nil
}

// UndoPair takes back up to two plies, the usual take-back against an
// engine, and reports how many were undone.
func (g *Game) UndoPair() int {
	n := 0
	for n < 2 {
		if _, err := g.Undo(); err != nil {
			break
		}
		n++
	}
	return n
}

// RepetitionCount returns how often the current position has occurred
// since the last capture or pawn move, the current occurrence included.
func (g *Game) RepetitionCount() int {
	window := g.pos.HalfMoveClock + 1
	if window > len(g.keys) {
		window = len(g.keys)
	}
	current := g.keys[len(g.keys)-1]
	count := 0
	for _, k := range g.keys[len(g.keys)-window:] {
		if k == current {
			count++
		}
	}
	return count
}

// String draws the current position.
func (g *Game) String() string { return g.pos.String() }
