package game

import "github.com/hailam/chessrules/internal/board"

// Status classifies the current position.
type Status int

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
	InsufficientMaterial
	FiftyMoveRule
	ThreefoldRepetition
)

var statusNames = [...]string{
	Ongoing:              "ongoing",
	Checkmate:            "checkmate",
	Stalemate:            "stalemate",
	InsufficientMaterial: "insufficient material",
	FiftyMoveRule:        "fifty-move rule",
	ThreefoldRepetition:  "threefold repetition",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// IsOver reports whether the status ends the game.
func (s Status) IsOver() bool { return s != Ongoing }

// IsDraw reports whether the status ends the game without a winner.
func (s Status) IsDraw() bool { return s.IsOver() && s != Checkmate }

// Status evaluates the position. When several conditions hold the first
// in this order wins: checkmate, stalemate, insufficient material,
// fifty-move rule, threefold repetition.
func (g *Game) Status() Status {
	if !g.pos.HasLegalMoves() {
		if g.pos.InCheck() {
			return Checkmate
		}
		return Stalemate
	}
	if g.pos.InsufficientMaterial() {
		return InsufficientMaterial
	}
	if g.pos.HalfMoveClock >= 100 {
		return FiftyMoveRule
	}
	if g.RepetitionCount() >= 3 {
		return ThreefoldRepetition
	}
	return Ongoing
}

// Winner returns the winning color after checkmate.
func (g *Game) Winner() (board.Color, bool) {
	if g.Status() != Checkmate {
		return board.NoColor, false
	}
	return g.pos.SideToMove.Other(), true
}

// Result returns the PGN result token: "1-0", "0-1", "1/2-1/2" or "*".
func (g *Game) Result() string {
	switch s := g.Status(); {
	case s == Checkmate && g.pos.SideToMove == board.Black:
		return "1-0"
	case s == Checkmate:
		return "0-1"
	case s.IsDraw():
		return "1/2-1/2"
	}
	return "*"
}
