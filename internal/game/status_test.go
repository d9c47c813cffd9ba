package game

import (
	"testing"

	"github.com/hailam/chessrules/internal/board"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		moves  []string
		want   Status
		result string
	}{
		{
			name:   "ongoing",
			fen:    board.StartFEN,
			want:   Ongoing,
			result: "*",
		},
		{
			name:   "fool's mate",
			fen:    board.StartFEN,
			moves:  []string{"f2f3", "e7e5", "g2g4", "d8h4"},
			want:   Checkmate,
			result: "0-1",
		},
		{
			name:   "back rank mate",
			fen:    "6k1/5ppp/8/8/8/8/8/KR6 w - - 0 1",
			moves:  []string{"b1b8"},
			want:   Checkmate,
			result: "1-0",
		},
		{
			name:   "stalemate",
			fen:    "7k/8/8/6K1/8/8/8/5Q2 w - - 0 1",
			moves:  []string{"f1f7"},
			want:   Stalemate,
			result: "1/2-1/2",
		},
		{
			name:   "bare kings after capture",
			fen:    "8/8/8/4k3/8/8/3q4/4K3 w - - 0 1",
			moves:  []string{"e1d2"},
			want:   InsufficientMaterial,
			result: "1/2-1/2",
		},
		{
			name:   "fifty moves",
			fen:    "4k3/8/8/8/8/8/8/R3K3 w - - 99 80",
			moves:  []string{"a1a2"},
			want:   FiftyMoveRule,
			result: "1/2-1/2",
		},
		{
			name:   "pawn move resets the clock",
			fen:    "4k3/8/8/8/8/8/P7/R3K3 w - - 99 80",
			moves:  []string{"a2a3"},
			want:   Ongoing,
			result: "*",
		},
		{
			name:   "checkmate beats fifty moves",
			fen:    "6k1/5ppp/8/8/8/8/8/KR6 w - - 99 80",
			moves:  []string{"b1b8"},
			want:   Checkmate,
			result: "1-0",
		},
		{
			name:   "threefold",
			fen:    board.StartFEN,
			moves:  []string{"g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1", "f6g8"},
			want:   ThreefoldRepetition,
			result: "1/2-1/2",
		},
		{
			name:   "twofold is not enough",
			fen:    board.StartFEN,
			moves:  []string{"g1f3", "g8f6", "f3g1", "f6g8"},
			want:   Ongoing,
			result: "*",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := FromFEN(tc.fen)
			if err != nil {
				t.Fatal(err)
			}
			playAll(t, g, tc.moves...)
			if got := g.Status(); got != tc.want {
				t.Errorf("Status = %v, want %v", got, tc.want)
			}
			if got := g.Result(); got != tc.result {
				t.Errorf("Result = %q, want %q", got, tc.result)
			}
			if g.Status().IsOver() != (tc.want != Ongoing) {
				t.Error("IsOver disagrees with status")
			}
		})
	}
}

func TestWinner(t *testing.T) {
	g := New()
	playAll(t, g, "f2f3", "e7e5", "g2g4", "d8h4")
	c, ok := g.Winner()
	if !ok || c != board.Black {
		t.Errorf("Winner = %v, %v; want black, true", c, ok)
	}
	if _, ok := New().Winner(); ok {
		t.Error("ongoing game has no winner")
	}
}

func TestRepetitionCountAfterUndo(t *testing.T) {
	g := New()
	playAll(t, g, "g1f3", "g8f6", "f3g1", "f6g8")
	if n := g.RepetitionCount(); n != 2 {
		t.Fatalf("RepetitionCount = %d, want 2", n)
	}
	g.UndoPair()
	if n := g.RepetitionCount(); n != 1 {
		t.Errorf("after undo RepetitionCount = %d, want 1", n)
	}
}

func TestRepetitionIgnoresUncapturableEnPassant(t *testing.T) {
	// After 1.e4 the e3 target cannot be used, so the position after a
	// knight round trip by both sides counts as the same.
	g := New()
	playAll(t, g, "e2e4", "g8f6", "g1f3", "f6g8", "f3g1")
	if n := g.RepetitionCount(); n != 2 {
		t.Errorf("RepetitionCount = %d, want 2", n)
	}
}
