package engine

import (
	"time"

	"github.com/hailam/chessrules/internal/board"
)

// Clock holds UCI time-control parameters as sent with "go".
type Clock struct {
	Time      [2]time.Duration // wtime, btime
	Inc       [2]time.Duration // winc, binc
	MovesToGo int              // 0 = sudden death
}

// IsZero reports whether no clock information was given.
func (c Clock) IsZero() bool {
	return c.Time[board.White] == 0 && c.Time[board.Black] == 0
}

// Budget converts the remaining time for us into a fixed move time.
// ply is the number of half-moves played so far.
func (c Clock) Budget(us board.Color, ply int) time.Duration {
	timeLeft := c.Time[us]
	if timeLeft <= 0 {
		return 0
	}
	inc := c.Inc[us]

	mtg := c.MovesToGo
	if mtg == 0 {
		// Sudden death: fewer moves expected as the game goes on.
		mtg = 50 - ply/4
		if mtg < 10 {
			mtg = 10
		}
		if mtg > 50 {
			mtg = 50
		}
	}

	budget := timeLeft/time.Duration(mtg) + inc*9/10
	if ply < 8 {
		budget = budget * 85 / 100
	}

	// Never spend more than 80% of what is left.
	if limit := timeLeft * 8 / 10; budget > limit {
		budget = limit
	}
	if budget < 10*time.Millisecond {
		budget = 10 * time.Millisecond
	}
	return budget
}
