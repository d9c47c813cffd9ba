package board

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/notnil/chess"
)

// oracleMoves lists the legal moves of fen as computed by notnil/chess.
func oracleMoves(t *testing.T, fen string) []string {
	t.Helper()
	opt, err := chess.FEN(fen)
	if err != nil {
		t.Fatalf("oracle rejected %q: %v", fen, err)
	}
	g := chess.NewGame(opt)
	var out []string
	for _, m := range g.ValidMoves() {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

func ourMoves(pos *Position) []string {
	var out []string
	for _, m := range pos.LegalMoves() {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

// TestAgainstOracle plays seeded random games and compares the legal move
// set with an independent generator after every ply.
func TestAgainstOracle(t *testing.T) {
	if testing.Short() {
		t.Skip("oracle walk skipped in short mode")
	}

	starts := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	}
	rng := rand.New(rand.NewSource(7))

	for _, start := range starts {
		for game := 0; game < 8; game++ {
			pos := mustFEN(t, start)
			for ply := 0; ply < 80; ply++ {
				fen := pos.ToFEN()
				if diff := cmp.Diff(oracleMoves(t, fen), ourMoves(&pos)); diff != "" {
					t.Fatalf("legal moves differ in %s (-oracle +ours):\n%s", fen, diff)
				}

				moves := pos.GenerateLegalMoves()
				if moves.Len() == 0 {
					break
				}
				pos.MakeMove(moves.Get(rng.Intn(moves.Len())))
				if pos.Hash != pos.computeHash() {
					t.Fatalf("hash drifted after reaching %s", pos.ToFEN())
				}
				reparsed, err := ParseFEN(pos.ToFEN())
				if err != nil {
					t.Fatalf("ParseFEN(%q): %v", pos.ToFEN(), err)
				}
				if diff := cmp.Diff(pos, reparsed); diff != "" {
					t.Fatalf("FEN round trip of %s changed the position (-played +parsed):\n%s", pos.ToFEN(), diff)
				}
			}
		}
	}
}
