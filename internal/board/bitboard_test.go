package board

import "testing"

func TestBitboardBasics(t *testing.T) {
	var b Bitboard
	b = b.With(E4).With(A1).With(H8)
	if b.Count() != 3 {
		t.Fatalf("Count = %d, want 3", b.Count())
	}
	if !b.Has(E4) || b.Has(E5) {
		t.Error("Has mismatch")
	}
	if b.LSB() != A1 {
		t.Errorf("LSB = %v, want a1", b.LSB())
	}

	var order []Square
	for b != 0 {
		order = append(order, b.PopLSB())
	}
	if len(order) != 3 || order[0] != A1 || order[1] != E4 || order[2] != H8 {
		t.Errorf("PopLSB order = %v", order)
	}
	if Empty.LSB() != NoSquare {
		t.Error("LSB of empty set should be NoSquare")
	}
}

func TestShiftsDoNotWrap(t *testing.T) {
	if FileH.East() != 0 || FileA.West() != 0 {
		t.Error("east/west shift wrapped around the board edge")
	}
	if SquareBB(H4).NorthEast() != 0 || SquareBB(A4).SouthWest() != 0 {
		t.Error("diagonal shift wrapped around the board edge")
	}
	if Rank8.North() != 0 || Rank1.South() != 0 {
		t.Error("vertical shift left the board")
	}
}

func TestLeaperAttacks(t *testing.T) {
	if n := KnightAttacks(A1).Count(); n != 2 {
		t.Errorf("knight on a1 attacks %d squares, want 2", n)
	}
	if n := KnightAttacks(D4).Count(); n != 8 {
		t.Errorf("knight on d4 attacks %d squares, want 8", n)
	}
	if n := KingAttacks(H8).Count(); n != 3 {
		t.Errorf("king on h8 attacks %d squares, want 3", n)
	}
	if PawnAttacks(E4, White) != SquareBB(D5)|SquareBB(F5) {
		t.Errorf("white pawn e4 attacks %v", PawnAttacks(E4, White).Squares())
	}
	if PawnAttacks(A5, Black) != SquareBB(B4) {
		t.Errorf("black pawn a5 attacks %v", PawnAttacks(A5, Black).Squares())
	}
}

// TestMagicsMatchRayCasting compares the table lookups against the
// reference ray caster over pseudo-random occupancies.
func TestMagicsMatchRayCasting(t *testing.T) {
	rng := prng(0x1234567)
	for sq := A1; sq <= H8; sq++ {
		for i := 0; i < 200; i++ {
			occ := Bitboard(rng.sparse() | rng.sparse())
			if got, want := BishopAttacks(sq, occ), slowBishopAttacks(sq, occ); got != want {
				t.Fatalf("bishop %v occ %#x: got %#x want %#x", sq, uint64(occ), uint64(got), uint64(want))
			}
			if got, want := RookAttacks(sq, occ), slowRookAttacks(sq, occ); got != want {
				t.Fatalf("rook %v occ %#x: got %#x want %#x", sq, uint64(occ), uint64(got), uint64(want))
			}
		}
	}
	if n := RookAttacks(A1, 0).Count(); n != 14 {
		t.Errorf("rook on empty board attacks %d squares, want 14", n)
	}
	if n := BishopAttacks(D4, 0).Count(); n != 13 {
		t.Errorf("bishop on d4 attacks %d squares, want 13", n)
	}
}

func TestBetweenAndLine(t *testing.T) {
	if Between(A1, H8) != SquareBB(B2)|SquareBB(C3)|SquareBB(D4)|SquareBB(E5)|SquareBB(F6)|SquareBB(G7) {
		t.Errorf("Between(a1, h8) = %v", Between(A1, H8).Squares())
	}
	if Between(A1, B3) != 0 {
		t.Error("knight-distance squares are not aligned")
	}
	if Line(C3, E5).Count() != 8 {
		t.Errorf("Line(c3, e5) has %d squares, want 8", Line(C3, E5).Count())
	}
	if !Aligned(E1, E4, E8) || Aligned(E1, E4, D8) {
		t.Error("Aligned mismatch on the e-file")
	}
}
