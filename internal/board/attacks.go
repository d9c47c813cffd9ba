package board

// Precomputed attack sets for the leaping pieces, plus ray helpers used by
// pin detection.
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard // [Color][Square]
	pawnPushes    [2][64]Bitboard // [Color][Square], single step

	betweenBB [64][64]Bitboard // squares strictly between two aligned squares
	lineBB    [64][64]Bitboard // whole rank/file/diagonal through two aligned squares
)

func init() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		knightAttacks[sq] = (bb<<17)&NotFileA | (bb<<15)&NotFileH |
			(bb>>17)&NotFileH | (bb>>15)&NotFileA |
			(bb<<10)&NotFileAB | (bb<<6)&NotFileGH |
			(bb>>10)&NotFileGH | (bb>>6)&NotFileAB

		kingAttacks[sq] = bb.North() | bb.South() | bb.East() | bb.West() |
			bb.NorthEast() | bb.NorthWest() | bb.SouthEast() | bb.SouthWest()

		pawnAttacks[White][sq] = bb.NorthEast() | bb.NorthWest()
		pawnAttacks[Black][sq] = bb.SouthEast() | bb.SouthWest()
		pawnPushes[White][sq] = bb.North()
		pawnPushes[Black][sq] = bb.South()
	}

	initMagics()

	for a := A1; a <= H8; a++ {
		for _, slider := range [2]func(Square, Bitboard) Bitboard{slowBishopAttacks, slowRookAttacks} {
			rays := slider(a, 0)
			for b := A1; b <= H8; b++ {
				if !rays.Has(b) {
					continue
				}
				betweenBB[a][b] = slider(a, SquareBB(b)) & slider(b, SquareBB(a))
				lineBB[a][b] = (rays&slider(b, 0) | SquareBB(a) | SquareBB(b))
			}
		}
	}
}

// KnightAttacks returns the squares a knight on sq attacks.
func KnightAttacks(sq Square) Bitboard { return knightAttacks[sq] }

// KingAttacks returns the squares a king on sq attacks.
func KingAttacks(sq Square) Bitboard { return kingAttacks[sq] }

// PawnAttacks returns the diagonal capture targets of a c pawn on sq.
func PawnAttacks(sq Square, c Color) Bitboard { return pawnAttacks[c][sq] }

// PawnPushes returns the single-step push target of a c pawn on sq.
func PawnPushes(sq Square, c Color) Bitboard { return pawnPushes[c][sq] }

// BishopAttacks returns diagonal attacks from sq given the blockers in occ.
func BishopAttacks(sq Square, occ Bitboard) Bitboard { return bishopMagics[sq].attacks(occ) }

// RookAttacks returns orthogonal attacks from sq given the blockers in occ.
func RookAttacks(sq Square, occ Bitboard) Bitboard { return rookMagics[sq].attacks(occ) }

// QueenAttacks is the union of bishop and rook attacks.
func QueenAttacks(sq Square, occ Bitboard) Bitboard {
	return BishopAttacks(sq, occ) | RookAttacks(sq, occ)
}

// Between returns the squares strictly between a and b, or Empty when they
// do not share a rank, file or diagonal.
func Between(a, b Square) Bitboard { return betweenBB[a][b] }

// Line returns the full line through a and b, or Empty when not aligned.
func Line(a, b Square) Bitboard { return lineBB[a][b] }

// Aligned reports whether c lies on the line through a and b.
func Aligned(a, b, c Square) bool { return lineBB[a][b].Has(c) }

// AttackersByColor returns the c pieces attacking sq when the board
// occupancy is occ.
func (p *Position) AttackersByColor(sq Square, c Color, occ Bitboard) Bitboard {
	own := &p.Pieces[c]
	return pawnAttacks[c.Other()][sq]&own[Pawn] |
		knightAttacks[sq]&own[Knight] |
		kingAttacks[sq]&own[King] |
		BishopAttacks(sq, occ)&(own[Bishop]|own[Queen]) |
		RookAttacks(sq, occ)&(own[Rook]|own[Queen])
}

// IsSquareAttacked reports whether any c piece attacks sq.
func (p *Position) IsSquareAttacked(sq Square, c Color) bool {
	return p.AttackersByColor(sq, c, p.All) != 0
}

// updateCheckers recomputes the pieces checking the side to move.
func (p *Position) updateCheckers() {
	us := p.SideToMove
	if p.Pieces[us][King] == 0 {
		p.Checkers = 0
		return
	}
	p.Checkers = p.AttackersByColor(p.KingSquare[us], us.Other(), p.All)
}

// Pinned returns the side-to-move pieces that shield their king from an
// enemy slider.
func (p *Position) Pinned() Bitboard {
	us := p.SideToMove
	them := us.Other()
	ksq := p.KingSquare[us]
	if ksq == NoSquare {
		return 0
	}

	snipers := RookAttacks(ksq, 0)&(p.Pieces[them][Rook]|p.Pieces[them][Queen]) |
		BishopAttacks(ksq, 0)&(p.Pieces[them][Bishop]|p.Pieces[them][Queen])

	var pinned Bitboard
	for snipers != 0 {
		blockers := Between(snipers.PopLSB(), ksq) & p.All
		if blockers != 0 && !blockers.Several() && blockers&p.Occupied[us] != 0 {
			pinned |= blockers
		}
	}
	return pinned
}
