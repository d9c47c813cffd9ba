package board

// Zobrist keys. Generated once from a fixed seed so hashes are stable
// across runs.
var (
	zobristPiece     [2][6][64]uint64
	zobristEnPassant [8]uint64
	zobristCastling  [16]uint64
	zobristBlack     uint64
)

func init() {
	rng := prng(0x98F107A2BEEF1234)

	for c := White; c <= Black; c++ {
		for k := Pawn; k <= King; k++ {
			for sq := A1; sq <= H8; sq++ {
				zobristPiece[c][k][sq] = rng.next()
			}
		}
	}
	for file := range zobristEnPassant {
		zobristEnPassant[file] = rng.next()
	}
	for cr := range zobristCastling {
		zobristCastling[cr] = rng.next()
	}
	zobristBlack = rng.next()
}

// prng is xorshift64*. It also seeds the magic number search.
type prng uint64

func (p *prng) next() uint64 {
	s := uint64(*p)
	s ^= s >> 12
	s ^= s << 25
	s ^= s >> 27
	*p = prng(s)
	return s * 0x2545F4914F6CDD1D
}

// sparse returns a number with roughly one bit in eight set.
func (p *prng) sparse() uint64 {
	return p.next() & p.next() & p.next()
}

// computeHash hashes the position from scratch.
func (p *Position) computeHash() uint64 {
	var h uint64
	for c := White; c <= Black; c++ {
		for k := Pawn; k <= King; k++ {
			bb := p.Pieces[c][k]
			for bb != 0 {
				h ^= zobristPiece[c][k][bb.PopLSB()]
			}
		}
	}
	if p.SideToMove == Black {
		h ^= zobristBlack
	}
	h ^= zobristCastling[p.Castling]
	if p.epCapturable() {
		h ^= zobristEnPassant[p.EnPassant.File()]
	}
	return h
}

// epCapturable reports whether the side to move has a legal en-passant
// capture. Only then does the target take part in the hash: a double
// push nobody can answer en passant leaves a position identical, for
// repetition purposes, to one without it.
func (p *Position) epCapturable() bool {
	if p.EnPassant == NoSquare {
		return false
	}
	us := p.SideToMove
	attackers := pawnAttacks[us.Other()][p.EnPassant] & p.Pieces[us][Pawn]
	for attackers != 0 {
		if p.epLegal(attackers.PopLSB()) {
			return true
		}
	}
	return false
}

// epLegal reports whether the pawn on from may capture en passant
// without leaving its king attacked. It works on occupancy alone so it
// can run in the middle of MakeMove.
func (p *Position) epLegal(from Square) bool {
	us, them := p.SideToMove, p.SideToMove.Other()
	capSq := p.EnPassant - 8
	if us == Black {
		capSq = p.EnPassant + 8
	}
	ksq := p.KingSquare[us]
	occ := p.All.Without(from).Without(capSq).With(p.EnPassant)
	enemy := &p.Pieces[them]

	if RookAttacks(ksq, occ)&(enemy[Rook]|enemy[Queen]) != 0 {
		return false
	}
	if BishopAttacks(ksq, occ)&(enemy[Bishop]|enemy[Queen]) != 0 {
		return false
	}
	if knightAttacks[ksq]&enemy[Knight] != 0 {
		return false
	}
	return pawnAttacks[us][ksq]&enemy[Pawn].Without(capSq) == 0
}

// RepetitionKey is the hash used for repetition detection: placement,
// side to move, castling rights and a capturable en-passant target.
func (p *Position) RepetitionKey() uint64 {
	return p.Hash
}
