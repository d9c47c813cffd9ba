package board

import "math/bits"

// Fancy magic bitboards for sliding pieces. The magic multipliers are
// searched at startup from fixed per-rank seeds and every candidate is
// checked against the ray-cast reference for all occupancy subsets, so a
// table that finishes initialising is collision free.

type magic struct {
	mask  Bitboard
	magic uint64
	shift uint8
	table []Bitboard
}

func (m *magic) index(occ Bitboard) uint64 {
	return (uint64(occ&m.mask) * m.magic) >> m.shift
}

func (m *magic) attacks(occ Bitboard) Bitboard {
	return m.table[m.index(occ)]
}

var (
	bishopMagics [64]magic
	rookMagics   [64]magic

	bishopTable [5248]Bitboard
	rookTable   [102400]Bitboard
)

// Seeds that find a magic for every square quickly, one per rank.
var magicSeeds = [8]uint64{728, 10316, 55013, 32803, 12281, 15100, 16645, 255}

func initMagics() {
	findMagics(bishopMagics[:], bishopTable[:], slowBishopAttacks)
	findMagics(rookMagics[:], rookTable[:], slowRookAttacks)
}

func findMagics(magics []magic, table []Bitboard, slide func(Square, Bitboard) Bitboard) {
	var (
		occupancy [4096]Bitboard
		reference [4096]Bitboard
		epoch     [4096]int
		attempt   int
		offset    int
	)

	for sq := A1; sq <= H8; sq++ {
		edges := ((Rank1|Rank8) &^ RankMask(sq.Rank())) | ((FileA|FileH) &^ FileMask(sq.File()))

		m := &magics[sq]
		m.mask = slide(sq, 0) &^ edges
		m.shift = uint8(64 - m.mask.Count())

		// Enumerate every subset of the mask (Carry-Rippler).
		size := 0
		var b Bitboard
		for {
			occupancy[size] = b
			reference[size] = slide(sq, b)
			size++
			b = (b - m.mask) & m.mask
			if b == 0 {
				break
			}
		}
		m.table = table[offset : offset+size]
		offset += size

		rng := prng(magicSeeds[sq.Rank()])
		for i := 0; i < size; {
			for m.magic = 0; bits.OnesCount64((m.magic*uint64(m.mask))>>56) < 6; {
				m.magic = rng.sparse()
			}

			attempt++
			for i = 0; i < size; i++ {
				idx := m.index(occupancy[i])
				if epoch[idx] < attempt {
					epoch[idx] = attempt
					m.table[idx] = reference[i]
				} else if m.table[idx] != reference[i] {
					break
				}
			}
		}
	}
}

// RankMask returns every square on the given rank (0-7).
func RankMask(rank int) Bitboard {
	return Rank1 << (8 * rank)
}

// FileMask returns every square on the given file (0-7).
func FileMask(file int) Bitboard {
	return FileA << file
}

// slowBishopAttacks casts the four diagonal rays, stopping at the first
// occupied square (inclusive).
func slowBishopAttacks(sq Square, occ Bitboard) Bitboard {
	return castRays(sq, occ, [4][2]int{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}})
}

// slowRookAttacks casts the four orthogonal rays.
func slowRookAttacks(sq Square, occ Bitboard) Bitboard {
	return castRays(sq, occ, [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}})
}

func castRays(sq Square, occ Bitboard, dirs [4][2]int) Bitboard {
	var attacks Bitboard
	for _, d := range dirs {
		f, r := sq.File()+d[0], sq.Rank()+d[1]
		for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
			s := NewSquare(f, r)
			attacks |= SquareBB(s)
			if occ.Has(s) {
				break
			}
			f += d[0]
			r += d[1]
		}
	}
	return attacks
}
