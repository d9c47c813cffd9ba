// Package board implements the chess rules core: bitboard piece placement,
// legal move generation, make/unmake, and the FEN and UCI move codecs.
package board

// Square addresses one of the 64 board cells.
// Little-Endian Rank-File Mapping: a1=0, h1=7, a8=56, h8=63.
type Square uint8

// Square constants for all 64 squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// NewSquare builds a square from 0-indexed file and rank.
func NewSquare(file, rank int) Square {
	return Square(rank<<3 | file)
}

// File returns 0 for the a-file through 7 for the h-file.
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns 0 for the first rank through 7 for the eighth.
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// IsValid reports whether sq is on the board.
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// RelativeRank returns the rank as seen from c's side of the board.
func (sq Square) RelativeRank(c Color) int {
	if c == White {
		return sq.Rank()
	}
	return 7 - sq.Rank()
}

// IsLight reports whether sq is a light square (h1 is light).
func (sq Square) IsLight() bool {
	return (sq.File()+sq.Rank())&1 == 1
}

// String returns the coordinate name ("e4"), or "-" for NoSquare.
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

// ParseSquare decodes a coordinate such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, parseErr(s, "square", "need file letter and rank digit")
	}
	if s[0] < 'a' || s[0] > 'h' {
		return NoSquare, parseErr(s, "square", "file must be a-h")
	}
	if s[1] < '1' || s[1] > '8' {
		return NoSquare, parseErr(s, "square", "rank must be 1-8")
	}
	return NewSquare(int(s[0]-'a'), int(s[1]-'1')), nil
}
