package board

// Move packs a move into 32 bits:
//
//	bits 0-5   from square
//	bits 6-11  to square
//	bits 12-14 promotion kind (0 = none, otherwise Knight..Queen)
//	bits 16-19 flags
//
// Flags are set by the move generator. A move decoded from text carries
// none; Position.Resolve maps it onto the generated move.
type Move uint32

// Move flags
const (
	FlagCastle     Move = 1 << 16
	FlagEnPassant  Move = 1 << 17
	FlagDoublePush Move = 1 << 18
	FlagCapture    Move = 1 << 19

	baseMask Move = 0x7FFF
)

// NoMove is the null move, written "0000".
const NoMove Move = 0

// NewMove builds a move without flags.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewPromotion builds a promotion to kind k.
func NewPromotion(from, to Square, k Kind) Move {
	return NewMove(from, to) | Move(k)<<12
}

// From returns the origin square.
func (m Move) From() Square { return Square(m & 0x3F) }

// To returns the destination square.
func (m Move) To() Square { return Square(m >> 6 & 0x3F) }

// Promotion returns the promotion kind, or NoKind.
func (m Move) Promotion() Kind {
	if k := Kind(m >> 12 & 7); k != Pawn {
		return k
	}
	return NoKind
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool { return m>>12&7 != 0 }

// IsCastle reports whether the move is castling (encoded as the king's move).
func (m Move) IsCastle() bool { return m&FlagCastle != 0 }

// IsEnPassant reports whether the move is an en-passant capture.
func (m Move) IsEnPassant() bool { return m&FlagEnPassant != 0 }

// IsDoublePush reports whether the move is a two-square pawn advance.
func (m Move) IsDoublePush() bool { return m&FlagDoublePush != 0 }

// IsCapture reports whether the move removes an enemy piece.
func (m Move) IsCapture() bool { return m&FlagCapture != 0 }

// Base strips the flags, leaving from, to and promotion.
func (m Move) Base() Move { return m & baseMask }

// String returns UCI long algebraic text ("e2e4", "e7e8q").
func (m Move) String() string {
	if m.Base() == NoMove {
		return "0000"
	}
	buf := make([]byte, 0, 5)
	buf = append(buf, m.From().String()...)
	buf = append(buf, m.To().String()...)
	if m.IsPromotion() {
		buf = append(buf, m.Promotion().Char())
	}
	return string(buf)
}

// ParseMove decodes four- or five-character UCI text into a flagless
// move. It does not consult any position; use Position.Resolve to check
// legality and obtain the flagged move.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, parseErr(s, "move", "need 4 or 5 characters")
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, parseErr(s, "move", "bad origin square")
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, parseErr(s, "move", "bad destination square")
	}
	if from == to {
		return NoMove, parseErr(s, "move", "origin equals destination")
	}
	if len(s) == 4 {
		return NewMove(from, to), nil
	}
	switch k := kindFromChar(s[4]); k {
	case Knight, Bishop, Rook, Queen:
		return NewPromotion(from, to, k), nil
	}
	return NoMove, parseErr(s, "move", "promotion must be one of n, b, r, q")
}

// MoveList is a fixed-capacity move buffer; no legal position has more
// than 218 moves.
type MoveList struct {
	moves [256]Move
	count int
}

// Add appends m. A full list drops further moves; validated positions
// never get there.
func (ml *MoveList) Add(m Move) {
	if ml.count == len(ml.moves) {
		return
	}
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves.
func (ml *MoveList) Len() int { return ml.count }

// Get returns the i-th move.
func (ml *MoveList) Get(i int) Move { return ml.moves[i] }

// Slice returns a copy of the moves.
func (ml *MoveList) Slice() []Move {
	out := make([]Move, ml.count)
	copy(out, ml.moves[:ml.count])
	return out
}

// Find returns the listed move whose from, to and promotion match m.
func (ml *MoveList) Find(m Move) (Move, bool) {
	base := m.Base()
	for i := 0; i < ml.count; i++ {
		if ml.moves[i].Base() == base {
			return ml.moves[i], true
		}
	}
	return NoMove, false
}

// Undo holds what MakeMove cannot recompute when reversing a move.
type Undo struct {
	Captured      Piece
	CaptureSquare Square
	Castling      CastlingRights
	EnPassant     Square
	HalfMoveClock int
	Hash          uint64
	Checkers      Bitboard
}
