package board

// Color is the side a piece belongs to.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposing color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// Kind is the type of a piece irrespective of color.
type Kind uint8

const (
	Pawn Kind = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoKind Kind = 6
)

var kindNames = [...]string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King", "None"}

// String returns the kind name.
func (k Kind) String() string {
	if k > NoKind {
		return kindNames[NoKind]
	}
	return kindNames[k]
}

// Char returns the lowercase letter used for k in FEN and UCI text.
func (k Kind) Char() byte {
	if k >= NoKind {
		return ' '
	}
	return "pnbrqk"[k]
}

// kindFromChar maps a lowercase letter back to a Kind.
func kindFromChar(c byte) Kind {
	switch c {
	case 'p':
		return Pawn
	case 'n':
		return Knight
	case 'b':
		return Bishop
	case 'r':
		return Rook
	case 'q':
		return Queen
	case 'k':
		return King
	}
	return NoKind
}

// Piece is a colored piece. The zero value is a white pawn; use NoPiece
// for an empty square.
type Piece struct {
	Color Color
	Kind  Kind
}

// NoPiece marks an empty square.
var NoPiece = Piece{Color: NoColor, Kind: NoKind}

// NewPiece pairs a color and kind.
func NewPiece(c Color, k Kind) Piece {
	if c >= NoColor || k >= NoKind {
		return NoPiece
	}
	return Piece{Color: c, Kind: k}
}

// IsNone reports whether p is NoPiece.
func (p Piece) IsNone() bool {
	return p.Kind >= NoKind || p.Color >= NoColor
}

// Index returns the slot of p in a twelve-entry table ordered
// white pawn..white king, black pawn..black king. NoPiece maps to 12.
func (p Piece) Index() int {
	if p.IsNone() {
		return 12
	}
	return int(p.Color)*6 + int(p.Kind)
}

// Char returns the FEN letter: uppercase for white, lowercase for black.
func (p Piece) Char() byte {
	if p.IsNone() {
		return ' '
	}
	c := p.Kind.Char()
	if p.Color == White {
		c -= 'a' - 'A'
	}
	return c
}

// String returns the FEN letter as a string.
func (p Piece) String() string {
	return string(p.Char())
}

// PieceFromChar decodes a FEN letter; unknown letters give NoPiece.
func PieceFromChar(c byte) Piece {
	if c >= 'A' && c <= 'Z' {
		return NewPiece(White, kindFromChar(c+'a'-'A'))
	}
	return NewPiece(Black, kindFromChar(c))
}
