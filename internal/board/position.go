package board

import (
	"fmt"
	"strings"
)

// CastlingRights holds the four independent castling permissions.
type CastlingRights uint8

const (
	WhiteKingSide  CastlingRights = 1 << iota // K
	WhiteQueenSide                            // Q
	BlackKingSide                             // k
	BlackQueenSide                            // q

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

// String returns the FEN castling field.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	var sb strings.Builder
	for i, c := range "KQkq" {
		if cr&(1<<i) != 0 {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// castleSpoilers clears rights when a move touches one of these squares:
// a king leaving home loses both, a rook leaving or being captured on its
// corner loses its side. Rights never come back.
var castleSpoilers = func() (t [64]CastlingRights) {
	t[E1] = WhiteKingSide | WhiteQueenSide
	t[H1] = WhiteKingSide
	t[A1] = WhiteQueenSide
	t[E8] = BlackKingSide | BlackQueenSide
	t[H8] = BlackKingSide
	t[A8] = BlackQueenSide
	return t
}()

// Position is a full game position. It is a plain value: copying it gives
// an independent position, and two positions are equal exactly when every
// field matches.
type Position struct {
	Pieces   [2][6]Bitboard // [Color][Kind]
	Occupied [2]Bitboard    // per color
	All      Bitboard

	SideToMove     Color
	Castling       CastlingRights
	EnPassant      Square // square skipped by a double push on the last ply, or NoSquare
	HalfMoveClock  int    // plies since the last capture or pawn move
	FullMoveNumber int    // starts at 1, incremented after Black moves

	Hash       uint64
	KingSquare [2]Square
	Checkers   Bitboard // enemy pieces giving check to the side to move
}

// NewPosition returns the standard starting position.
func NewPosition() Position {
	p, err := ParseFEN(StartFEN)
	if err != nil {
		panic("board: start position: " + err.Error())
	}
	return p
}

func emptyPosition() Position {
	return Position{
		EnPassant:      NoSquare,
		FullMoveNumber: 1,
		KingSquare:     [2]Square{NoSquare, NoSquare},
	}
}

// PieceAt returns the piece on sq, or NoPiece.
func (p *Position) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)
	if p.All&bb == 0 {
		return NoPiece
	}
	c := White
	if p.Occupied[Black]&bb != 0 {
		c = Black
	}
	for k := Pawn; k <= King; k++ {
		if p.Pieces[c][k]&bb != 0 {
			return Piece{Color: c, Kind: k}
		}
	}
	return NoPiece
}

// IsEmpty reports whether sq holds no piece.
func (p *Position) IsEmpty(sq Square) bool {
	return !p.All.Has(sq)
}

// Occupancy returns every square holding a c piece.
func (p *Position) Occupancy(c Color) Bitboard {
	return p.Occupied[c]
}

// Toggle flips the presence of pc on sq in its piece set and the
// aggregate sets. Hash and king square are kept in step. It is the single
// primitive behind placing, lifting and moving pieces.
func (p *Position) Toggle(pc Piece, sq Square) {
	if pc.IsNone() {
		return
	}
	p.Pieces[pc.Color][pc.Kind] = p.Pieces[pc.Color][pc.Kind].Toggle(sq)
	p.Occupied[pc.Color] = p.Occupied[pc.Color].Toggle(sq)
	p.All = p.All.Toggle(sq)
	p.Hash ^= zobristPiece[pc.Color][pc.Kind][sq]
	if pc.Kind == King {
		p.KingSquare[pc.Color] = p.Pieces[pc.Color][King].LSB()
	}
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool {
	return p.Checkers != 0
}

// Validate rejects positions that cannot arise in a game.
func (p *Position) Validate() error {
	invalid := func(format string, args ...any) error {
		return &InvalidPositionError{FEN: p.ToFEN(), Reason: fmt.Sprintf(format, args...)}
	}

	for c := White; c <= Black; c++ {
		if n := p.Pieces[c][King].Count(); n != 1 {
			return invalid("%s has %d kings", c, n)
		}
	}
	if (p.Pieces[White][Pawn]|p.Pieces[Black][Pawn])&(Rank1|Rank8) != 0 {
		return invalid("pawn on first or eighth rank")
	}
	for c := White; c <= Black; c++ {
		if err := p.validateMaterial(c); err != "" {
			return invalid("%s %s", c, err)
		}
	}
	them := p.SideToMove.Other()
	if p.IsSquareAttacked(p.KingSquare[them], p.SideToMove) {
		return invalid("%s king can be captured", them)
	}
	if p.EnPassant != NoSquare {
		us := p.SideToMove
		if p.EnPassant.RelativeRank(us) != 5 {
			return invalid("en-passant square %s on wrong rank", p.EnPassant)
		}
		pushed := p.EnPassant - 8
		if us == Black {
			pushed = p.EnPassant + 8
		}
		origin := p.EnPassant + 8
		if us == Black {
			origin = p.EnPassant - 8
		}
		if !p.Pieces[them][Pawn].Has(pushed) || !p.IsEmpty(p.EnPassant) || !p.IsEmpty(origin) {
			return invalid("no double-pushed pawn behind en-passant square %s", p.EnPassant)
		}
	}
	return nil
}

// validateMaterial checks that c's army could have come from the initial
// sixteen pieces: every piece beyond the starting set is a promoted pawn.
func (p *Position) validateMaterial(c Color) string {
	if n := p.Occupied[c].Count(); n > 16 {
		return fmt.Sprintf("has %d pieces", n)
	}
	pawns := p.Pieces[c][Pawn].Count()
	if pawns > 8 {
		return fmt.Sprintf("has %d pawns", pawns)
	}
	extra := func(k Kind, start int) int {
		return max(0, p.Pieces[c][k].Count()-start)
	}
	promoted := extra(Queen, 1) + extra(Rook, 2) + extra(Bishop, 2) + extra(Knight, 2)
	if pawns+promoted > 8 {
		return fmt.Sprintf("has %d promoted pieces with %d pawns left", promoted, pawns)
	}
	return ""
}

// InsufficientMaterial reports whether no sequence of legal moves can
// end in checkmate: bare kings, a single minor piece, or bishops only,
// all standing on squares of one color.
func (p *Position) InsufficientMaterial() bool {
	for c := White; c <= Black; c++ {
		if p.Pieces[c][Pawn]|p.Pieces[c][Rook]|p.Pieces[c][Queen] != 0 {
			return false
		}
	}
	knights := p.Pieces[White][Knight] | p.Pieces[Black][Knight]
	bishops := p.Pieces[White][Bishop] | p.Pieces[Black][Bishop]
	minors := knights | bishops

	if !minors.Several() {
		return true
	}
	if knights != 0 {
		return false
	}
	return bishops&LightSquares == 0 || bishops&DarkSquares == 0
}

// String draws the board with rank 8 on top, followed by the FEN.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			sb.WriteByte(' ')
			if pc := p.PieceAt(NewSquare(file, rank)); pc.IsNone() {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(pc.Char())
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	sb.WriteString("FEN: " + p.ToFEN() + "\n")
	return sb.String()
}
