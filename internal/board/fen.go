package board

import (
	"strconv"
	"strings"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN decodes a six-field FEN record. Malformed text yields a
// *ParseError; well-formed text describing an impossible position yields
// an *InvalidPositionError.
func ParseFEN(fen string) (Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return Position{}, parseErr(fen, "fen", "need 6 space-separated fields, got "+strconv.Itoa(len(fields)))
	}

	p := emptyPosition()

	if err := parsePlacement(&p, fields[0]); err != nil {
		return Position{}, err
	}

	switch fields[1] {
	case "w":
		p.SideToMove = White
	case "b":
		p.SideToMove = Black
	default:
		return Position{}, parseErr(fields[1], "side to move", "must be w or b")
	}

	cr, err := parseCastling(fields[2])
	if err != nil {
		return Position{}, err
	}
	p.Castling = cr

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return Position{}, parseErr(fields[3], "en passant", "must be - or a square")
		}
		p.EnPassant = sq
	}

	if p.HalfMoveClock, err = parseCounter(fields[4], "halfmove clock", 0); err != nil {
		return Position{}, err
	}
	if p.FullMoveNumber, err = parseCounter(fields[5], "fullmove number", 1); err != nil {
		return Position{}, err
	}

	if err := p.Validate(); err != nil {
		return Position{}, err
	}

	p.Hash = p.computeHash()
	p.updateCheckers()
	return p, nil
}

func parsePlacement(p *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return parseErr(placement, "placement", "need 8 ranks, got "+strconv.Itoa(len(ranks)))
	}

	for i, row := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
			} else {
				pc := PieceFromChar(c)
				if pc.IsNone() {
					return parseErr(placement, "placement", "unknown piece letter "+strconv.QuoteRune(rune(c)))
				}
				if file > 7 {
					return parseErr(placement, "placement", "rank "+strconv.Itoa(rank+1)+" has more than 8 files")
				}
				p.Toggle(pc, NewSquare(file, rank))
				file++
			}
			if file > 8 {
				return parseErr(placement, "placement", "rank "+strconv.Itoa(rank+1)+" has more than 8 files")
			}
		}
		if file != 8 {
			return parseErr(placement, "placement", "rank "+strconv.Itoa(rank+1)+" does not span 8 files")
		}
	}
	return nil
}

func parseCastling(s string) (CastlingRights, error) {
	if s == "-" {
		return NoCastling, nil
	}
	var cr CastlingRights
	for i := 0; i < len(s); i++ {
		idx := strings.IndexByte("KQkq", s[i])
		if idx < 0 {
			return 0, parseErr(s, "castling", "letters must be from KQkq")
		}
		bit := CastlingRights(1 << idx)
		if cr&bit != 0 {
			return 0, parseErr(s, "castling", "repeated letter")
		}
		cr |= bit
	}
	return cr, nil
}

func parseCounter(s, field string, min int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < min {
		return 0, parseErr(s, field, "must be an integer >= "+strconv.Itoa(min))
	}
	return n, nil
}

// ToFEN encodes the position. ParseFEN(p.ToFEN()) reproduces p exactly.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.PieceAt(NewSquare(file, rank))
			if pc.IsNone() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pc.Char())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	sb.WriteString(p.Castling.String())
	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullMoveNumber))
	return sb.String()
}
