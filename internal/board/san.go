package board

import "strings"

// SAN renders m in Standard Algebraic Notation for display. m must be
// legal in pos; anything else falls back to UCI text.
func (m Move) SAN(pos *Position) string {
	if m.Base() == NoMove {
		return "-"
	}

	legal, ok := pos.GenerateLegalMoves().Find(m)
	if !ok {
		return m.String()
	}
	m = legal

	from, to := m.From(), m.To()
	pc := pos.PieceAt(from)

	var sb strings.Builder
	switch {
	case m.IsCastle() && to > from:
		sb.WriteString("O-O")
	case m.IsCastle():
		sb.WriteString("O-O-O")
	default:
		if pc.Kind != Pawn {
			sb.WriteByte("PNBRQK"[pc.Kind])
			sb.WriteString(disambiguation(pos, m, pc.Kind))
		}
		if m.IsCapture() {
			if pc.Kind == Pawn {
				sb.WriteByte(byte('a' + from.File()))
			}
			sb.WriteByte('x')
		}
		sb.WriteString(to.String())
		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte("PNBRQK"[m.Promotion()])
		}
	}

	after := *pos
	after.MakeMove(m)
	if after.InCheck() {
		if after.HasLegalMoves() {
			sb.WriteByte('+')
		} else {
			sb.WriteByte('#')
		}
	}
	return sb.String()
}

// disambiguation returns the origin file, rank or square needed to tell m
// apart from other legal moves of the same kind to the same square.
func disambiguation(pos *Position, m Move, k Kind) string {
	from, to := m.From(), m.To()
	same := pos.Pieces[pos.SideToMove][k]

	var sameFile, sameRank, ambiguous bool
	legal := pos.GenerateLegalMoves()
	for i := 0; i < legal.Len(); i++ {
		other := legal.Get(i)
		if other.To() != to || other.From() == from || !same.Has(other.From()) {
			continue
		}
		ambiguous = true
		if other.From().File() == from.File() {
			sameFile = true
		}
		if other.From().Rank() == from.Rank() {
			sameRank = true
		}
	}

	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return string(rune('a' + from.File()))
	case !sameRank:
		return string(rune('1' + from.Rank()))
	}
	return from.String()
}
