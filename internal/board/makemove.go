package board

// MakeMove plays m, which must come from the move generator (or Resolve)
// so that its flags are set, and returns the record UnmakeMove needs to
// restore the position exactly.
func (p *Position) MakeMove(m Move) Undo {
	us := p.SideToMove
	them := us.Other()
	from, to := m.From(), m.To()
	mover := p.PieceAt(from)

	u := Undo{
		Captured:      NoPiece,
		CaptureSquare: NoSquare,
		Castling:      p.Castling,
		EnPassant:     p.EnPassant,
		HalfMoveClock: p.HalfMoveClock,
		Hash:          p.Hash,
		Checkers:      p.Checkers,
	}

	if p.epCapturable() {
		p.Hash ^= zobristEnPassant[p.EnPassant.File()]
	}
	p.Hash ^= zobristCastling[p.Castling]

	capSq := to
	if m.IsEnPassant() {
		if us == White {
			capSq = to - 8
		} else {
			capSq = to + 8
		}
	}
	if victim := p.PieceAt(capSq); !victim.IsNone() && victim.Color == them {
		p.Toggle(victim, capSq)
		u.Captured = victim
		u.CaptureSquare = capSq
	}

	p.Toggle(mover, from)
	if m.IsPromotion() {
		p.Toggle(Piece{Color: us, Kind: m.Promotion()}, to)
	} else {
		p.Toggle(mover, to)
	}

	if m.IsCastle() {
		rookFrom, rookTo := castleRook(to)
		rook := Piece{Color: us, Kind: Rook}
		p.Toggle(rook, rookFrom)
		p.Toggle(rook, rookTo)
	}

	p.Castling &^= castleSpoilers[from] | castleSpoilers[to]
	p.Hash ^= zobristCastling[p.Castling]

	p.EnPassant = NoSquare
	if m.IsDoublePush() {
		p.EnPassant = (from + to) / 2
	}

	if mover.Kind == Pawn || !u.Captured.IsNone() {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}
	if us == Black {
		p.FullMoveNumber++
	}

	p.SideToMove = them
	p.Hash ^= zobristBlack
	if p.epCapturable() {
		p.Hash ^= zobristEnPassant[p.EnPassant.File()]
	}
	p.updateCheckers()
	return u
}

// UnmakeMove reverses MakeMove(m) given the Undo it returned.
func (p *Position) UnmakeMove(m Move, u Undo) {
	us := p.SideToMove.Other()
	from, to := m.From(), m.To()

	if m.IsCastle() {
		rookFrom, rookTo := castleRook(to)
		rook := Piece{Color: us, Kind: Rook}
		p.Toggle(rook, rookTo)
		p.Toggle(rook, rookFrom)
	}

	placed := p.PieceAt(to)
	p.Toggle(placed, to)
	if m.IsPromotion() {
		p.Toggle(Piece{Color: us, Kind: Pawn}, from)
	} else {
		p.Toggle(placed, from)
	}
	if !u.Captured.IsNone() {
		p.Toggle(u.Captured, u.CaptureSquare)
	}

	if us == Black {
		p.FullMoveNumber--
	}
	p.SideToMove = us
	p.Castling = u.Castling
	p.EnPassant = u.EnPassant
	p.HalfMoveClock = u.HalfMoveClock
	p.Hash = u.Hash
	p.Checkers = u.Checkers
}

// IsCheckmate reports whether the side to move is in check with no moves.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate reports whether the side to move is not in check and has no
// moves.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}
