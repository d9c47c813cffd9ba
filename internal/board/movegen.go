package board

// GenerateLegalMoves returns every legal move for the side to move. The
// order is deterministic. An empty list means checkmate or stalemate.
func (p *Position) GenerateLegalMoves() *MoveList {
	var pseudo MoveList
	p.generatePseudoLegal(&pseudo)

	legal := &MoveList{}
	pinned := p.Pinned()
	for i := 0; i < pseudo.Len(); i++ {
		if m := pseudo.Get(i); p.isLegal(m, pinned) {
			legal.Add(m)
		}
	}
	return legal
}

// GeneratePseudoLegalMoves returns moves that follow piece movement rules
// but may leave the mover's king in check.
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	ml := &MoveList{}
	p.generatePseudoLegal(ml)
	return ml
}

// LegalMoves returns the legal moves as a slice.
func (p *Position) LegalMoves() []Move {
	return p.GenerateLegalMoves().Slice()
}

// MovesFrom returns the legal moves of the piece standing on sq.
func (p *Position) MovesFrom(sq Square) []Move {
	legal := p.GenerateLegalMoves()
	var out []Move
	for i := 0; i < legal.Len(); i++ {
		if m := legal.Get(i); m.From() == sq {
			out = append(out, m)
		}
	}
	return out
}

// HasLegalMoves reports whether the side to move can move at all.
func (p *Position) HasLegalMoves() bool {
	var pseudo MoveList
	p.generatePseudoLegal(&pseudo)
	pinned := p.Pinned()
	for i := 0; i < pseudo.Len(); i++ {
		if p.isLegal(pseudo.Get(i), pinned) {
			return true
		}
	}
	return false
}

// Resolve matches a move decoded from text (from, to, promotion) against
// the legal moves and returns the generated move with its flags set.
func (p *Position) Resolve(m Move) (Move, error) {
	if legal, ok := p.GenerateLegalMoves().Find(m); ok {
		return legal, nil
	}
	reason := ""
	switch pc := p.PieceAt(m.From()); {
	case pc.IsNone():
		reason = "no piece on " + m.From().String()
	case pc.Color != p.SideToMove:
		reason = "it is " + p.SideToMove.String() + "'s turn"
	}
	return NoMove, &IllegalMoveError{Move: m.String(), FEN: p.ToFEN(), Reason: reason}
}

// IsLegal reports whether m (flags optional) is legal here.
func (p *Position) IsLegal(m Move) bool {
	_, ok := p.GenerateLegalMoves().Find(m)
	return ok
}

// isLegal filters a pseudo-legal move. Outside of check, a move by a
// piece that is neither the king, pinned off its line, nor capturing en
// passant cannot expose the king. Everything else is played on a scratch
// copy and the king is tested directly; that also covers the en-passant
// capture that uncovers a rank attack on the king.
func (p *Position) isLegal(m Move, pinned Bitboard) bool {
	if m.IsCastle() {
		return true
	}
	us := p.SideToMove
	from := m.From()
	ksq := p.KingSquare[us]

	if !p.InCheck() && from != ksq && !m.IsEnPassant() {
		return !pinned.Has(from) || Aligned(from, m.To(), ksq)
	}

	scratch := *p
	scratch.MakeMove(m)
	return !scratch.IsSquareAttacked(scratch.KingSquare[us], us.Other())
}

func (p *Position) generatePseudoLegal(ml *MoveList) {
	us := p.SideToMove
	if p.Pieces[us][King] == 0 {
		return
	}
	enemies := p.Occupied[us.Other()]
	targets := ^p.Occupied[us]

	p.generatePawnMoves(ml, us, enemies)

	for k := Knight; k <= King; k++ {
		pieces := p.Pieces[us][k]
		for pieces != 0 {
			from := pieces.PopLSB()
			var attacks Bitboard
			switch k {
			case Knight:
				attacks = KnightAttacks(from)
			case Bishop:
				attacks = BishopAttacks(from, p.All)
			case Rook:
				attacks = RookAttacks(from, p.All)
			case Queen:
				attacks = QueenAttacks(from, p.All)
			case King:
				attacks = KingAttacks(from)
			}
			addTargets(ml, from, attacks&targets, enemies)
		}
	}

	p.generateCastles(ml, us)
}

func addTargets(ml *MoveList, from Square, targets, enemies Bitboard) {
	for targets != 0 {
		to := targets.PopLSB()
		m := NewMove(from, to)
		if enemies.Has(to) {
			m |= FlagCapture
		}
		ml.Add(m)
	}
}

func (p *Position) generatePawnMoves(ml *MoveList, us Color, enemies Bitboard) {
	pawns := p.Pieces[us][Pawn]
	empty := ^p.All

	var push1, push2, captureWest, captureEast, lastRank Bitboard
	var up int
	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		captureWest = pawns.NorthWest() & enemies
		captureEast = pawns.NorthEast() & enemies
		lastRank = Rank8
		up = 8
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		captureWest = pawns.SouthWest() & enemies
		captureEast = pawns.SouthEast() & enemies
		lastRank = Rank1
		up = -8
	}

	emit := func(set Bitboard, delta int, flags Move) {
		for set != 0 {
			to := set.PopLSB()
			from := Square(int(to) - delta)
			if lastRank.Has(to) {
				for _, k := range [4]Kind{Queen, Rook, Bishop, Knight} {
					ml.Add(NewPromotion(from, to, k) | flags)
				}
				continue
			}
			ml.Add(NewMove(from, to) | flags)
		}
	}

	emit(push1, up, 0)
	for push2 != 0 {
		to := push2.PopLSB()
		ml.Add(NewMove(Square(int(to)-2*up), to) | FlagDoublePush)
	}
	emit(captureWest, up-1, FlagCapture)
	emit(captureEast, up+1, FlagCapture)

	if p.EnPassant != NoSquare {
		attackers := pawnAttacks[us.Other()][p.EnPassant] & pawns
		for attackers != 0 {
			ml.Add(NewMove(attackers.PopLSB(), p.EnPassant) | FlagEnPassant | FlagCapture)
		}
	}
}

// castle describes one castling option.
type castle struct {
	right     CastlingRights
	king      Square
	kingTo    Square
	rook      Square
	rookTo    Square
	mustEmpty Bitboard
	kingPath  [2]Square // squares the king crosses or lands on
}

var castles = [2][2]castle{
	White: {
		{WhiteKingSide, E1, G1, H1, F1, SquareBB(F1) | SquareBB(G1), [2]Square{F1, G1}},
		{WhiteQueenSide, E1, C1, A1, D1, SquareBB(B1) | SquareBB(C1) | SquareBB(D1), [2]Square{D1, C1}},
	},
	Black: {
		{BlackKingSide, E8, G8, H8, F8, SquareBB(F8) | SquareBB(G8), [2]Square{F8, G8}},
		{BlackQueenSide, E8, C8, A8, D8, SquareBB(B8) | SquareBB(C8) | SquareBB(D8), [2]Square{D8, C8}},
	},
}

func (p *Position) generateCastles(ml *MoveList, us Color) {
	if p.Castling == NoCastling || p.InCheck() {
		return
	}
	them := us.Other()
	for _, c := range castles[us] {
		if p.Castling&c.right == 0 ||
			p.KingSquare[us] != c.king ||
			!p.Pieces[us][Rook].Has(c.rook) ||
			p.All&c.mustEmpty != 0 ||
			p.IsSquareAttacked(c.kingPath[0], them) ||
			p.IsSquareAttacked(c.kingPath[1], them) {
			continue
		}
		ml.Add(NewMove(c.king, c.kingTo) | FlagCastle)
	}
}

// castleRook returns the rook's origin and destination for a castling
// move whose king lands on kingTo.
func castleRook(kingTo Square) (Square, Square) {
	for _, side := range castles {
		for _, c := range side {
			if c.kingTo == kingTo {
				return c.rook, c.rookTo
			}
		}
	}
	return NoSquare, NoSquare
}
