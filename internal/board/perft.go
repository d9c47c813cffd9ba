package board

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(pos *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := pos.GenerateLegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		u := pos.MakeMove(m)
		nodes += Perft(pos, depth-1)
		pos.UnmakeMove(m, u)
	}
	return nodes
}

// DivideEntry is the subtree count below one root move.
type DivideEntry struct {
	Move  Move
	Nodes uint64
}

// Divide returns the per-root-move breakdown of Perft, in generation order.
func Divide(pos *Position, depth int) []DivideEntry {
	if depth <= 0 {
		return nil
	}
	moves := pos.GenerateLegalMoves()
	out := make([]DivideEntry, 0, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		u := pos.MakeMove(m)
		out = append(out, DivideEntry{Move: m, Nodes: Perft(pos, depth-1)})
		pos.UnmakeMove(m, u)
	}
	return out
}
