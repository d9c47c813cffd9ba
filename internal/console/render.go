package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
)

// view holds what the renderer needs beyond the position itself.
type view struct {
	theme     Theme
	plain     bool
	flip      bool // draw from black's side
	highlight board.Bitboard
}

// squareBg returns the theme's background for sq, highlights first.
func (v *view) squareBg(g *game.Game, sq board.Square) color.Attribute {
	pos := g.Position()
	last := g.LastMove()
	switch {
	case v.highlight.Has(sq):
		return v.theme.SquareHigh
	case pos.InCheck() && sq == pos.KingSquare[pos.SideToMove]:
		return v.theme.SquareCheck
	case last != board.NoMove && (sq == last.From() || sq == last.To()):
		return v.theme.SquareLast
	case sq.IsLight():
		return v.theme.SquareLight
	}
	return v.theme.SquareDark
}

// drawSquare renders one square three columns wide. Without color,
// highlighted squares are bracketed and last-move squares parenthesised.
func (v *view) drawSquare(g *game.Game, sq board.Square) string {
	pos := g.Position()
	p := pos.PieceAt(sq)

	if v.plain {
		ch := byte('.')
		if !p.IsNone() {
			ch = p.Char()
		}
		last := g.LastMove()
		switch {
		case v.highlight.Has(sq):
			return fmt.Sprintf("[%c]", ch)
		case last != board.NoMove && (sq == last.From() || sq == last.To()):
			return fmt.Sprintf("(%c)", ch)
		}
		return fmt.Sprintf(" %c ", ch)
	}

	style := color.New(v.squareBg(g, sq))
	if p.IsNone() {
		return style.Sprint("   ")
	}
	fg := v.theme.White
	if p.Color == board.Black {
		fg = v.theme.Black
	}
	return style.Add(fg, color.Bold).Sprintf(" %c ", p.Char())
}

func (v *view) label(s string) string {
	if v.plain {
		return s
	}
	return color.New(v.theme.Label).Sprint(s)
}

// render draws the board with rank and file labels, a side-to-move line
// and a check marker.
func (v *view) render(w io.Writer, g *game.Game, name string) {
	var sb strings.Builder

	pos := g.Position()
	fmt.Fprintf(&sb, "  %s  %s to move\n", name, pos.SideToMove)

	for row := 0; row < 8; row++ {
		rank := 7 - row
		if v.flip {
			rank = row
		}
		sb.WriteString(v.label(fmt.Sprintf("%d ", rank+1)))
		for col := 0; col < 8; col++ {
			file := col
			if v.flip {
				file = 7 - col
			}
			sb.WriteString(v.drawSquare(g, board.NewSquare(file, rank)))
		}
		sb.WriteByte('\n')
	}

	files := "abcdefgh"
	sb.WriteString("  ")
	for col := 0; col < 8; col++ {
		f := files[col]
		if v.flip {
			f = files[7-col]
		}
		sb.WriteString(v.label(fmt.Sprintf(" %c ", f)))
	}
	sb.WriteByte('\n')

	if pos.InCheck() && !g.Status().IsOver() {
		sb.WriteString("Check!\n")
	}
	io.WriteString(w, sb.String())
}
