package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/hailam/chessboard/internal/board"
)

var (
	whitePiece = []color.Attribute{color.FgHiWhite, color.Bold}
	blackPiece = []color.Attribute{color.FgBlack, color.Bold}
	deadPiece  = []color.Attribute{color.FgHiBlack, color.CrossedOut}
)

// printBoard writes b with rank 8 at the top. Without color, dead
// pieces are marked with an 'x'.
func printBoard(w io.Writer, b *board.Board) {
	for rank := board.Size - 1; rank >= 0; rank-- {
		fmt.Fprintf(w, "%d ", rank+1)
		for file := 0; file < board.Size; file++ {
			fmt.Fprint(w, squareText(b.PieceAt(rank, file), rank, file))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "   a  b  c  d  e  f  g  h")
	fmt.Fprintf(w, "%s to move, %d pieces\n", b.MovesNext(), b.PieceCount())
}

func squareText(p *board.Piece, rank, file int) string {
	bg := color.BgBlue
	if (rank+file)%2 == 1 {
		bg = color.BgGreen
	}

	if p == nil {
		return color.New(bg).Sprint("   ")
	}
	if color.NoColor {
		mark := ' '
		if !p.IsAlive() {
			mark = 'x'
		}
		return fmt.Sprintf(" %c%c", p.Char(), mark)
	}

	attrs := blackPiece
	switch {
	case !p.IsAlive():
		attrs = deadPiece
	case p.Color == board.White:
		attrs = whitePiece
	}
	return color.New(attrs...).Add(bg).Sprintf(" %c ", p.Char())
}
