// Package board implements the chess position model: pieces, the squares
// that own them and the 8x8 board that owns the squares.
//
// A Board is not safe for concurrent use. Code that shares a board across
// goroutines hands out copies (see Board.Copy) or goes through
// game.Session, which guards a single board with one lock.
package board

import (
	"fmt"
	"strings"
)

// backRow lists the piece types of a back row from file 0 to file 7.
var backRow = [Size]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// Board is the 8x8 grid of squares plus the side whose ply is next.
type Board struct {
	spaces    [Size][Size]*Square
	movesNext Color
}

// New creates a board with all 64 squares empty and White to move.
func New() (*Board, error) {
	b := &Board{movesNext: White}
	for rank := 0; rank < Size; rank++ {
		for file := 0; file < Size; file++ {
			sq, err := NewSquare(rank, file)
			if err != nil {
				b.Release()
				return nil, err
			}
			b.spaces[rank][file] = sq
		}
	}
	if !b.Valid() {
		b.Release()
		return nil, ErrInvalidBoard
	}
	return b, nil
}

// NewStart creates a board in the standard opening position.
func NewStart() (*Board, error) {
	b, err := New()
	if err != nil {
		return nil, err
	}
	if err := b.addOpeningPieces(); err != nil {
		b.Release()
		return nil, err
	}
	return b, nil
}

// addOpeningPieces fills ranks 0, 1, 6 and 7 of an empty board.
func (b *Board) addOpeningPieces() error {
	rows := []struct {
		rank  int
		color Color
		pawns bool
	}{
		{0, White, false},
		{1, White, true},
		{7, Black, false},
		{6, Black, true},
	}

	for _, row := range rows {
		for file := 0; file < Size; file++ {
			pt := backRow[file]
			if row.pawns {
				pt = Pawn
			}
			p := NewAlivePiece(row.color, pt, row.rank, file)
			if err := b.spaces[row.rank][file].AddPiece(p); err != nil {
				return err
			}
		}
	}
	return nil
}

// MovesNext returns the side whose ply is next.
func (b *Board) MovesNext() Color { return b.movesNext }

// SetMovesNext sets the side whose ply is next. Nothing in this package
// advances the turn on its own.
func (b *Board) SetMovesNext(c Color) { b.movesNext = c }

// Square returns the square at rank and file, or nil when the
// coordinates are off the board or the slot has been released.
func (b *Board) Square(rank, file int) *Square {
	if !InBounds(rank, file) {
		return nil
	}
	return b.spaces[rank][file]
}

// PieceAt returns the piece at rank and file, or nil.
func (b *Board) PieceAt(rank, file int) *Piece {
	sq := b.Square(rank, file)
	if sq == nil {
		return nil
	}
	return sq.Piece()
}

// Place puts p on the square at rank and file.
func (b *Board) Place(rank, file int, p *Piece) error {
	sq := b.Square(rank, file)
	if sq == nil {
		return fmt.Errorf("place at (%d,%d): %w", rank, file, ErrOutOfRange)
	}
	return sq.AddPiece(p)
}

// SetSquare installs sq in the slot matching its coordinates. Only
// empty slots can be filled; decoders use it to assemble a board.
func (b *Board) SetSquare(sq *Square) error {
	if sq == nil {
		return ErrInvalidArgument
	}
	if !InBounds(sq.rank, sq.file) {
		return fmt.Errorf("set square %s: %w", sq, ErrOutOfRange)
	}
	if b.spaces[sq.rank][sq.file] != nil {
		return fmt.Errorf("set square %s: slot filled: %w", sq, ErrInvalidArgument)
	}
	b.spaces[sq.rank][sq.file] = sq
	return nil
}

// Valid reports whether all 64 squares are present with coordinates
// matching their slot, and every piece carries the coordinates of the
// square holding it.
func (b *Board) Valid() bool {
	if b == nil {
		return false
	}
	for rank := 0; rank < Size; rank++ {
		for file := 0; file < Size; file++ {
			sq := b.spaces[rank][file]
			if sq == nil || sq.rank != rank || sq.file != file || !sq.consistent() {
				return false
			}
		}
	}
	return true
}

// Copy returns a board sharing no squares or pieces with b, or nil.
func (b *Board) Copy() *Board {
	if b == nil {
		return nil
	}
	cp := &Board{movesNext: b.movesNext}
	for rank := 0; rank < Size; rank++ {
		for file := 0; file < Size; file++ {
			cp.spaces[rank][file] = b.spaces[rank][file].Copy()
		}
	}
	if !cp.Valid() {
		cp.Release()
		return nil
	}
	return cp
}

// Equal reports whether b and o have the same side to move and equal
// squares everywhere. Two nil boards are equal.
func (b *Board) Equal(o *Board) bool {
	if b == nil || o == nil {
		return b == nil && o == nil
	}
	if b.movesNext != o.movesNext {
		return false
	}
	for rank := 0; rank < Size; rank++ {
		for file := 0; file < Size; file++ {
			if !b.spaces[rank][file].Equal(o.spaces[rank][file]) {
				return false
			}
		}
	}
	return true
}

// Release drops every piece and square held by the board. It is safe to
// call more than once and on partially built boards.
func (b *Board) Release() {
	if b == nil {
		return
	}
	for rank := 0; rank < Size; rank++ {
		for file := 0; file < Size; file++ {
			if sq := b.spaces[rank][file]; sq != nil {
				sq.release()
				b.spaces[rank][file] = nil
			}
		}
	}
}

// Pieces returns every piece on the board, rank 0 first, file 0 first.
func (b *Board) Pieces() []*Piece {
	var pieces []*Piece
	for rank := 0; rank < Size; rank++ {
		for file := 0; file < Size; file++ {
			if p := b.PieceAt(rank, file); p != nil {
				pieces = append(pieces, p)
			}
		}
	}
	return pieces
}

// PieceCount returns the number of occupied squares.
func (b *Board) PieceCount() int {
	return len(b.Pieces())
}

// String returns an ASCII diagram with rank 8 at the top.
// Dead pieces are shown with an 'x' marker after them.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := Size - 1; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < Size; file++ {
			p := b.PieceAt(rank, file)
			switch {
			case p == nil:
				sb.WriteString(". ")
			case !p.IsAlive():
				sb.WriteByte(p.Char())
				sb.WriteByte('x')
			default:
				sb.WriteByte(p.Char())
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", b.movesNext)
	return sb.String()
}
