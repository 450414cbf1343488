package board

import "fmt"

// Size is the number of ranks and files on the board.
const Size = 8

// Square is one cell of the board. Its coordinates are fixed at
// construction. It owns at most one Piece and keeps per-side usage
// statistics indexed by White and Black.
type Square struct {
	rank  int
	file  int
	piece *Piece

	threats   [2]int
	turnsHeld [2]int
	adjacent  [2]int
}

// InBounds reports whether rank and file both lie in [0, Size).
func InBounds(rank, file int) bool {
	return rank >= 0 && rank < Size && file >= 0 && file < Size
}

// NewSquare creates an empty square at the given coordinates.
func NewSquare(rank, file int) (*Square, error) {
	if !InBounds(rank, file) {
		return nil, fmt.Errorf("square (%d,%d): %w", rank, file, ErrOutOfRange)
	}
	return &Square{rank: rank, file: file}, nil
}

// NewBlankSquare creates an empty square with the sentinel coordinates
// (-1,-1). It is a scratch value for decoders that fill in fields later.
func NewBlankSquare() *Square {
	return &Square{rank: -1, file: -1}
}

// Rank returns the row of the square: 0 is White's back row.
func (s *Square) Rank() int { return s.rank }

// File returns the column of the square: 0 is White's queen-side rook file.
func (s *Square) File() int { return s.file }

// Piece returns the piece on the square, or nil.
func (s *Square) Piece() *Piece { return s.piece }

// IsEmpty returns true if no piece is on the square.
func (s *Square) IsEmpty() bool { return s.piece == nil }

// String returns the algebraic name of the square (e.g., "e4").
func (s *Square) String() string {
	return squareName(s.rank, s.file)
}

// Threats returns the number of pieces of side c threatening the square.
func (s *Square) Threats(c Color) int {
	if !c.IsSide() {
		return 0
	}
	return s.threats[c]
}

// TurnsHeld returns the number of turns side c has held the square.
func (s *Square) TurnsHeld(c Color) int {
	if !c.IsSide() {
		return 0
	}
	return s.turnsHeld[c]
}

// AdjacentPieces returns the number of pieces of side c next to the square.
func (s *Square) AdjacentPieces(c Color) int {
	if !c.IsSide() {
		return 0
	}
	return s.adjacent[c]
}

// SetThreats sets the threat count for side c.
func (s *Square) SetThreats(c Color, n int) error {
	return setStat(&s.threats, c, n)
}

// SetTurnsHeld sets the turns-held count for side c.
func (s *Square) SetTurnsHeld(c Color, n int) error {
	return setStat(&s.turnsHeld, c, n)
}

// SetAdjacentPieces sets the adjacent piece count for side c.
func (s *Square) SetAdjacentPieces(c Color, n int) error {
	return setStat(&s.adjacent, c, n)
}

func setStat(stat *[2]int, c Color, n int) error {
	if !c.IsSide() {
		return fmt.Errorf("stat index %s: %w", c, ErrInvalidArgument)
	}
	stat[c] = n
	return nil
}

// SetCoordinates overwrites the coordinates of a blank square. Squares
// that already carry real coordinates keep them.
func (s *Square) SetCoordinates(rank, file int) error {
	if s.rank != -1 || s.file != -1 {
		return fmt.Errorf("square %s already placed: %w", s, ErrInvalidArgument)
	}
	s.rank = rank
	s.file = file
	return nil
}

// Equal reports whether s and o match in coordinates, piece and every
// statistic. Two nil squares are equal; a nil and a non-nil are not.
func (s *Square) Equal(o *Square) bool {
	if s == nil || o == nil {
		return s == nil && o == nil
	}
	return s.rank == o.rank &&
		s.file == o.file &&
		s.piece.Equal(o.piece) &&
		s.threats == o.threats &&
		s.turnsHeld == o.turnsHeld &&
		s.adjacent == o.adjacent
}

// Copy returns an independent square with the same coordinates and
// statistics, holding a copy of the piece if there is one.
func (s *Square) Copy() *Square {
	if s == nil {
		return nil
	}
	cp := &Square{
		rank:      s.rank,
		file:      s.file,
		piece:     s.piece.Copy(),
		threats:   s.threats,
		turnsHeld: s.turnsHeld,
		adjacent:  s.adjacent,
	}
	if cp.piece != nil {
		cp.piece.placed = true
	}
	return cp
}

// AddPiece places p on the square and moves p's cached coordinates to
// the square's. The square takes ownership of p; a piece already held
// by a square is rejected with ErrInvalidArgument.
func (s *Square) AddPiece(p *Piece) error {
	if s == nil || p == nil {
		return ErrInvalidArgument
	}
	if p.placed {
		return fmt.Errorf("add %s to %s: piece already placed: %w", p, s, ErrInvalidArgument)
	}
	if s.piece != nil {
		return fmt.Errorf("add %s to %s: %w", p.Type, s, ErrOccupiedSquare)
	}
	s.piece = p
	p.placed = true
	p.Rank = s.rank
	p.File = s.file
	return nil
}

// consistent reports whether the square's piece, if any, carries the
// square's coordinates.
func (s *Square) consistent() bool {
	return s.piece == nil || (s.piece.Rank == s.rank && s.piece.File == s.file)
}

// release drops the piece held by the square.
func (s *Square) release() {
	if s.piece != nil {
		s.piece.placed = false
	}
	s.piece = nil
}

func squareName(rank, file int) string {
	if !InBounds(rank, file) {
		return fmt.Sprintf("(%d,%d)", rank, file)
	}
	return fmt.Sprintf("%c%c", 'a'+file, '1'+rank)
}
