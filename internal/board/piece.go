package board

// Color represents the color of a piece or player.
// Only White and Black take part in play; the rest of the palette is
// used by front ends for highlighting.
type Color uint8

const (
	White Color = iota
	Black
	Red
	Green
	Blue
	Orange
	Yellow
	Purple
	Grey
)

// Other returns the opposite side. Palette colors are returned unchanged.
func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return c
	}
}

// IsSide reports whether c is one of the two playing colors.
func (c Color) IsSide() bool {
	return c == White || c == Black
}

// IsValid reports whether c is a known color.
func (c Color) IsValid() bool {
	return c <= Grey
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	case Red:
		return "Red"
	case Green:
		return "Green"
	case Blue:
		return "Blue"
	case Orange:
		return "Orange"
	case Yellow:
		return "Yellow"
	case Purple:
		return "Purple"
	case Grey:
		return "Grey"
	default:
		return "NoColor"
	}
}

// PieceType represents the type of a chess piece.
// The numeric values are part of the save file format.
type PieceType uint8

const (
	Rook PieceType = iota
	Knight
	Bishop
	King
	Queen
	Pawn
)

// IsValid reports whether pt is a known piece type.
func (pt PieceType) IsValid() bool {
	return pt <= Pawn
}

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Rook:
		return "Rook"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case King:
		return "King"
	case Queen:
		return "Queen"
	case Pawn:
		return "Pawn"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	chars := []byte{'r', 'n', 'b', 'k', 'q', 'p'}
	if !pt.IsValid() {
		return ' '
	}
	return chars[pt]
}

// PieceTypeFromChar converts a FEN character of either case to a PieceType.
func PieceTypeFromChar(c byte) (PieceType, bool) {
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	switch c {
	case 'r':
		return Rook, true
	case 'n':
		return Knight, true
	case 'b':
		return Bishop, true
	case 'k':
		return King, true
	case 'q':
		return Queen, true
	case 'p':
		return Pawn, true
	}
	return 0, false
}

// Health is the alive/dead status of a piece.
type Health uint8

const (
	Alive Health = iota
	Dead
)

// IsValid reports whether h is a known health value.
func (h Health) IsValid() bool {
	return h <= Dead
}

// String returns the health name.
func (h Health) String() string {
	switch h {
	case Alive:
		return "Alive"
	case Dead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// Piece is a single chess piece. Type and Color never change after
// creation; Health changes through Kill. Rank and File mirror the
// coordinates of the Square holding the piece and are kept in sync by
// Square.AddPiece. A piece belongs to at most one square.
type Piece struct {
	Type   PieceType
	Color  Color
	Health Health
	Rank   int
	File   int

	placed bool
}

// NewPiece creates a piece with every field given.
func NewPiece(c Color, pt PieceType, h Health, rank, file int) *Piece {
	return &Piece{
		Type:   pt,
		Color:  c,
		Health: h,
		Rank:   rank,
		File:   file,
	}
}

// NewAlivePiece creates a live piece.
func NewAlivePiece(c Color, pt PieceType, rank, file int) *Piece {
	return NewPiece(c, pt, Alive, rank, file)
}

// Equal reports whether p and o hold the same field values.
// Two nil pieces are equal; a nil and a non-nil piece are not.
func (p *Piece) Equal(o *Piece) bool {
	if p == nil || o == nil {
		return p == nil && o == nil
	}
	return p.Type == o.Type &&
		p.Color == o.Color &&
		p.Health == o.Health &&
		p.Rank == o.Rank &&
		p.File == o.File
}

// Copy returns an independent piece with the same field values, or nil.
// The copy is not on any square.
func (p *Piece) Copy() *Piece {
	if p == nil {
		return nil
	}
	cp := *p
	cp.placed = false
	return &cp
}

// Placed reports whether the piece is held by a square.
func (p *Piece) Placed() bool {
	return p != nil && p.placed
}

// Kill marks the piece dead and reports whether it was already dead.
// The piece stays on its square; callers decide what a death means for
// the rest of the board. Killing a nil piece does nothing and reports
// false.
func (p *Piece) Kill() (alreadyDead bool) {
	if p == nil {
		return false
	}
	alreadyDead = p.Health == Dead
	p.Health = Dead
	return alreadyDead
}

// IsAlive reports whether the piece is alive.
func (p *Piece) IsAlive() bool {
	return p != nil && p.Health == Alive
}

// Char returns the FEN character for the piece.
// Uppercase for white, lowercase for every other color.
func (p *Piece) Char() byte {
	if p == nil {
		return '.'
	}
	c := p.Type.Char()
	if p.Color == White {
		c -= 'a' - 'A'
	}
	return c
}

// String returns a short description such as "White King (Alive) at e1".
func (p *Piece) String() string {
	if p == nil {
		return "<none>"
	}
	return p.Color.String() + " " + p.Type.String() + " (" + p.Health.String() + ") at " + squareName(p.Rank, p.File)
}
