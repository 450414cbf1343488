package board

import (
	"errors"
	"strings"
	"testing"
)

func TestNewBoard(t *testing.T) {
	b, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if b.MovesNext() != White {
		t.Errorf("MovesNext = %s, want White", b.MovesNext())
	}
	if !b.Valid() {
		t.Fatal("new board is not valid")
	}
	for rank := 0; rank < Size; rank++ {
		for file := 0; file < Size; file++ {
			sq := b.Square(rank, file)
			if sq == nil {
				t.Fatalf("square (%d,%d) missing", rank, file)
			}
			if sq.Rank() != rank || sq.File() != file {
				t.Errorf("square (%d,%d) has coordinates (%d,%d)", rank, file, sq.Rank(), sq.File())
			}
			if !sq.IsEmpty() {
				t.Errorf("square (%d,%d) is not empty", rank, file)
			}
		}
	}
	if b.PieceCount() != 0 {
		t.Errorf("PieceCount = %d, want 0", b.PieceCount())
	}
}

func TestNewStart(t *testing.T) {
	b, err := NewStart()
	if err != nil {
		t.Fatalf("NewStart: %v", err)
	}
	t.Log(b)

	if n := b.PieceCount(); n != 32 {
		t.Fatalf("PieceCount = %d, want 32", n)
	}

	for rank := 0; rank < Size; rank++ {
		for file := 0; file < Size; file++ {
			p := b.PieceAt(rank, file)
			switch rank {
			case 0, 1:
				if p == nil || p.Color != White {
					t.Errorf("(%d,%d) = %v, want a white piece", rank, file, p)
				}
			case 6, 7:
				if p == nil || p.Color != Black {
					t.Errorf("(%d,%d) = %v, want a black piece", rank, file, p)
				}
			default:
				if p != nil {
					t.Errorf("(%d,%d) = %v, want empty", rank, file, p)
				}
			}
			if p == nil {
				continue
			}
			if p.Rank != rank || p.File != file {
				t.Errorf("piece at (%d,%d) thinks it is at (%d,%d)", rank, file, p.Rank, p.File)
			}
			if !p.IsAlive() {
				t.Errorf("piece at (%d,%d) is dead", rank, file)
			}
		}
	}

	wantBack := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file, pt := range wantBack {
		if got := b.PieceAt(0, file).Type; got != pt {
			t.Errorf("white back row file %d = %s, want %s", file, got, pt)
		}
		if got := b.PieceAt(7, file).Type; got != pt {
			t.Errorf("black back row file %d = %s, want %s", file, got, pt)
		}
		if got := b.PieceAt(1, file).Type; got != Pawn {
			t.Errorf("white pawn row file %d = %s", file, got)
		}
		if got := b.PieceAt(6, file).Type; got != Pawn {
			t.Errorf("black pawn row file %d = %s", file, got)
		}
	}

	king := b.PieceAt(0, 4)
	if !king.Equal(&Piece{Type: King, Color: White, Health: Alive, Rank: 0, File: 4}) {
		t.Errorf("e1 = %v, want white king", king)
	}
}

func TestBoardCopyIndependent(t *testing.T) {
	b, _ := NewStart()
	b.SetMovesNext(Black)
	b.Square(3, 3).SetThreats(White, 2)
	b.PieceAt(6, 0).Kill()

	c := b.Copy()
	if c == nil {
		t.Fatal("Copy returned nil")
	}
	if !b.Equal(c) {
		t.Fatal("copy is not equal to the original")
	}

	for rank := 0; rank < Size; rank++ {
		for file := 0; file < Size; file++ {
			if b.Square(rank, file) == c.Square(rank, file) {
				t.Fatalf("square (%d,%d) is shared", rank, file)
			}
			if p := b.PieceAt(rank, file); p != nil && p == c.PieceAt(rank, file) {
				t.Fatalf("piece at (%d,%d) is shared", rank, file)
			}
		}
	}

	c.PieceAt(0, 4).Kill()
	if !b.PieceAt(0, 4).IsAlive() {
		t.Error("killing a piece on the copy killed the original")
	}
	if b.Equal(c) {
		t.Error("boards should differ after mutating the copy")
	}

	if (*Board)(nil).Copy() != nil {
		t.Error("Copy of nil board should be nil")
	}
}

func TestBoardCopyRejectsInvalid(t *testing.T) {
	b, _ := New()
	b.spaces[5][5] = nil
	if c := b.Copy(); c != nil {
		t.Error("Copy of a board with a missing square should be nil")
	}
}

func TestBoardEqual(t *testing.T) {
	a, _ := NewStart()
	b, _ := NewStart()

	if !a.Equal(b) {
		t.Fatal("two start boards should be equal")
	}
	if !(*Board)(nil).Equal(nil) {
		t.Error("nil boards should be equal")
	}
	if a.Equal(nil) || (*Board)(nil).Equal(a) {
		t.Error("nil and non-nil boards should differ")
	}

	b.SetMovesNext(Black)
	if a.Equal(b) {
		t.Error("boards with different side to move should differ")
	}
	b.SetMovesNext(White)

	b.Square(4, 4).SetAdjacentPieces(Black, 1)
	if a.Equal(b) {
		t.Error("boards with different stats should differ")
	}

	empty, _ := New()
	if a.Equal(empty) {
		t.Error("start board should differ from empty board")
	}
}

func TestBoardRelease(t *testing.T) {
	b, _ := NewStart()
	b.spaces[2][2] = nil

	b.Release()
	b.Release()

	if b.Valid() {
		t.Error("released board should not be valid")
	}
	for rank := 0; rank < Size; rank++ {
		for file := 0; file < Size; file++ {
			if b.Square(rank, file) != nil {
				t.Fatalf("square (%d,%d) survived Release", rank, file)
			}
		}
	}
}

func TestBoardSetSquare(t *testing.T) {
	b := &Board{}
	for rank := 0; rank < Size; rank++ {
		for file := 0; file < Size; file++ {
			sq, _ := NewSquare(rank, file)
			if err := b.SetSquare(sq); err != nil {
				t.Fatalf("SetSquare(%s): %v", sq, err)
			}
		}
	}
	if !b.Valid() {
		t.Fatal("board assembled square by square should be valid")
	}

	dup, _ := NewSquare(0, 0)
	if err := b.SetSquare(dup); err == nil {
		t.Error("SetSquare into a filled slot should fail")
	}
	if err := b.SetSquare(NewBlankSquare()); err == nil {
		t.Error("SetSquare with a blank square should fail")
	}
}

func TestBoardPlace(t *testing.T) {
	b, _ := New()
	if err := b.Place(3, 3, NewAlivePiece(White, Queen, 0, 0)); err != nil {
		t.Fatalf("Place: %v", err)
	}
	if err := b.Place(8, 0, NewAlivePiece(White, Queen, 0, 0)); err == nil {
		t.Error("Place off the board should fail")
	}
	if p := b.PieceAt(3, 3); p == nil || p.Rank != 3 || p.File != 3 {
		t.Errorf("PieceAt(3,3) = %v", p)
	}
}

func TestBoardValidPieceCoordinates(t *testing.T) {
	b, _ := NewStart()
	if !b.Valid() {
		t.Fatal("start board should be valid")
	}

	b.PieceAt(0, 0).Rank = 3
	if b.Valid() {
		t.Error("board with a piece off its square's coordinates should be invalid")
	}
	if b.Copy() != nil {
		t.Error("Copy of an inconsistent board should be nil")
	}

	b.PieceAt(0, 0).Rank = 0
	if !b.Valid() {
		t.Error("restoring the coordinates should make the board valid again")
	}
}

func TestBoardPlaceSamePieceTwice(t *testing.T) {
	b, _ := New()
	p := NewAlivePiece(Black, Bishop, 0, 0)
	if err := b.Place(2, 2, p); err != nil {
		t.Fatal(err)
	}
	if err := b.Place(5, 5, p); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("second Place err = %v, want ErrInvalidArgument", err)
	}
	if b.PieceAt(5, 5) != nil {
		t.Error("piece is on two squares")
	}
	if !b.Valid() {
		t.Error("board should stay valid after the rejected Place")
	}
}

func TestBoardString(t *testing.T) {
	b, _ := NewStart()
	b.PieceAt(1, 0).Kill()
	s := b.String()

	if !strings.Contains(s, "8  r n b q k b n r") {
		t.Errorf("missing black back row in:\n%s", s)
	}
	if !strings.Contains(s, "2  Px") {
		t.Errorf("dead pawn not marked in:\n%s", s)
	}
	if !strings.Contains(s, "Side to move: White") {
		t.Errorf("missing side to move in:\n%s", s)
	}
}
