package board

import (
	"errors"
	"testing"
)

func TestNewSquareBounds(t *testing.T) {
	for rank := 0; rank < Size; rank++ {
		for file := 0; file < Size; file++ {
			sq, err := NewSquare(rank, file)
			if err != nil {
				t.Fatalf("NewSquare(%d,%d) failed: %v", rank, file, err)
			}
			if sq.Rank() != rank || sq.File() != file {
				t.Errorf("NewSquare(%d,%d) has coordinates (%d,%d)", rank, file, sq.Rank(), sq.File())
			}
			if !sq.IsEmpty() {
				t.Errorf("NewSquare(%d,%d) is not empty", rank, file)
			}
			for _, c := range []Color{White, Black} {
				if sq.Threats(c) != 0 || sq.TurnsHeld(c) != 0 || sq.AdjacentPieces(c) != 0 {
					t.Errorf("NewSquare(%d,%d) stats not zero for %s", rank, file, c)
				}
			}
		}
	}

	bad := [][2]int{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {8, 8}, {-1, -1}, {100, 3}}
	for _, rf := range bad {
		sq, err := NewSquare(rf[0], rf[1])
		if sq != nil || !errors.Is(err, ErrOutOfRange) {
			t.Errorf("NewSquare(%d,%d) = %v, %v; want nil, ErrOutOfRange", rf[0], rf[1], sq, err)
		}
	}
}

func TestNewBlankSquare(t *testing.T) {
	sq := NewBlankSquare()
	if sq.Rank() != -1 || sq.File() != -1 {
		t.Errorf("blank square at (%d,%d), want (-1,-1)", sq.Rank(), sq.File())
	}
	if err := sq.SetCoordinates(3, 4); err != nil {
		t.Fatalf("SetCoordinates on blank square: %v", err)
	}
	if err := sq.SetCoordinates(5, 5); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("second SetCoordinates err = %v, want ErrInvalidArgument", err)
	}
	if sq.Rank() != 3 || sq.File() != 4 {
		t.Errorf("square moved to (%d,%d)", sq.Rank(), sq.File())
	}
}

func TestSquareAddPiece(t *testing.T) {
	sq, _ := NewSquare(2, 5)
	p := NewAlivePiece(White, Bishop, -1, -1)

	if err := sq.AddPiece(p); err != nil {
		t.Fatalf("AddPiece: %v", err)
	}
	if sq.Piece() != p {
		t.Fatal("square does not hold the added piece")
	}
	if p.Rank != 2 || p.File != 5 {
		t.Errorf("piece coordinates = (%d,%d), want (2,5)", p.Rank, p.File)
	}

	other := NewAlivePiece(Black, Queen, 0, 0)
	if err := sq.AddPiece(other); !errors.Is(err, ErrOccupiedSquare) {
		t.Errorf("AddPiece on occupied square err = %v, want ErrOccupiedSquare", err)
	}
	if sq.Piece() != p {
		t.Error("original piece was replaced")
	}
	if other.Rank != 0 || other.File != 0 {
		t.Error("rejected piece had its coordinates changed")
	}

	if err := sq.AddPiece(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("AddPiece(nil) err = %v, want ErrInvalidArgument", err)
	}
	var nilSquare *Square
	if err := nilSquare.AddPiece(other); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil square AddPiece err = %v, want ErrInvalidArgument", err)
	}
}

func TestSquareAddPieceOwnedElsewhere(t *testing.T) {
	first, _ := NewSquare(2, 2)
	second, _ := NewSquare(5, 5)
	p := NewAlivePiece(White, Knight, 0, 0)

	if err := first.AddPiece(p); err != nil {
		t.Fatalf("AddPiece: %v", err)
	}
	if !p.Placed() {
		t.Error("piece on a square should report Placed")
	}
	if err := second.AddPiece(p); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("AddPiece of a placed piece err = %v, want ErrInvalidArgument", err)
	}
	if !second.IsEmpty() {
		t.Error("second square took a piece owned by the first")
	}
	if p.Rank != 2 || p.File != 2 {
		t.Errorf("piece moved to (%d,%d), want (2,2)", p.Rank, p.File)
	}

	// A copy is free to go elsewhere; a released piece too.
	if err := second.AddPiece(p.Copy()); err != nil {
		t.Errorf("AddPiece of a copy: %v", err)
	}
	first.release()
	if p.Placed() {
		t.Error("released piece still reports Placed")
	}
	third, _ := NewSquare(7, 7)
	if err := third.AddPiece(p); err != nil {
		t.Errorf("AddPiece after release: %v", err)
	}

	cp := third.Copy()
	if !cp.Piece().Placed() {
		t.Error("piece of a copied square should be placed")
	}
}

func TestSquareStats(t *testing.T) {
	sq, _ := NewSquare(0, 0)
	if err := sq.SetThreats(White, 2); err != nil {
		t.Fatal(err)
	}
	if err := sq.SetTurnsHeld(Black, 5); err != nil {
		t.Fatal(err)
	}
	if err := sq.SetAdjacentPieces(Black, 1); err != nil {
		t.Fatal(err)
	}
	if sq.Threats(White) != 2 || sq.TurnsHeld(Black) != 5 || sq.AdjacentPieces(Black) != 1 {
		t.Error("stats not stored")
	}
	if err := sq.SetThreats(Purple, 1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("SetThreats(Purple) err = %v, want ErrInvalidArgument", err)
	}
}

func TestSquareEqual(t *testing.T) {
	mk := func() *Square {
		sq, _ := NewSquare(4, 4)
		sq.SetThreats(White, 1)
		sq.SetTurnsHeld(Black, 2)
		sq.SetAdjacentPieces(White, 3)
		sq.AddPiece(NewAlivePiece(Black, Knight, 0, 0))
		return sq
	}

	a, b := mk(), mk()
	if !a.Equal(b) {
		t.Fatal("independently built squares should be equal")
	}
	if !(*Square)(nil).Equal(nil) {
		t.Error("nil squares should be equal")
	}
	if a.Equal(nil) || (*Square)(nil).Equal(a) {
		t.Error("nil and non-nil squares should differ")
	}

	mutations := map[string]func(*Square){
		"threats white":  func(s *Square) { s.SetThreats(White, 9) },
		"threats black":  func(s *Square) { s.SetThreats(Black, 9) },
		"turns white":    func(s *Square) { s.SetTurnsHeld(White, 9) },
		"turns black":    func(s *Square) { s.SetTurnsHeld(Black, 9) },
		"adjacent white": func(s *Square) { s.SetAdjacentPieces(White, 9) },
		"adjacent black": func(s *Square) { s.SetAdjacentPieces(Black, 9) },
		"piece health":   func(s *Square) { s.Piece().Kill() },
		"piece removed":  func(s *Square) { s.release() },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			x, y := mk(), mk()
			mutate(y)
			if x.Equal(y) {
				t.Errorf("squares should differ after %s", name)
			}
		})
	}

	other, _ := NewSquare(4, 5)
	empty, _ := NewSquare(4, 4)
	if other.Equal(empty) {
		t.Error("squares with different files should differ")
	}
}

func TestSquareCopy(t *testing.T) {
	if (*Square)(nil).Copy() != nil {
		t.Fatal("Copy of nil square should be nil")
	}

	orig, _ := NewSquare(6, 2)
	orig.SetThreats(White, 1)
	orig.SetThreats(Black, 2)
	orig.SetTurnsHeld(White, 3)
	orig.SetTurnsHeld(Black, 4)
	orig.SetAdjacentPieces(White, 5)
	orig.SetAdjacentPieces(Black, 6)
	orig.AddPiece(NewAlivePiece(Black, Pawn, 0, 0))

	cp := orig.Copy()
	if cp == orig || cp.Piece() == orig.Piece() {
		t.Fatal("Copy shares storage with the original")
	}
	if !cp.Equal(orig) {
		t.Fatal("Copy is not equal to the original")
	}
	if cp.TurnsHeld(White) != 3 || cp.TurnsHeld(Black) != 4 {
		t.Errorf("turns held copied as (%d,%d), want (3,4)", cp.TurnsHeld(White), cp.TurnsHeld(Black))
	}

	cp.Piece().Kill()
	if !orig.Piece().IsAlive() {
		t.Error("killing the copied piece killed the original")
	}

	empty, _ := NewSquare(0, 0)
	if c := empty.Copy(); c.Piece() != nil {
		t.Error("copy of empty square has a piece")
	}
}
