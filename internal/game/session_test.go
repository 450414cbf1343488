package game

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/hailam/chessboard/internal/board"
	"github.com/hailam/chessboard/internal/codec"
)

func TestNewSessionRejectsInvalid(t *testing.T) {
	if _, err := NewSession(nil); !errors.Is(err, board.ErrInvalidBoard) {
		t.Errorf("nil board err = %v", err)
	}
	b, _ := board.New()
	b.Release()
	if _, err := NewSession(b); !errors.Is(err, board.ErrInvalidBoard) {
		t.Errorf("released board err = %v", err)
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	s, err := NewStartSession()
	if err != nil {
		t.Fatal(err)
	}

	snap := s.Snapshot()
	if _, err := s.Kill(0, 4); err != nil {
		t.Fatal(err)
	}

	if !snap.PieceAt(0, 4).IsAlive() {
		t.Error("snapshot saw a later mutation")
	}
	if s.Snapshot().PieceAt(0, 4).IsAlive() {
		t.Error("session board was not mutated")
	}
}

func TestReplace(t *testing.T) {
	s, _ := NewStartSession()

	var current *board.Board
	s.View(func(b *board.Board) error {
		current = b
		return nil
	})
	before := s.Version()
	if err := s.Replace(current); err != nil {
		t.Fatalf("Replace with the current board: %v", err)
	}
	snap := s.Snapshot()
	if snap == nil || snap.PieceCount() != 32 {
		t.Fatalf("session board lost after self-replace: %v", snap)
	}
	if s.Version() != before {
		t.Error("self-replace bumped the version")
	}

	empty, _ := board.New()
	if err := s.Replace(empty); err != nil {
		t.Fatal(err)
	}
	if current.Valid() {
		t.Error("replaced board was not released")
	}
	if n := s.Snapshot().PieceCount(); n != 0 {
		t.Errorf("PieceCount after Replace = %d, want 0", n)
	}

	if err := s.Replace(nil); !errors.Is(err, board.ErrInvalidBoard) {
		t.Errorf("Replace(nil) err = %v, want ErrInvalidBoard", err)
	}
}

func TestKill(t *testing.T) {
	s, _ := NewStartSession()

	dead, err := s.Kill(6, 2)
	if err != nil || dead {
		t.Fatalf("first Kill = %v, %v; want false, nil", dead, err)
	}
	dead, err = s.Kill(6, 2)
	if err != nil || !dead {
		t.Fatalf("second Kill = %v, %v; want true, nil", dead, err)
	}

	snap := s.Snapshot()
	if p := snap.PieceAt(6, 2); p == nil || p.Health != board.Dead {
		t.Errorf("piece after Kill = %v, want dead and still on the square", p)
	}

	if _, err := s.Kill(4, 4); !errors.Is(err, ErrNoPiece) {
		t.Errorf("Kill on empty square err = %v, want ErrNoPiece", err)
	}
	if _, err := s.Kill(-1, 4); !errors.Is(err, board.ErrOutOfRange) {
		t.Errorf("Kill off board err = %v, want ErrOutOfRange", err)
	}
}

func TestPlaceAndTurn(t *testing.T) {
	b, _ := board.New()
	s, _ := NewSession(b)

	v := s.Version()
	if err := s.Place(3, 3, board.NewAlivePiece(board.White, board.Queen, 0, 0)); err != nil {
		t.Fatal(err)
	}
	if err := s.Place(3, 3, board.NewAlivePiece(board.Black, board.Queen, 0, 0)); !errors.Is(err, board.ErrOccupiedSquare) {
		t.Errorf("double Place err = %v", err)
	}
	if s.Version() == v {
		t.Error("version did not change after Place")
	}

	if s.MovesNext() != board.White {
		t.Errorf("MovesNext = %s", s.MovesNext())
	}
	s.SetMovesNext(board.Black)
	if s.MovesNext() != board.Black {
		t.Errorf("MovesNext after set = %s", s.MovesNext())
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.chs")
	s, _ := NewStartSession()
	s.Kill(7, 3)
	s.SetMovesNext(board.Black)
	want := s.Snapshot()

	if err := s.Save(path, false, codec.WithFormat(codec.FormatLegacy)); err != nil {
		t.Fatal(err)
	}

	empty, _ := board.New()
	other, _ := NewSession(empty)
	if err := other.Load(path, codec.WithFormat(codec.FormatLegacy)); err != nil {
		t.Fatal(err)
	}
	if !other.Snapshot().Equal(want) {
		t.Error("loaded session differs from saved session")
	}

	before := other.Snapshot()
	if err := other.Load(filepath.Join(t.TempDir(), "missing.chs")); !errors.Is(err, codec.ErrNotFound) {
		t.Errorf("missing load err = %v", err)
	}
	if !other.Snapshot().Equal(before) {
		t.Error("failed Load changed the board")
	}
}

func TestConcurrentAccess(t *testing.T) {
	s, _ := NewStartSession()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(file int) {
			defer wg.Done()
			s.Kill(1, file)
		}(i)
		go func() {
			defer wg.Done()
			if snap := s.Snapshot(); !snap.Valid() {
				t.Error("snapshot is not a valid board")
			}
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	for file := 0; file < board.Size; file++ {
		if snap.PieceAt(1, file).IsAlive() {
			t.Errorf("pawn on file %d survived", file)
		}
	}
}
